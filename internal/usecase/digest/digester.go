package digest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgai "github.com/johnquangdev/meeting-digest/pkg/ai"
)

// actionItemsPrompt is sent verbatim, leading newline and indentation included
const actionItemsPrompt = "\n    Extract action items from this meeting summary. Format as a JSON list under \"action_items\":\n    %s\n    "

// Digest is what the summarization stage derives from one transcript
type Digest struct {
	KeyPoints  []string
	Extraction Extraction
}

// ActionItems returns the extracted action items
func (d *Digest) ActionItems() []string {
	return d.Extraction.Items
}

// Digester condenses a transcript and extracts action items with one summarization model
type Digester struct {
	summarizer pkgai.Summarizer
	parser     *Parser
	logger     *zap.Logger
}

// NewDigester creates a Digester around summarizer
func NewDigester(summarizer pkgai.Summarizer, logger *zap.Logger) *Digester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Digester{summarizer: summarizer, parser: NewParser(), logger: logger}
}

// Digest runs both summarizer passes. The first pass yields the single key point,
// the second asks the same model for action items in JSON.
func (d *Digester) Digest(ctx context.Context, transcript string) (*Digest, error) {
	condensed, err := d.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("summarize transcript: %w", err)
	}

	raw, err := d.summarizer.Summarize(ctx, fmt.Sprintf(actionItemsPrompt, condensed))
	if err != nil {
		return nil, fmt.Errorf("extract action items: %w", err)
	}

	extraction := d.parser.ParseActionItems(raw)
	if extraction.IsFallback() {
		d.logger.Warn("⚠️ Action items were not valid JSON, keeping raw output",
			zap.Int("raw_length", len(raw)),
		)
	}

	return &Digest{
		KeyPoints:  []string{condensed},
		Extraction: extraction,
	}, nil
}
