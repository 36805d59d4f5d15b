package digest

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractionKind tells whether action items came from a parsed JSON object
type ExtractionKind string

const (
	ExtractionStructured ExtractionKind = "structured"
	ExtractionFallback   ExtractionKind = "fallback"
)

// Extraction is the tagged result of parsing the model's action-item output
type Extraction struct {
	Kind  ExtractionKind
	Items []string
	// Raw is the unparsed model output
	Raw string
}

// Structured returns an extraction built from a parsed action_items list
func Structured(raw string, items []string) Extraction {
	if items == nil {
		items = []string{}
	}
	return Extraction{Kind: ExtractionStructured, Items: items, Raw: raw}
}

// Fallback returns an extraction whose only item is the raw model output
func Fallback(raw string) Extraction {
	return Extraction{Kind: ExtractionFallback, Items: []string{raw}, Raw: raw}
}

// IsFallback reports whether the model output could not be parsed
func (e Extraction) IsFallback() bool {
	return e.Kind == ExtractionFallback
}

// Parser turns summarizer output into action items
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseActionItems never fails: text that is not a JSON object becomes a Fallback.
// For an object, items are taken from "action_items" (absent or null gives none).
// String elements are kept verbatim; any other element keeps its compact JSON text.
func (p *Parser) ParseActionItems(raw string) Extraction {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		return Fallback(raw)
	}

	field, ok := obj["action_items"]
	if !ok {
		return Structured(raw, nil)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(field, &list); err != nil {
		// a scalar or object under action_items counts as a single item
		return Structured(raw, []string{itemText(field)})
	}

	items := make([]string, 0, len(list))
	for _, el := range list {
		items = append(items, itemText(el))
	}
	return Structured(raw, items)
}

func itemText(el json.RawMessage) string {
	var s string
	if err := json.Unmarshal(el, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, el); err != nil {
		return strings.TrimSpace(string(el))
	}
	return buf.String()
}
