package presenter

import (
	"time"

	"github.com/johnquangdev/meeting-digest/internal/usecase/digest"
)

// SummaryView is the result block of the upload page
type SummaryView struct {
	MeetingID   string
	Filename    string
	Status      string
	KeyPoints   []string
	ActionItems []string
	// Degraded is set when action items are the raw model output rather than parsed JSON
	Degraded bool
	Duration string
}

// ToSummaryView converts a pipeline result to its page view
func ToSummaryView(r *digest.Result) *SummaryView {
	if r == nil {
		return nil
	}

	return &SummaryView{
		MeetingID:   r.MeetingID.String(),
		Filename:    r.Filename,
		Status:      string(r.Status),
		KeyPoints:   r.KeyPoints,
		ActionItems: r.ActionItems,
		Degraded:    r.Extraction == digest.ExtractionFallback,
		Duration:    r.Duration.Round(time.Millisecond).String(),
	}
}
