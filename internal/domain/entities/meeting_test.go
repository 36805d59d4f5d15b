package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMeetingStartsProcessing(t *testing.T) {
	m := NewMeeting("meeting.wav")

	if m.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if !m.IsProcessing() {
		t.Errorf("status = %s, want processing", m.Status)
	}
	if m.UploadTime.IsZero() || m.UploadTime.Location().String() != "UTC" {
		t.Errorf("upload time should be set in UTC, got %v", m.UploadTime)
	}
}

func TestMeetingTransitions(t *testing.T) {
	m := NewMeeting("meeting.wav")
	m.MarkAsCompleted()
	if m.Status != MeetingStatusCompleted {
		t.Errorf("status = %s, want completed", m.Status)
	}

	f := NewMeeting("other.mp3")
	f.MarkAsFailed()
	if f.Status != MeetingStatusFailed {
		t.Errorf("status = %s, want failed", f.Status)
	}
}

func TestMeetingStatusIsValid(t *testing.T) {
	for _, s := range []MeetingStatus{MeetingStatusProcessing, MeetingStatusCompleted, MeetingStatusFailed} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if MeetingStatus("queued").IsValid() {
		t.Errorf("queued should not be valid")
	}
}

func TestNewSummaryNeverStoresNil(t *testing.T) {
	s := NewSummary(uuid.New(), nil, nil)
	if s.KeyPoints == nil || s.ActionItems == nil {
		t.Fatalf("slices must be non-nil so they persist as [] rather than null")
	}
	if len(s.KeyPoints) != 0 || len(s.ActionItems) != 0 {
		t.Errorf("expected empty slices")
	}
}
