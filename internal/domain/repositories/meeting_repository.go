package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-digest/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings and their summaries.
// The pipeline only inserts and updates; nothing is read back for display.
type MeetingRepository interface {
	// CreateMeeting inserts a meeting and commits immediately
	CreateMeeting(ctx context.Context, meeting *entities.Meeting) error

	// CompleteMeeting inserts the summary and marks the meeting completed in one transaction
	CompleteMeeting(ctx context.Context, meeting *entities.Meeting, summary *entities.Summary) error

	// MarkMeetingFailed sets the meeting status to failed
	MarkMeetingFailed(ctx context.Context, meetingID uuid.UUID) error
}
