package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-digest/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-digest/internal/domain/repositories"
)

// MeetingRepository handles meeting and summary persistence
type MeetingRepository struct {
	db *gorm.DB
}

var _ repo.MeetingRepository = (*MeetingRepository)(nil)

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// CreateMeeting creates a new meeting
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	if !meeting.Status.IsValid() {
		return fmt.Errorf("%w: %q", entities.ErrInvalidStatus, meeting.Status)
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// CompleteMeeting stores the summary and flips the meeting to completed atomically
func (r *MeetingRepository) CompleteMeeting(ctx context.Context, meeting *entities.Meeting, summary *entities.Summary) error {
	if meeting == nil || summary == nil {
		return errors.New("meeting and summary cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		summary.MeetingID = meeting.ID
		if err := tx.Create(summary).Error; err != nil {
			return fmt.Errorf("failed to create summary: %w", err)
		}

		result := tx.Model(&entities.Meeting{}).
			Where("id = ?", meeting.ID).
			Update("status", entities.MeetingStatusCompleted)
		if result.Error != nil {
			return fmt.Errorf("failed to update meeting status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entities.ErrMeetingNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	meeting.MarkAsCompleted()
	return nil
}

// MarkMeetingFailed marks a meeting as failed
func (r *MeetingRepository) MarkMeetingFailed(ctx context.Context, meetingID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Update("status", entities.MeetingStatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}
