package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the pipeline state of an uploaded meeting
type MeetingStatus string

const (
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusFailed     MeetingStatus = "failed"
)

// IsValid checks the status is one of the known values
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusProcessing, MeetingStatusCompleted, MeetingStatusFailed:
		return true
	}
	return false
}

// Meeting is one upload-to-pipeline-completion attempt
type Meeting struct {
	ID         uuid.UUID     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Filename   string        `gorm:"type:varchar(255);not null" json:"filename"`
	UploadTime time.Time     `gorm:"not null" json:"upload_time"`
	Status     MeetingStatus `gorm:"type:varchar(20);not null;default:'processing'" json:"status"`
	Summaries  []Summary     `gorm:"foreignKey:MeetingID" json:"summaries,omitempty"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting in the processing state
func NewMeeting(filename string) *Meeting {
	return &Meeting{
		ID:         uuid.New(),
		Filename:   filename,
		UploadTime: time.Now().UTC(),
		Status:     MeetingStatusProcessing,
	}
}

// IsProcessing checks if the pipeline is still running for this meeting
func (m *Meeting) IsProcessing() bool {
	return m.Status == MeetingStatusProcessing
}

// MarkAsCompleted marks the meeting as successfully digested
func (m *Meeting) MarkAsCompleted() {
	m.Status = MeetingStatusCompleted
}

// MarkAsFailed marks the meeting as failed
func (m *Meeting) MarkAsFailed() {
	m.Status = MeetingStatusFailed
}
