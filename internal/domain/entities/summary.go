package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Summary holds the key points and action items derived for one meeting
type Summary struct {
	ID          uuid.UUID                   `gorm:"type:varchar(36);primaryKey" json:"id"`
	MeetingID   uuid.UUID                   `gorm:"type:varchar(36);not null;index" json:"meeting_id"`
	KeyPoints   datatypes.JSONSlice[string] `json:"key_points"`
	ActionItems datatypes.JSONSlice[string] `json:"action_items"`
	GeneratedAt time.Time                   `gorm:"not null" json:"generated_at"`
}

// TableName specifies the table name for Summary
func (Summary) TableName() string {
	return "summaries"
}

// NewSummary creates a summary linked to the given meeting
func NewSummary(meetingID uuid.UUID, keyPoints, actionItems []string) *Summary {
	if keyPoints == nil {
		keyPoints = []string{}
	}
	if actionItems == nil {
		actionItems = []string{}
	}
	return &Summary{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		KeyPoints:   datatypes.NewJSONSlice(keyPoints),
		ActionItems: datatypes.NewJSONSlice(actionItems),
		GeneratedAt: time.Now().UTC(),
	}
}
