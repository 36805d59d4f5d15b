package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-digest/internal/domain/entities"
	"github.com/johnquangdev/meeting-digest/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-digest/pkg/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			URL:      "sqlite:///" + filepath.Join(t.TempDir(), "meetings.db"),
			MaxConns: 4,
			MinConns: 1,
		},
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	if _, err := database.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestCreateMeeting(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	meeting := entities.NewMeeting("meeting.wav")
	if err := repo.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}

	var stored entities.Meeting
	if err := db.First(&stored, "id = ?", meeting.ID).Error; err != nil {
		t.Fatalf("load meeting: %v", err)
	}
	if stored.Status != entities.MeetingStatusProcessing {
		t.Errorf("Status = %q, want processing", stored.Status)
	}
	if stored.Filename != "meeting.wav" {
		t.Errorf("Filename = %q", stored.Filename)
	}
}

func TestCreateMeetingRejectsInvalidStatus(t *testing.T) {
	repo := NewMeetingRepository(newTestDB(t))

	meeting := entities.NewMeeting("meeting.wav")
	meeting.Status = "archived"

	err := repo.CreateMeeting(context.Background(), meeting)
	if !errors.Is(err, entities.ErrInvalidStatus) {
		t.Errorf("CreateMeeting() error = %v, want ErrInvalidStatus", err)
	}
}

func TestCompleteMeeting(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	meeting := entities.NewMeeting("meeting.wav")
	if err := repo.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}

	summary := entities.NewSummary(meeting.ID, []string{"Ship Friday."}, []string{"Alice: write tests"})
	if err := repo.CompleteMeeting(ctx, meeting, summary); err != nil {
		t.Fatalf("CompleteMeeting() error = %v", err)
	}
	if meeting.Status != entities.MeetingStatusCompleted {
		t.Errorf("in-memory Status = %q, want completed", meeting.Status)
	}

	var stored entities.Meeting
	if err := db.Preload("Summaries").First(&stored, "id = ?", meeting.ID).Error; err != nil {
		t.Fatalf("load meeting: %v", err)
	}
	if stored.Status != entities.MeetingStatusCompleted {
		t.Errorf("Status = %q, want completed", stored.Status)
	}
	if len(stored.Summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(stored.Summaries))
	}
	got := stored.Summaries[0]
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "Ship Friday." {
		t.Errorf("KeyPoints = %v", got.KeyPoints)
	}
	if len(got.ActionItems) != 1 || got.ActionItems[0] != "Alice: write tests" {
		t.Errorf("ActionItems = %v", got.ActionItems)
	}
}

func TestCompleteMeetingUnknownMeetingRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)

	ghost := entities.NewMeeting("ghost.wav")
	summary := entities.NewSummary(ghost.ID, []string{"x"}, nil)

	err := repo.CompleteMeeting(context.Background(), ghost, summary)
	if err == nil {
		t.Fatalf("expected error for unknown meeting")
	}
	if ghost.Status != entities.MeetingStatusProcessing {
		t.Errorf("in-memory Status changed to %q on failure", ghost.Status)
	}

	var count int64
	db.Model(&entities.Summary{}).Count(&count)
	if count != 0 {
		t.Errorf("summaries = %d after failed completion, want 0", count)
	}
}

func TestMarkMeetingFailed(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	meeting := entities.NewMeeting("meeting.wav")
	if err := repo.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}
	if err := repo.MarkMeetingFailed(ctx, meeting.ID); err != nil {
		t.Fatalf("MarkMeetingFailed() error = %v", err)
	}

	var stored entities.Meeting
	db.First(&stored, "id = ?", meeting.ID)
	if stored.Status != entities.MeetingStatusFailed {
		t.Errorf("Status = %q, want failed", stored.Status)
	}

	var count int64
	db.Model(&entities.Summary{}).Count(&count)
	if count != 0 {
		t.Errorf("failed meeting has %d summaries", count)
	}

	if err := repo.MarkMeetingFailed(ctx, uuid.New()); !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Errorf("MarkMeetingFailed(unknown) error = %v, want ErrMeetingNotFound", err)
	}
}
