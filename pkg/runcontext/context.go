package runcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keyFilename  KeyContext = "filename"
	keyMeetingID KeyContext = "meeting_id"
	keyStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	RunID     uuid.UUID
	Filename  string
	MeetingID uuid.UUID
	StartTime time.Time
}

// Begin tags ctx with a fresh run id, the uploaded filename and the start time
func Begin(parentCtx context.Context, filename string) context.Context {
	ctx := context.WithValue(parentCtx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keyFilename, filename)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// WithMeetingID records the meeting created for this run
func WithMeetingID(ctx context.Context, meetingID uuid.UUID) context.Context {
	return context.WithValue(ctx, keyMeetingID, meetingID)
}

// Run executes one pipeline stage. A panic inside fn is recovered and returned as an error.
func Run(ctx context.Context, stage string, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered in %s: %v", stage, p)
		}
	}()
	return fn(ctx)
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// GetMeetingID extracts meeting ID from context
func GetMeetingID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyMeetingID).(uuid.UUID)
	return id, ok
}

// GetFilename extracts the sanitized upload name from context
func GetFilename(ctx context.Context) string {
	name, _ := ctx.Value(keyFilename).(string)
	return name
}

// Elapsed returns the time since Begin, or zero outside a run
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	meetingID, _ := GetMeetingID(ctx)
	start, _ := ctx.Value(keyStartTime).(time.Time)

	return &RunMetadata{
		RunID:     runID,
		Filename:  GetFilename(ctx),
		MeetingID: meetingID,
		StartTime: start,
	}
}

// Fields returns the run metadata as zap fields
func Fields(ctx context.Context) []zap.Field {
	md := GetRunMetadata(ctx)
	fields := []zap.Field{
		zap.String("run_id", md.RunID.String()),
		zap.String("filename", md.Filename),
	}
	if md.MeetingID != uuid.Nil {
		fields = append(fields, zap.String("meeting_id", md.MeetingID.String()))
	}
	return fields
}
