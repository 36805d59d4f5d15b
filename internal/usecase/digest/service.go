package digest

import (
	"context"
	stdErrors "errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/errors"
	"github.com/johnquangdev/meeting-digest/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-digest/internal/domain/repositories"
	"github.com/johnquangdev/meeting-digest/internal/infrastructure/storage"
	pkgai "github.com/johnquangdev/meeting-digest/pkg/ai"
	"github.com/johnquangdev/meeting-digest/pkg/runcontext"
	"github.com/johnquangdev/meeting-digest/pkg/upload"
	pkgvalidator "github.com/johnquangdev/meeting-digest/pkg/validator"
)

// Upload is one submitted media file
type Upload struct {
	Filename string    `validate:"required,media_file"`
	Body     io.Reader `validate:"-"`
}

// Result is what the upload page renders after a successful run
type Result struct {
	MeetingID   uuid.UUID
	Filename    string
	Status      entities.MeetingStatus
	KeyPoints   []string
	ActionItems []string
	Extraction  ExtractionKind
	Duration    time.Duration
}

// Service runs the upload → transcribe → digest → persist pipeline
type Service interface {
	Process(ctx context.Context, in Upload) (*Result, error)
}

// Options tune side effects of the pipeline
type Options struct {
	// CleanupOnFailure removes the staged upload when the pipeline fails
	CleanupOnFailure bool
}

type digestService struct {
	meetings    domainrepo.MeetingRepository
	store       storage.FileStore
	transcriber pkgai.Transcriber
	digester    *Digester
	validator   *pkgvalidator.CustomValidator
	opts        Options
	logger      *zap.Logger
}

// NewService constructs the pipeline service
func NewService(
	meetings domainrepo.MeetingRepository,
	store storage.FileStore,
	transcriber pkgai.Transcriber,
	digester *Digester,
	opts Options,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &digestService{
		meetings:    meetings,
		store:       store,
		transcriber: transcriber,
		digester:    digester,
		validator:   pkgvalidator.New(),
		opts:        opts,
		logger:      logger,
	}
}

// Process validates the upload and runs it through the pipeline.
// Returned errors are errors.AppError values.
func (s *digestService) Process(ctx context.Context, in Upload) (*Result, error) {
	if err := s.validator.Validate(in); err != nil {
		if pkgvalidator.FailedTag(err) == "required" {
			return nil, errors.ErrNoFileSelected()
		}
		return nil, errors.ErrUnsupportedFileType(in.Filename)
	}

	name := upload.StoredName(in.Filename)
	ctx = runcontext.Begin(ctx, name)

	path, err := s.store.Save(ctx, name, in.Body)
	if err != nil {
		s.logger.Error("❌ Failed to save upload", append(runcontext.Fields(ctx), zap.Error(err))...)
		return nil, errors.ErrStorageFailed("save upload", err)
	}

	succeeded := false
	defer func() {
		if !succeeded && !s.opts.CleanupOnFailure {
			s.logger.Warn("⚠️ Keeping upload after failure", runcontext.Fields(ctx)...)
			return
		}
		if err := s.store.Remove(context.WithoutCancel(ctx), name); err != nil {
			s.logger.Error("❌ Failed to remove upload", append(runcontext.Fields(ctx), zap.Error(err))...)
		}
	}()

	meeting := entities.NewMeeting(name)
	if err := s.meetings.CreateMeeting(ctx, meeting); err != nil {
		s.logger.Error("❌ Failed to create meeting", append(runcontext.Fields(ctx), zap.Error(err))...)
		return nil, errors.ErrDBQueryFailed("create meeting", err)
	}
	ctx = runcontext.WithMeetingID(ctx, meeting.ID)

	s.logger.Info("📥 Meeting created, starting pipeline", runcontext.Fields(ctx)...)

	result, err := s.run(ctx, meeting, path)
	if err != nil {
		s.fail(ctx, meeting, err)
		return nil, err
	}

	succeeded = true
	s.logger.Info("✅ Meeting digested",
		append(runcontext.Fields(ctx),
			zap.Int("action_items", len(result.ActionItems)),
			zap.String("extraction", string(result.Extraction)),
			zap.Duration("duration", result.Duration),
		)...,
	)
	return result, nil
}

func (s *digestService) run(ctx context.Context, meeting *entities.Meeting, path string) (*Result, error) {
	var transcript string
	err := runcontext.Run(ctx, "transcribe", func(ctx context.Context) error {
		var err error
		transcript, err = s.transcriber.Transcribe(ctx, path)
		return err
	})
	if err != nil {
		return nil, errors.ErrAITranscriptionFailed(err)
	}
	s.logger.Info("📝 Transcription finished",
		append(runcontext.Fields(ctx), zap.Int("transcript_length", len(transcript)))...,
	)

	var digest *Digest
	err = runcontext.Run(ctx, "digest", func(ctx context.Context) error {
		var err error
		digest, err = s.digester.Digest(ctx, transcript)
		return err
	})
	if err != nil {
		return nil, errors.ErrAISummaryFailed(err)
	}

	summary := entities.NewSummary(meeting.ID, digest.KeyPoints, digest.ActionItems())
	err = runcontext.Run(ctx, "persist", func(ctx context.Context) error {
		return s.meetings.CompleteMeeting(ctx, meeting, summary)
	})
	if err != nil {
		return nil, errors.ErrDBTransactionFailed(err)
	}

	return &Result{
		MeetingID:   meeting.ID,
		Filename:    meeting.Filename,
		Status:      meeting.Status,
		KeyPoints:   []string(summary.KeyPoints),
		ActionItems: []string(summary.ActionItems),
		Extraction:  digest.Extraction.Kind,
		Duration:    runcontext.Elapsed(ctx),
	}, nil
}

// fail records the failure on its own commit, even if the request was cancelled
func (s *digestService) fail(ctx context.Context, meeting *entities.Meeting, cause error) {
	fields := append(runcontext.Fields(ctx), zap.Error(cause))

	var appErr errors.AppError
	if stdErrors.As(cause, &appErr) {
		fields = append(fields, zap.String("code", appErr.Code.String()))
	}
	s.logger.Error("❌ Pipeline failed", fields...)

	if err := s.meetings.MarkMeetingFailed(context.WithoutCancel(ctx), meeting.ID); err != nil {
		s.logger.Error("❌ Failed to mark meeting as failed",
			append(runcontext.Fields(ctx), zap.Error(err))...,
		)
		return
	}
	meeting.MarkAsFailed()
}
