package digest

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-digest/internal/domain/entities"
)

type fakeMeetingRepo struct {
	mu          sync.Mutex
	meetings    map[uuid.UUID]entities.MeetingStatus
	summaries   []*entities.Summary
	writes      int
	createErr   error
	completeErr error
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]entities.MeetingStatus)}
}

func (r *fakeMeetingRepo) CreateMeeting(ctx context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.writes++
	r.meetings[m.ID] = m.Status
	return nil
}

func (r *fakeMeetingRepo) CompleteMeeting(ctx context.Context, m *entities.Meeting, s *entities.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.completeErr != nil {
		return r.completeErr
	}
	if _, ok := r.meetings[m.ID]; !ok {
		return entities.ErrMeetingNotFound
	}
	r.writes++
	r.summaries = append(r.summaries, s)
	r.meetings[m.ID] = entities.MeetingStatusCompleted
	m.MarkAsCompleted()
	return nil
}

func (r *fakeMeetingRepo) MarkMeetingFailed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[id]; !ok {
		return entities.ErrMeetingNotFound
	}
	r.writes++
	r.meetings[id] = entities.MeetingStatusFailed
	return nil
}

func (r *fakeMeetingRepo) only() (uuid.UUID, entities.MeetingStatus) {
	for id, status := range r.meetings {
		return id, status
	}
	return uuid.Nil, ""
}

type fakeTranscriber struct {
	text  string
	err   error
	panic bool
	calls int
	paths []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	f.calls++
	f.paths = append(f.paths, path)
	if f.panic {
		panic("model weights corrupted")
	}
	return f.text, f.err
}

// fakeSummarizer answers the condense pass with condensed and the extraction pass with extraction
type fakeSummarizer struct {
	condensed  string
	extraction string
	errOnCall  int
	inputs     []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.inputs = append(f.inputs, text)
	if f.errOnCall == len(f.inputs) {
		return "", errors.New("summarizer unavailable")
	}
	if len(f.inputs) == 1 {
		return f.condensed, nil
	}
	return f.extraction, nil
}
