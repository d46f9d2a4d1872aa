// Package practice owns the session lifecycle: a session is started with the
// chosen technique and concluded once, either completed or abandoned.
package practice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

type Service struct {
	store domain.SessionStore
	now   func() time.Time
	loc   *time.Location
	newID func() string
}

func NewService(store domain.SessionStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		now:   time.Now,
		loc:   loc,
		newID: func() string { return uuid.NewString() },
	}
}

// WithClock returns a copy of s that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

type StartSessionInput struct {
	Mood      domain.MoodSample
	Technique domain.Technique
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*domain.Session, error) {
	if err := in.Mood.Validate(); err != nil {
		return nil, err
	}
	if !in.Technique.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTechnique, in.Technique)
	}

	now := s.now().In(s.loc)
	mood := in.Mood
	if mood.Timestamp.IsZero() {
		mood.Timestamp = now
	}

	session := &domain.Session{
		ID:         domain.SessionID(s.newID()),
		Timestamp:  now,
		MoodBefore: mood,
		Technique:  in.Technique,
		Status:     domain.StatusInProgress,
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", session.ID,
		"technique", session.Technique,
	)

	if err := s.store.SaveSession(ctx, session); err != nil {
		log.Error("failed to save session", "error", err)
		return nil, err
	}

	log.Info("session started", "emotion", mood.Emotion, "intensity", mood.Intensity)
	return session, nil
}

type CompleteSessionInput struct {
	ID           domain.SessionID
	MoodAfter    domain.MoodSample
	JournalEntry string
}

// CompleteSession records the mood after the practice. The improvement is
// mood before minus mood after, so a positive number means relief.
func (s *Service) CompleteSession(ctx context.Context, in CompleteSessionInput) (*domain.Session, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", in.ID)

	session, err := s.store.GetSession(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	after := in.MoodAfter
	if after.Timestamp.IsZero() {
		after.Timestamp = s.now().In(s.loc)
	}
	if err := session.Conclude(after); err != nil {
		return nil, err
	}
	if in.JournalEntry != "" {
		entry := in.JournalEntry
		session.JournalEntry = &entry
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		log.Error("failed to save completed session", "error", err)
		return nil, err
	}

	log.Info("session completed", "improvement", *session.Improvement)
	return session, nil
}

func (s *Service) AbandonSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.Abandon(); err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		log.Error("failed to save abandoned session", "error", err)
		return nil, err
	}

	log.Info("session abandoned")
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.store.GetSession(ctx, id)
}

// TodaySessions returns the sessions that belong to the current effective day.
func (s *Service) TodaySessions(ctx context.Context) ([]*domain.Session, error) {
	all, err := s.store.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	var out []*domain.Session
	for _, sess := range all {
		if sess != nil && calendar.IsEffectiveToday(calendar.EffectiveDate(sess.Timestamp.In(s.loc)), now) {
			out = append(out, sess)
		}
	}
	return out, nil
}
