package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-breath/internal/analytics"
	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

// Service keeps at most one journal entry per effective day.
type Service struct {
	store domain.JournalStore
	now   func() time.Time
	loc   *time.Location
}

func NewService(store domain.JournalStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		now:   time.Now,
		loc:   loc,
	}
}

// WithClock returns a copy of s that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

// WriteEntry records today's entry. Writing again on the same effective day
// replaces the emotion and keeps the original creation time. A nil emotion
// records that the user journaled without naming one.
func (s *Service) WriteEntry(ctx context.Context, emotion *domain.Emotion) (*domain.JournalEntry, error) {
	if emotion != nil && !emotion.Valid() {
		return nil, fmt.Errorf("%w: unknown emotion %q", domain.ErrInvalidMood, *emotion)
	}

	now := s.now().In(s.loc)
	date := calendar.EffectiveDate(now)
	log := observability.LoggerFromContext(ctx).With("date", date)

	entry := &domain.JournalEntry{Date: date, CreatedAt: now, UpdatedAt: now}
	if emotion != nil {
		e := *emotion
		entry.Emotion = &e
	}

	existing, err := s.store.GetEntry(ctx, date)
	switch {
	case err == nil:
		entry.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		log.Error("failed to read journal entry", "error", err)
		return nil, err
	}

	if err := s.store.PutEntry(ctx, entry); err != nil {
		log.Error("failed to write journal entry", "error", err)
		return nil, err
	}

	log.Info("journal entry written", "overwrite", existing != nil)
	return entry, nil
}

func (s *Service) HasJournaledToday(ctx context.Context) (bool, error) {
	date := calendar.EffectiveDate(s.now().In(s.loc))
	_, err := s.store.GetEntry(ctx, date)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EntriesForMonth returns the entries of the given calendar month, ordered
// by date.
func (s *Service) EntriesForMonth(ctx context.Context, year int, month time.Month) ([]*domain.JournalEntry, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	all, err := s.store.GetAllEntries(ctx)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	var out []*domain.JournalEntry
	for _, e := range all {
		if e != nil && strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Stats summarizes the journal. A storage failure yields zeroed stats.
func (s *Service) Stats(ctx context.Context) analytics.Stats {
	entries, err := s.store.GetAllEntries(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("failed to load journal entries", "error", err)
		entries = nil
	}
	return analytics.EntryStats(entries, s.now().In(s.loc))
}
