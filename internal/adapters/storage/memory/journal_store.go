package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/PabloGalante/farum-breath/internal/domain"
)

// JournalStore is an in-memory domain.JournalStore keyed by date.
// It is NOT persistent and is only suitable for development / local mode.
type JournalStore struct {
	mu      sync.RWMutex
	entries map[string]domain.JournalEntry
}

func NewJournalStore() *JournalStore {
	return &JournalStore{
		entries: make(map[string]domain.JournalEntry),
	}
}

// PutEntry writes the entry for its date, replacing any previous one.
func (s *JournalStore) PutEntry(_ context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.Date == "" {
		return fmt.Errorf("memory: journal entry date is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Date] = *entry
	return nil
}

func (s *JournalStore) GetEntry(_ context.Context, date string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[date]
	if !ok {
		return nil, fmt.Errorf("journal entry %s: %w", date, domain.ErrNotFound)
	}
	return &e, nil
}

// GetAllEntries returns every entry ordered by date.
func (s *JournalStore) GetAllEntries(_ context.Context) ([]*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		cp := e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
