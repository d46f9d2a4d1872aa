package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/PabloGalante/farum-breath/internal/domain"
)

// SessionStore is an in-memory domain.SessionStore. It is NOT persistent and
// is only suitable for development / local mode.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]domain.Session),
	}
}

// SaveSession inserts or replaces a session by ID. A copy is stored so later
// mutations by the caller do not leak in.
func (s *SessionStore) SaveSession(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("memory: session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session
	return nil
}

func (s *SessionStore) GetSession(_ context.Context, id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return &sess, nil
}

func (s *SessionStore) DeleteSession(_ context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// GetAllSessions returns a snapshot ordered by timestamp, oldest first.
func (s *SessionStore) GetAllSessions(_ context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		cp := sess
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
