package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project (FARUM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("breath_sessions")
}

func (s *Store) entriesCol() *firestore.CollectionRef {
	return s.client.Collection("journal_entries")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type moodDoc struct {
	Emotion   string    `firestore:"emotion"`
	Intensity int       `firestore:"intensity"`
	Timestamp time.Time `firestore:"timestamp"`
}

type sessionDoc struct {
	Timestamp    time.Time `firestore:"timestamp"`
	Technique    string    `firestore:"breathing_technique"`
	Status       string    `firestore:"status"`
	Completed    bool      `firestore:"completed"`
	MoodBefore   moodDoc   `firestore:"mood_before"`
	MoodAfter    *moodDoc  `firestore:"mood_after"`
	Improvement  *int      `firestore:"improvement"`
	JournalEntry *string   `firestore:"journal_entry"`
}

type entryDoc struct {
	Emotion   *string   `firestore:"emotion"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toMoodDoc(m domain.MoodSample) moodDoc {
	return moodDoc{Emotion: string(m.Emotion), Intensity: m.Intensity, Timestamp: m.Timestamp}
}

func (d moodDoc) toDomain() domain.MoodSample {
	return domain.MoodSample{Emotion: domain.Emotion(d.Emotion), Intensity: d.Intensity, Timestamp: d.Timestamp}
}

func (d sessionDoc) toDomain(id string) *domain.Session {
	sess := &domain.Session{
		ID:           domain.SessionID(id),
		Timestamp:    d.Timestamp,
		MoodBefore:   d.MoodBefore.toDomain(),
		Technique:    domain.Technique(d.Technique),
		Status:       domain.SessionStatus(d.Status),
		Completed:    d.Completed,
		Improvement:  d.Improvement,
		JournalEntry: d.JournalEntry,
	}
	if d.MoodAfter != nil {
		after := d.MoodAfter.toDomain()
		sess.MoodAfter = &after
	}
	return sess
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("firestore: session id is required")
	}

	doc := sessionDoc{
		Timestamp:    session.Timestamp,
		Technique:    string(session.Technique),
		Status:       string(session.Status),
		Completed:    session.Completed,
		MoodBefore:   toMoodDoc(session.MoodBefore),
		Improvement:  session.Improvement,
		JournalEntry: session.JournalEntry,
	}
	if session.MoodAfter != nil {
		after := toMoodDoc(*session.MoodAfter)
		doc.MoodAfter = &after
	}

	if _, err := s.sessionsCol().Doc(string(session.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveSession: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	snap, err := s.sessionsCol().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (s *Store) DeleteSession(ctx context.Context, id domain.SessionID) error {
	// Delete with Exists fails with NotFound instead of silently succeeding.
	_, err := s.sessionsCol().Doc(string(id)).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("firestore DeleteSession: %w", err)
	}
	return nil
}

func (s *Store) GetAllSessions(ctx context.Context) ([]*domain.Session, error) {
	iter := s.sessionsCol().OrderBy("timestamp", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Session
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore GetAllSessions: %w", err)
		}

		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			observability.LoggerFromContext(ctx).Warn("skipping unreadable session document",
				"id", snap.Ref.ID, "error", err)
			continue
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}

// ─────────────────────────────────────────
// JournalStore implementation
// ─────────────────────────────────────────

// PutEntry stores the entry under its date; created_at is preserved on
// overwrite through a merge that leaves it untouched.
func (s *Store) PutEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.Date == "" {
		return fmt.Errorf("firestore: journal entry date is required")
	}

	var emotion *string
	if entry.Emotion != nil {
		v := string(*entry.Emotion)
		emotion = &v
	}

	ref := s.entriesCol().Doc(entry.Date)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		createdAt := entry.CreatedAt
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing entryDoc
			if err := snap.DataTo(&existing); err == nil && !existing.CreatedAt.IsZero() {
				createdAt = existing.CreatedAt
			}
		case status.Code(err) != codes.NotFound:
			return err
		}
		return tx.Set(ref, entryDoc{Emotion: emotion, CreatedAt: createdAt, UpdatedAt: entry.UpdatedAt})
	})
	if err != nil {
		return fmt.Errorf("firestore PutEntry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, date string) (*domain.JournalEntry, error) {
	snap, err := s.entriesCol().Doc(date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("journal entry %s: %w", date, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("firestore GetEntry: %w", err)
	}
	var doc entryDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetEntry decode: %w", err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (s *Store) GetAllEntries(ctx context.Context) ([]*domain.JournalEntry, error) {
	// Document IDs are YYYY-MM-DD, so ordering by ID is chronological.
	iter := s.entriesCol().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.JournalEntry
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore GetAllEntries: %w", err)
		}
		var doc entryDoc
		if err := snap.DataTo(&doc); err != nil {
			observability.LoggerFromContext(ctx).Warn("skipping unreadable journal document",
				"date", snap.Ref.ID, "error", err)
			continue
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (d entryDoc) toDomain(date string) *domain.JournalEntry {
	e := &domain.JournalEntry{Date: date, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
	if d.Emotion != nil {
		v := domain.Emotion(*d.Emotion)
		e.Emotion = &v
	}
	return e
}
