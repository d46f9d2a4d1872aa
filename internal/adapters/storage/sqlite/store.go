// Package sqlite persists sessions and journal entries in a local SQLite
// file. It implements both domain.SessionStore and domain.JournalStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so stored timestamps sort lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// errBadRow marks a row whose stored values cannot be decoded.
var errBadRow = errors.New("unreadable row")

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and ensures the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  timestamp TEXT NOT NULL,
  technique TEXT NOT NULL,
  status TEXT NOT NULL,
  completed INTEGER NOT NULL,
  mood_before_emotion TEXT NOT NULL,
  mood_before_intensity INTEGER NOT NULL,
  mood_before_at TEXT NOT NULL,
  mood_after_emotion TEXT,
  mood_after_intensity INTEGER,
  mood_after_at TEXT,
  improvement INTEGER,
  journal_entry TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp);

CREATE TABLE IF NOT EXISTS journal_entries (
  date TEXT PRIMARY KEY,
  emotion TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("sqlite: session id is required")
	}

	const stmt = `
INSERT INTO sessions (id, timestamp, technique, status, completed,
  mood_before_emotion, mood_before_intensity, mood_before_at,
  mood_after_emotion, mood_after_intensity, mood_after_at, improvement, journal_entry)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  timestamp=excluded.timestamp,
  technique=excluded.technique,
  status=excluded.status,
  completed=excluded.completed,
  mood_before_emotion=excluded.mood_before_emotion,
  mood_before_intensity=excluded.mood_before_intensity,
  mood_before_at=excluded.mood_before_at,
  mood_after_emotion=excluded.mood_after_emotion,
  mood_after_intensity=excluded.mood_after_intensity,
  mood_after_at=excluded.mood_after_at,
  improvement=excluded.improvement,
  journal_entry=excluded.journal_entry;
`
	var (
		afterEmotion   sql.NullString
		afterIntensity sql.NullInt64
		afterAt        sql.NullString
		improvement    sql.NullInt64
		journal        sql.NullString
	)
	if session.MoodAfter != nil {
		afterEmotion = sql.NullString{String: string(session.MoodAfter.Emotion), Valid: true}
		afterIntensity = sql.NullInt64{Int64: int64(session.MoodAfter.Intensity), Valid: true}
		afterAt = sql.NullString{String: formatTime(session.MoodAfter.Timestamp), Valid: true}
	}
	if session.Improvement != nil {
		improvement = sql.NullInt64{Int64: int64(*session.Improvement), Valid: true}
	}
	if session.JournalEntry != nil {
		journal = sql.NullString{String: *session.JournalEntry, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, stmt,
		string(session.ID),
		formatTime(session.Timestamp),
		string(session.Technique),
		string(session.Status),
		boolToInt(session.Completed),
		string(session.MoodBefore.Emotion),
		session.MoodBefore.Intensity,
		formatTime(session.MoodBefore.Timestamp),
		afterEmotion,
		afterIntensity,
		afterAt,
		improvement,
		journal,
	)
	if err != nil {
		return fmt.Errorf("sqlite SaveSession: %w", err)
	}
	return nil
}

const sessionColumns = `id, timestamp, technique, status, completed,
  mood_before_emotion, mood_before_intensity, mood_before_at,
  mood_after_emotion, mood_after_intensity, mood_after_at, improvement, journal_entry`

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, string(id))
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite GetSession: %w", err)
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id domain.SessionID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("sqlite DeleteSession: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetAllSessions returns every session ordered by timestamp. Rows that
// cannot be decoded are logged and left out.
func (s *Store) GetAllSessions(ctx context.Context) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite GetAllSessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if errors.Is(err, errBadRow) {
			observability.LoggerFromContext(ctx).Warn("skipping unreadable session row", "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sqlite GetAllSessions scan: %w", err)
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite GetAllSessions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var (
		id, ts, technique, status string
		completed                 int
		beforeEmotion, beforeAt   string
		beforeIntensity           int
		afterEmotion, afterAt     sql.NullString
		afterIntensity            sql.NullInt64
		improvement               sql.NullInt64
		journal                   sql.NullString
	)
	if err := row.Scan(&id, &ts, &technique, &status, &completed,
		&beforeEmotion, &beforeIntensity, &beforeAt,
		&afterEmotion, &afterIntensity, &afterAt, &improvement, &journal); err != nil {
		return nil, err
	}

	timestamp, err := parseTime(ts)
	if err != nil {
		return nil, fmt.Errorf("session %s timestamp: %w", id, err)
	}
	beforeTime, err := parseTime(beforeAt)
	if err != nil {
		return nil, fmt.Errorf("session %s mood_before_at: %w", id, err)
	}

	sess := &domain.Session{
		ID:        domain.SessionID(id),
		Timestamp: timestamp,
		Technique: domain.Technique(technique),
		Status:    domain.SessionStatus(status),
		Completed: completed != 0,
		MoodBefore: domain.MoodSample{
			Emotion:   domain.Emotion(beforeEmotion),
			Intensity: beforeIntensity,
			Timestamp: beforeTime,
		},
	}
	if afterEmotion.Valid && afterIntensity.Valid {
		afterTime, err := parseTime(afterAt.String)
		if err != nil {
			return nil, fmt.Errorf("session %s mood_after_at: %w", id, err)
		}
		sess.MoodAfter = &domain.MoodSample{
			Emotion:   domain.Emotion(afterEmotion.String),
			Intensity: int(afterIntensity.Int64),
			Timestamp: afterTime,
		}
	}
	if improvement.Valid {
		v := int(improvement.Int64)
		sess.Improvement = &v
	}
	if journal.Valid {
		v := journal.String
		sess.JournalEntry = &v
	}
	return sess, nil
}

// ─────────────────────────────────────────
// JournalStore implementation
// ─────────────────────────────────────────

// PutEntry upserts by date, so the same effective day never gets two rows.
func (s *Store) PutEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.Date == "" {
		return fmt.Errorf("sqlite: journal entry date is required")
	}

	const stmt = `
INSERT INTO journal_entries (date, emotion, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  emotion=excluded.emotion,
  updated_at=excluded.updated_at;
`
	var emotion sql.NullString
	if entry.Emotion != nil {
		emotion = sql.NullString{String: string(*entry.Emotion), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, stmt, entry.Date, emotion, formatTime(entry.CreatedAt), formatTime(entry.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite PutEntry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, date string) (*domain.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT date, emotion, created_at, updated_at FROM journal_entries WHERE date = ?`, date)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", date, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite GetEntry: %w", err)
	}
	return e, nil
}

func (s *Store) GetAllEntries(ctx context.Context) ([]*domain.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, emotion, created_at, updated_at FROM journal_entries ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite GetAllEntries: %w", err)
	}
	defer rows.Close()

	var out []*domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if errors.Is(err, errBadRow) {
			observability.LoggerFromContext(ctx).Warn("skipping unreadable journal row", "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sqlite GetAllEntries scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite GetAllEntries: %w", err)
	}
	return out, nil
}

func scanEntry(row scanner) (*domain.JournalEntry, error) {
	var (
		date, createdAt, updatedAt string
		emotion                    sql.NullString
	)
	if err := row.Scan(&date, &emotion, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e := &domain.JournalEntry{Date: date}
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("journal entry %s created_at: %w", date, err)
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("journal entry %s updated_at: %w", date, err)
	}
	if emotion.Valid {
		v := domain.Emotion(emotion.String)
		e.Emotion = &v
	}
	return e, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parse time %q: %v", errBadRow, s, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
