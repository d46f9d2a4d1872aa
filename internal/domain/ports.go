package domain

import "context"

// LLMClient is the remote text-generation capability. A single call either
// returns the model's text or an error; callers decide what a failure means.
type LLMClient interface {
	// Configured reports whether credentials are present.
	Configured() bool
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// SessionHistory is the read side the engine depends on.
type SessionHistory interface {
	GetAllSessions(ctx context.Context) ([]*Session, error)
}

// EntryHistory is the read side of the journaling variant.
type EntryHistory interface {
	GetAllEntries(ctx context.Context) ([]*JournalEntry, error)
}

// SessionStore defines session persistence.
type SessionStore interface {
	SessionHistory
	SaveSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID) (*Session, error)
	DeleteSession(ctx context.Context, id SessionID) error
}

// JournalStore defines journal persistence, keyed by effective date.
type JournalStore interface {
	EntryHistory
	PutEntry(ctx context.Context, entry *JournalEntry) error
	GetEntry(ctx context.Context, date string) (*JournalEntry, error)
}
