package domain

import "time"

// JournalEntry is the free-writing variant's record. There is at most one
// entry per effective date; writing again on the same day overwrites it.
type JournalEntry struct {
	Date      string    `json:"date"`
	Emotion   *Emotion  `json:"emotion"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
