package domain

// SessionStatus tracks the single transition a session goes through.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusAbandoned  SessionStatus = "abandoned"
)

// Session is one breathing practice. It is created when the practice starts
// and concluded exactly once, either completed or abandoned.
type Session struct {
	ID           SessionID     `json:"id"`
	Timestamp    Timestamp     `json:"timestamp"`
	MoodBefore   MoodSample    `json:"mood_before"`
	Technique    Technique     `json:"breathing_technique"`
	Status       SessionStatus `json:"status"`
	Completed    bool          `json:"completed"`
	MoodAfter    *MoodSample   `json:"mood_after"`
	Improvement  *int          `json:"improvement"`
	JournalEntry *string       `json:"journal_entry"`
}

// Concluded reports whether the session already left the in-progress state.
func (s *Session) Concluded() bool {
	return s.Status == StatusCompleted || s.Status == StatusAbandoned
}

// Conclude records the mood after the practice and the resulting improvement.
func (s *Session) Conclude(after MoodSample) error {
	if s.Concluded() {
		return ErrAlreadyConcluded
	}
	if err := after.Validate(); err != nil {
		return err
	}
	improvement := s.MoodBefore.Intensity - after.Intensity
	s.MoodAfter = &after
	s.Improvement = &improvement
	s.Completed = true
	s.Status = StatusCompleted
	return nil
}

// Abandon marks the session as quit; improvement stays undefined.
func (s *Session) Abandon() error {
	if s.Concluded() {
		return ErrAlreadyConcluded
	}
	s.Completed = false
	s.MoodAfter = nil
	s.Improvement = nil
	s.Status = StatusAbandoned
	return nil
}

// Qualifies reports whether the session can feed effectiveness statistics.
func (s *Session) Qualifies() bool {
	return s != nil && s.Completed && s.MoodAfter != nil
}
