package domain

import (
	"fmt"
	"time"
)

const (
	MinIntensity = 1
	MaxIntensity = 10
)

// MoodSample is a single reading of how the user feels. It is never mutated
// after creation.
type MoodSample struct {
	Emotion   Emotion   `json:"emotion"`
	Intensity int       `json:"intensity"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the emotion key and the 1..10 intensity range.
func (m *MoodSample) Validate() error {
	if m == nil {
		return ErrNoMood
	}
	if !m.Emotion.Valid() {
		return fmt.Errorf("%w: unknown emotion %q", ErrInvalidMood, m.Emotion)
	}
	if m.Intensity < MinIntensity || m.Intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity %d out of range %d..%d", ErrInvalidMood, m.Intensity, MinIntensity, MaxIntensity)
	}
	return nil
}
