package domain

import "time"

type SessionID string

type Timestamp = time.Time

// Valence is the positive/negative charge of an emotion.
type Valence string

const (
	ValenceNegative Valence = "negative"
	ValencePositive Valence = "positive"
)

// Arousal is the physiological activation level of an emotion.
// Values are ordered, so comparisons between levels are meaningful.
type Arousal int

const (
	ArousalVeryLow Arousal = iota + 1
	ArousalLow
	ArousalLowModerate
	ArousalModerate
	ArousalModerateHigh
	ArousalHigh
	ArousalVeryHigh
)

func (a Arousal) String() string {
	switch a {
	case ArousalVeryLow:
		return "very-low"
	case ArousalLow:
		return "low"
	case ArousalLowModerate:
		return "low-moderate"
	case ArousalModerate:
		return "moderate"
	case ArousalModerateHigh:
		return "moderate-high"
	case ArousalHigh:
		return "high"
	case ArousalVeryHigh:
		return "very-high"
	default:
		return "unknown"
	}
}

// IsHigh covers moderate-high and above.
func (a Arousal) IsHigh() bool {
	return a >= ArousalModerateHigh
}

// IsModerate covers low-moderate through moderate-high.
func (a Arousal) IsModerate() bool {
	return a >= ArousalLowModerate && a <= ArousalModerateHigh
}

// IsLow covers low and very-low.
func (a Arousal) IsLow() bool {
	return a >= ArousalVeryLow && a <= ArousalLow
}

func (a Arousal) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
