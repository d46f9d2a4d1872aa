package analytics

import (
	"time"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

// MinPatternSessions is the sample size below which no pattern is reported.
const MinPatternSessions = 3

// Patterns are recurring associations mined from session history. The zero
// value means "not enough data".
type Patterns struct {
	EmotionsByDay      map[int]domain.Emotion `json:"emotionsByDay,omitempty"`
	PreferredTimeOfDay calendar.TimeOfDay     `json:"preferredTimeOfDay,omitempty"`
	MostUsedTechnique  domain.Technique       `json:"mostUsedTechnique,omitempty"`
}

func (p Patterns) Empty() bool {
	return len(p.EmotionsByDay) == 0 && p.PreferredTimeOfDay == "" && p.MostUsedTechnique == ""
}

// MinePatterns finds the most frequent emotion per weekday, the most frequent
// time of day and the most used technique. Timestamps are read in loc.
func MinePatterns(sessions []*domain.Session, loc *time.Location) Patterns {
	if loc == nil {
		loc = time.Local
	}

	valid := make([]*domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if s != nil && !s.Timestamp.IsZero() {
			valid = append(valid, s)
		}
	}
	if len(valid) < MinPatternSessions {
		return Patterns{}
	}

	emotionsPerDay := map[int][]domain.Emotion{}
	var (
		times      []calendar.TimeOfDay
		techniques []domain.Technique
	)
	for _, s := range valid {
		at := s.Timestamp.In(loc)
		if s.MoodBefore.Emotion != "" {
			day := calendar.DayOfWeek(at)
			emotionsPerDay[day] = append(emotionsPerDay[day], s.MoodBefore.Emotion)
		}
		times = append(times, calendar.TimeOfDayBucket(at))
		if s.Technique != "" {
			techniques = append(techniques, s.Technique)
		}
	}

	p := Patterns{EmotionsByDay: make(map[int]domain.Emotion, len(emotionsPerDay))}
	for day, emotions := range emotionsPerDay {
		if e, ok := mostCommon(emotions); ok {
			p.EmotionsByDay[day] = e
		}
	}
	if tod, ok := mostCommon(times); ok {
		p.PreferredTimeOfDay = tod
	}
	if tech, ok := mostCommon(techniques); ok {
		p.MostUsedTechnique = tech
	}
	return p
}
