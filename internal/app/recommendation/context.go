package recommendation

import (
	"time"

	"github.com/PabloGalante/farum-breath/internal/analytics"
	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

// RecentWindowDays bounds the sessions quoted back to the model.
const RecentWindowDays = 7

// Context is everything the engine knows when it decides. It is rebuilt on
// every call and never stored.
type Context struct {
	Mood           domain.MoodSample
	Profile        domain.EmotionProfile
	TimeOfDay      calendar.TimeOfDay
	DayOfWeek      int
	RecentSessions []analytics.RecentSession
	Effectiveness  map[domain.Technique]*analytics.EffectivenessStats
	Patterns       analytics.Patterns
	TotalSessions  int
	CurrentStreak  int
}

// BuildContext derives a Context from a validated mood, a history snapshot
// and the current instant. Timestamps are read in now's location. Time of day
// and weekday come from the mood's timestamp when it has one, else from now.
func BuildContext(mood domain.MoodSample, history []*domain.Session, now time.Time) Context {
	profile, _ := mood.Emotion.Profile()
	loc := now.Location()
	at := now
	if !mood.Timestamp.IsZero() {
		at = mood.Timestamp.In(loc)
	}

	sessions := make([]*domain.Session, 0, len(history))
	for _, s := range history {
		if s != nil {
			sessions = append(sessions, s)
		}
	}

	return Context{
		Mood:           mood,
		Profile:        profile,
		TimeOfDay:      calendar.TimeOfDayBucket(at),
		DayOfWeek:      calendar.DayOfWeek(at),
		RecentSessions: analytics.RecentSessions(sessions, RecentWindowDays, now),
		Effectiveness:  analytics.Effectiveness(sessions),
		Patterns:       analytics.MinePatterns(sessions, loc),
		TotalSessions:  len(sessions),
		CurrentStreak:  analytics.Summarize(analytics.SessionDates(sessions, loc), now).CurrentStreak,
	}
}
