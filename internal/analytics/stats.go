package analytics

import (
	"time"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

// Stats is the calendar/completion screen summary.
type Stats struct {
	CurrentStreak     int             `json:"currentStreak"`
	LongestStreak     int             `json:"longestStreak"`
	TotalEntries      int             `json:"totalEntries"`
	EntriesThisMonth  int             `json:"entriesThisMonth"`
	MostCommonEmotion *domain.Emotion `json:"mostCommonEmotion"`
}

// EntryStats summarizes journal entries relative to now.
func EntryStats(entries []*domain.JournalEntry, now time.Time) Stats {
	sum := Summarize(EntryDates(entries), now)

	var emotions []domain.Emotion
	for _, e := range entries {
		if e != nil && e.Emotion != nil && *e.Emotion != "" {
			emotions = append(emotions, *e.Emotion)
		}
	}
	return newStats(sum, emotions)
}

// SessionStats summarizes practice sessions relative to now, using the mood
// before each session for the most common emotion.
func SessionStats(sessions []*domain.Session, now time.Time) Stats {
	sum := Summarize(SessionDates(sessions, now.Location()), now)

	var emotions []domain.Emotion
	for _, s := range sessions {
		if s != nil && s.MoodBefore.Emotion != "" {
			emotions = append(emotions, s.MoodBefore.Emotion)
		}
	}
	return newStats(sum, emotions)
}

func newStats(sum Summary, emotions []domain.Emotion) Stats {
	st := Stats{
		CurrentStreak:    sum.CurrentStreak,
		LongestStreak:    sum.LongestStreak,
		TotalEntries:     sum.TotalCount,
		EntriesThisMonth: sum.CountThisPeriod,
	}
	if e, ok := mostCommon(emotions); ok {
		st.MostCommonEmotion = &e
	}
	return st
}

// PeriodStats summarizes the sessions of the last days days.
type PeriodStats struct {
	TotalSessions          int               `json:"totalSessions"`
	CompletedSessions      int               `json:"completedSessions"`
	AvgImprovement         float64           `json:"avgImprovement"`
	MostCommonEmotion      *domain.Emotion   `json:"mostCommonEmotion"`
	MostEffectiveTechnique *domain.Technique `json:"mostEffectiveTechnique"`
}

// StatsForPeriod restricts sessions to the last days days before now.
func StatsForPeriod(sessions []*domain.Session, days int, now time.Time) PeriodStats {
	recent := SessionsSince(sessions, now.AddDate(0, 0, -days))

	ps := PeriodStats{
		TotalSessions:  len(recent),
		AvgImprovement: AverageImprovement(recent),
	}
	var emotions []domain.Emotion
	for _, s := range recent {
		if s.Completed {
			ps.CompletedSessions++
		}
		if s.MoodBefore.Emotion != "" {
			emotions = append(emotions, s.MoodBefore.Emotion)
		}
	}
	if e, ok := mostCommon(emotions); ok {
		ps.MostCommonEmotion = &e
	}
	if tech, ok := MostEffectiveTechnique(recent); ok {
		ps.MostEffectiveTechnique = &tech
	}
	return ps
}

// SessionsSince keeps sessions at or after cutoff.
func SessionsSince(sessions []*domain.Session, cutoff time.Time) []*domain.Session {
	var out []*domain.Session
	for _, s := range sessions {
		if s != nil && !s.Timestamp.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out
}

// RecentSession is the compact form of a session used in prompts.
type RecentSession struct {
	Date        string           `json:"date"`
	Emotion     domain.Emotion   `json:"emotion"`
	Technique   domain.Technique `json:"technique"`
	Improvement *int             `json:"improvement"`
	Completed   bool             `json:"completed"`
}

// RecentSessions lists sessions from the last days days, oldest first as given.
func RecentSessions(sessions []*domain.Session, days int, now time.Time) []RecentSession {
	var out []RecentSession
	for _, s := range SessionsSince(sessions, now.AddDate(0, 0, -days)) {
		rs := RecentSession{
			Date:      calendar.EffectiveDate(s.Timestamp.In(now.Location())),
			Emotion:   s.MoodBefore.Emotion,
			Technique: s.Technique,
			Completed: s.Completed,
		}
		if s.MoodAfter != nil {
			d := improvementOf(s)
			rs.Improvement = &d
		}
		out = append(out, rs)
	}
	return out
}
