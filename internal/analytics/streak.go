// Package analytics derives summaries from a user's practice and journal
// history. Every function is pure: it reads the slice it is given and returns
// fresh values.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

// Summary is the streak view over a list of dated records.
type Summary struct {
	CurrentStreak   int `json:"currentStreak"`
	LongestStreak   int `json:"longestStreak"`
	TotalCount      int `json:"totalCount"`
	CountThisPeriod int `json:"countThisPeriod"`
}

// SessionDates projects sessions to their effective dates in loc.
func SessionDates(sessions []*domain.Session, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || s.Timestamp.IsZero() {
			continue
		}
		out = append(out, calendar.EffectiveDate(s.Timestamp.In(loc)))
	}
	return out
}

// EntryDates returns the dates of journal entries. Entries are already keyed
// by effective date.
func EntryDates(entries []*domain.JournalEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		out = append(out, e.Date)
	}
	return out
}

// Summarize computes streaks and counts over effective date strings. The
// current period is the effective month of now. Malformed dates are ignored.
func Summarize(dates []string, now time.Time) Summary {
	valid := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, err := calendar.ParseDate(d, time.UTC); err != nil {
			continue
		}
		valid = append(valid, d)
	}
	if len(valid) == 0 {
		return Summary{}
	}

	unique := uniqueDates(valid)
	month := calendar.MonthPrefix(now)

	sum := Summary{
		CurrentStreak: CurrentStreak(unique, calendar.EffectiveDate(now)),
		LongestStreak: LongestStreak(unique),
		TotalCount:    len(valid),
	}
	for _, d := range valid {
		if strings.HasPrefix(d, month+"-") {
			sum.CountThisPeriod++
		}
	}
	return sum
}

// CurrentStreak walks back one day at a time from today while each date is
// present in dates.
func CurrentStreak(dates []string, today string) int {
	present := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		present[d] = struct{}{}
	}

	streak := 0
	day := today
	for {
		if _, ok := present[day]; !ok {
			return streak
		}
		streak++
		prev, err := calendar.AddDays(day, -1)
		if err != nil {
			return streak
		}
		day = prev
	}
}

// LongestStreak returns the longest run of consecutive days in dates.
func LongestStreak(dates []string) int {
	unique := uniqueDates(dates)
	if len(unique) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(unique); i++ {
		diff, err := calendar.DaysBetweenDates(unique[i-1], unique[i])
		if err == nil && diff == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// uniqueDates dedups and sorts ascending. YYYY-MM-DD sorts lexically.
func uniqueDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
