// Package calendar defines what a "day" means for streaks and journaling.
// A day starts at 04:00 local time, so late-night activity belongs to the
// previous calendar date.
package calendar

import (
	"fmt"
	"time"
)

// DayBoundaryHour is the local hour at which a new effective day begins.
const DayBoundaryHour = 4

const dateLayout = "2006-01-02"

// TimeOfDay buckets an instant by its local hour.
type TimeOfDay string

const (
	LateNight TimeOfDay = "late-night"
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// EffectiveDay returns local midnight of the effective day t belongs to.
func EffectiveDay(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Hour() < DayBoundaryHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// EffectiveDate returns the YYYY-MM-DD string of the effective day of t.
func EffectiveDate(t time.Time) string {
	return DateString(EffectiveDay(t))
}

// DateString formats the calendar date of t, ignoring the day boundary.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of calendar days from a to b, using the
// calendar date of each in its own location. DST shifts do not affect it.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// DaysBetweenDates is DaysBetween over YYYY-MM-DD strings.
func DaysBetweenDates(a, b string) (int, error) {
	ta, err := ParseDate(a, time.UTC)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b, time.UTC)
	if err != nil {
		return 0, err
	}
	return DaysBetween(ta, tb), nil
}

// AddDays shifts a YYYY-MM-DD string by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date, time.UTC)
	if err != nil {
		return "", err
	}
	return DateString(t.AddDate(0, 0, n)), nil
}

// IsEffectiveToday reports whether date is the effective date of now.
func IsEffectiveToday(date string, now time.Time) bool {
	return date == EffectiveDate(now)
}

// TimeOfDayBucket buckets t by its local hour.
func TimeOfDayBucket(t time.Time) TimeOfDay {
	h := t.Hour()
	switch {
	case h < 6:
		return LateNight
	case h < 12:
		return Morning
	case h < 17:
		return Afternoon
	case h < 21:
		return Evening
	default:
		return Night
	}
}

// DayOfWeek returns 0 (Sunday) through 6 (Saturday).
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// DayName returns the English name for a DayOfWeek index.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return time.Weekday(day).String()
}

// DatesInMonth lists every date of the month as YYYY-MM-DD strings.
func DatesInMonth(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var out []string
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		out = append(out, DateString(d))
	}
	return out
}

// MonthPrefix returns the YYYY-MM prefix shared by every date of t's
// effective month.
func MonthPrefix(t time.Time) string {
	return EffectiveDay(t).Format("2006-01")
}
