package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-breath/internal/calendar"
)

func TestEffectiveDateBoundary(t *testing.T) {
	loc := time.FixedZone("test", -3*3600)

	before := time.Date(2025, 3, 10, 3, 59, 0, 0, loc)
	after := time.Date(2025, 3, 10, 4, 1, 0, 0, loc)

	assert.Equal(t, "2025-03-09", calendar.EffectiveDate(before))
	assert.Equal(t, "2025-03-10", calendar.EffectiveDate(after))
	assert.NotEqual(t, calendar.EffectiveDate(before), calendar.EffectiveDate(after))
}

func TestEffectiveDateCrossesMonthAndYear(t *testing.T) {
	newYear := time.Date(2026, 1, 1, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-31", calendar.EffectiveDate(newYear))
	assert.Equal(t, "2025-12", calendar.MonthPrefix(newYear))
}

func TestEffectiveDateUsesLocalTime(t *testing.T) {
	// 05:00 UTC is 02:00 in UTC-3, which still belongs to the previous day.
	utc := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("test", -3*3600))

	assert.Equal(t, "2025-03-10", calendar.EffectiveDate(utc))
	assert.Equal(t, "2025-03-09", calendar.EffectiveDate(local))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, calendar.DaysBetween(a, b), "calendar days, not elapsed time")

	n, err := calendar.DaysBetweenDates("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = calendar.DaysBetweenDates("2025-03-05", "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, -4, n)

	_, err = calendar.DaysBetweenDates("nope", "2025-03-01")
	assert.Error(t, err)
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	a := time.Date(2025, 3, 8, 12, 0, 0, 0, ny)
	b := time.Date(2025, 3, 10, 12, 0, 0, 0, ny)
	assert.Equal(t, 2, calendar.DaysBetween(a, b))
}

func TestAddDays(t *testing.T) {
	d, err := calendar.AddDays("2025-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", d)
}

func TestTimeOfDayBucket(t *testing.T) {
	cases := map[int]calendar.TimeOfDay{
		0:  calendar.LateNight,
		5:  calendar.LateNight,
		6:  calendar.Morning,
		11: calendar.Morning,
		12: calendar.Afternoon,
		16: calendar.Afternoon,
		17: calendar.Evening,
		20: calendar.Evening,
		21: calendar.Night,
		23: calendar.Night,
	}
	for hour, want := range cases {
		at := time.Date(2025, 3, 10, hour, 30, 0, 0, time.UTC)
		assert.Equal(t, want, calendar.TimeOfDayBucket(at), "hour %d", hour)
	}
}

func TestDayOfWeek(t *testing.T) {
	sunday := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, calendar.DayOfWeek(sunday))
	assert.Equal(t, "Sunday", calendar.DayName(0))
	assert.Equal(t, "Saturday", calendar.DayName(6))
	assert.Empty(t, calendar.DayName(7))
}

func TestDatesInMonth(t *testing.T) {
	dates := calendar.DatesInMonth(2024, time.February)
	require.Len(t, dates, 29)
	assert.Equal(t, "2024-02-01", dates[0])
	assert.Equal(t, "2024-02-29", dates[28])
}

func TestIsEffectiveToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	assert.True(t, calendar.IsEffectiveToday("2025-03-09", now))
	assert.False(t, calendar.IsEffectiveToday("2025-03-10", now))
}
