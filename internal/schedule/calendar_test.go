package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddWorkingDays_SkipsWeekend(t *testing.T) {
	// Fri 2025-01-10 + 1 working day = Mon 2025-01-13
	got := AddWorkingDays(date(2025, 1, 10), 1)
	assert.Equal(t, date(2025, 1, 13), got)
}

func TestAddWorkingDays_ZeroReturnsInput(t *testing.T) {
	// Zero days never clamps, even from a Saturday.
	sat := date(2025, 1, 11)
	assert.Equal(t, sat, AddWorkingDays(sat, 0))
}

func TestAddWorkingDays_FullWeekSpan(t *testing.T) {
	// Mon 2025-01-06 + 4 working days = Fri 2025-01-10
	assert.Equal(t, date(2025, 1, 10), AddWorkingDays(date(2025, 1, 6), 4))
	// Mon + 5 crosses the weekend to the next Monday.
	assert.Equal(t, date(2025, 1, 13), AddWorkingDays(date(2025, 1, 6), 5))
}

func TestAddWorkingDays_CountsExactSteps(t *testing.T) {
	// Walking forward one working day at a time reaches the same date as
	// a single n-day jump, and every landing is a weekday.
	for _, start := range []time.Time{
		date(2025, 1, 6),  // Monday
		date(2025, 1, 8),  // Wednesday
		date(2025, 1, 11), // Saturday
	} {
		for n := 0; n <= 30; n++ {
			jumped := AddWorkingDays(start, n)
			stepped := start
			for i := 0; i < n; i++ {
				stepped = AddWorkingDays(stepped, 1)
			}
			assert.Equal(t, stepped, DateOnly(jumped), "start=%s n=%d", start.Format("2006-01-02"), n)
			if n > 0 {
				wd := jumped.Weekday()
				assert.NotEqual(t, time.Saturday, wd)
				assert.NotEqual(t, time.Sunday, wd)
			}
		}
	}
}

func TestSubtractWorkingDays_MirrorsAdd(t *testing.T) {
	for n := 0; n <= 20; n++ {
		from := date(2025, 3, 3) // Monday
		forward := AddWorkingDays(from, n)
		assert.Equal(t, from, SubtractWorkingDays(forward, n), "n=%d", n)
	}
}

func TestSubtractWorkingDays_BackOverWeekend(t *testing.T) {
	// Mon 2025-01-13 - 1 working day = Fri 2025-01-10
	assert.Equal(t, date(2025, 1, 10), SubtractWorkingDays(date(2025, 1, 13), 1))
}

func TestNextWorkingDay_AlwaysAdvances(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"from Monday", date(2025, 1, 6), date(2025, 1, 7)},
		{"from Friday", date(2025, 1, 10), date(2025, 1, 13)},
		{"from Saturday", date(2025, 1, 11), date(2025, 1, 13)},
		{"from Sunday", date(2025, 1, 12), date(2025, 1, 13)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextWorkingDay(tc.from)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.After(tc.from))
		})
	}
}

func TestEnsureWorkingDay(t *testing.T) {
	// Saturday clamps to the following Monday.
	assert.Equal(t, date(2025, 1, 13), EnsureWorkingDay(date(2025, 1, 11)))
	// Sunday clamps to the same Monday.
	assert.Equal(t, date(2025, 1, 13), EnsureWorkingDay(date(2025, 1, 12)))
	// A Tuesday passes through unchanged.
	assert.Equal(t, date(2025, 1, 7), EnsureWorkingDay(date(2025, 1, 7)))
}

func TestDateOnly_DropsTimeOfDay(t *testing.T) {
	in := time.Date(2025, 1, 7, 16, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, 1, 7), DateOnly(in))
}
