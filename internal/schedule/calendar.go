// Package schedule implements the working-day calendar arithmetic and the
// precedence resolution pass that turn a job type's workflow templates into
// concrete activity dates. Everything here is pure: no clock, no I/O, no
// package-level state.
package schedule

import "time"

// DateOnly truncates t to its calendar day at midnight UTC. All scheduling
// arithmetic operates on date-only values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddWorkingDays advances from by exactly n working days (n >= 0), skipping
// Saturdays and Sundays. n == 0 returns from unchanged, even on a weekend.
func AddWorkingDays(from time.Time, n int) time.Time {
	d := DateOnly(from)
	for i := 0; i < n; i++ {
		d = d.AddDate(0, 0, 1)
		for isWeekend(d) {
			d = d.AddDate(0, 0, 1)
		}
	}
	return d
}

// SubtractWorkingDays counts n working days backward from from (n >= 0).
func SubtractWorkingDays(from time.Time, n int) time.Time {
	d := DateOnly(from)
	for i := 0; i < n; i++ {
		d = d.AddDate(0, 0, -1)
		for isWeekend(d) {
			d = d.AddDate(0, 0, -1)
		}
	}
	return d
}

// NextWorkingDay returns the first weekday strictly after from.
func NextWorkingDay(from time.Time) time.Time {
	d := DateOnly(from).AddDate(0, 0, 1)
	for isWeekend(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// EnsureWorkingDay clamps d forward onto a weekday. Weekdays pass through
// unchanged.
func EnsureWorkingDay(d time.Time) time.Time {
	c := DateOnly(d)
	for isWeekend(c) {
		c = c.AddDate(0, 0, 1)
	}
	return c
}
