package service

import "time"

// Clock returns the current time. Services take one so tests can pin the day.
type Clock func() time.Time

// SystemClock is the wall clock
func SystemClock() time.Time {
	return time.Now()
}

// startOfDay truncates t to local midnight in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
