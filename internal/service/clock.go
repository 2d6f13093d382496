package service

import "time"

// Clock supplies the as-of instant for expiry and leave-overlay decisions.
// Injectable so tests pin the current date.
type Clock func() time.Time

// dateOf truncates an instant to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
