package view

import (
	"time"

	"github.com/groupfit/backend/domain"
)

// Window is an inclusive range of calendar days.
type Window struct {
	From time.Time
	To   time.Time
}

// PeriodWindow computes the date window for a period selection. Both
// boundaries are derived from the same immutable reference instant; weeks
// run Monday through Sunday.
func PeriodWindow(now time.Time, period domain.Period) Window {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case domain.PeriodDay:
		return Window{From: day, To: day}
	case domain.PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{From: first, To: first.AddDate(0, 1, -1)}
	case domain.PeriodYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Window{From: first, To: first.AddDate(1, 0, -1)}
	default: // week
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week
		}
		monday := day.AddDate(0, 0, 1-weekday)
		return Window{From: monday, To: monday.AddDate(0, 0, 6)}
	}
}

// Contains reports whether the instant falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To.AddDate(0, 0, 1))
}
