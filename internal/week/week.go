// Package week resolves weekday names to dates within an anchor date's week.
// Weeks follow ISO 8601: Monday through Sunday.
package week

import (
	"fmt"
	"strings"
	"time"
)

// offsets maps lowercase weekday names to the conventional sunday=0 …
// saturday=6 numbering used by placeholder tokens.
var offsets = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekday resolves a weekday name (case-insensitive) to a time.Weekday.
func Weekday(name string) (time.Weekday, error) {
	wd, ok := offsets[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("week: unknown weekday %q", name)
	}
	return wd, nil
}

// Start returns the Monday of anchor's ISO week, at midnight in anchor's
// location.
func Start(anchor time.Time) time.Time {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	// Monday=0 … Sunday=6 distance back to the start of the week.
	back := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -back)
}

// DayIn returns the date with the given weekday inside anchor's week,
// moving within the week rather than strictly forward. Sunday resolves to
// the trailing Sunday of the Monday-started week.
func DayIn(anchor time.Time, wd time.Weekday) time.Time {
	start := Start(anchor)
	// Offset of wd from Monday within the Monday..Sunday span.
	fwd := (int(wd) + 6) % 7
	return start.AddDate(0, 0, fwd)
}

// Next returns the date one week after anchor.
func Next(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, 7)
}
