package calendar

import (
	"iter"
	"time"
)

// DateRange is an inclusive range of calendar days. Only the year, month and day of Start and End
// are used, in their own locations.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Len is the number of days in the range, 0 if End is before Start.
func (r DateRange) Len() int {
	start := day(r.Start)
	end := day(r.End)
	if end.Before(start) {
		return 0
	}
	// both are UTC midnights so every day is exactly 24h
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// All yields every date in the range as YYYY-MM-DD, oldest first. The sequence can be ranged
// over any number of times.
func (r DateRange) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		end := day(r.End)
		for current := day(r.Start); !current.After(end); current = current.AddDate(0, 0, 1) {
			if !yield(current.Format(DateLayout)) {
				return
			}
		}
	}
}
