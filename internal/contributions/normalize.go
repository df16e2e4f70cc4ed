package contributions

import (
	"fmt"
	"strings"
	"time"

	"contribcal/internal/calendar"
	"contribcal/internal/scrapers/gitlab"
)

// eventIndex counts events by the keys a calendar asks for: a year ("2023") or a day ("2023-06-15").
//
// An event matches a key when its timestamp contains the key. A timestamp that starts with a date
// and has no run of four digits after it can only match through its prefix, so it is counted up
// front. Anything else, including fractional seconds of four or more digits, is scanned on every
// lookup.
type eventIndex struct {
	byPrefix  map[string]int
	irregular []string
}

func hasDigitRun(s string, n int) bool {
	run := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

func isDatePrefixed(timestamp string) bool {
	if len(timestamp) < len(calendar.DateLayout) {
		return false
	}
	_, err := time.Parse(calendar.DateLayout, timestamp[:len(calendar.DateLayout)])
	if err != nil {
		return false
	}
	return !hasDigitRun(timestamp[len(calendar.DateLayout):], 4)
}

func indexEvents(events []gitlab.Event) eventIndex {
	index := eventIndex{byPrefix: map[string]int{}}
	for _, e := range events {
		if !isDatePrefixed(e.CreatedAt) {
			index.irregular = append(index.irregular, e.CreatedAt)
			continue
		}
		index.byPrefix[e.CreatedAt[:4]]++
		index.byPrefix[e.CreatedAt[:len(calendar.DateLayout)]]++
	}
	return index
}

func (x eventIndex) count(key string) int {
	n := x.byPrefix[key]
	for _, timestamp := range x.irregular {
		if strings.Contains(timestamp, key) {
			n++
		}
	}
	return n
}

func yearSummaries(created, now time.Time, index eventIndex) []calendar.YearSummary {
	first := created.In(now.Location()).Year()
	last := now.Year()
	if last < first {
		return []calendar.YearSummary{}
	}

	summaries := make([]calendar.YearSummary, 0, last-first+1)
	for year := last; year >= first; year-- {
		label := fmt.Sprintf("%04d", year)
		summaries = append(summaries, calendar.YearSummary{
			Year:  label,
			Total: index.count(label),
			Range: calendar.Range{
				Start: label + "-01-01",
				End:   label + "-12-31",
			},
		})
	}
	return summaries
}

// YearSummaries lists every year from the account's creation year to the current year,
// most recent first, with the number of events in each.
func YearSummaries(created, now time.Time, events []gitlab.Event) []calendar.YearSummary {
	return yearSummaries(created, now, indexEvents(events))
}

func dailySeries(created, now time.Time, index eventIndex) []calendar.DayRecord {
	start := time.Date(created.In(now.Location()).Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	series := calendar.DateRange{Start: start, End: now}

	days := make([]calendar.DayRecord, 0, series.Len())
	for date := range series.All() {
		days = append(days, calendar.NewDayRecord(date, index.count(date)))
	}
	return days
}

// DailySeries has one record for every day from January 1st of the creation year through
// today, including days without events.
func DailySeries(created, now time.Time, events []gitlab.Event) []calendar.DayRecord {
	return dailySeries(created, now, indexEvents(events))
}
