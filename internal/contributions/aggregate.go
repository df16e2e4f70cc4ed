package contributions

import (
	"encoding/json"
	"slices"
	"strings"

	"contribcal/internal/calendar"
	"contribcal/internal/scrapers/github"
)

// Years is either a list of summaries or the same summaries keyed by year label.
type Years struct {
	List    []calendar.YearSummary
	ByLabel map[string]calendar.YearSummary
}

func (y Years) Len() int {
	if y.ByLabel != nil {
		return len(y.ByLabel)
	}
	return len(y.List)
}

func (y Years) MarshalJSON() ([]byte, error) {
	if y.ByLabel != nil {
		return json.Marshal(y.ByLabel)
	}
	if y.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(y.List)
}

// AggregateYears keys summaries by year label for FormatNested and keeps them in the given
// order otherwise.
func AggregateYears(summaries []calendar.YearSummary, format calendar.Format) Years {
	if format != calendar.FormatNested {
		return Years{List: summaries}
	}
	byLabel := make(map[string]calendar.YearSummary, len(summaries))
	for _, s := range summaries {
		byLabel[s.Year] = s
	}
	return Years{ByLabel: byLabel}
}

// AggregateScraped combines the per-year calendars of the scrape path.
//
// Nested calendars are merged into one tree, a day that appears under more than one year keeps
// the record of the earlier entry in years and is counted in collisions. Flat calendars are
// concatenated and ordered by date, most recent first, with ties in input order.
func AggregateScraped(years []github.Year, format calendar.Format) (contributions calendar.Contributions, collisions int) {
	if format == calendar.FormatNested {
		merged := calendar.Tree{}
		for _, y := range years {
			collisions += merged.Merge(y.Contributions.Tree)
		}
		return calendar.Contributions{Tree: merged}, collisions
	}

	var days []calendar.DayRecord
	for _, y := range years {
		days = append(days, y.Contributions.Days...)
	}
	slices.SortStableFunc(days, func(a, b calendar.DayRecord) int {
		return strings.Compare(b.Date, a.Date)
	})
	return calendar.Contributions{Days: days}, 0
}
