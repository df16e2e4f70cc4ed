package contributions

import (
	"testing"
	"time"

	"contribcal/internal/calendar"
	"contribcal/internal/scrapers/github"
	"contribcal/internal/scrapers/gitlab"

	"github.com/stretchr/testify/require"
)

func events(timestamps ...string) []gitlab.Event {
	out := make([]gitlab.Event, len(timestamps))
	for i, ts := range timestamps {
		out[i] = gitlab.Event{ID: int64(i), CreatedAt: ts}
	}
	return out
}

func TestEventIndexCount(t *testing.T) {
	index := indexEvents(events(
		"2023-06-15T10:00:00.000Z",
		"2023-06-15T23:30:00.000Z",
		"2023-06-16T00:00:00.000Z",
		"2022-06-15T00:00:00.000Z",
		"pushed 2023-06-15",
		"",
	))

	testCases := []struct {
		key      string
		expected int
	}{
		{key: "2023", expected: 4},
		{key: "2022", expected: 1},
		{key: "2023-06-15", expected: 3},
		{key: "2023-06-16", expected: 1},
		{key: "2021", expected: 0},
		{key: "2023-06-17", expected: 0},
	}
	for _, test := range testCases {
		t.Run(test.key, func(t *testing.T) {
			require.Equal(t, test.expected, index.count(test.key))
		})
	}
}

func TestEventIndexLongFraction(t *testing.T) {
	index := indexEvents(events(
		"2021-03-04T05:06:07.202312Z",
		"2021-03-04T05:06:07.202Z",
	))

	require.Equal(t, 2, index.count("2021"))
	require.Equal(t, 2, index.count("2021-03-04"))
	// microseconds 202312 contain "2023"
	require.Equal(t, 1, index.count("2023"))
	require.Len(t, index.irregular, 1)
}

func TestYearSummariesBeforeCreation(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	summaries := YearSummaries(created, now, nil)
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestYearSummariesSingleYear(t *testing.T) {
	created := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC)

	summaries := YearSummaries(created, now, events("2023-03-01T01:00:00Z", "2023-03-02T01:00:00Z"))
	require.Equal(t, []calendar.YearSummary{{
		Year:  "2023",
		Total: 2,
		Range: calendar.Range{Start: "2023-01-01", End: "2023-12-31"},
	}}, summaries)
}

func TestDailySeriesTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// still December 31st in UTC, already January 1st in Tokyo
	created := time.Date(2022, 12, 31, 20, 0, 0, 0, time.UTC)
	now := time.Date(2023, 1, 2, 9, 0, 0, 0, tokyo)

	days := DailySeries(created, now, nil)
	require.Len(t, days, 2)
	require.Equal(t, "2023-01-01", days[0].Date)
	require.Equal(t, "2023-01-02", days[1].Date)
}

func TestAggregateScrapedFlatTies(t *testing.T) {
	years := []github.Year{
		{Contributions: calendar.Contributions{Days: []calendar.DayRecord{
			calendar.NewDayRecord("2023-01-01", 1),
			calendar.NewDayRecord("2023-01-02", 2),
		}}},
		{Contributions: calendar.Contributions{Days: []calendar.DayRecord{
			calendar.NewDayRecord("2023-01-01", 3),
		}}},
	}

	contributions, collisions := AggregateScraped(years, calendar.FormatFlat)
	require.Zero(t, collisions)
	require.Equal(t, []calendar.DayRecord{
		calendar.NewDayRecord("2023-01-02", 2),
		calendar.NewDayRecord("2023-01-01", 1),
		calendar.NewDayRecord("2023-01-01", 3),
	}, contributions.Days)
}

func TestYearsJSON(t *testing.T) {
	out, err := Years{}.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(out))

	years := AggregateYears([]calendar.YearSummary{{Year: "2023", Total: 5}}, calendar.FormatNested)
	require.Equal(t, 1, years.Len())
	out, err = years.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"2023": {"year": "2023", "total": 5, "range": {"start": "", "end": ""}}}`, string(out))
}
