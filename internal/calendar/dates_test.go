package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeInclusive(t *testing.T) {
	r := DateRange{Start: date(2023, 12, 30), End: date(2024, 1, 2)}
	require.Equal(t, 4, r.Len())
	require.Equal(t, []string{
		"2023-12-30",
		"2023-12-31",
		"2024-01-01",
		"2024-01-02",
	}, slices.Collect(r.All()))
}

func TestDateRangeSingleDay(t *testing.T) {
	r := DateRange{
		Start: time.Date(2022, 3, 1, 23, 59, 0, 0, time.UTC),
		End:   time.Date(2022, 3, 1, 0, 1, 0, 0, time.UTC),
	}
	require.Equal(t, 1, r.Len())
	require.Equal(t, []string{"2022-03-01"}, slices.Collect(r.All()))
}

func TestDateRangeEmpty(t *testing.T) {
	r := DateRange{Start: date(2022, 3, 2), End: date(2022, 3, 1)}
	require.Equal(t, 0, r.Len())
	require.Empty(t, slices.Collect(r.All()))
}

func TestDateRangeLengthMatchesSeries(t *testing.T) {
	testCases := []DateRange{
		{Start: date(2024, 1, 1), End: date(2024, 12, 31)},
		{Start: date(2023, 1, 1), End: date(2023, 12, 31)},
		{Start: date(2021, 1, 1), End: date(2023, 6, 15)},
		{Start: date(2019, 2, 27), End: date(2020, 3, 2)},
		// DST transition in a non-UTC location must not skip or repeat a day
		{
			Start: time.Date(2023, 3, 10, 0, 0, 0, 0, time.FixedZone("PST", -8*3600)),
			End:   time.Date(2023, 3, 14, 0, 0, 0, 0, time.FixedZone("PDT", -7*3600)),
		},
	}

	for _, r := range testCases {
		dates := slices.Collect(r.All())
		require.Len(t, dates, r.Len())
		require.Equal(t, r.Start.Format(DateLayout), dates[0])
		require.Equal(t, r.End.Format(DateLayout), dates[len(dates)-1])

		seen := map[string]bool{}
		for i, d := range dates {
			require.False(t, seen[d], "duplicate %s", d)
			seen[d] = true
			if i == 0 {
				continue
			}
			previous, err := time.Parse(DateLayout, dates[i-1])
			require.NoError(t, err)
			require.Equal(t, previous.AddDate(0, 0, 1).Format(DateLayout), d)
		}
	}

	require.Equal(t, 366, DateRange{Start: date(2024, 1, 1), End: date(2024, 12, 31)}.Len())
	require.Equal(t, 896, DateRange{Start: date(2021, 1, 1), End: date(2023, 6, 15)}.Len())
}

func TestDateRangeIsRestartable(t *testing.T) {
	r := DateRange{Start: date(2023, 1, 1), End: date(2023, 1, 10)}
	first := slices.Collect(r.All())
	second := slices.Collect(r.All())
	require.Equal(t, first, second)

	var partial []string
	for d := range r.All() {
		partial = append(partial, d)
		if len(partial) == 3 {
			break
		}
	}
	require.Equal(t, first[:3], partial)
}
