package commands

import (
	"testing"

	"contribcal/internal/calendar"
	"contribcal/internal/contributions"

	"github.com/stretchr/testify/require"
)

func TestYearRowsNested(t *testing.T) {
	summaries := []calendar.YearSummary{{Year: "2021"}, {Year: "2023"}, {Year: "2022"}}

	rows := yearRows(contributions.AggregateYears(summaries, calendar.FormatNested))
	require.Equal(t, []calendar.YearSummary{{Year: "2023"}, {Year: "2022"}, {Year: "2021"}}, rows)

	rows = yearRows(contributions.AggregateYears(summaries, calendar.FormatFlat))
	require.Equal(t, summaries, rows)
}
