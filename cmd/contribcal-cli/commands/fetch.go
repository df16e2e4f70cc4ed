package commands

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"contribcal/internal/calendar"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/config"
	"contribcal/internal/contributions"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	fetchSource string
	fetchFormat string
	fetchJSON   bool
)

func init() {
	fetchCmd.Flags().StringVar(&fetchSource, "source", "api", "Where to read activity from, \"scrape\" or \"api\".")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "", "Set to \"nested\" for a year -> month -> day tree.")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Print the full response as json instead of a table.")
	rootCmd.AddCommand(fetchCmd)
}

func yearRows(years contributions.Years) []calendar.YearSummary {
	if years.ByLabel == nil {
		return years.List
	}
	labels := slices.Sorted(maps.Keys(years.ByLabel))
	slices.Reverse(labels)
	rows := make([]calendar.YearSummary, len(labels))
	for i, label := range labels {
		rows[i] = years.ByLabel[label]
	}
	return rows
}

func dayCount(c calendar.Contributions) int {
	if c.Nested() {
		return c.Tree.Len()
	}
	return len(c.Days)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <username>",
	Short: "Fetch and print the contribution calendar of a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := contributions.ParseSource(fetchSource)
		if err != nil {
			return err
		}
		format := calendar.ParseFormat(fetchFormat)

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		svc, err := cfg.NewService(telemetry.SlogAPI{})
		if err != nil {
			return err
		}

		res, err := svc.FetchContributions(cmd.Context(), args[0], source, format)
		if err != nil {
			return err
		}

		if fetchJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(res)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Year", "Total", "Start", "End"})
		total := 0
		for _, year := range yearRows(res.Years) {
			t.AppendRow(table.Row{year.Year, year.Total, year.Range.Start, year.Range.End})
			total += year.Total
		}
		t.AppendFooter(table.Row{"", total, "", fmt.Sprintf("%d days", dayCount(res.Contributions))})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
