// Package calendar holds the normalized contribution calendar shared by both acquisition paths:
// the records, the palette and count thresholds that bucket activity, the daily date series
// and the nested year/month/day encoding.
package calendar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const DateLayout = "2006-01-02"

type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// YearSummary describes one calendar year of a user's history.
type YearSummary struct {
	Year  string `json:"year"`
	Total int    `json:"total"`
	Range Range  `json:"range"`
}

// DayRecord is the activity of a single calendar day.
type DayRecord struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"`
	Color     string `json:"color"`
}

type Format int

const (
	FormatFlat Format = iota
	FormatNested
)

// ParseFormat maps "nested" to FormatNested and anything else to FormatFlat.
func ParseFormat(raw string) Format {
	if raw == "nested" {
		return FormatNested
	}
	return FormatFlat
}

func (f Format) String() string {
	if f == FormatNested {
		return "nested"
	}
	return "flat"
}

// ParseDate splits an ISO date into its numeric year, month and day.
func ParseDate(date string) (year, month, day int, err error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q", date)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in %q: %w", date, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in %q", date)
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("invalid day in %q", date)
	}
	return year, month, day, nil
}

// Contributions is either a flat chronological list of days or a nested Tree.
// Exactly one of the two encodings is used, as chosen by its Format.
type Contributions struct {
	Days []DayRecord
	Tree Tree
}

// NewContributions shapes days into the encoding selected by format.
func NewContributions(days []DayRecord, format Format) (Contributions, error) {
	if format != FormatNested {
		return Contributions{Days: days}, nil
	}
	tree, err := Nest(days)
	if err != nil {
		return Contributions{}, err
	}
	return Contributions{Tree: tree}, nil
}

func (c Contributions) Nested() bool {
	return c.Tree != nil
}

func (c Contributions) MarshalJSON() ([]byte, error) {
	if c.Tree != nil {
		return json.Marshal(c.Tree)
	}
	if c.Days == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Days)
}
