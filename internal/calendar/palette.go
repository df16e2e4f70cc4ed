package calendar

import "strings"

type Shade struct {
	Color     string
	Intensity int
}

// Palette is the single color <-> intensity table both sources render through.
var Palette = [...]Shade{
	{Color: "#196127", Intensity: 4},
	{Color: "#239a3b", Intensity: 3},
	{Color: "#7bc96f", Intensity: 2},
	{Color: "#c6e48b", Intensity: 1},
	{Color: "#ebedf0", Intensity: 0},
}

// MaxIntensity is the highest bucket.
const MaxIntensity = 4

// IntensityForColor looks up a fill color case-insensitively, with or without the leading '#'.
// Colors outside the palette map to 0.
func IntensityForColor(color string) int {
	color = strings.ToLower(strings.TrimSpace(color))
	if color != "" && !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	for _, shade := range Palette {
		if shade.Color == color {
			return shade.Intensity
		}
	}
	return 0
}

// ColorForIntensity is the inverse of IntensityForColor, it returns "" for intensities outside
// the palette.
func ColorForIntensity(intensity int) string {
	for _, shade := range Palette {
		if shade.Intensity == intensity {
			return shade.Color
		}
	}
	return ""
}

// Thresholds are the lower bounds of each intensity bucket for raw counts.
var Thresholds = [...]int{0, 1, 10, 20, 30}

// IntensityForCount buckets a count: 0 -> 0, 1-9 -> 1, 10-19 -> 2, 20-29 -> 3, 30+ -> 4.
func IntensityForCount(count int) int {
	for i, threshold := range Thresholds {
		if count < threshold {
			// negative counts are below the first bucket
			return max(i-1, 0)
		}
	}
	return len(Thresholds) - 1
}

// NewDayRecord classifies a raw count into a record colored from the shared palette.
func NewDayRecord(date string, count int) DayRecord {
	intensity := IntensityForCount(count)
	return DayRecord{
		Date:      date,
		Count:     count,
		Intensity: intensity,
		Color:     ColorForIntensity(intensity),
	}
}
