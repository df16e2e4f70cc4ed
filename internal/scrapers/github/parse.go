package github

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"contribcal/internal/calendar"
	"contribcal/internal/components/htmlutil"
	"contribcal/internal/scrapers"

	"github.com/PuerkitoBio/goquery"
)

// YearLink is a year advertised by the profile page and the page holding its calendar.
type YearLink struct {
	Label string
	Url   *url.URL
}

// Year is the calendar scraped from a single year's page.
type Year struct {
	Summary       calendar.YearSummary
	Contributions calendar.Contributions
}

func parseYearLinks(base *url.URL, body []byte) ([]YearLink, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, scrapers.Malformed("profile page", "parse html: %v", err)
	}

	anchors := htmlutil.GetAnchors(base, doc.Find(".js-year-link"))
	links := make([]YearLink, len(anchors))
	for i, a := range anchors {
		links[i] = YearLink{Label: a.Name, Url: a.Href}
	}
	return links, nil
}

var totalRegex = regexp.MustCompile(`^([0-9,]+)\s`)

func parseTotal(doc *goquery.Document) int {
	header := doc.Find(".js-yearly-contributions h2")
	if header.Length() == 0 {
		return 0
	}
	text := htmlutil.CleanText(header.Nodes[0])
	groups := totalRegex.FindStringSubmatch(text)
	if len(groups) < 2 {
		return 0
	}
	total, err := strconv.Atoi(strings.ReplaceAll(groups[1], ",", ""))
	if err != nil {
		return 0
	}
	return total
}

func parseDayCell(cell *goquery.Selection) (calendar.DayRecord, error) {
	date, ok := cell.Attr("data-date")
	if !ok || date == "" {
		return calendar.DayRecord{}, fmt.Errorf("missing data-date")
	}
	countAttr, ok := cell.Attr("data-count")
	if !ok {
		return calendar.DayRecord{}, fmt.Errorf("missing data-count on %s", date)
	}
	count, err := strconv.Atoi(strings.TrimSpace(countAttr))
	if err != nil || count < 0 {
		return calendar.DayRecord{}, fmt.Errorf("invalid data-count %q on %s", countAttr, date)
	}
	color := cell.AttrOr("fill", "")

	return calendar.DayRecord{
		Date:      date,
		Count:     count,
		Color:     color,
		Intensity: calendar.IntensityForColor(color),
	}, nil
}

// ParseYear reads one year's calendar page. Days are kept in document order, days missing from
// the page are not filled in.
func ParseYear(body []byte, label string, format calendar.Format) (Year, error) {
	what := fmt.Sprintf("year %s", label)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Year{}, scrapers.Malformed(what, "parse html: %v", err)
	}

	cells := doc.Find("rect.day")
	days := make([]calendar.DayRecord, 0, cells.Length())
	for i := range cells.Nodes {
		record, err := parseDayCell(cells.Eq(i))
		if err != nil {
			return Year{}, scrapers.Malformed(what, "day-cell %d: %v", i, err)
		}
		days = append(days, record)
	}

	summary := calendar.YearSummary{
		Year:  label,
		Total: parseTotal(doc),
	}
	if len(days) > 0 {
		summary.Range = calendar.Range{
			Start: days[0].Date,
			End:   days[len(days)-1].Date,
		}
	}

	contributions, err := calendar.NewContributions(days, format)
	if err != nil {
		return Year{}, scrapers.Malformed(what, "%v", err)
	}

	return Year{
		Summary:       summary,
		Contributions: contributions,
	}, nil
}
