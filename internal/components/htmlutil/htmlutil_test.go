package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<ul>
			<li><a class="js-year-link" href="/octocat?tab=overview&from=2023-01-01">
				2023
			</a></li>
			<li><a class="js-year-link" href="https://github.com/octocat?from=2022-01-01">2022</a></li>
			<li><a class="js-year-link">no href</a></li>
		</ul>
	`))
	require.NoError(t, err)

	base, err := url.Parse("https://github.com")
	require.NoError(t, err)

	anchors := GetAnchors(base, doc.Find(".js-year-link"))
	require.Len(t, anchors, 2)
	require.Equal(t, "2023", anchors[0].Name)
	require.Equal(t, "https://github.com/octocat?tab=overview&from=2023-01-01", anchors[0].Href.String())
	require.Equal(t, "2022", anchors[1].Name)
	require.Equal(t, "https://github.com/octocat?from=2022-01-01", anchors[1].Href.String())
}

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<h2>\n  1,234   contributions\n\tin 2019\n</h2>",
	))
	require.NoError(t, err)
	require.Equal(t, "1,234 contributions in 2019", CleanText(doc.Find("h2").Nodes[0]))
}
