package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"contribcal/internal/calendar"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/scrapers"

	"github.com/stretchr/testify/require"
)

type fakeGithub struct {
	yearRequests atomic.Int32
	failYear     string
}

func (f *fakeGithub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /octocat", func(w http.ResponseWriter, r *http.Request) {
		w.Write(profilePage)
	})
	mux.HandleFunc("GET /users/octocat/contributions", func(w http.ResponseWriter, r *http.Request) {
		f.yearRequests.Add(1)
		year := r.URL.Query().Get("year")
		if year == f.failYear {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		switch year {
		case "2023":
			w.Write(year2023Page)
		case "2022":
			w.Write(year2022Page)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return mux
}

func newTestClient(t testing.TB, fake *fakeGithub) (Client, *telemetry.RecorderAPI) {
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	recorder := telemetry.NewRecorderAPI()
	client, err := NewClient(ClientOptions{BaseUrl: server.URL}, recorder)
	require.NoError(t, err)
	return client, recorder
}

func TestFetchYears(t *testing.T) {
	client, _ := newTestClient(t, &fakeGithub{})

	links, err := client.FetchYears(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.Equal(t, "2023", links[0].Label)
	require.Equal(t, "/users/octocat/contributions", links[0].Url.Path)
	require.Equal(t, "year=2022", links[1].Url.RawQuery)
}

func TestFetchYearsNotFound(t *testing.T) {
	fake := &fakeGithub{}
	client, recorder := newTestClient(t, fake)

	_, err := client.FetchAllYears(context.Background(), "ghost", calendar.FormatFlat)
	var notFound *scrapers.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ghost", notFound.Username)
	require.Equal(t, int32(0), fake.yearRequests.Load())
	require.True(t, recorder.Has("warning", "client.fetch-years"))
}

func TestFetchAllYears(t *testing.T) {
	fake := &fakeGithub{}
	client, recorder := newTestClient(t, fake)

	years, err := client.FetchAllYears(context.Background(), "octocat", calendar.FormatFlat)
	require.NoError(t, err)
	require.Len(t, years, 2)
	require.Equal(t, int32(2), fake.yearRequests.Load())

	// profile page order, not completion order
	require.Equal(t, "2023", years[0].Summary.Year)
	require.Equal(t, 1234, years[0].Summary.Total)
	require.Equal(t, "2022", years[1].Summary.Year)
	require.Len(t, years[1].Contributions.Days, 3)

	counts := recorder.Reports("count")
	require.Len(t, counts, 1)
	require.Equal(t, []any{int64(2)}, counts[0].Params)
}

func TestFetchAllYearsFailsWholeBatch(t *testing.T) {
	fake := &fakeGithub{failYear: "2022"}
	client, recorder := newTestClient(t, fake)

	years, err := client.FetchAllYears(context.Background(), "octocat", calendar.FormatFlat)
	require.Nil(t, years)
	require.ErrorIs(t, err, scrapers.ErrUpstreamUnavailable)
	require.True(t, recorder.Has("broken", "client.fetch-year"))
}

func TestFetchYearsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL}, telemetry.NewRecorderAPI())
	require.NoError(t, err)

	_, err = client.FetchYears(context.Background(), "octocat")
	require.ErrorIs(t, err, scrapers.ErrUpstreamUnavailable)
}
