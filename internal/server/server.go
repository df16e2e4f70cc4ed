// Package server exposes contribution calendars over http.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"contribcal/internal/calendar"
	"contribcal/internal/components/assert"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/contributions"
	"contribcal/internal/scrapers"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	report_server_fetch = "server.fetch"
	report_server_cache = "server.cache-hit"
	report_server_write = "server.write"
)

const (
	cacheControl = "s-maxage=3600, stale-while-revalidate"

	messageNotFound    = "profile not found"
	messageUnavailable = "could not check this profile, check back later"
	messageInternal    = "internal error"
)

// ContributionsAPI is the pipeline behind the route.
//
// note: fault injection point
type ContributionsAPI interface {
	FetchContributions(ctx context.Context, username string, source contributions.Source, format calendar.Format) (contributions.Response, error)
}

type Options struct {
	// CacheSize is the number of responses kept in memory.
	CacheSize int
	CacheTtl  time.Duration
	// DefaultSource is used when a request has no source parameter.
	DefaultSource contributions.Source
}

type Server struct {
	contributions ContributionsAPI
	cache         *expirable.LRU[string, []byte]
	defaultSource contributions.Source
	tel           telemetry.API
}

func NewServer(api ContributionsAPI, opts Options, tel telemetry.API) Server {
	assert.NotNil(api, "api")
	assert.NotNil(tel, "tel")

	if opts.CacheSize <= 0 {
		opts.CacheSize = 1024
	}

	return Server{
		contributions: api,
		cache:         expirable.NewLRU[string, []byte](opts.CacheSize, nil, opts.CacheTtl),
		defaultSource: opts.DefaultSource,
		tel:           telemetry.NewScopedAPI("server", tel),
	}
}

// Handler serves GET /api/v1/{username}?source=scrape|api&format=nested.
func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/{username}", s.handleContributions)
	return mux
}

func cacheKey(username string, source contributions.Source, format calendar.Format) string {
	return fmt.Sprintf("%s/%s/%s", source, format, username)
}

func (s Server) writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(body)
	if err != nil {
		s.tel.ReportWarning(report_server_write, err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s Server) writeError(w http.ResponseWriter, status int, message string) {
	body, err := json.Marshal(errorBody{Error: message})
	if err != nil {
		s.tel.ReportBroken(report_server_write, err, message)
		http.Error(w, message, status)
		return
	}
	s.writeJSON(w, status, body)
}

func (s Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	query := r.URL.Query()

	source := s.defaultSource
	if raw := query.Get("source"); raw != "" {
		parsed, err := contributions.ParseSource(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		source = parsed
	}
	format := calendar.ParseFormat(query.Get("format"))

	key := cacheKey(username, source, format)
	if body, hit := s.cache.Get(key); hit {
		s.tel.ReportDebug(report_server_cache, key)
		w.Header().Set("cache-control", cacheControl)
		s.writeJSON(w, http.StatusOK, body)
		return
	}

	res, err := s.contributions.FetchContributions(r.Context(), username, source, format)
	switch scrapers.Kind(err) {
	case scrapers.KindNone:
	case scrapers.KindNotFound:
		s.writeError(w, http.StatusNotFound, messageNotFound)
		return
	case scrapers.KindUpstreamUnavailable, scrapers.KindMalformedDocument:
		s.tel.ReportWarning(report_server_fetch, err)
		s.writeError(w, http.StatusBadGateway, messageUnavailable)
		return
	default:
		s.tel.ReportBroken(report_server_fetch, err)
		s.writeError(w, http.StatusInternalServerError, messageInternal)
		return
	}

	body, err := json.Marshal(res)
	if err != nil {
		s.tel.ReportBroken(report_server_fetch, err)
		s.writeError(w, http.StatusInternalServerError, messageInternal)
		return
	}
	s.cache.Add(key, body)

	w.Header().Set("cache-control", cacheControl)
	s.writeJSON(w, http.StatusOK, body)
}
