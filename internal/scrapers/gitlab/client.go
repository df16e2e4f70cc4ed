// Package gitlab reads a user's public activity from the gitlab v4 REST api.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"contribcal/internal/components/assert"
	"contribcal/internal/components/batch"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/scrapers"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_find_user   = "client.find-user"
	report_client_get_user    = "client.get-user"
	report_client_events_page = "client.events-page"
	report_client_page_count  = "client.page-count"
)

const (
	DefaultBaseUrl = "https://gitlab.com/api/v4"

	eventsPerPage    = 100
	totalPagesHeader = "X-Total-Pages"
)

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl   string
	UserAgent string
	// Timeout of 0 means requests never time out.
	Timeout time.Duration
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel, "tel")

	tel = telemetry.NewScopedAPI("gitlab_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	_, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetHeader("accept", "application/json")
	if opts.UserAgent != "" {
		httpClient.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	telemetry.InstrumentResty(httpClient, "contribcal/scrapers/gitlab", tel)

	return Client{http: httpClient, tel: tel}, nil
}

func (c Client) get(ctx context.Context, reportId, endpoint string, query map[string]string, out any) (*resty.Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(endpoint)
	if err != nil {
		err = scrapers.Unavailable(fmt.Sprintf("get %s", endpoint), err)
		c.tel.ReportBroken(reportId, err, query)
		return nil, err
	}
	if res.IsError() {
		err := scrapers.UnexpectedStatus(fmt.Sprintf("get %s", endpoint), res.StatusCode())
		c.tel.ReportBroken(reportId, err, query)
		return nil, err
	}

	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		err = scrapers.Malformed(fmt.Sprintf("get %s", endpoint), "unmarshal json: %v", err)
		c.tel.ReportBroken(reportId, err, query)
		return nil, err
	}
	return res, nil
}

// FindUser looks an account up by username, a *scrapers.NotFoundError is returned if there is none.
func (c Client) FindUser(ctx context.Context, username string) (User, error) {
	c.tel.ReportDebug(report_client_find_user, username)

	var users []User
	_, err := c.get(ctx, report_client_find_user, "/users", map[string]string{
		"username": username,
	}, &users)
	if err != nil {
		return User{}, err
	}
	if len(users) == 0 {
		err := &scrapers.NotFoundError{Username: username, Source: "gitlab"}
		c.tel.ReportWarning(report_client_find_user, err)
		return User{}, err
	}
	return users[0], nil
}

// GetUser fetches the full account, which carries the creation timestamp.
func (c Client) GetUser(ctx context.Context, id int64) (User, error) {
	c.tel.ReportDebug(report_client_get_user, id)

	var user User
	_, err := c.get(ctx, report_client_get_user, fmt.Sprintf("/users/%d", id), nil, &user)
	if err != nil {
		return User{}, err
	}
	if user.CreatedAt == "" {
		err := scrapers.Malformed(fmt.Sprintf("get /users/%d", id), "missing created_at")
		c.tel.ReportBroken(report_client_get_user, err)
		return User{}, err
	}
	return user, nil
}

// EventsPage fetches one page of a user's events and the total number of pages. A missing or
// unreadable page count is treated as a single page.
func (c Client) EventsPage(ctx context.Context, username string, page int) ([]Event, int, error) {
	endpoint := fmt.Sprintf("/users/%s/events", url.PathEscape(username))
	c.tel.ReportDebug(report_client_events_page, endpoint, page)

	var events []Event
	res, err := c.get(ctx, report_client_events_page, endpoint, map[string]string{
		"per_page": strconv.Itoa(eventsPerPage),
		"page":     strconv.Itoa(page),
	}, &events)
	if err != nil {
		return nil, 0, err
	}

	totalPages, err := strconv.Atoi(res.Header().Get(totalPagesHeader))
	if err != nil || totalPages < 1 {
		totalPages = 1
	}
	return events, totalPages, nil
}

// AllEvents fetches the first page of events, then every remaining page concurrently.
// Events of page 1 come first, followed by the other pages in page order.
func (c Client) AllEvents(ctx context.Context, username string) ([]Event, error) {
	events, totalPages, err := c.EventsPage(ctx, username, 1)
	if err != nil {
		return nil, err
	}
	c.tel.ReportCount(report_client_page_count, int64(totalPages))
	if totalPages <= 1 {
		return events, nil
	}

	pages, err := batch.FetchAll(ctx, totalPages-1, func(ctx context.Context, i int) ([]Event, error) {
		pageEvents, _, err := c.EventsPage(ctx, username, i+2)
		return pageEvents, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch events of %s: %w", username, err)
	}
	for _, p := range pages {
		events = append(events, p...)
	}
	return events, nil
}

// Activity resolves the username and fetches the account and all of its events.
// If the username does not resolve, no further requests are made.
func (c Client) Activity(ctx context.Context, username string) (Activity, error) {
	found, err := c.FindUser(ctx, username)
	if err != nil {
		return Activity{}, err
	}
	user, err := c.GetUser(ctx, found.ID)
	if err != nil {
		return Activity{}, err
	}
	events, err := c.AllEvents(ctx, username)
	if err != nil {
		return Activity{}, err
	}
	return Activity{User: user, Events: events}, nil
}
