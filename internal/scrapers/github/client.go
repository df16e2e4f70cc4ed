// Package github scrapes the contribution calendar off of github profile pages.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"contribcal/internal/calendar"
	"contribcal/internal/components/assert"
	"contribcal/internal/components/batch"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/scrapers"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch_years = "client.fetch-years"
	report_client_fetch_year  = "client.fetch-year"
	report_client_year_count  = "client.year-count"
)

const DefaultBaseUrl = "https://github.com"

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl   string
	UserAgent string
	// Timeout of 0 means requests never time out.
	Timeout time.Duration
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	tel     telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel, "tel")

	tel = telemetry.NewScopedAPI("github_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	if opts.UserAgent != "" {
		httpClient.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	telemetry.InstrumentResty(httpClient, "contribcal/scrapers/github", tel)

	return Client{
		baseUrl: baseUrl,
		http:    httpClient,
		tel:     tel,
	}, nil
}

// FetchYears reads the years advertised on a user's profile page.
func (c Client) FetchYears(ctx context.Context, username string) ([]YearLink, error) {
	endpoint := "/" + url.PathEscape(username)
	c.tel.ReportDebug(report_client_fetch_years, endpoint)

	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		err = scrapers.Unavailable(fmt.Sprintf("get %s", endpoint), err)
		c.tel.ReportBroken(report_client_fetch_years, err, username)
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		err := &scrapers.NotFoundError{Username: username, Source: "github"}
		c.tel.ReportWarning(report_client_fetch_years, err)
		return nil, err
	}
	if res.IsError() {
		err := scrapers.UnexpectedStatus(fmt.Sprintf("get %s", endpoint), res.StatusCode())
		c.tel.ReportBroken(report_client_fetch_years, err, username)
		return nil, err
	}

	links, err := parseYearLinks(c.baseUrl, res.Body())
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_years, err, username)
		return nil, err
	}
	return links, nil
}

// FetchYear fetches and parses the calendar page of a single year.
func (c Client) FetchYear(ctx context.Context, link YearLink, format calendar.Format) (Year, error) {
	endpoint := link.Url.String()
	c.tel.ReportDebug(report_client_fetch_year, link.Label, endpoint)

	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		err = scrapers.Unavailable(fmt.Sprintf("get %s", endpoint), err)
		c.tel.ReportBroken(report_client_fetch_year, err, link.Label)
		return Year{}, err
	}
	if res.IsError() {
		err := scrapers.UnexpectedStatus(fmt.Sprintf("get %s", endpoint), res.StatusCode())
		c.tel.ReportBroken(report_client_fetch_year, err, link.Label)
		return Year{}, err
	}

	year, err := ParseYear(res.Body(), link.Label, format)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_year, err, endpoint)
		return Year{}, err
	}
	return year, nil
}

// FetchAllYears fetches every year advertised on the profile page concurrently. The result
// follows the order of the profile page; if any year fails, the whole call fails.
func (c Client) FetchAllYears(ctx context.Context, username string, format calendar.Format) ([]Year, error) {
	links, err := c.FetchYears(ctx, username)
	if err != nil {
		return nil, err
	}
	c.tel.ReportCount(report_client_year_count, int64(len(links)))

	years, err := batch.FetchAll(ctx, len(links), func(ctx context.Context, i int) (Year, error) {
		return c.FetchYear(ctx, links[i], format)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch years of %s: %w", username, err)
	}
	return years, nil
}
