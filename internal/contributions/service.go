// Package contributions turns either acquisition path into a contribution calendar response.
package contributions

import (
	"context"
	"fmt"

	"contribcal/internal/calendar"
	"contribcal/internal/components/assert"
	"contribcal/internal/components/chrono"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/scrapers"
	"contribcal/internal/scrapers/github"
	"contribcal/internal/scrapers/gitlab"
)

const (
	report_service_fetch_contributions = "service.fetch-contributions"
	report_service_merge_years         = "service.merge-years"
	report_service_day_count           = "service.day-count"
)

type Source int

const (
	// SourceScrape reads the html calendar of a github profile.
	SourceScrape Source = iota
	// SourceAPI reads events from the gitlab api.
	SourceAPI
)

func ParseSource(raw string) (Source, error) {
	switch raw {
	case "scrape":
		return SourceScrape, nil
	case "api":
		return SourceAPI, nil
	}
	return 0, fmt.Errorf("unknown source %q, expected \"scrape\" or \"api\"", raw)
}

func (s Source) String() string {
	if s == SourceScrape {
		return "scrape"
	}
	return "api"
}

// Response is the calendar of a single user. Years follows the requested format on both paths,
// Contributions only on the scrape path.
type Response struct {
	Years         Years                  `json:"years"`
	Contributions calendar.Contributions `json:"contributions"`
}

// GithubAPI is the scrape path.
//
// note: fault injection point
type GithubAPI interface {
	FetchAllYears(ctx context.Context, username string, format calendar.Format) ([]github.Year, error)
}

// GitlabAPI is the api path.
//
// note: fault injection point
type GitlabAPI interface {
	Activity(ctx context.Context, username string) (gitlab.Activity, error)
}

type Service struct {
	github GithubAPI
	gitlab GitlabAPI
	time   chrono.API
	tel    telemetry.API
}

func NewService(githubAPI GithubAPI, gitlabAPI GitlabAPI, clock chrono.API, tel telemetry.API) Service {
	assert.NotNil(githubAPI, "githubAPI")
	assert.NotNil(gitlabAPI, "gitlabAPI")
	assert.NotNil(clock, "clock")
	assert.NotNil(tel, "tel")

	return Service{
		github: githubAPI,
		gitlab: gitlabAPI,
		time:   clock,
		tel:    telemetry.NewScopedAPI("contributions", tel),
	}
}

// FetchContributions runs the acquisition path of source for username and shapes the result.
//
// A username that does not resolve is returned as a *scrapers.NotFoundError, use scrapers.Kind
// to tell it apart from upstream and parsing failures.
func (s Service) FetchContributions(ctx context.Context, username string, source Source, format calendar.Format) (Response, error) {
	s.tel.ReportDebug(report_service_fetch_contributions, username, source.String(), format.String())

	var (
		res Response
		err error
	)
	switch source {
	case SourceScrape:
		res, err = s.fromScrape(ctx, username, format)
	case SourceAPI:
		res, err = s.fromAPI(ctx, username, format)
	default:
		err = fmt.Errorf("unknown source %d", source)
	}
	if err != nil {
		return Response{}, fmt.Errorf("fetch contributions of %s from %s: %w", username, source, err)
	}
	return res, nil
}

func (s Service) fromScrape(ctx context.Context, username string, format calendar.Format) (Response, error) {
	years, err := s.github.FetchAllYears(ctx, username, format)
	if err != nil {
		return Response{}, err
	}

	summaries := make([]calendar.YearSummary, len(years))
	for i, y := range years {
		summaries[i] = y.Summary
	}

	contributions, collisions := AggregateScraped(years, format)
	if collisions > 0 {
		s.tel.ReportWarning(
			report_service_merge_years,
			fmt.Errorf("%d days appeared under more than one year", collisions),
			username,
		)
	}

	return Response{
		Years:         AggregateYears(summaries, format),
		Contributions: contributions,
	}, nil
}

func (s Service) fromAPI(ctx context.Context, username string, format calendar.Format) (Response, error) {
	activity, err := s.gitlab.Activity(ctx, username)
	if err != nil {
		return Response{}, err
	}

	created, err := activity.User.Created()
	if err != nil {
		err = scrapers.Malformed("account", "created_at %q: %v", activity.User.CreatedAt, err)
		s.tel.ReportBroken(report_service_fetch_contributions, err, username)
		return Response{}, err
	}

	now := s.time.Now().In(s.time.Location())
	index := indexEvents(activity.Events)
	days := dailySeries(created, now, index)
	s.tel.ReportCount(report_service_day_count, int64(len(days)))

	// the series stays flat whatever the format, only the years follow it
	return Response{
		Years:         AggregateYears(yearSummaries(created, now, index), format),
		Contributions: calendar.Contributions{Days: days},
	}, nil
}
