package config

import (
	"contribcal/internal/components/chrono"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/contributions"
	"contribcal/internal/scrapers/github"
	"contribcal/internal/scrapers/gitlab"
)

// NewService builds both acquisition clients and the pipeline on top of them.
func (c Config) NewService(tel telemetry.API) (contributions.Service, error) {
	githubClient, err := github.NewClient(github.ClientOptions{
		BaseUrl:   c.GithubBaseUrl,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout(),
	}, tel)
	if err != nil {
		return contributions.Service{}, err
	}
	gitlabClient, err := gitlab.NewClient(gitlab.ClientOptions{
		BaseUrl:   c.GitlabApiUrl,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout(),
	}, tel)
	if err != nil {
		return contributions.Service{}, err
	}
	clock, err := chrono.NewStandardImpl(c.Timezone)
	if err != nil {
		return contributions.Service{}, err
	}
	return contributions.NewService(githubClient, gitlabClient, clock, tel), nil
}
