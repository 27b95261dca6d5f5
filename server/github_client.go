package server

import (
	"context"
	"net/http"

	"github.com/die-net/lrucache"
	"github.com/google/go-github/v39/github"
	"github.com/m4ns0ur/httpcache"
	"github.com/okd-project/triagebot/metrics"
	"golang.org/x/oauth2"
)

const githubCacheSizeBytes = 1024 * 1024 * 64

type IssuesService interface {
	AddLabelsToIssue(ctx context.Context, owner string, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	Create(ctx context.Context, owner string, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	CreateComment(ctx context.Context, owner string, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	Edit(ctx context.Context, owner string, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	Get(ctx context.Context, owner string, repo string, number int) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner string, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	ListLabelsByIssue(ctx context.Context, owner string, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	RemoveLabelForIssue(ctx context.Context, owner string, repo string, number int, label string) (*github.Response, error)
}

// GithubClient wraps the github.Client with the interfaces the bot uses, so
// tests can swap the services for mocks.
type GithubClient struct {
	client *github.Client

	Issues IssuesService
}

// NewGithubClient builds a client whose transport caches GitHub responses in
// an in-memory LRU and, when a metrics provider is given, reports request
// durations and cache hits/misses.
func NewGithubClient(accessToken string, metricsProvider metrics.Provider) *GithubClient {
	cache := lrucache.New(githubCacheSizeBytes, 0)
	cachedTransport := httpcache.NewTransport(cache)

	var base http.RoundTripper = cachedTransport
	if metricsProvider != nil {
		base = metrics.NewTransport(cachedTransport, metricsProvider)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	tc := &http.Client{
		Transport: &oauth2.Transport{
			Base:   base,
			Source: oauth2.ReuseTokenSource(nil, ts),
		},
	}
	client := github.NewClient(tc)

	return &GithubClient{
		client: client,
		Issues: client.Issues,
	}
}

func (c *GithubClient) RateLimits(ctx context.Context) (*github.RateLimits, *github.Response, error) {
	return c.client.RateLimits(ctx)
}
