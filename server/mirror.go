package server

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/model"
	"github.com/pkg/errors"
	gitlab "github.com/xanzy/go-gitlab"
)

// upstreamSource lists the issues created upstream since a timestamp.
// Whatever the upstream tracker is, proposed-change artifacts (pull/merge
// requests) are never part of the result.
type upstreamSource interface {
	ListRecentIssues(ctx context.Context, since time.Time) ([]*model.Issue, error)
}

// githubUpstream reads issues from an upstream GitHub repository. GitHub's
// issue listing includes pull requests, so those are filtered out here.
type githubUpstream struct {
	issues IssuesService
	owner  string
	repo   string
}

func (u *githubUpstream) ListRecentIssues(ctx context.Context, since time.Time) ([]*model.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       since,
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	ghIssues, _, err := u.issues.ListByRepo(ctx, u.owner, u.repo, opts)
	if err != nil {
		return nil, errors.Wrap(err, "could not list upstream issues")
	}

	issues := make([]*model.Issue, 0, len(ghIssues))
	for _, ghIssue := range ghIssues {
		if ghIssue.PullRequestLinks != nil {
			continue
		}
		if ghIssue.GetCreatedAt().Before(since) {
			// Since filters on update time; keep only issues created in the
			// window.
			continue
		}
		issues = append(issues, issueFromGithub(u.owner, u.repo, ghIssue))
	}
	sortIssuesByCreationDesc(issues)
	return issues, nil
}

type gitlabIssuesService interface {
	ListProjectIssues(pid interface{}, opt *gitlab.ListProjectIssuesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Issue, *gitlab.Response, error)
}

// gitlabUpstream reads issues from an upstream GitLab project. Merge
// requests are a separate artifact type in GitLab and never show up in the
// issue listing.
type gitlabUpstream struct {
	issues    gitlabIssuesService
	projectID int
}

func newGitlabUpstream(baseURL, token string, projectID int) (*gitlabUpstream, error) {
	opts := []gitlab.ClientOptionFunc{}
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}
	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create gitlab client")
	}
	return &gitlabUpstream{issues: client.Issues, projectID: projectID}, nil
}

func (u *gitlabUpstream) ListRecentIssues(ctx context.Context, since time.Time) ([]*model.Issue, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		CreatedAfter: &since,
		OrderBy:      gitlab.String("created_at"),
		Sort:         gitlab.String("desc"),
		ListOptions:  gitlab.ListOptions{PerPage: 100},
	}

	glIssues, _, err := u.issues.ListProjectIssues(u.projectID, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "could not list upstream issues")
	}

	issues := make([]*model.Issue, 0, len(glIssues))
	for _, glIssue := range glIssues {
		issue := &model.Issue{
			Number: glIssue.IID,
			Title:  glIssue.Title,
			Body:   glIssue.Description,
			URL:    glIssue.WebURL,
			State:  glIssue.State,
			Labels: glIssue.Labels,
		}
		if glIssue.CreatedAt != nil {
			issue.CreatedAt = *glIssue.CreatedAt
		}
		issues = append(issues, issue)
	}
	sortIssuesByCreationDesc(issues)
	return issues, nil
}

func sortIssuesByCreationDesc(issues []*model.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
}

// MirrorUpstreamIssues is the cron task that copies upstream issues created
// in the trailing window into the fork. The ledger makes the sweep
// idempotent: each upstream issue is mirrored at most once, and the ledger
// entry is written right after the fork issue is created. Sweeps are
// serialized; creations are paced to respect the API rate ceiling.
func (s *Server) MirrorUpstreamIssues() {
	if !s.Config.Mirror.Enabled {
		return
	}

	start := time.Now()
	if err := s.mirrorUpstreamIssues(context.Background()); err != nil {
		mlog.Error("mirror sweep failed", mlog.Err(err))
		s.Metrics.IncreaseCronTaskErrors("mirror_issues")
	}
	s.Metrics.ObserveCronTaskDuration("mirror_issues", float64(time.Since(start))/float64(time.Second))
}

func (s *Server) mirrorUpstreamIssues(ctx context.Context) error {
	s.mirrorLock.Lock()
	defer s.mirrorLock.Unlock()

	if s.shouldStopForRateLimit(ctx) {
		mlog.Info("mirror sweep aborted, github rate limit reserve reached")
		return nil
	}

	since := time.Now().Add(-time.Duration(s.Config.Mirror.WindowHours) * time.Hour)
	upstream, err := s.upstream.ListRecentIssues(ctx, since)
	if err != nil {
		return err
	}
	if len(upstream) == 0 {
		mlog.Info("no new upstream issues to mirror")
		return nil
	}

	ledger := s.Store.Mirror()
	mirrored := 0
	for _, issue := range upstream {
		seen, err := ledger.Contains(issue.Number)
		if err != nil {
			return errors.Wrap(err, "could not read mirror ledger")
		}
		if seen {
			continue
		}

		if err := s.mirrorLimiter.Wait(ctx); err != nil {
			return err
		}

		if err := s.createMirroredIssue(ctx, issue); err != nil {
			mlog.Error("could not mirror upstream issue", mlog.Int("upstream_issue", issue.Number), mlog.Err(err))
			s.Metrics.IncreaseCronTaskErrors("mirror_issues")
			continue
		}
		if err := ledger.Add(issue.Number); err != nil {
			// The fork issue exists but the ledger write failed: surface it
			// loudly, the next sweep would otherwise mirror it again.
			return errors.Wrapf(err, "mirrored issue %d but could not update ledger", issue.Number)
		}
		mirrored++
	}

	mlog.Info("mirror sweep finished",
		mlog.Int("upstream_window", len(upstream)),
		mlog.Int("mirrored", mirrored))
	return nil
}

func (s *Server) createMirroredIssue(ctx context.Context, issue *model.Issue) error {
	body := fmt.Sprintf("%s\n\n---\n*Mirrored from %s*", issue.Body, issue.URL)
	request := &github.IssueRequest{
		Title: github.String(issue.Title),
		Body:  github.String(body),
	}

	created, _, err := s.GithubClient.Issues.Create(ctx, s.Config.Org, s.Config.Repo, request)
	if err != nil {
		return errors.Wrap(err, "could not create mirrored issue")
	}

	mlog.Info("mirrored upstream issue",
		mlog.Int("upstream_issue", issue.Number),
		mlog.Int("fork_issue", created.GetNumber()))
	return nil
}
