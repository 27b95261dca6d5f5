package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/model"
	"github.com/pkg/errors"
)

// GetIssueFromGithub fetches the current state of an issue. The body is
// normalized to an empty string when GitHub reports it as absent.
func (s *Server) GetIssueFromGithub(ctx context.Context, repoOwner, repoName string, number int) (*model.Issue, error) {
	ghIssue, _, err := s.GithubClient.Issues.Get(ctx, repoOwner, repoName, number)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get issue #%d from github", number)
	}

	return issueFromGithub(repoOwner, repoName, ghIssue), nil
}

func issueFromGithub(repoOwner, repoName string, ghIssue *github.Issue) *model.Issue {
	issue := &model.Issue{
		RepoOwner: repoOwner,
		RepoName:  repoName,
		Number:    ghIssue.GetNumber(),
		Title:     ghIssue.GetTitle(),
		Body:      ghIssue.GetBody(),
		URL:       ghIssue.GetHTMLURL(),
		Username:  ghIssue.GetUser().GetLogin(),
		State:     ghIssue.GetState(),
		CreatedAt: ghIssue.GetCreatedAt(),
		Labels:    make([]string, 0, len(ghIssue.Labels)),
	}
	for _, label := range ghIssue.Labels {
		issue.Labels = append(issue.Labels, label.GetName())
	}
	return issue
}

// addLabel attaches a label to an issue. The label already being present is
// success: the pipeline may run several times for the same issue (opened,
// then edited) and label application has to be safe to repeat.
func (s *Server) addLabel(ctx context.Context, repoOwner, repoName string, number int, label string) error {
	_, _, err := s.GithubClient.Issues.AddLabelsToIssue(ctx, repoOwner, repoName, number, []string{label})
	if err != nil {
		if isConflictError(err) {
			mlog.Debug("label already present", mlog.Int("issue", number), mlog.String("label", label))
			return nil
		}
		return errors.Wrapf(err, "could not add label %q to issue #%d", label, number)
	}
	return nil
}

func isConflictError(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusUnprocessableEntity ||
			ghErr.Response.StatusCode == http.StatusConflict
	}
	return false
}

// applyTriageLabel applies a taxonomy label, first removing any other verdict
// in the same category so one run cannot leave two verdicts behind.
func (s *Server) applyTriageLabel(ctx context.Context, issue *model.Issue, label string) error {
	category := triageLabelCategory(label)
	if category != "" {
		for _, existing := range issue.Labels {
			if existing == label {
				continue
			}
			if triageLabelCategory(existing) == category {
				mlog.Info("replacing previous triage verdict",
					mlog.Int("issue", issue.Number),
					mlog.String("old", existing),
					mlog.String("new", label))
				if _, err := s.GithubClient.Issues.RemoveLabelForIssue(ctx, issue.RepoOwner, issue.RepoName, issue.Number, existing); err != nil {
					mlog.Warn("could not remove stale triage label", mlog.String("label", existing), mlog.Err(err))
				}
			}
		}
	}

	return s.addLabel(ctx, issue.RepoOwner, issue.RepoName, issue.Number, label)
}

// triageLabelCategory returns the "ai:<category>:" prefix of a taxonomy
// label, or an empty string for labels outside the taxonomy.
func triageLabelCategory(label string) string {
	if !strings.HasPrefix(label, "ai:") {
		return ""
	}
	idx := strings.Index(label[len("ai:"):], ":")
	if idx < 0 {
		return ""
	}
	return label[:len("ai:")+idx+1]
}

func (s *Server) sendGitHubComment(ctx context.Context, repoOwner, repoName string, number int, comment string) error {
	mlog.Debug("Sending GitHub comment", mlog.Int("issue", number))
	_, _, err := s.GithubClient.Issues.CreateComment(ctx, repoOwner, repoName, number, &github.IssueComment{Body: &comment})
	return err
}

func (s *Server) closeIssue(ctx context.Context, repoOwner, repoName string, number int) error {
	_, _, err := s.GithubClient.Issues.Edit(ctx, repoOwner, repoName, number, &github.IssueRequest{
		State: github.String(model.StateClosed),
	})
	if err != nil {
		return errors.Wrapf(err, "could not close issue #%d", number)
	}
	return nil
}

// listOpenIssues returns the most recently updated open issues of the
// repository, excluding pull requests and the given issue itself.
func (s *Server) listOpenIssues(ctx context.Context, repoOwner, repoName string, excludeNumber int) ([]*model.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:     "open",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: s.Config.OpenIssuesScanLimit,
		},
	}

	ghIssues, _, err := s.GithubClient.Issues.ListByRepo(ctx, repoOwner, repoName, opts)
	if err != nil {
		return nil, errors.Wrap(err, "could not list open issues")
	}

	issues := make([]*model.Issue, 0, len(ghIssues))
	for _, ghIssue := range ghIssues {
		if ghIssue.PullRequestLinks != nil {
			continue
		}
		if ghIssue.GetNumber() == excludeNumber {
			continue
		}
		issues = append(issues, issueFromGithub(repoOwner, repoName, ghIssue))
	}
	return issues, nil
}
