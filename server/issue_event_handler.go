package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/model"
	"github.com/pkg/errors"
)

type issueEvent struct {
	Label  *github.Label      `json:"label"`
	Repo   *github.Repository `json:"repository"`
	Issue  *github.Issue      `json:"issue"`
	Action string             `json:"action"`
}

// triageActions are the event reasons that start a pipeline run.
var triageActions = map[string]bool{
	"opened":   true,
	"edited":   true,
	"labeled":  true,
	"reopened": true,
}

func (s *Server) issueEventHandler(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	if s.Config.GithubWebhookSecret != "" {
		receivedHash := strings.SplitN(r.Header.Get("X-Hub-Signature"), "=", 2)
		if len(receivedHash) != 2 || receivedHash[0] != "sha1" {
			mlog.Error("invalid webhook hash format")
			http.Error(w, "invalid webhook hash format", http.StatusBadRequest)
			return
		}
		if err := ValidateSignature(receivedHash, buf, s.Config.GithubWebhookSecret); err != nil {
			mlog.Error("invalid webhook signature", mlog.Err(err))
			http.Error(w, "invalid webhook signature", http.StatusUnauthorized)
			return
		}
	}

	event, err := issueEventFromJSON(bytes.NewReader(buf))
	if err != nil {
		mlog.Error("could not parse issue event", mlog.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !triageActions[event.Action] {
		mlog.Debug("ignoring issue event", mlog.String("action", event.Action))
		w.WriteHeader(http.StatusOK)
		return
	}
	if event.Issue.PullRequestLinks != nil {
		// pull requests are triaged elsewhere
		w.WriteHeader(http.StatusOK)
		return
	}

	s.Metrics.IncreaseWebhookRequest("issue_" + event.Action)

	issue := issueFromGithub(event.Repo.GetOwner().GetLogin(), event.Repo.GetName(), event.Issue)
	if len(s.Config.TriggerLabels) > 0 && !hasAnyLabel(issue, s.Config.TriggerLabels) {
		mlog.Debug("issue has no trigger label", mlog.Int("issue", issue.Number))
		w.WriteHeader(http.StatusOK)
		return
	}
	mlog.Info("handle issue event",
		mlog.String("repo", issue.RepoName),
		mlog.String("action", event.Action),
		mlog.Int("issue", issue.Number))

	issueKey := fmt.Sprintf("%s/%s#%d", issue.RepoOwner, issue.RepoName, issue.Number)
	ctx, done := s.beginTriageRun(issueKey)
	defer done()

	if _, err := s.TriageIssue(ctx, issue); err != nil {
		mlog.Error("triage run degraded", mlog.Int("issue", issue.Number), mlog.Err(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func hasAnyLabel(issue *model.Issue, labels []string) bool {
	for _, label := range labels {
		if issue.HasLabel(label) {
			return true
		}
	}
	return false
}

func issueEventFromJSON(data io.Reader) (*issueEvent, error) {
	decoder := json.NewDecoder(data)
	var event issueEvent
	if err := decoder.Decode(&event); err != nil {
		return nil, err
	}

	if event.Issue == nil {
		return nil, errors.New("github issue is missing from body")
	}
	if event.Repo == nil {
		return nil, errors.New("github repo is missing from body")
	}

	return &event, nil
}
