package server

import (
	"time"

	"github.com/okd-project/triagebot/model"
)

func issueForTest(number int, labels []string) *model.Issue {
	return &model.Issue{
		RepoOwner: "okd-project",
		RepoName:  "okd",
		Number:    number,
		Title:     "test issue",
		Body:      "test body",
		URL:       "https://github.com/okd-project/okd/issues/1",
		Username:  "reporter",
		State:     "open",
		Labels:    labels,
		CreatedAt: time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}
