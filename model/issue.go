package model

import (
	"encoding/json"
	"io"
	"time"
)

type Issue struct {
	RepoOwner string
	RepoName  string
	Number    int
	Title     string
	Body      string
	URL       string
	Username  string
	State     string
	Labels    []string
	CreatedAt time.Time
}

const StateClosed = "closed"

func (o *Issue) IsClosed() bool {
	return o.State == StateClosed
}

func (o *Issue) HasLabel(name string) bool {
	for _, label := range o.Labels {
		if label == name {
			return true
		}
	}
	return false
}

func (o *Issue) ToJSON() (string, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func IssueFromJSON(data io.Reader) (*Issue, error) {
	var issue Issue
	err := json.NewDecoder(data).Decode(&issue)
	if err != nil {
		return nil, err
	}

	return &issue, nil
}
