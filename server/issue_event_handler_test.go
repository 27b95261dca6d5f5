package server

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-github/v39/github"
	"github.com/okd-project/triagebot/server/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventBody(action string, labels ...string) string {
	labelJSON := make([]string, 0, len(labels))
	for _, l := range labels {
		labelJSON = append(labelJSON, fmt.Sprintf(`{"name":%q}`, l))
	}
	return fmt.Sprintf(`{
		"action": %q,
		"issue": {"number": 42, "title": "broken", "state": "open", "labels": [%s]},
		"repository": {"name": "okd", "owner": {"login": "okd-project"}}
	}`, action, strings.Join(labelJSON, ","))
}

func newHandlerServer(t *testing.T) (*Server, *mocks.MockIssuesService, *mocks.MockClassifier) {
	ctrl := gomock.NewController(t)
	issuesMock := mocks.NewMockIssuesService(ctrl)
	classifierMock := mocks.NewMockClassifier(ctrl)
	metricsMock := mocks.NewMockMetricsProvider(ctrl)
	metricsMock.EXPECT().IncreaseWebhookRequest(gomock.Any()).AnyTimes()
	metricsMock.EXPECT().ObserveTriageRunDuration(gomock.Any(), gomock.Any()).AnyTimes()
	metricsMock.EXPECT().IncreaseTriageStageErrors(gomock.Any()).AnyTimes()

	s := &Server{
		Config: &Config{
			Org:                 "okd-project",
			Repo:                "okd",
			DuplicateLabel:      "duplicate",
			OpenIssuesScanLimit: 50,
		},
		GithubClient: &GithubClient{Issues: issuesMock},
		Classifier:   classifierMock,
		Metrics:      metricsMock,
		inFlight:     map[string]*inFlightRun{},
	}
	return s, issuesMock, classifierMock
}

// expectClosedSkipRun wires the cheapest complete pipeline: no duplicate
// found, then state verification sees a closed issue.
func expectClosedSkipRun(issuesMock *mocks.MockIssuesService, classifierMock *mocks.MockClassifier) {
	issuesMock.EXPECT().ListByRepo(gomock.Any(), gomock.Eq("okd-project"), gomock.Eq("okd"), gomock.Any()).
		Return([]*github.Issue{}, nil, nil)
	classifierMock.EXPECT().FindDuplicate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	issuesMock.EXPECT().Get(gomock.Any(), gomock.Eq("okd-project"), gomock.Eq("okd"), gomock.Eq(42)).
		Return(&github.Issue{Number: github.Int(42), State: github.String("closed")}, nil, nil)
}

func TestIssueEventHandler(t *testing.T) {
	t.Run("qualifying action runs the pipeline", func(t *testing.T) {
		s, issuesMock, classifierMock := newHandlerServer(t)
		expectClosedSkipRun(issuesMock, classifierMock)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(eventBody("opened", "kind/bug")))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ignored action is a no-op", func(t *testing.T) {
		s, _, _ := newHandlerServer(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(eventBody("assigned")))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing issue in payload is a bad request", func(t *testing.T) {
		s, _, _ := newHandlerServer(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(`{"action":"opened"}`))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("issue without a trigger label is skipped", func(t *testing.T) {
		s, _, _ := newHandlerServer(t)
		s.Config.TriggerLabels = []string{"kind/bug"}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(eventBody("opened", "enhancement")))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIssueEventHandlerSignature(t *testing.T) {
	sign := func(secret, body string) string {
		mac := hmac.New(sha1.New, []byte(secret))
		_, _ = mac.Write([]byte(body))
		return "sha1=" + hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("valid signature is accepted", func(t *testing.T) {
		s, issuesMock, classifierMock := newHandlerServer(t)
		s.Config.GithubWebhookSecret = "topsecret"
		expectClosedSkipRun(issuesMock, classifierMock)

		body := eventBody("opened", "kind/bug")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(body))
		req.Header.Set("X-Hub-Signature", sign("topsecret", body))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		s, _, _ := newHandlerServer(t)
		s.Config.GithubWebhookSecret = "topsecret"

		body := eventBody("opened", "kind/bug")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(body))
		req.Header.Set("X-Hub-Signature", sign("wrongsecret", body))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing signature header is rejected", func(t *testing.T) {
		s, _, _ := newHandlerServer(t)
		s.Config.GithubWebhookSecret = "topsecret"

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/issue_event", strings.NewReader(eventBody("opened")))
		s.issueEventHandler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestValidateSignature(t *testing.T) {
	body := []byte(`{"action":"opened"}`)
	mac := hmac.New(sha1.New, []byte("secret"))
	_, _ = mac.Write(body)
	digest := hex.EncodeToString(mac.Sum(nil))

	require.NoError(t, ValidateSignature([]string{"sha1", digest}, body, "secret"))
	require.Error(t, ValidateSignature([]string{"sha1", digest}, body, "other"))
	require.Error(t, ValidateSignature([]string{"sha1", "deadbeef"}, body, "secret"))
}
