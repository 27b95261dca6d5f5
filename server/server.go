package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/store"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	defaultRequestTimeout = 300 * time.Second

	httpServerReadTimeout  = 30 * time.Second
	httpServerWriteTimeout = 300 * time.Second
)

type Server struct {
	Config       *Config
	Store        store.Store
	GithubClient *GithubClient
	Classifier   Classifier
	Metrics      MetricsProvider

	upstream      upstreamSource
	mirrorLimiter *rate.Limiter
	mirrorLock    sync.Mutex

	webhookClient *http.Client

	// inFlight tracks the running triage per issue, so a newer event for the
	// same issue supersedes the older run.
	inFlight     map[string]*inFlightRun
	inFlightLock sync.Mutex

	srv *http.Server
}

func New(config *Config, metricsProvider MetricsProvider) (*Server, error) {
	s := &Server{
		Config:        config,
		Metrics:       metricsProvider,
		GithubClient:  NewGithubClient(config.GithubAccessToken, metricsProvider),
		webhookClient: &http.Client{Timeout: 30 * time.Second},
		inFlight:      map[string]*inFlightRun{},
	}

	s.Classifier = NewAnthropicClassifier(
		config.AnthropicAPIKey,
		config.AnthropicModel,
		config.TriageLabelPrefix,
		config.DuplicateConfidenceThreshold,
	)

	if config.Mirror.Enabled {
		ledger, err := store.NewFileStore(config.Mirror.LedgerPath)
		if err != nil {
			return nil, err
		}
		s.Store = ledger

		switch config.Mirror.Provider {
		case "github":
			s.upstream = &githubUpstream{
				issues: s.GithubClient.Issues,
				owner:  config.Mirror.UpstreamOwner,
				repo:   config.Mirror.UpstreamRepo,
			}
		case "gitlab":
			upstream, err := newGitlabUpstream(config.Mirror.GitlabBaseURL, config.Mirror.GitlabToken, config.Mirror.GitlabProjectID)
			if err != nil {
				return nil, err
			}
			s.upstream = upstream
		default:
			return nil, errors.Errorf("unknown mirror upstream provider %q", config.Mirror.Provider)
		}

		delay := time.Duration(config.Mirror.DelaySeconds) * time.Second
		s.mirrorLimiter = rate.NewLimiter(rate.Every(delay), 1)
	}

	return s, nil
}

// Start starts the HTTP server that receives the issue webhook events.
func (s *Server) Start() {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.healthzHandler).Methods(http.MethodGet)
	router.Handle("/issue_event", s.withRequestDuration("issue_event", http.HandlerFunc(s.issueEventHandler))).Methods(http.MethodPost)

	s.srv = &http.Server{
		Addr:         s.Config.ListenAddress,
		Handler:      router,
		ReadTimeout:  httpServerReadTimeout,
		WriteTimeout: httpServerWriteTimeout,
	}

	go func() {
		mlog.Info("Listening", mlog.String("address", s.Config.ListenAddress))
		err := s.srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			mlog.Critical("server_error", mlog.Err(err))
			panic(err.Error())
		}
	}()
}

// Stop gracefully shuts the HTTP server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestDuration(handler string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		elapsed := float64(time.Since(start)) / float64(time.Second)
		s.Metrics.ObserveHTTPRequestDuration(handler, r.Method, fmt.Sprintf("%d", recorder.status), elapsed)
	})
}

type inFlightRun struct {
	cancel context.CancelFunc
}

// beginTriageRun registers a run for an issue and cancels any run already in
// flight for the same issue. Runs for different issues are independent.
func (s *Server) beginTriageRun(issueKey string) (context.Context, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	run := &inFlightRun{cancel: cancel}

	s.inFlightLock.Lock()
	if previous, ok := s.inFlight[issueKey]; ok {
		mlog.Info("superseding in-flight triage run", mlog.String("issue", issueKey))
		previous.cancel()
	}
	s.inFlight[issueKey] = run
	s.inFlightLock.Unlock()

	done := func() {
		s.inFlightLock.Lock()
		if current, ok := s.inFlight[issueKey]; ok && current == run {
			delete(s.inFlight, issueKey)
		}
		s.inFlightLock.Unlock()
		cancel()
	}
	return ctx, done
}
