package server

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

const (
	defaultTriageLabelPrefix   = "ai:bug-triage:"
	defaultDuplicateLabel      = "duplicate"
	defaultDuplicateThreshold  = 0.9
	defaultMirrorSchedule      = "@every 1h"
	defaultMirrorWindowHours   = 24
	defaultMirrorDelaySeconds  = 2
	defaultAnthropicModel      = "claude-sonnet-4-5-20250929"
	defaultWebhookUsername     = "triagebot"
	defaultGitHubTokenReserve  = 50
	defaultOpenIssuesScanLimit = 50
)

// MirrorConfig drives the scheduled sweep that copies upstream issues into
// the fork repository. Provider selects where upstream issues live; a GitHub
// upstream needs Owner/Repo, a GitLab upstream needs ProjectID (and
// optionally BaseURL for self-hosted instances).
type MirrorConfig struct {
	Enabled  bool
	Schedule string

	Provider string // "github" or "gitlab"

	UpstreamOwner string
	UpstreamRepo  string

	GitlabBaseURL   string
	GitlabToken     string
	GitlabProjectID int

	LedgerPath   string
	WindowHours  int
	DelaySeconds int
}

type LogSettings struct {
	EnableDebug bool
	ConsoleJSON bool
}

type Config struct {
	ListenAddress     string
	MetricsServerPort string

	GithubAccessToken   string
	GithubWebhookSecret string
	GitHubTokenReserve  int
	Username            string

	Org  string
	Repo string

	AnthropicAPIKey string
	AnthropicModel  string

	// TriggerLabels gate the webhook handler: when set, only issues carrying
	// at least one of them are triaged (e.g. "kind/bug"). Empty means every
	// qualifying issue event is triaged.
	TriggerLabels []string

	TriageLabelPrefix            string
	DuplicateLabel               string
	DuplicateConfidenceThreshold float64
	OpenIssuesScanLimit          int

	WebhookURL      string
	WebhookUsername string

	Mirror MirrorConfig

	LogSettings LogSettings
}

func GetConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open config file")
	}
	defer file.Close()

	config := &Config{}
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, errors.Wrap(err, "unable to decode config file")
	}

	config.setDefaults()
	if err := config.IsValid(); err != nil {
		return nil, err
	}

	return config, nil
}

func (config *Config) setDefaults() {
	if config.TriageLabelPrefix == "" {
		config.TriageLabelPrefix = defaultTriageLabelPrefix
	}
	if config.DuplicateLabel == "" {
		config.DuplicateLabel = defaultDuplicateLabel
	}
	if config.DuplicateConfidenceThreshold == 0 {
		config.DuplicateConfidenceThreshold = defaultDuplicateThreshold
	}
	if config.OpenIssuesScanLimit == 0 {
		config.OpenIssuesScanLimit = defaultOpenIssuesScanLimit
	}
	if config.AnthropicModel == "" {
		config.AnthropicModel = defaultAnthropicModel
	}
	if config.WebhookUsername == "" {
		config.WebhookUsername = defaultWebhookUsername
	}
	if config.GitHubTokenReserve == 0 {
		config.GitHubTokenReserve = defaultGitHubTokenReserve
	}
	if config.Mirror.Schedule == "" {
		config.Mirror.Schedule = defaultMirrorSchedule
	}
	if config.Mirror.WindowHours == 0 {
		config.Mirror.WindowHours = defaultMirrorWindowHours
	}
	if config.Mirror.DelaySeconds == 0 {
		config.Mirror.DelaySeconds = defaultMirrorDelaySeconds
	}
}

func (config *Config) IsValid() error {
	if config.Org == "" || config.Repo == "" {
		return errors.New("repository coordinate (Org/Repo) is not configured")
	}
	if config.GithubAccessToken == "" {
		return errors.New("github access token is not configured")
	}
	if config.Mirror.Enabled {
		switch config.Mirror.Provider {
		case "github":
			if config.Mirror.UpstreamOwner == "" || config.Mirror.UpstreamRepo == "" {
				return errors.New("mirror upstream repository is not configured")
			}
		case "gitlab":
			if config.Mirror.GitlabProjectID == 0 {
				return errors.New("mirror upstream gitlab project is not configured")
			}
		default:
			return errors.Errorf("unknown mirror upstream provider %q", config.Mirror.Provider)
		}
		if config.Mirror.LedgerPath == "" {
			return errors.New("mirror ledger path is not configured")
		}
	}
	return nil
}
