package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config-triagebot.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestGetConfig(t *testing.T) {
	t.Run("minimal config gets defaults", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"Org": "okd-project",
			"Repo": "okd",
			"GithubAccessToken": "token"
		}`)

		config, err := GetConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "ai:bug-triage:", config.TriageLabelPrefix)
		assert.Equal(t, "duplicate", config.DuplicateLabel)
		assert.Equal(t, 0.9, config.DuplicateConfidenceThreshold)
		assert.Equal(t, 50, config.OpenIssuesScanLimit)
		assert.Equal(t, "triagebot", config.WebhookUsername)
		assert.Equal(t, "@every 1h", config.Mirror.Schedule)
		assert.Equal(t, 24, config.Mirror.WindowHours)
		assert.Equal(t, 2, config.Mirror.DelaySeconds)
	})

	t.Run("missing repository coordinate", func(t *testing.T) {
		path := writeConfigFile(t, `{"GithubAccessToken": "token"}`)
		_, err := GetConfig(path)
		require.Error(t, err)
	})

	t.Run("missing access token", func(t *testing.T) {
		path := writeConfigFile(t, `{"Org": "okd-project", "Repo": "okd"}`)
		_, err := GetConfig(path)
		require.Error(t, err)
	})

	t.Run("mirror enabled without upstream", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"Org": "okd-project",
			"Repo": "okd",
			"GithubAccessToken": "token",
			"Mirror": {"Enabled": true, "Provider": "github", "LedgerPath": "/tmp/ledger.json"}
		}`)
		_, err := GetConfig(path)
		require.Error(t, err)
	})

	t.Run("mirror enabled without ledger path", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"Org": "okd-project",
			"Repo": "okd",
			"GithubAccessToken": "token",
			"Mirror": {"Enabled": true, "Provider": "github", "UpstreamOwner": "openshift", "UpstreamRepo": "origin"}
		}`)
		_, err := GetConfig(path)
		require.Error(t, err)
	})

	t.Run("unknown mirror provider", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"Org": "okd-project",
			"Repo": "okd",
			"GithubAccessToken": "token",
			"Mirror": {"Enabled": true, "Provider": "bitbucket", "LedgerPath": "/tmp/ledger.json"}
		}`)
		_, err := GetConfig(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := GetConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeConfigFile(t, `{not json`)
		_, err := GetConfig(path)
		require.Error(t, err)
	})
}
