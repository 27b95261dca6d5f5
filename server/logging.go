package server

import (
	"encoding/json"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
)

// SetupLogging configures the global logger from the server config.
func SetupLogging(config *Config) error {
	logger, err := mlog.NewLogger()
	if err != nil {
		return err
	}

	levels := []mlog.Level{mlog.LvlPanic, mlog.LvlFatal, mlog.LvlError, mlog.LvlWarn, mlog.LvlInfo}
	if config.LogSettings.EnableDebug {
		levels = mlog.StdAll
	}

	format := "plain"
	if config.LogSettings.ConsoleJSON {
		format = "json"
	}

	cfg := mlog.LoggerConfiguration{
		"console": mlog.TargetCfg{
			Type:         "console",
			Levels:       levels,
			Format:       format,
			Options:      json.RawMessage(`{"out": "stdout"}`),
			MaxQueueSize: 1000,
		},
	}

	if err := logger.ConfigureTargets(cfg, nil); err != nil {
		return err
	}

	mlog.InitGlobalLogger(logger)
	return nil
}
