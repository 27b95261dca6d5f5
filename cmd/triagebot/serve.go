package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/metrics"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server and the scheduled mirror sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		metricsProvider := metrics.NewPrometheusProvider()

		s, config, err := newServer(metricsProvider)
		if err != nil {
			return err
		}
		mlog.Info("Loaded config", mlog.String("filename", configFile))

		metricsServer := metrics.NewServer(config.MetricsServerPort, metricsProvider.Handler(), true)
		metricsServer.Start()
		defer metricsServer.Stop()

		mlog.Info("Starting triagebot server")
		s.Start()
		defer func() {
			mlog.Info("Stopping triagebot server")
			if err := s.Stop(); err != nil {
				mlog.Error("error while shutting down server", mlog.Err(err))
			}
		}()

		if config.Mirror.Enabled {
			c := cron.New()
			if _, err := c.AddFunc(config.Mirror.Schedule, s.MirrorUpstreamIssues); err != nil {
				mlog.Error("failed adding mirror cron", mlog.Err(err))
				return err
			}
			c.Start()
			defer c.Stop()
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		mlog.Info("Stopped triagebot server")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
