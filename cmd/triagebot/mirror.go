package main

import (
	"fmt"

	"github.com/okd-project/triagebot/metrics"
	"github.com/spf13/cobra"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Run one mirror sweep of the upstream tracker and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, config, err := newServer(metrics.NewPrometheusProvider())
		if err != nil {
			return err
		}
		if !config.Mirror.Enabled {
			return fmt.Errorf("mirroring is not enabled in %s", configFile)
		}

		s.MirrorUpstreamIssues()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
}
