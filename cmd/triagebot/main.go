package main

import (
	"fmt"
	"os"

	"github.com/okd-project/triagebot/server"
	"github.com/okd-project/triagebot/version"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "triagebot",
	Short: "AI-assisted issue triage bot for the OKD fork repositories",
	Long: `triagebot watches a GitHub repository for bug reports, assesses them
with an AI classifier, applies taxonomy labels, posts an assessment summary
and closes high-confidence duplicates. It can also mirror issues from an
upstream tracker into the fork on a schedule.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Full()
		fmt.Printf("triagebot %s (commit %s, built %s)\n", info.Version, info.Hash, info.Date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config-triagebot.json", "path to the config file")
	rootCmd.AddCommand(versionCmd)
}

// newServer loads the config, configures logging and builds a server. Every
// subcommand starts here.
func newServer(metricsProvider server.MetricsProvider) (*server.Server, *server.Config, error) {
	config, err := server.GetConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load config from %s: %w", configFile, err)
	}
	if err := server.SetupLogging(config); err != nil {
		return nil, nil, fmt.Errorf("unable to configure logging: %w", err)
	}

	s, err := server.New(config, metricsProvider)
	if err != nil {
		return nil, nil, err
	}
	return s, config, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
