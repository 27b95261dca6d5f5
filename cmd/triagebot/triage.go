package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/metrics"
	"github.com/spf13/cobra"
)

var triageIssueNumber int

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Run the triage pipeline once for a single issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if triageIssueNumber <= 0 {
			return fmt.Errorf("--issue must be a positive issue number")
		}

		s, config, err := newServer(metrics.NewPrometheusProvider())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		issue, err := s.GetIssueFromGithub(ctx, config.Org, config.Repo, triageIssueNumber)
		if err != nil {
			return err
		}

		outcome, err := s.TriageIssue(ctx, issue)
		if err != nil {
			mlog.Error("triage run degraded", mlog.Err(err))
		}
		fmt.Printf("issue #%d: %s\n", triageIssueNumber, outcome)
		return err
	},
}

func init() {
	triageCmd.Flags().IntVar(&triageIssueNumber, "issue", 0, "issue number to triage")
	rootCmd.AddCommand(triageCmd)
}
