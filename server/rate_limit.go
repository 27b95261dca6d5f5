package server

import (
	"context"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
)

// shouldStopForRateLimit reports whether the remaining GitHub tokens dipped
// below the configured reserve. Sweeps back off instead of burning the
// reserve the interactive pipeline needs. A reserve of zero disables the
// check.
func (s *Server) shouldStopForRateLimit(ctx context.Context) bool {
	if s.Config.GitHubTokenReserve <= 0 {
		return false
	}

	rate, _, err := s.GithubClient.RateLimits(ctx)
	if err != nil {
		mlog.Error("Error getting the rate limit", mlog.Err(err))
		return false
	}

	mlog.Debug("Current rate limit",
		mlog.Int("Remaining Rate", rate.Core.Remaining),
		mlog.Int("Limit Rate", rate.Core.Limit))

	return rate.Core.Remaining <= s.Config.GitHubTokenReserve
}
