package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/model"
	"github.com/pkg/errors"
)

// TriageOutcome is the terminal state of one pipeline run.
type TriageOutcome string

const (
	// OutcomeDuplicateClosed: the duplicate check matched; the issue was
	// labeled, commented on and closed, and no further stage ran.
	OutcomeDuplicateClosed TriageOutcome = "duplicate_closed"
	// OutcomeClosedSkipped: the issue turned out to be closed at state
	// verification time.
	OutcomeClosedSkipped TriageOutcome = "closed_skipped"
	// OutcomeStateUnknown: state verification itself failed. The pipeline is
	// fail-closed there: with the state unknown no mutating stage runs.
	OutcomeStateUnknown TriageOutcome = "state_unknown_skipped"
	// OutcomeDetailFailed: issue details could not be fetched; every stage
	// needing them was skipped and only the notification was attempted.
	OutcomeDetailFailed TriageOutcome = "detail_failed"
	// OutcomeAssessmentFailed: the classifier call failed; labeling and
	// summarization were skipped, the notification was still attempted.
	OutcomeAssessmentFailed TriageOutcome = "assessment_failed"
	// OutcomeSuperseded: a newer event for the same issue canceled this run.
	OutcomeSuperseded TriageOutcome = "superseded"
	// OutcomeCompleted: labels applied, summary posted, notification
	// attempted.
	OutcomeCompleted TriageOutcome = "completed"
)

type stageOutcome int

const (
	stageSuccess stageOutcome = iota
	stageSkipped
	stageFailed
)

// TriageIssue runs the triage pipeline for one issue event. The issue
// argument carries the event's snapshot of the issue; stages that need
// current state re-fetch it.
//
// Stage gating is expressed on the previous stage's outcome value. A stage
// whose outcome is stageFailed never has its data consulted by a later
// stage.
func (s *Server) TriageIssue(ctx context.Context, issue *model.Issue) (TriageOutcome, error) {
	start := time.Now()

	outcome, err := s.runTriage(ctx, issue)

	elapsed := float64(time.Since(start)) / float64(time.Second)
	s.Metrics.ObserveTriageRunDuration(string(outcome), elapsed)
	mlog.Info("triage run finished",
		mlog.Int("issue", issue.Number),
		mlog.String("outcome", string(outcome)),
		mlog.Float64("elapsed", elapsed))

	return outcome, err
}

func (s *Server) runTriage(ctx context.Context, issue *model.Issue) (TriageOutcome, error) {
	// Stage 1: duplicate check. Advisory: a failing classifier must never
	// block triage, so failures degrade to "no duplicate found".
	if s.runDuplicateCheck(ctx, issue) {
		return OutcomeDuplicateClosed, nil
	}
	if ctx.Err() != nil {
		return OutcomeSuperseded, ctx.Err()
	}

	// Stage 2: state verification against the live issue, not the event
	// snapshot. A sibling event or a human may have closed it meanwhile.
	switch s.verifyIssueOpen(ctx, issue) {
	case stageSkipped:
		mlog.Info("issue is closed, skipping triage", mlog.Int("issue", issue.Number))
		return OutcomeClosedSkipped, nil
	case stageFailed:
		return OutcomeStateUnknown, nil
	}
	if ctx.Err() != nil {
		return OutcomeSuperseded, ctx.Err()
	}

	// Stage 3: detail retrieval. Blocking: everything after this needs the
	// data, so on failure only the best-effort notification still runs.
	details, err := s.GetIssueFromGithub(ctx, issue.RepoOwner, issue.RepoName, issue.Number)
	if err != nil {
		mlog.Error("could not fetch issue details", mlog.Int("issue", issue.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("issue_details")
		s.notifyTriageResult(ctx, issue, nil)
		return OutcomeDetailFailed, errors.Wrap(err, "issue detail retrieval failed")
	}
	if ctx.Err() != nil {
		return OutcomeSuperseded, ctx.Err()
	}

	// Stage 4: AI assessment.
	raw, err := s.Classifier.Assess(ctx, details)
	if err != nil {
		mlog.Warn("assessment call failed", mlog.Int("issue", details.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("assessment")
		s.notifyTriageResult(ctx, details, nil)
		return OutcomeAssessmentFailed, nil
	}
	assessments := parseAssessments(raw)

	// Stage 5: label application from the assessment records.
	s.applyAssessmentLabels(ctx, details, assessments)
	if ctx.Err() != nil {
		return OutcomeSuperseded, ctx.Err()
	}

	// Stage 6: summary comment on the issue. Not blocking for stage 7. The
	// "AI Assessment:" marker lets later runs and humans spot bot comments.
	summary := assessmentCommentMarker + "\n\n" + formatTriageSummary(details, assessments)
	if err := s.sendGitHubComment(ctx, details.RepoOwner, details.RepoName, details.Number, summary); err != nil {
		mlog.Warn("could not post triage summary", mlog.Int("issue", details.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("summary_comment")
	}

	// Stage 7: chat notification, always attempted, never fails the run.
	s.notifyTriageResult(ctx, details, assessments)

	return OutcomeCompleted, nil
}

// runDuplicateCheck returns true when the issue was handled as a duplicate
// and the pipeline must terminate.
func (s *Server) runDuplicateCheck(ctx context.Context, issue *model.Issue) bool {
	open, err := s.listOpenIssues(ctx, issue.RepoOwner, issue.RepoName, issue.Number)
	if err != nil {
		mlog.Warn("duplicate check skipped, could not list open issues", mlog.Int("issue", issue.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("duplicate_check")
		return false
	}

	match, err := s.Classifier.FindDuplicate(ctx, issue, open)
	if err != nil {
		mlog.Warn("duplicate check failed, proceeding with triage", mlog.Int("issue", issue.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("duplicate_check")
		return false
	}
	if match == nil {
		return false
	}

	mlog.Info("issue detected as duplicate",
		mlog.Int("issue", issue.Number),
		mlog.Int("duplicate_of", match.Number),
		mlog.Float64("confidence", match.Confidence))

	if err := s.addLabel(ctx, issue.RepoOwner, issue.RepoName, issue.Number, s.Config.DuplicateLabel); err != nil {
		mlog.Warn("could not add duplicate label", mlog.Int("issue", issue.Number), mlog.Err(err))
	}

	comment := fmt.Sprintf("Closing as a duplicate of #%d.", match.Number)
	if match.Reasoning != "" {
		comment = fmt.Sprintf("%s\n\n%s", comment, match.Reasoning)
	}
	if err := s.sendGitHubComment(ctx, issue.RepoOwner, issue.RepoName, issue.Number, comment); err != nil {
		mlog.Warn("could not post duplicate comment", mlog.Int("issue", issue.Number), mlog.Err(err))
	}

	if err := s.closeIssue(ctx, issue.RepoOwner, issue.RepoName, issue.Number); err != nil {
		mlog.Error("could not close duplicate issue", mlog.Int("issue", issue.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("duplicate_close")
	}

	return true
}

func (s *Server) verifyIssueOpen(ctx context.Context, issue *model.Issue) stageOutcome {
	current, err := s.GetIssueFromGithub(ctx, issue.RepoOwner, issue.RepoName, issue.Number)
	if err != nil {
		mlog.Warn("could not verify issue state", mlog.Int("issue", issue.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("state_verification")
		return stageFailed
	}
	if current.IsClosed() {
		return stageSkipped
	}
	return stageSuccess
}

// applyAssessmentLabels applies the taxonomy labels the assessment produced.
// The whole stage is gated on assessment success; once it runs, an
// individual label failure is a warning and the remaining labels are still
// applied.
func (s *Server) applyAssessmentLabels(ctx context.Context, issue *model.Issue, assessments []model.Assessment) {
	for _, a := range assessments {
		if a.Label == "" {
			continue
		}
		if err := s.applyTriageLabel(ctx, issue, a.Label); err != nil {
			mlog.Warn("could not apply triage label",
				mlog.Int("issue", issue.Number),
				mlog.String("label", a.Label),
				mlog.Err(err))
			s.Metrics.IncreaseTriageStageErrors("label_application")
		}
	}
}

// notifyTriageResult relays the run result to the chat webhook with whatever
// data made it through the pipeline. Chat delivery is best-effort by design:
// errors are logged and swallowed so they cannot change the run's outcome.
func (s *Server) notifyTriageResult(ctx context.Context, issue *model.Issue, assessments []model.Assessment) {
	message := formatSlackMessage(issue, assessments)
	payload := &Payload{
		Username: s.Config.WebhookUsername,
		Text:     message,
	}
	if err := s.sendToWebhook(ctx, s.Config.WebhookURL, payload); err != nil {
		mlog.Warn("could not deliver triage notification", mlog.Int("issue", issue.Number), mlog.Err(err))
		s.Metrics.IncreaseTriageStageErrors("notification")
	}
}
