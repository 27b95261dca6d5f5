package server

import (
	"fmt"
	"strings"

	"github.com/okd-project/triagebot/model"
)

const (
	noAssessmentMessage = "No AI assessment is available for this issue."

	// assessmentCommentMarker prefixes every summary comment the bot posts.
	assessmentCommentMarker = "AI Assessment:"
)

// formatTriageSummary renders the triage result as plain Markdown for the
// issue comment. The output is deterministic for a given input.
func formatTriageSummary(issue *model.Issue, assessments []model.Assessment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## AI Triage for Issue #%d: %s\n\n", issue.Number, issue.Title)
	if issue.URL != "" {
		fmt.Fprintf(&sb, "%s\n\n", issue.URL)
	}

	if len(assessments) == 0 {
		sb.WriteString(noAssessmentMessage)
		return strings.TrimSpace(sb.String())
	}

	for _, a := range assessments {
		fmt.Fprintf(&sb, "**Label:** %s\n", a.Label)
		fmt.Fprintf(&sb, "**Assessment:** %s\n\n", a.Response)
	}

	return strings.TrimSpace(sb.String())
}
