package server

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okd-project/triagebot/model"
)

// Markdown to Slack mrkdwn translation. The rules are deliberately
// idempotent: converted text contains none of the source markers, so passing
// a message through the converter twice yields the same string.
var (
	headingPattern = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
	boldStars      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnders     = regexp.MustCompile(`__(.+?)__`)
	linkPattern    = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	fencePattern   = regexp.MustCompile("^```.*$")
)

// markdownToSlack converts the generic Markdown dialect used by the
// formatters into Slack mrkdwn: headings and strong emphasis collapse to
// single-asterisk emphasis, links become <url|text>, and code fences are
// unwrapped. Inline code spans are the same in both dialects and pass
// through untouched.
func markdownToSlack(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if fencePattern.MatchString(strings.TrimSpace(line)) {
			// unwrap fenced blocks, the content stays
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			line = "*" + strings.TrimSpace(m[2]) + "*"
			out = append(out, line)
			continue
		}
		line = boldStars.ReplaceAllString(line, `*$1*`)
		line = boldUnders.ReplaceAllString(line, `*$1*`)
		line = linkPattern.ReplaceAllString(line, `<$2|$1>`)
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// formatSlackMessage renders the same content as formatTriageSummary in
// Slack mrkdwn, with the issue title linking to the issue.
func formatSlackMessage(issue *model.Issue, assessments []model.Assessment) string {
	var sb strings.Builder

	if issue.URL != "" {
		fmt.Fprintf(&sb, "*AI Triage for Issue <%s|#%d: %s>*\n\n", issue.URL, issue.Number, issue.Title)
	} else {
		fmt.Fprintf(&sb, "*AI Triage for Issue #%d: %s*\n\n", issue.Number, issue.Title)
	}

	if len(assessments) == 0 {
		sb.WriteString(noAssessmentMessage)
		return strings.TrimSpace(sb.String())
	}

	for _, a := range assessments {
		fmt.Fprintf(&sb, "*Label:* %s\n", a.Label)
		fmt.Fprintf(&sb, "*Assessment:* %s\n\n", markdownToSlack(a.Response))
	}

	return strings.TrimSpace(sb.String())
}
