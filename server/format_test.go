package server

import (
	"strings"
	"testing"

	"github.com/okd-project/triagebot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTriageSummary(t *testing.T) {
	issue := &model.Issue{
		Number: 42,
		Title:  "It doesn't work. Help!",
		URL:    "https://github.com/okd-project/okd/issues/42",
	}

	t.Run("with assessments", func(t *testing.T) {
		assessments := []model.Assessment{
			{Label: "ai:bug-triage:high-networking", Response: "Missing Details: no reproduction steps."},
		}
		summary := formatTriageSummary(issue, assessments)

		assert.Contains(t, summary, "## AI Triage for Issue #42: It doesn't work. Help!")
		assert.Contains(t, summary, issue.URL)
		assert.Contains(t, summary, "**Label:** ai:bug-triage:high-networking")
		assert.Contains(t, summary, "**Assessment:** Missing Details: no reproduction steps.")
		assert.NotContains(t, summary, "```")
	})

	t.Run("no assessments", func(t *testing.T) {
		summary := formatTriageSummary(issue, nil)
		assert.Contains(t, summary, noAssessmentMessage)
		assert.NotContains(t, summary, "**Label:**")
	})

	t.Run("deterministic and trimmed", func(t *testing.T) {
		assessments := []model.Assessment{{Label: "ai:bug-triage:low-storage", Response: "Ready for Review"}}
		first := formatTriageSummary(issue, assessments)
		second := formatTriageSummary(issue, assessments)
		require.Equal(t, first, second)
		assert.Equal(t, strings.TrimSpace(first), first)
	})
}
