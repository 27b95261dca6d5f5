package server

import (
	"strings"
	"testing"

	"github.com/okd-project/triagebot/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildAssessPrompt(t *testing.T) {
	c := &anthropicClassifier{prefix: "ai:bug-triage:"}
	issue := &model.Issue{
		Number: 42,
		Title:  "Install fails on bare metal",
		Body:   "The bootstrap node never comes up.",
	}

	prompt := c.buildAssessPrompt(issue)
	assert.Contains(t, prompt, issue.Title)
	assert.Contains(t, prompt, issue.Body)
	assert.Contains(t, prompt, "ai:bug-triage:")
	for _, severity := range []string{"critical", "high", "medium", "low"} {
		assert.Contains(t, prompt, severity)
	}
	for _, component := range []string{"coreapi", "networking", "installation", "storage", "webconsole", "documentation"} {
		assert.Contains(t, prompt, component)
	}
	assert.Contains(t, prompt, "JSON array")
}

func TestBuildDuplicatePrompt(t *testing.T) {
	c := &anthropicClassifier{}
	issue := &model.Issue{Number: 42, Title: "candidate", Body: "candidate body"}

	t.Run("lists the candidates", func(t *testing.T) {
		open := []*model.Issue{
			{Number: 1, Title: "first", Body: "first body"},
			{Number: 2, Title: "second", Body: "second body"},
		}
		prompt := c.buildDuplicatePrompt(issue, open)
		assert.Contains(t, prompt, "#1: first")
		assert.Contains(t, prompt, "#2: second")
		assert.Contains(t, prompt, "duplicate_of")
	})

	t.Run("caps the candidate list", func(t *testing.T) {
		open := make([]*model.Issue, 0, duplicateCandidateLimit+10)
		for i := 1; i <= duplicateCandidateLimit+10; i++ {
			open = append(open, &model.Issue{Number: i, Title: "issue", Body: "body"})
		}
		prompt := c.buildDuplicatePrompt(issue, open)
		assert.Equal(t, duplicateCandidateLimit, strings.Count(prompt, "- #"))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "longer te…", truncate("longer text than allowed", 9))
	assert.Len(t, []rune(truncate(strings.Repeat("a", 100), 10)), 11)
}
