package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/okd-project/triagebot/model"
	"github.com/pkg/errors"
)

const (
	classifierMaxTokens     = 2048
	promptBodyLimit         = 8000
	duplicateCandidateLimit = 20
)

// Classifier is the boundary to the external AI collaborator. Assess returns
// the raw assessment payload for the parser; FindDuplicate compares an issue
// against the open issues and returns nil when no candidate clears the
// confidence threshold.
type Classifier interface {
	Assess(ctx context.Context, issue *model.Issue) (string, error)
	FindDuplicate(ctx context.Context, issue *model.Issue, open []*model.Issue) (*model.DuplicateMatch, error)
}

type anthropicClassifier struct {
	client    anthropic.Client
	model     string
	prefix    string
	threshold float64
}

func NewAnthropicClassifier(apiKey, modelName, labelPrefix string, duplicateThreshold float64) Classifier {
	return &anthropicClassifier{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     modelName,
		prefix:    labelPrefix,
		threshold: duplicateThreshold,
	}
}

func (c *anthropicClassifier) Assess(ctx context.Context, issue *model.Issue) (string, error) {
	prompt := c.buildAssessPrompt(issue)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "assessment call failed")
	}
	return text, nil
}

type duplicateResponse struct {
	DuplicateOf int     `json:"duplicate_of"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

func (c *anthropicClassifier) FindDuplicate(ctx context.Context, issue *model.Issue, open []*model.Issue) (*model.DuplicateMatch, error) {
	if len(open) == 0 {
		return nil, nil
	}

	prompt := c.buildDuplicatePrompt(issue, open)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "duplicate check call failed")
	}

	payload := stripCodeFence(text)
	var response duplicateResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return nil, errors.Wrapf(err, "could not decode duplicate check response: %s", truncate(text, 200))
	}
	if response.Confidence < 0 || response.Confidence > 1 {
		return nil, errors.Errorf("invalid confidence score: %.2f", response.Confidence)
	}

	if response.DuplicateOf == 0 || response.Confidence < c.threshold {
		return nil, nil
	}
	return &model.DuplicateMatch{
		Number:     response.DuplicateOf,
		Confidence: response.Confidence,
		Reasoning:  response.Reasoning,
	}, nil
}

func (c *anthropicClassifier) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: classifierMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (c *anthropicClassifier) buildAssessPrompt(issue *model.Issue) string {
	var sb strings.Builder

	sb.WriteString("You are triaging a bug report for the OKD Kubernetes distribution.\n")
	sb.WriteString("Assess the report below for completeness (reproduction steps, affected version, logs) ")
	sb.WriteString("and assign a severity and component.\n\n")
	fmt.Fprintf(&sb, "Severity is one of: critical, high, medium, low.\n")
	fmt.Fprintf(&sb, "Component is one of: coreapi, networking, installation, storage, webconsole, documentation.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n\nBody:\n%s\n\n", issue.Title, truncate(issue.Body, promptBodyLimit))
	fmt.Fprintf(&sb, "Respond with a JSON array only. Each element must be an object with two keys: ")
	fmt.Fprintf(&sb, "\"label\" (a string of the form %q followed by severity-component, e.g. %q) and ", c.prefix, c.prefix+"high-networking")
	fmt.Fprintf(&sb, "\"response\" (one short paragraph: the verdict, e.g. Ready for Review, Missing Details or Needs Clarification, and what is missing if anything).\n")

	return sb.String()
}

func (c *anthropicClassifier) buildDuplicatePrompt(issue *model.Issue, open []*model.Issue) string {
	var sb strings.Builder

	sb.WriteString("Determine whether the candidate issue below is a duplicate of one of the existing open issues.\n")
	sb.WriteString("Compare semantically, not just by string similarity.\n\n")
	fmt.Fprintf(&sb, "Candidate issue #%d\nTitle: %s\nBody:\n%s\n\nExisting open issues:\n",
		issue.Number, issue.Title, truncate(issue.Body, promptBodyLimit))

	candidates := open
	if len(candidates) > duplicateCandidateLimit {
		candidates = candidates[:duplicateCandidateLimit]
	}
	for _, existing := range candidates {
		fmt.Fprintf(&sb, "- #%d: %s\n  %s\n", existing.Number, existing.Title, truncate(existing.Body, 400))
	}

	sb.WriteString("\nRespond with a JSON object only: {\"duplicate_of\": <issue number or 0>, ")
	sb.WriteString("\"confidence\": <0.0-1.0>, \"reasoning\": \"<one sentence>\"}.\n")

	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
