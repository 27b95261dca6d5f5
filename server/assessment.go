package server

import (
	"encoding/json"
	"strings"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/okd-project/triagebot/model"
)

// parseAssessments decodes the classifier's raw payload into assessment
// records. The payload is expected to be a JSON array of
// {"label","response"} objects, possibly wrapped in a Markdown code fence.
// Malformed output is not an error: the pipeline must keep going when the
// model returns garbage, so any decode failure is logged and an empty slice
// returned.
func parseAssessments(raw string) []model.Assessment {
	payload := stripCodeFence(raw)
	if payload == "" {
		return []model.Assessment{}
	}

	var assessments []model.Assessment
	if err := json.Unmarshal([]byte(payload), &assessments); err != nil {
		mlog.Warn("could not decode assessment payload", mlog.Err(err))
		return []model.Assessment{}
	}

	records := make([]model.Assessment, 0, len(assessments))
	for _, a := range assessments {
		a.Label = strings.TrimSpace(a.Label)
		a.Response = strings.TrimSpace(a.Response)
		if a.Label == "" && a.Response == "" {
			continue
		}
		records = append(records, a)
	}
	return records
}

// stripCodeFence unwraps a payload the model wrapped in ```json fences and
// trims everything outside the outermost JSON array or object.
func stripCodeFence(raw string) string {
	payload := strings.TrimSpace(raw)
	if strings.HasPrefix(payload, "```") {
		payload = strings.TrimPrefix(payload, "```")
		if idx := strings.Index(payload, "\n"); idx >= 0 {
			// drop the language tag line
			payload = payload[idx+1:]
		}
		if idx := strings.LastIndex(payload, "```"); idx >= 0 {
			payload = payload[:idx]
		}
		payload = strings.TrimSpace(payload)
	}

	start := strings.IndexAny(payload, "[{")
	if start < 0 {
		return ""
	}
	var end int
	if payload[start] == '[' {
		end = strings.LastIndex(payload, "]")
	} else {
		end = strings.LastIndex(payload, "}")
	}
	if end <= start {
		return ""
	}
	return payload[start : end+1]
}
