package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

type Payload struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// sendToWebhook posts a chat message to the configured webhook endpoint.
// A missing URL is a valid deployment (chat relay disabled) and is a silent
// no-op rather than an error.
func (s *Server) sendToWebhook(ctx context.Context, url string, payload *Payload) error {
	if url == "" {
		mlog.Warn("no webhook URL set, skipping notification")
		return nil
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	r, err := s.webhookClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
		r.Body.Close()
	}()

	if r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("received non-200 status code posting to webhook: %v", r.StatusCode)
	}

	return nil
}
