package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBody caps how much of a webhook or feed reply is read.
const maxResponseBody = 4 << 20

// WebhookResponse is the reply of an automation platform webhook.
type WebhookResponse struct {
	StatusCode int
	// JSON is the decoded body when the reply is valid JSON.
	JSON any
	// Text is the raw body when it is not JSON.
	Text string
}

// PostWebhook sends payload as JSON to an absolute webhook URL. A non-empty
// token is sent as a bearer Authorization header.
func (c *Client) PostWebhook(ctx context.Context, target string, payload any, token string) (*WebhookResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	auth := ""
	if token != "" {
		auth = "Bearer " + token
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		url:         target,
		body:        bytes.NewReader(data),
		contentType: "application/json",
		auth:        auth,
	})
	if err != nil {
		return nil, fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading webhook response: %w", err)
	}

	out := &WebhookResponse{StatusCode: resp.StatusCode}
	var decoded any
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &decoded) == nil {
		out.JSON = decoded
	} else {
		out.Text = string(body)
	}
	return out, nil
}
