package tools

import (
	"context"
	"errors"
	"net/url"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// SendWebhookInput is the input for wp_send_webhook.
type SendWebhookInput struct {
	URL     string `json:"url,omitempty" jsonschema:"Webhook URL, e.g. an n8n webhook trigger (default: WEBHOOK_TARGET_URL)"`
	Payload any    `json:"payload" jsonschema:"JSON payload to post"`
	Token   string `json:"token,omitempty" jsonschema:"Bearer token sent in the Authorization header"`
}

// ToolSendWebhook posts a JSON payload to an automation webhook. Error
// statuses from the receiver are reported in the output, not as tool errors.
func ToolSendWebhook(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SendWebhookInput) (*sdkmcp.CallToolResult, types.SendWebhookOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SendWebhookInput) (*sdkmcp.CallToolResult, types.SendWebhookOutput, error) {
		target := input.URL
		if target == "" {
			target = d.Config.WebhookTargetURL
		}
		if err := validateAbsoluteURL(target); err != nil {
			return nil, types.SendWebhookOutput{}, err
		}

		ctx, cancel := context.WithTimeout(ctx, d.requestTimeout())
		defer cancel()

		resp, err := d.Client.PostWebhook(ctx, target, input.Payload, input.Token)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				return nil, types.SendWebhookOutput{StatusCode: apiErr.StatusCode, Text: apiErr.Message}, nil
			}
			return nil, types.SendWebhookOutput{}, WrapWordPressError(err)
		}

		return nil, types.SendWebhookOutput{
			StatusCode: resp.StatusCode,
			OK:         resp.StatusCode < 300,
			JSON:       resp.JSON,
			Text:       resp.Text,
		}, nil
	}
}

// AuthTokenInput is the input for wp_auth_token.
type AuthTokenInput struct {
	Username string `json:"username,omitempty" jsonschema:"WordPress user (default: WP_USERNAME)"`
	Password string `json:"password" jsonschema:"Account password"`
}

// ToolAuthToken exchanges credentials for a JWT from the JWT Authentication plugin.
func ToolAuthToken(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AuthTokenInput) (*sdkmcp.CallToolResult, types.AuthTokenOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AuthTokenInput) (*sdkmcp.CallToolResult, types.AuthTokenOutput, error) {
		username := input.Username
		if username == "" {
			username = d.Config.Username
		}
		if username == "" || input.Password == "" {
			return nil, types.AuthTokenOutput{}, ErrInvalidInput("username and password are required")
		}

		ctx, cancel := context.WithTimeout(ctx, d.requestTimeout())
		defer cancel()

		tok, err := d.Client.FetchJWTToken(ctx, username, input.Password)
		if err != nil {
			if errors.Is(err, client.ErrNoToken) {
				return nil, types.AuthTokenOutput{}, &CodedError{Code: ErrCodeUnauthorized, Message: "no token in response", Cause: err}
			}
			return nil, types.AuthTokenOutput{}, WrapWordPressError(err)
		}

		return nil, types.AuthTokenOutput{
			Token:           tok.Token,
			UserEmail:       tok.UserEmail,
			UserDisplayName: tok.UserDisplayName,
			Hint:            "Set WP_JWT_TOKEN to this value to authenticate the server with it.",
		}, nil
	}
}

func validateAbsoluteURL(raw string) error {
	if raw == "" {
		return ErrInvalidInput("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidInput("url must be an absolute http(s) URL")
	}
	return nil
}
