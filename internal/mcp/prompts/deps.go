// Package prompts contains MCP prompt implementations for wpbridge.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	WordPressURL     string
	Authenticated    bool
	WebhookTargetURL string
}
