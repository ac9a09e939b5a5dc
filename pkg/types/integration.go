package types

// SendWebhookOutput is the output of wp_send_webhook.
type SendWebhookOutput struct {
	StatusCode int    `json:"status_code"`
	OK         bool   `json:"ok"`
	JSON       any    `json:"json,omitempty"`
	Text       string `json:"text,omitempty"`
}

// AuthTokenOutput is the output of wp_auth_token.
type AuthTokenOutput struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email,omitempty"`
	UserDisplayName string `json:"user_display_name,omitempty"`
	Hint            string `json:"hint,omitempty"`
}

// LoadFeedOutput is the output of wp_load_json_feed.
type LoadFeedOutput struct {
	URL   string `json:"url"`
	Kind  string `json:"kind"` // items, links or document
	Count int    `json:"count"`
	// Truncated is set when fewer items are returned than the feed holds.
	Truncated bool     `json:"truncated,omitempty"`
	Items     []any    `json:"items,omitzero"`
	Links     []string `json:"links,omitzero"`
	Value     any      `json:"value,omitempty"`
}
