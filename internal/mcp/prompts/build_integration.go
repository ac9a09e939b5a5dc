package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// platformKinds maps the platform argument to a template kind.
var platformKinds = map[string]string{
	"n8n":          "single-node-schema",
	"n8n-node":     "single-node-schema",
	"n8n-workflow": "two-step-pipeline",
	"zapier":       "trigger-action-pair",
	"make":         "mapped-pipeline",
	"webhook":      "webhook-config",
}

// HandleBuildIntegration implements the integration building workflow.
func HandleBuildIntegration(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		contentType := ""
		platform := ""
		if args != nil {
			contentType = strings.TrimSpace(args["content_type"])
			platform = strings.ToLower(strings.TrimSpace(args["platform"]))
		}
		kind, knownPlatform := platformKinds[platform]

		var sb strings.Builder

		sb.WriteString("# Build a WordPress Automation Integration\n\n")
		sb.WriteString("You are an integration engineer connecting a WordPress site to an automation platform. ")
		sb.WriteString("Your goal is a template the user can import as-is, built from the site's real content shape.\n\n")

		sb.WriteString("## Site\n\n")
		fmt.Fprintf(&sb, "- REST API: `%s/wp-json`\n", strings.TrimSuffix(cfg.WordPressURL, "/"))
		if cfg.Authenticated {
			sb.WriteString("- Credentials are configured: drafts and private records are visible\n")
		} else {
			sb.WriteString("- No credentials configured: only published records are visible. Use `wp_auth_token` if the site runs the JWT plugin\n")
		}
		if cfg.WebhookTargetURL != "" {
			fmt.Fprintf(&sb, "- Default webhook target: `%s`\n", cfg.WebhookTargetURL)
		}
		sb.WriteString("\n")

		sb.WriteString("## How templates are shaped\n\n")
		sb.WriteString("- The **first record** of the sample is the structural template: its fields become the template fields, in order\n")
		sb.WriteString("- `id`, `date`, `date_gmt`, `modified`, `modified_gmt`, `guid`, `link`, `_links` and `_embedded` are read-only system fields\n")
		sb.WriteString("- Values shaped like `{\"rendered\": ...}` are rich text and map to string fields\n")
		sb.WriteString("- Empty samples produce no template: pick a filter that returns records\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Discover** - list content types and pick the one to integrate\n")
		sb.WriteString("2. **Profile** - check field types and fill rates; low fill rates mean optional fields\n")
		sb.WriteString("3. **Check the sample** - if later records drift from the first, reorder or filter so the first record is representative\n")
		sb.WriteString("4. **Generate** - render the template for the target platform\n")
		sb.WriteString("5. **Test delivery** - for webhook integrations, post a sample payload to the target\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		ct := contentType
		if ct == "" {
			sb.WriteString("wp_content_types_list()\n")
			ct = "<content_type>"
		}
		fmt.Fprintf(&sb, "wp_profile_fields(content_type=%q)\n", ct)
		fmt.Fprintf(&sb, "wp_check_sample(content_type=%q)\n", ct)
		if knownPlatform {
			fmt.Fprintf(&sb, "wp_generate_template(content_type=%q, kind=%q)\n", ct, kind)
		} else {
			fmt.Fprintf(&sb, "wp_generate_template(content_type=%q, kind=\"<kind>\")\n", ct)
		}
		if kind == "webhook-config" {
			sb.WriteString("wp_send_webhook(url=..., payload=<one record from wp_fetch_records>)\n")
		}
		sb.WriteString("```\n\n")

		if !knownPlatform {
			sb.WriteString("## Kinds\n\n")
			sb.WriteString("| Platform | kind |\n")
			sb.WriteString("|----------|------|\n")
			sb.WriteString("| n8n custom node | `single-node-schema` |\n")
			sb.WriteString("| n8n workflow | `two-step-pipeline` |\n")
			sb.WriteString("| Zapier app | `trigger-action-pair` |\n")
			sb.WriteString("| Make scenario | `mapped-pipeline` |\n")
			sb.WriteString("| WordPress webhook | `webhook-config` |\n\n")
		}

		sb.WriteString("## Tips\n\n")
		sb.WriteString("- Webhook documents contain a freshly generated secret; treat the output as a credential\n")
		sb.WriteString("- Ask for `format=\"yaml\"` when the user wants to edit the template by hand\n")
		sb.WriteString("- `wp_analyze_content` shows publishing activity if the user is choosing a trigger interval\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for building an automation integration for WordPress content",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
