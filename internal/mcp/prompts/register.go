package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "build_integration",
		Description: "RECOMMENDED: Build an automation integration (n8n, Zapier, Make or webhook) for a WordPress content type. Start here - walks through discovery, sampling checks and template generation.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "content_type",
				Description: "Content type to integrate (e.g. 'post', 'product')",
				Required:    false,
			},
			{
				Name:        "platform",
				Description: "Target platform: n8n, n8n-workflow, zapier, make or webhook",
				Required:    false,
			},
		},
	}, HandleBuildIntegration(cfg))
}
