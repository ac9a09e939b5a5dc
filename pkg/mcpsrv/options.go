package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

type serverConfig struct {
	config      *config.Config
	templateOpt []template.Option

	// Non-empty values override the LOG_* settings of config.
	logLevel  string
	logFormat string
	logFile   string

	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// extensions run after the builtins, in option order.
	extensions []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel overrides LOG_LEVEL (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) { cfg.logLevel = level }
}

// WithLogFile overrides LOG_FILE. Rotation follows the LOG_MAX_* settings.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) { cfg.logFile = path }
}

// WithLogFormat overrides LOG_FORMAT (text or json).
func WithLogFormat(format string) Option {
	return func(cfg *serverConfig) { cfg.logFormat = format }
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		if c != nil {
			cfg.config = c
		}
	}
}

// WithTemplateOptions configures the template registry, e.g. a fixed clock.
func WithTemplateOptions(opts ...template.Option) Option {
	return func(cfg *serverConfig) {
		cfg.templateOpt = append(cfg.templateOpt, opts...)
	}
}

// WithoutBuiltinTools leaves out the wp_* tools and the template and
// analysis resources.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) { cfg.disableBuiltinTools = true }
}

// WithoutBuiltinPrompts leaves out the build_integration prompt.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) { cfg.disableBuiltinPrompts = true }
}

// WithTool registers a tool that needs nothing from the site. The output
// type is checked as described on [AddTool].
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a tool built from the server's Deps, so it shares
// the batch cache and template registry with the builtin tools. See the
// package documentation for an example.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a prompt next to build_integration.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a resource template, e.g. one under a
// scheme other than wpbridge://.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
