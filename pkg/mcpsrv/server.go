package mcpsrv

import (
	"context"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/internal/logging"
	"github.com/usestring/wpbridge-mcp/internal/mcp"
	"github.com/usestring/wpbridge-mcp/internal/mcp/tools"
	"github.com/usestring/wpbridge-mcp/internal/query"
	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

// Server is the wpbridge MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewClient builds a WordPress client from configuration. A JWT token takes
// precedence over an application password.
func NewClient(cfg *config.Config) *client.Client {
	opts := []client.Option{
		client.WithBaseURL(cfg.WordPressURL),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
	}
	if cfg.JWTToken != "" {
		opts = append(opts, client.WithBearerToken(cfg.JWTToken))
	} else {
		opts = append(opts, client.WithBasicAuth(cfg.Username, cfg.AppPassword))
	}
	return client.New(opts...)
}

// NewFetcher builds a batch fetcher over c from configuration.
func NewFetcher(c *client.Client, cfg *config.Config) *batch.Fetcher {
	return batch.New(c, batch.Config{
		Workers:       cfg.FetchWorkers,
		PerPage:       cfg.DefaultPerPage,
		MaxRecords:    cfg.MaxRecords,
		Timeout:       cfg.FetchTimeout,
		CacheMaxItems: cfg.BatchCacheMaxItems,
		CacheTTL:      cfg.BatchCacheTTL,
	})
}

// NewServer creates a new MCP server with builtin wpbridge tools.
//
// The client parameter is required and provides access to the WordPress API.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("client is required")
	}

	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Setup logging
	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFormat != "" {
		logCfg.Format = cfg.logFormat
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create infrastructure
	fetcher := NewFetcher(c, cfg.config)
	registry := template.NewRegistry(cfg.templateOpt...)
	queryEngine := query.NewEngine()

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Client:    c,
		Fetcher:   fetcher,
		Templates: registry,
		Query:     queryEngine,
		Config:    cfg.config,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Client:    c,
		Fetcher:   fetcher,
		Templates: registry,
		Query:     queryEngine,
		Config:    cfg.config,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, ext := range cfg.extensions {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			ext(srv, deps)
		}))
	}

	// Create internal server
	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
