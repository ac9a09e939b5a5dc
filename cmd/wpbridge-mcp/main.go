package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	// Configuration is loaded from environment variables:
	// - WP_BASE_URL: site URL (default: http://localhost:8080)
	// - WP_USERNAME / WP_APP_PASSWORD or WP_JWT_TOKEN: credentials
	// - LOG_LEVEL, LOG_FORMAT, LOG_FILE: logging
	// - etc. (see internal/config for all options)
	cfg := config.Load()

	server, err := mcpsrv.NewServer(mcpsrv.NewClient(cfg), mcpsrv.WithConfig(cfg))
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	// Run the server with stdio transport
	slog.Info("starting wpbridge MCP server on stdio", "site", cfg.WordPressURL)
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
