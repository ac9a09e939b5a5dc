package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/internal/export"
	"github.com/usestring/wpbridge-mcp/internal/logging"
	"github.com/usestring/wpbridge-mcp/internal/mcp/tools"
	"github.com/usestring/wpbridge-mcp/internal/query"
	"github.com/usestring/wpbridge-mcp/pkg/mcpsrv"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

// logConfig maps LOG_* settings, letting an explicit --log-level win.
func logConfig(c *cli.Context, cfg *config.Config) logging.Config {
	logCfg := logging.FromConfig(cfg)
	if c.IsSet("log-level") {
		logCfg.Level = c.String("log-level")
	}
	return logCfg
}

// setup builds the shared dependencies from configuration and global flags.
func setup(c *cli.Context) (*tools.Deps, func() error, error) {
	cfg := config.Load()
	if v := c.String("url"); v != "" {
		cfg.WordPressURL = v
	}
	if v := c.String("user"); v != "" {
		cfg.Username = v
	}
	if v := c.String("app-password"); v != "" {
		cfg.AppPassword = v
	}
	if v := c.String("token"); v != "" {
		cfg.JWTToken = v
	}

	cleanup, err := logging.Setup(logConfig(c, cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	wp := mcpsrv.NewClient(cfg)
	return &tools.Deps{
		Client:    wp,
		Fetcher:   mcpsrv.NewFetcher(wp, cfg),
		Templates: template.NewRegistry(),
		Query:     query.NewEngine(),
		Config:    cfg,
	}, cleanup, nil
}

func selection(c *cli.Context, d *tools.Deps) batch.Request {
	limit := c.Int("limit")
	if limit <= 0 {
		limit = d.Config.DefaultPerPage
	}
	return batch.Request{
		ContentType: c.String("type"),
		Limit:       limit,
		Status:      c.String("status"),
		Search:      c.String("search"),
		OrderBy:     c.String("orderby"),
		Order:       c.String("order"),
	}
}

// emit writes v to --out or stdout in the selected format.
func emit(c *cli.Context, v any) error {
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		format = export.FormatForPath(out, format)
		if err := export.WriteFile(out, v, format); err != nil {
			return err
		}
		slog.Info("wrote output", slog.String("path", out), slog.String("format", string(format)))
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
		return nil
	}

	data, err := export.Marshal(v, format)
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func TypesAction(c *cli.Context) error {
	d, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	cts, err := d.Fetcher.ContentTypes(c.Context)
	if err != nil {
		return tools.WrapWordPressError(err)
	}
	return emit(c, cts)
}

func ProfileAction(c *cli.Context) error {
	d, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := d.FetchBatch(c.Context, selection(c, d))
	if err != nil {
		return err
	}
	return emit(c, tools.ProfileRows(b.Records))
}

func AnalyzeAction(c *cli.Context) error {
	d, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	_, a, err := d.Analyze(c.Context, selection(c, d))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, a.Summary())
	return emit(c, a)
}

func GenerateAction(c *cli.Context) error {
	kind, err := template.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}

	d, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, b, err := d.Generate(c.Context, kind, selection(c, d), c.String("target-url"))
	if err != nil {
		return err
	}
	slog.Info("generated template",
		slog.String("kind", string(kind)),
		slog.String("content_type", b.ContentType.Key),
		slog.Int("fields", len(doc.Fields)),
	)
	return emit(c, doc)
}
