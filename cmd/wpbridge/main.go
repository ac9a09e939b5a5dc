// Command wpbridge inspects a WordPress site and exports automation
// templates generated from its content types.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wpbridge",
		Usage: "Generate automation templates from WordPress content types",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "WordPress site URL", EnvVars: []string{"WP_BASE_URL"}},
			&cli.StringFlag{Name: "user", Usage: "username for application password auth", EnvVars: []string{"WP_USERNAME"}},
			&cli.StringFlag{Name: "app-password", Usage: "application password", EnvVars: []string{"WP_APP_PASSWORD"}},
			&cli.StringFlag{Name: "token", Usage: "JWT bearer token (takes precedence over the application password)", EnvVars: []string{"WP_JWT_TOKEN"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (default: LOG_LEVEL)", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:   "types",
				Usage:  "List the site's content types",
				Flags:  outputFlags(),
				Action: TypesAction,
			},
			{
				Name:   "profile",
				Usage:  "Profile the fields of a content type",
				Flags:  append(selectionFlags(), outputFlags()...),
				Action: ProfileAction,
			},
			{
				Name:   "analyze",
				Usage:  "Compute content statistics for a content type",
				Flags:  append(selectionFlags(), outputFlags()...),
				Action: AnalyzeAction,
			},
			{
				Name:  "generate",
				Usage: "Generate an automation template for a content type",
				Flags: append(append(selectionFlags(), outputFlags()...),
					&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Required: true, Usage: "single-node-schema (n8n-node), two-step-pipeline (n8n-workflow), trigger-action-pair (zapier), mapped-pipeline (make) or webhook-config (webhook)"},
					&cli.StringFlag{Name: "target-url", Usage: "delivery URL for webhook-config documents", EnvVars: []string{"WEBHOOK_TARGET_URL"}},
				),
				Action: GenerateAction,
			},
		},
	}
}

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Required: true, Usage: "content type key or REST base"},
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "records to sample (default: DEFAULT_PER_PAGE)"},
		&cli.StringFlag{Name: "status", Usage: "filter by status"},
		&cli.StringFlag{Name: "search", Usage: "free-text search"},
		&cli.StringFlag{Name: "orderby", Usage: "sort field"},
		&cli.StringFlag{Name: "order", Usage: "asc or desc"},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to this file instead of stdout; .yaml/.yml selects YAML"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json or yaml"},
	}
}
