// Package mcpsrv runs an MCP server that turns WordPress content types into
// automation templates for n8n, Zapier, Make and plain webhooks.
//
// # Basic Usage
//
// Load configuration from the environment and serve over stdio:
//
//	cfg := config.Load()
//	server, err := mcpsrv.NewServer(mcpsrv.NewClient(cfg), mcpsrv.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Custom tools
//
// Tools that need the site use [WithDepsTool], which hands the builder the
// same batch fetcher, template registry and query engine as the builtin tools.
// Batches fetched there share the builtin cache:
//
//	type CountInput struct {
//	    ContentType string `json:"content_type"`
//	}
//
//	type CountOutput struct {
//	    Total int `json:"total"`
//	}
//
//	func countTool(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	    return func(ctx context.Context, _ *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        b, err := d.Fetcher.Fetch(ctx, batch.Request{ContentType: in.ContentType, Limit: 1})
//	        if err != nil {
//	            return nil, CountOutput{}, err
//	        }
//	        return nil, CountOutput{Total: b.Total}, nil
//	    }
//	}
//
//	server, err := mcpsrv.NewServer(client, mcpsrv.WithDepsTool(&mcp.Tool{Name: "count_records"}, countTool))
//
// Output types are checked at registration; see [AddTool].
//
// # Configuration
//
// Options override the environment:
//
//	server, err := mcpsrv.NewServer(
//	    client,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFormat("json"),
//	    mcpsrv.WithLogFile("/var/log/wpbridge-mcp.log"),
//	    mcpsrv.WithTemplateOptions(template.WithClock(time.Now)),
//	)
package mcpsrv
