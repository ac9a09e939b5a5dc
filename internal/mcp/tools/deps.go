package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/internal/query"
	"github.com/usestring/wpbridge-mcp/pkg/analysis"
	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/jsoncompact"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client    *client.Client
	Fetcher   *batch.Fetcher
	Templates *template.Registry
	Query     *query.Engine
	Config    *config.Config
}

// FetchBatch loads a batch through the fetcher's cache.
func (d *Deps) FetchBatch(ctx context.Context, req batch.Request) (*batch.Batch, error) {
	b, err := d.Fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, WrapWordPressError(err)
	}
	return b, nil
}

// CompactOptions returns the configured compaction limits.
func (d *Deps) CompactOptions() *jsoncompact.Options {
	opts := jsoncompact.DefaultOptions()
	if d.Config == nil {
		return opts
	}
	if d.Config.CompactMaxArrayItems > 0 {
		opts.MaxArrayItems = d.Config.CompactMaxArrayItems
	}
	if d.Config.CompactMaxStringLen > 0 {
		opts.MaxStringLen = d.Config.CompactMaxStringLen
	}
	if d.Config.CompactMaxDepth > 0 {
		opts.MaxDepth = d.Config.CompactMaxDepth
	}
	return opts
}

// requestTimeout bounds single-request tools that bypass the fetcher.
func (d *Deps) requestTimeout() time.Duration {
	if d.Config != nil && d.Config.HTTPClientTimeout > 0 {
		return d.Config.HTTPClientTimeout
	}
	return 15 * time.Second
}

// Analyze fetches a batch and computes its statistics. Taxonomy usage is
// computed for the term-list fields of the type's attached taxonomies.
func (d *Deps) Analyze(ctx context.Context, req batch.Request) (*batch.Batch, *analysis.Analysis, error) {
	b, err := d.FetchBatch(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	opts := &analysis.Options{}
	if bases, err := d.Fetcher.TaxonomyBases(ctx, b.ContentType); err == nil {
		opts.TaxonomyFields = bases
	} else {
		slog.Debug("taxonomy lookup failed, using defaults",
			slog.String("content_type", b.ContentType.Key),
			slog.String("error", err.Error()),
		)
	}
	return b, analysis.AnalyzeWithOptions(b.Records, opts), nil
}

// Generate fetches a sample and renders a template document of kind.
// Pipeline kinds reference a node definition rendered from the same sample.
func (d *Deps) Generate(ctx context.Context, kind template.Kind, req batch.Request, targetURL string) (*template.Document, *batch.Batch, error) {
	b, err := d.FetchBatch(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if len(b.Records) == 0 {
		return nil, b, ErrEmptyBatch(b.ContentType.Key)
	}

	treq := template.Request{
		ContentType: b.ContentType.Key,
		Metadata:    b.ContentType,
		Records:     b.Records,
		TargetURL:   targetURL,
	}
	if treq.TargetURL == "" && d.Config != nil {
		treq.TargetURL = d.Config.WebhookTargetURL
	}

	if kind == template.KindWorkflow || kind == template.KindScenario {
		node, err := d.Templates.Generate(template.KindNode, treq)
		if err != nil {
			return nil, b, WrapWordPressError(err)
		}
		treq.Node = node
	}

	doc, err := d.Templates.Generate(kind, treq)
	if err != nil {
		return nil, b, WrapWordPressError(err)
	}
	return doc, b, nil
}
