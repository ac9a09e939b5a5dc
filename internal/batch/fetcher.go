// Package batch fetches and caches sample batches of WordPress records.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/wpbridge-mcp/internal/cache"
	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// ErrUnknownContentType is returned when a key matches no registered type.
var ErrUnknownContentType = errors.New("unknown content type")

// Source is the subset of the WordPress client the fetcher needs.
type Source interface {
	ListContentTypes(ctx context.Context) ([]record.ContentType, error)
	ListTaxonomies(ctx context.Context) ([]record.Taxonomy, error)
	ListRecords(ctx context.Context, restBase string, opts *client.ListOptions) (*client.RecordPage, error)
}

// Config tunes fetching.
type Config struct {
	Workers       int           // concurrent page requests
	PerPage       int           // default batch size when a request has no limit
	MaxRecords    int           // hard cap on records per batch
	Timeout       time.Duration // per-batch deadline
	CacheMaxItems int
	CacheTTL      time.Duration
}

// Request selects a batch.
type Request struct {
	// ContentType is a type key ("post") or its REST base ("posts").
	ContentType string
	// Limit is the number of records wanted. Zero uses Config.PerPage.
	Limit   int
	Status  string
	Search  string
	OrderBy string
	Order   string
	Filters map[string]string
	// Fresh bypasses the cache.
	Fresh bool
}

// Batch is a fetched sample of one content type.
type Batch struct {
	ContentType record.ContentType
	Records     []record.Record
	// Total is the collection size reported by WordPress.
	Total     int
	Pages     int
	Truncated bool
	FetchedAt time.Time
}

// Fetcher loads batches with page fan-out, request de-duplication and a TTL cache.
type Fetcher struct {
	src        Source
	cfg        Config
	batches    *cache.TTLCache[*Batch]
	types      *cache.TTLCache[[]record.ContentType]
	taxonomies *cache.TTLCache[[]record.Taxonomy]
	group      singleflight.Group
}

// New creates a fetcher over src.
func New(src Source, cfg Config) *Fetcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &Fetcher{
		src:        src,
		cfg:        cfg,
		batches:    cache.New[*Batch](cfg.CacheMaxItems, cfg.CacheTTL),
		types:      cache.New[[]record.ContentType](1, cfg.CacheTTL),
		taxonomies: cache.New[[]record.Taxonomy](1, cfg.CacheTTL),
	}
}

// ContentTypes lists the site's content types, cached.
func (f *Fetcher) ContentTypes(ctx context.Context) ([]record.ContentType, error) {
	if cached, ok := f.types.Get("all"); ok {
		return cached, nil
	}
	v, err := f.shared(ctx, "types", func(ctx context.Context) (any, error) {
		return f.src.ListContentTypes(ctx)
	})
	if err != nil {
		return nil, err
	}
	types := v.([]record.ContentType)
	f.types.Put("all", types)
	return types, nil
}

// Taxonomies lists the site's taxonomies, cached.
func (f *Fetcher) Taxonomies(ctx context.Context) ([]record.Taxonomy, error) {
	if cached, ok := f.taxonomies.Get("all"); ok {
		return cached, nil
	}
	v, err := f.shared(ctx, "taxonomies", func(ctx context.Context) (any, error) {
		return f.src.ListTaxonomies(ctx)
	})
	if err != nil {
		return nil, err
	}
	taxonomies := v.([]record.Taxonomy)
	f.taxonomies.Put("all", taxonomies)
	return taxonomies, nil
}

// ResolveContentType finds a content type by key or REST base.
func (f *Fetcher) ResolveContentType(ctx context.Context, key string) (record.ContentType, error) {
	types, err := f.ContentTypes(ctx)
	if err != nil {
		return record.ContentType{}, fmt.Errorf("listing content types: %w", err)
	}
	for _, ct := range types {
		if ct.Key == key {
			return ct, nil
		}
	}
	for _, ct := range types {
		if ct.RestBase == key {
			return ct, nil
		}
	}
	return record.ContentType{}, fmt.Errorf("%w: %q", ErrUnknownContentType, key)
}

// TaxonomyBases returns the REST bases of the taxonomies attached to ct.
func (f *Fetcher) TaxonomyBases(ctx context.Context, ct record.ContentType) ([]string, error) {
	if len(ct.Taxonomies) == 0 {
		return nil, nil
	}
	taxonomies, err := f.Taxonomies(ctx)
	if err != nil {
		return nil, err
	}
	attached := make(map[string]bool, len(ct.Taxonomies))
	for _, key := range ct.Taxonomies {
		attached[key] = true
	}
	var bases []string
	for _, tx := range taxonomies {
		if attached[tx.Key] && tx.RestBase != "" {
			bases = append(bases, tx.RestBase)
		}
	}
	return bases, nil
}

// Fetch returns a batch, from cache when possible.
// Concurrent identical requests share one fetch.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*Batch, error) {
	ct, err := f.ResolveContentType(ctx, req.ContentType)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = f.cfg.PerPage
	}
	limit = min(limit, f.cfg.MaxRecords)

	key := cacheKey(ct, limit, req)
	if !req.Fresh {
		if cached, ok := f.batches.Get(key); ok {
			slog.Debug("batch cache hit", slog.String("content_type", ct.Key), slog.Int("records", len(cached.Records)))
			return cached, nil
		}
	}

	v, err := f.shared(ctx, key, func(ctx context.Context) (any, error) {
		return f.fetch(ctx, ct, limit, req)
	})
	if err != nil {
		return nil, err
	}
	b := v.(*Batch)
	f.batches.Put(key, b)
	return b, nil
}

// shared runs fn once for all concurrent callers of key. The run is detached
// from any single caller's cancellation and bounded by Config.Timeout; a
// caller whose context ends stops waiting without failing the others.
func (f *Fetcher) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := f.group.DoChan(key, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.cfg.Timeout)
		defer cancel()
		return fn(runCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// Invalidate drops every cached batch and listing.
func (f *Fetcher) Invalidate() {
	f.batches.Purge()
	f.types.Purge()
	f.taxonomies.Purge()
}

func (f *Fetcher) fetch(ctx context.Context, ct record.ContentType, limit int, req Request) (*Batch, error) {
	start := time.Now()
	perPage := min(limit, client.MaxPerPage)

	opts := func(page int) *client.ListOptions {
		return &client.ListOptions{
			Page:    page,
			PerPage: perPage,
			Status:  req.Status,
			Search:  req.Search,
			OrderBy: req.OrderBy,
			Order:   req.Order,
			Filters: req.Filters,
		}
	}

	first, err := f.src.ListRecords(ctx, ct.Path(), opts(1))
	if err != nil {
		return nil, fmt.Errorf("fetching page 1 of %s: %w", ct.Key, err)
	}

	pages := min((limit+perPage-1)/perPage, first.TotalPages)
	results := make([][]record.Record, max(pages, 1))
	results[0] = first.Records

	if pages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(f.cfg.Workers)
		for page := 2; page <= pages; page++ {
			g.Go(func() error {
				p, err := f.src.ListRecords(gctx, ct.Path(), opts(page))
				if err != nil {
					return fmt.Errorf("fetching page %d of %s: %w", page, ct.Key, err)
				}
				results[page-1] = p.Records
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	records := make([]record.Record, 0, limit)
	for _, rs := range results {
		records = append(records, rs...)
	}
	if len(records) > limit {
		records = records[:limit]
	}

	b := &Batch{
		ContentType: ct,
		Records:     records,
		Total:       first.Total,
		Pages:       max(pages, 1),
		Truncated:   first.Total > len(records),
		FetchedAt:   time.Now(),
	}

	slog.Info("batch fetched",
		slog.String("content_type", ct.Key),
		slog.Int("records", len(records)),
		slog.Int("total", first.Total),
		slog.Int("pages", b.Pages),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return b, nil
}

// cacheKey encodes the request parameters; url.Values escapes and sorts
// them so distinct requests never share a key.
func cacheKey(ct record.ContentType, limit int, req Request) string {
	v := url.Values{}
	v.Set("path", ct.Path())
	v.Set("limit", strconv.Itoa(limit))
	v.Set("status", req.Status)
	v.Set("search", req.Search)
	v.Set("orderby", req.OrderBy)
	v.Set("order", req.Order)
	for k, val := range req.Filters {
		v.Set("filter."+k, val)
	}
	return "batch?" + v.Encode()
}
