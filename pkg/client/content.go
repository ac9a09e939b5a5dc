package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// ListOptions contains optional parameters for listing records.
type ListOptions struct {
	// Page is 1-based. Zero means the first page.
	Page int
	// PerPage is capped at MaxPerPage. Zero uses the WordPress default (10).
	PerPage int
	// Status filters by post status. Unauthenticated requests only see "publish".
	Status string
	// Search is a free-text filter.
	Search string
	// OrderBy is a collection ordering such as "date" or "modified".
	OrderBy string
	// Order is OrderAsc or OrderDesc.
	Order string
	// Fields limits the returned fields via the _fields parameter.
	Fields []string
	// Filters holds extra collection parameters, such as a taxonomy term filter.
	Filters map[string]string
}

func (o *ListOptions) query() url.Values {
	q := make(url.Values)
	if o == nil {
		return q
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(min(o.PerPage, MaxPerPage)))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.OrderBy != "" {
		q.Set("orderby", o.OrderBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	if len(o.Fields) > 0 {
		q.Set("_fields", strings.Join(o.Fields, ","))
	}
	for k, v := range o.Filters {
		q.Set(k, v)
	}
	return q
}

// ListContentTypes retrieves the registered content types in site order.
func (c *Client) ListContentTypes(ctx context.Context) ([]record.ContentType, error) {
	raw := orderedmap.New[string, typeWire]()
	if _, err := c.get(ctx, "/wp/v2/types", nil, raw); err != nil {
		return nil, fmt.Errorf("listing content types: %w", err)
	}

	types := make([]record.ContentType, 0, raw.Len())
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		types = append(types, pair.Value.contentType(pair.Key))
	}
	return types, nil
}

// GetContentType retrieves one content type by key.
func (c *Client) GetContentType(ctx context.Context, key string) (*record.ContentType, error) {
	var raw typeWire
	if _, err := c.get(ctx, "/wp/v2/types/"+url.PathEscape(key), nil, &raw); err != nil {
		return nil, fmt.Errorf("getting content type %q: %w", key, err)
	}
	ct := raw.contentType(key)
	return &ct, nil
}

// ListTaxonomies retrieves the registered taxonomies in site order.
func (c *Client) ListTaxonomies(ctx context.Context) ([]record.Taxonomy, error) {
	raw := orderedmap.New[string, taxonomyWire]()
	if _, err := c.get(ctx, "/wp/v2/taxonomies", nil, raw); err != nil {
		return nil, fmt.Errorf("listing taxonomies: %w", err)
	}

	taxonomies := make([]record.Taxonomy, 0, raw.Len())
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		taxonomies = append(taxonomies, pair.Value.taxonomy(pair.Key))
	}
	return taxonomies, nil
}

// ListRecords retrieves one page of records from a collection.
// restBase is the content type's REST path segment, e.g. "posts".
func (c *Client) ListRecords(ctx context.Context, restBase string, opts *ListOptions) (*RecordPage, error) {
	path := "/wp/v2/" + strings.Trim(restBase, "/")

	var records []record.Record
	header, err := c.get(ctx, path, opts.query(), &records)
	if err != nil {
		return nil, fmt.Errorf("listing records of %q: %w", restBase, err)
	}

	page := &RecordPage{
		Records:    records,
		Page:       1,
		Total:      len(records),
		TotalPages: 1,
	}
	if opts != nil && opts.Page > 0 {
		page.Page = opts.Page
	}
	if n, err := strconv.Atoi(header.Get("X-WP-Total")); err == nil {
		page.Total = n
	}
	if n, err := strconv.Atoi(header.Get("X-WP-TotalPages")); err == nil {
		page.TotalPages = n
	}
	return page, nil
}
