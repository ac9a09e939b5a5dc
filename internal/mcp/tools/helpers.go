// Package tools contains MCP tool implementations for wpbridge.
package tools

import (
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/pkg/record"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// MIME type constants.
const (
	MimeJSON = "application/json"
	MimeYAML = "application/yaml"
)

// Resource URI prefixes.
const (
	TemplateURIPrefix = "wpbridge://template/"
	AnalysisURIPrefix = "wpbridge://analysis/"
)

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// TemplateResource points at the full document of a generated template.
func TemplateResource(kind, contentType string) *types.ResourceRef {
	return &types.ResourceRef{
		URI:  fmt.Sprintf("%s%s/%s", TemplateURIPrefix, kind, contentType),
		MIME: MimeJSON,
		Hint: "Re-renders the template from a freshly fetched sample.",
	}
}

// AnalysisResource points at the full analysis of a content type.
func AnalysisResource(contentType string) *types.ResourceRef {
	return &types.ResourceRef{
		URI:  AnalysisURIPrefix + contentType,
		MIME: MimeJSON,
	}
}

// recordsToAny converts ordered records to plain JSON objects for tool output.
func recordsToAny(records []record.Record) ([]any, error) {
	out := make([]any, 0, len(records))
	for _, r := range records {
		v, err := types.ToAny(r)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// RecordFilter narrows the records a batch tool samples.
type RecordFilter struct {
	Status  string            `json:"status,omitempty" jsonschema:"Filter by status: publish, draft, pending, private, future or any"`
	Search  string            `json:"search,omitempty" jsonschema:"Free-text search passed to WordPress"`
	OrderBy string            `json:"orderby,omitempty" jsonschema:"Sort field, e.g. date, modified, title, id"`
	Order   string            `json:"order,omitempty" jsonschema:"Sort direction: asc or desc"`
	Params  map[string]string `json:"params,omitempty" jsonschema:"Extra REST query parameters, e.g. {\"categories\": \"4\"}"`
}

// batchRequest builds a fetcher request from the common selection inputs.
func batchRequest(contentType string, limit int, f *RecordFilter, fresh bool, defaultLimit int) batch.Request {
	if limit <= 0 {
		limit = defaultLimit
	}
	req := batch.Request{
		ContentType: contentType,
		Limit:       limit,
		Fresh:       fresh,
	}
	if f != nil {
		req.Status = f.Status
		req.Search = f.Search
		req.OrderBy = f.OrderBy
		req.Order = f.Order
		req.Filters = f.Params
	}
	return req
}

// validateSelection checks the common selection inputs.
func validateSelection(contentType string, limit int, f *RecordFilter) error {
	if contentType == "" {
		return ErrInvalidInput("content_type is required")
	}
	if limit < 0 {
		return ErrInvalidInput("limit must not be negative")
	}
	if f != nil {
		switch f.Order {
		case "", "asc", "desc":
		default:
			return ErrInvalidInput("order must be 'asc' or 'desc'")
		}
	}
	return nil
}
