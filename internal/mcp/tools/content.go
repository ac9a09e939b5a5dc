package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// ContentTypesInput is the input for wp_content_types_list.
type ContentTypesInput struct{}

// ToolContentTypesList lists the site's content types in registration order.
func ToolContentTypesList(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ContentTypesInput) (*sdkmcp.CallToolResult, types.ContentTypesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ContentTypesInput) (*sdkmcp.CallToolResult, types.ContentTypesOutput, error) {
		cts, err := d.Fetcher.ContentTypes(ctx)
		if err != nil {
			return nil, types.ContentTypesOutput{}, WrapWordPressError(err)
		}

		output := types.ContentTypesOutput{
			ContentTypes: cts,
			Hint:         "Pass a key to wp_fetch_records, wp_analyze_content or wp_generate_template.",
		}
		return nil, output, nil
	}
}

// TaxonomiesInput is the input for wp_taxonomies_list.
type TaxonomiesInput struct {
	ContentType string `json:"content_type,omitempty" jsonschema:"Only list taxonomies attached to this content type"`
}

// ToolTaxonomiesList lists the site's taxonomies, optionally for one content type.
func ToolTaxonomiesList(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input TaxonomiesInput) (*sdkmcp.CallToolResult, types.TaxonomiesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input TaxonomiesInput) (*sdkmcp.CallToolResult, types.TaxonomiesOutput, error) {
		taxes, err := d.Fetcher.Taxonomies(ctx)
		if err != nil {
			return nil, types.TaxonomiesOutput{}, WrapWordPressError(err)
		}

		if input.ContentType != "" {
			ct, err := d.Fetcher.ResolveContentType(ctx, input.ContentType)
			if err != nil {
				return nil, types.TaxonomiesOutput{}, WrapWordPressError(err)
			}
			filtered := taxes[:0:0]
			for _, tax := range taxes {
				for _, t := range tax.Types {
					if t == ct.Key {
						filtered = append(filtered, tax)
						break
					}
				}
			}
			taxes = filtered
		}

		return nil, types.TaxonomiesOutput{Taxonomies: taxes}, nil
	}
}
