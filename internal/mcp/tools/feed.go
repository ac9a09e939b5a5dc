package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/pkg/jsoncompact"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// Feed kinds reported by wp_load_json_feed.
const (
	FeedKindItems    = "items"
	FeedKindLinks    = "links"
	FeedKindDocument = "document"
)

// LoadFeedInput is the input for wp_load_json_feed.
type LoadFeedInput struct {
	URL  string `json:"url" jsonschema:"Absolute URL of a JSON document: a list of items or a list of .json links"`
	Full bool   `json:"full,omitempty" jsonschema:"Return every item unabridged. By default items are capped at DEFAULT_PER_PAGE and long values trimmed."`
}

// ToolLoadFeed downloads a remote JSON feed and classifies it.
func ToolLoadFeed(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoadFeedInput) (*sdkmcp.CallToolResult, types.LoadFeedOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoadFeedInput) (*sdkmcp.CallToolResult, types.LoadFeedOutput, error) {
		if err := validateAbsoluteURL(input.URL); err != nil {
			return nil, types.LoadFeedOutput{}, err
		}

		ctx, cancel := context.WithTimeout(ctx, d.requestTimeout())
		defer cancel()

		feed, err := d.Client.FetchJSON(ctx, input.URL)
		if err != nil {
			return nil, types.LoadFeedOutput{}, WrapWordPressError(err)
		}

		opts := d.CompactOptions()
		if input.Full {
			opts = &jsoncompact.Options{}
		}

		output := types.LoadFeedOutput{URL: input.URL}
		switch {
		case !feed.IsList():
			output.Kind = FeedKindDocument
			output.Value = jsoncompact.CompactValue(feed.Value, opts)
		case len(feed.Links) > 0 && len(feed.Links) == len(feed.Items):
			output.Kind = FeedKindLinks
			output.Count = len(feed.Links)
			output.Links = feed.Links
		default:
			output.Kind = FeedKindItems
			output.Count = len(feed.Items)
			items := feed.Items
			if !input.Full && d.Config.DefaultPerPage > 0 && len(items) > d.Config.DefaultPerPage {
				items = items[:d.Config.DefaultPerPage]
				output.Truncated = true
			}
			output.Items = make([]any, len(items))
			for i, item := range items {
				output.Items[i] = jsoncompact.CompactValue(item, opts)
			}
			output.Links = feed.Links
		}
		return nil, output, nil
	}
}
