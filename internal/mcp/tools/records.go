package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/pkg/jsoncompact"
	"github.com/usestring/wpbridge-mcp/pkg/record"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// maxQueryResults caps the values returned by wp_query_records.
const maxQueryResults = 500

// FetchRecordsInput is the input for wp_fetch_records.
type FetchRecordsInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key (post, page, product) or REST base (posts). Obtain from wp_content_types_list."`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to fetch (default: DEFAULT_PER_PAGE, capped by MAX_RECORDS)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
	Full        bool          `json:"full,omitempty" jsonschema:"Return records unabridged. By default long strings and arrays are trimmed and rendered HTML is flattened to text."`
}

// ToolFetchRecords fetches a batch of records for a content type.
func ToolFetchRecords(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FetchRecordsInput) (*sdkmcp.CallToolResult, types.FetchRecordsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FetchRecordsInput) (*sdkmcp.CallToolResult, types.FetchRecordsOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.FetchRecordsOutput{}, err
		}

		b, err := d.FetchBatch(ctx, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage))
		if err != nil {
			return nil, types.FetchRecordsOutput{}, err
		}

		records := b.Records
		if !input.Full {
			opts := d.CompactOptions()
			opts.FlattenRichText = true
			records = jsoncompact.CompactRecords(records, opts)
		}

		out, err := recordsToAny(records)
		if err != nil {
			return nil, types.FetchRecordsOutput{}, err
		}

		output := types.FetchRecordsOutput{
			ContentType: b.ContentType.Key,
			Total:       b.Total,
			Returned:    len(b.Records),
			Pages:       b.Pages,
			Truncated:   b.Truncated,
			FieldOrder:  fieldOrder(b.Records),
			Records:     out,
		}
		if len(b.Records) == 0 {
			output.Hint = "No records matched. Loosen the filter or check the status (drafts need credentials)."
		} else {
			output.Hint = fmt.Sprintf("Use wp_generate_template(content_type=%q, kind=...) to turn this sample into a platform template.", b.ContentType.Key)
		}
		return nil, output, nil
	}
}

// QueryRecordsInput is the input for wp_query_records.
type QueryRecordsInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key or REST base"`
	Expression  string        `json:"expression" jsonschema:"jq expression run against each record, e.g. .title.rendered or .meta | keys"`
	Where       string        `json:"where,omitempty" jsonschema:"Optional jq predicate; only records for which it is truthy are queried, e.g. .featured == true"`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to fetch (default: DEFAULT_PER_PAGE)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Deduplicate bool          `json:"deduplicate,omitempty" jsonschema:"Drop repeated values"`
	MaxResults  int           `json:"max_results,omitempty" jsonschema:"Max values to return (default: DEFAULT_QUERY_LIMIT, max: 500)"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
}

// ToolQueryRecords extracts values from a batch with a jq expression.
func ToolQueryRecords(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryRecordsInput) (*sdkmcp.CallToolResult, types.QueryRecordsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryRecordsInput) (*sdkmcp.CallToolResult, types.QueryRecordsOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.QueryRecordsOutput{}, err
		}
		if input.Expression == "" {
			return nil, types.QueryRecordsOutput{}, ErrInvalidInput("expression is required")
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, types.QueryRecordsOutput{}, ErrInvalidInput(err.Error())
		}
		if input.Where != "" {
			if err := d.Query.ValidateExpression(input.Where); err != nil {
				return nil, types.QueryRecordsOutput{}, ErrInvalidInput("where: " + err.Error())
			}
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = d.Config.DefaultQueryLimit
		}
		maxResults = min(maxResults, maxQueryResults)

		b, err := d.FetchBatch(ctx, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage))
		if err != nil {
			return nil, types.QueryRecordsOutput{}, err
		}

		records := b.Records
		if input.Where != "" {
			records, err = d.Query.Filter(records, input.Where)
			if err != nil {
				return nil, types.QueryRecordsOutput{}, ErrInvalidInput("where: " + err.Error())
			}
		}

		result, err := d.Query.Query(records, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			return nil, types.QueryRecordsOutput{}, ErrInvalidInput(err.Error())
		}

		output := types.QueryRecordsOutput{
			ContentType:    b.ContentType.Key,
			Expression:     input.Expression,
			Values:         result.Values,
			Errors:         result.Errors,
			RawCount:       result.RawCount,
			RecordsScanned: len(records),
			LabelCounts:    result.LabelCounts,
		}
		return nil, output, nil
	}
}

// fieldOrder returns the key order of the first record.
func fieldOrder(records []record.Record) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0].Keys()
}
