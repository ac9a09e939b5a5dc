package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/pkg/profile"
	"github.com/usestring/wpbridge-mcp/pkg/record"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// ProfileFieldsInput is the input for wp_profile_fields.
type ProfileFieldsInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key or REST base"`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to sample (default: DEFAULT_PER_PAGE)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
}

// ToolProfileFields profiles every field of the first record across a batch:
// observed types, fill rate and cardinality.
func ToolProfileFields(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ProfileFieldsInput) (*sdkmcp.CallToolResult, types.ProfileOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ProfileFieldsInput) (*sdkmcp.CallToolResult, types.ProfileOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.ProfileOutput{}, err
		}

		b, err := d.FetchBatch(ctx, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage))
		if err != nil {
			return nil, types.ProfileOutput{}, err
		}

		return nil, types.ProfileOutput{
			ContentType: b.ContentType.Key,
			Records:     len(b.Records),
			Fields:      ProfileRows(b.Records),
		}, nil
	}
}

// AnalyzeContentInput is the input for wp_analyze_content.
type AnalyzeContentInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key or REST base"`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to analyze (default: DEFAULT_PER_PAGE, capped by MAX_RECORDS)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
	SummaryOnly bool          `json:"summary_only,omitempty" jsonschema:"Return only the one-line summary"`
}

// ToolAnalyzeContent computes status, date, author, length and taxonomy
// statistics for a batch.
func ToolAnalyzeContent(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyzeContentInput) (*sdkmcp.CallToolResult, types.AnalyzeOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyzeContentInput) (*sdkmcp.CallToolResult, types.AnalyzeOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.AnalyzeOutput{}, err
		}

		b, a, err := d.Analyze(ctx, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage))
		if err != nil {
			return nil, types.AnalyzeOutput{}, err
		}

		output := types.AnalyzeOutput{
			ContentType: b.ContentType.Key,
			Summary:     a.Summary(),
			Resource:    AnalysisResource(b.ContentType.Key),
		}
		if !input.SummaryOnly {
			output.Analysis = a
		}
		return nil, output, nil
	}
}

// ProfileRows flattens field profiles into rows in first-record order.
func ProfileRows(records []record.Record) []types.FieldRow {
	profiles := profile.ProfileFields(records)
	order := profile.ProfileOrder(records)

	rows := make([]types.FieldRow, 0, len(order))
	for _, name := range order {
		p := profiles[name]
		rows = append(rows, types.FieldRow{
			Name:          name,
			Types:         p.Types,
			FillRate:      p.FillRate,
			Present:       p.Present,
			DistinctCount: p.DistinctCount,
			Cardinality:   p.Cardinality,
		})
	}
	return rows
}
