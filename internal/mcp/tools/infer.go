package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/query"
	"github.com/usestring/wpbridge-mcp/internal/schema"
	wpschema "github.com/usestring/wpbridge-mcp/pkg/jsonschema"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// InferSchemaInput is the input for wp_infer_schema.
type InferSchemaInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key or REST base"`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to sample (default: DEFAULT_PER_PAGE)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
	FirstOnly   bool          `json:"first_only,omitempty" jsonschema:"Infer from the first record only, the sample templates are built from"`
	Strict      *bool         `json:"strict,omitempty" jsonschema:"Mark fields required when non-null in every sampled record (default: true)"`
}

// ToolInferSchema infers a JSON Schema for a content type from a batch.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.InferSchemaOutput{}, err
		}

		b, err := d.FetchBatch(ctx, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage))
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}
		if len(b.Records) == 0 {
			return nil, types.InferSchemaOutput{}, ErrEmptyBatch(b.ContentType.Key)
		}

		records := b.Records
		if input.FirstOnly {
			records = records[:1]
		}

		opts := wpschema.DefaultOptions()
		opts.Title = b.ContentType.DisplayName()
		opts.Description = b.ContentType.Description
		if input.Strict != nil {
			opts.StrictRequired = *input.Strict
		}

		inferred := wpschema.InferRecords(records, opts)
		m, err := wpschema.ToMap(inferred.Schema)
		if err != nil {
			return nil, types.InferSchemaOutput{}, fmt.Errorf("encoding schema: %w", err)
		}

		return nil, types.InferSchemaOutput{
			ContentType: b.ContentType.Key,
			SampleCount: inferred.SampleCount,
			Schema:      m,
		}, nil
	}
}

// CheckSampleInput is the input for wp_check_sample.
type CheckSampleInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key or REST base"`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to check (default: DEFAULT_PER_PAGE)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
}

// ToolCheckSample validates every record of a batch against the schema of
// its first record. Issues show where later records drift from the sample
// that generated templates are shaped by.
func ToolCheckSample(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckSampleInput) (*sdkmcp.CallToolResult, types.CheckSampleOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckSampleInput) (*sdkmcp.CallToolResult, types.CheckSampleOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.CheckSampleOutput{}, err
		}

		b, err := d.FetchBatch(ctx, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage))
		if err != nil {
			return nil, types.CheckSampleOutput{}, err
		}
		if len(b.Records) == 0 {
			return nil, types.CheckSampleOutput{}, ErrEmptyBatch(b.ContentType.Key)
		}

		report, _, err := schema.CheckAgainstSample(b.Records, query.Label)
		if err != nil {
			return nil, types.CheckSampleOutput{}, fmt.Errorf("checking sample: %w", err)
		}

		output := types.CheckSampleOutput{
			ContentType: b.ContentType.Key,
			Checked:     report.Checked,
			Valid:       report.Valid,
			Issues:      report.Issues,
		}
		if len(report.Issues) > 0 {
			output.Hint = "Records that drift from the first record may carry fields the generated templates do not map. Use wp_profile_fields to see fill rates."
		}
		return nil, output, nil
	}
}
