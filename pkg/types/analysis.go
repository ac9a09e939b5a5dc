package types

import (
	"github.com/usestring/wpbridge-mcp/internal/schema"
	"github.com/usestring/wpbridge-mcp/pkg/analysis"
)

// FieldRow is one field profile, flattened for tabular display.
type FieldRow struct {
	Name          string   `json:"name"`
	Types         []string `json:"types,omitzero"`
	FillRate      float64  `json:"fill_rate"`
	Present       int      `json:"present"`
	DistinctCount int      `json:"distinct_count"`
	Cardinality   string   `json:"cardinality"`
}

// ProfileOutput is the output of wp_profile_fields. Fields follow the first
// record's key order.
type ProfileOutput struct {
	ContentType string     `json:"content_type"`
	Records     int        `json:"records"`
	Fields      []FieldRow `json:"fields,omitzero"`
}

// AnalyzeOutput is the output of wp_analyze_content.
type AnalyzeOutput struct {
	ContentType string             `json:"content_type"`
	Summary     string             `json:"summary"`
	Analysis    *analysis.Analysis `json:"analysis,omitempty"`
	Resource    *ResourceRef       `json:"resource,omitempty"`
}

// InferSchemaOutput is the output of wp_infer_schema.
type InferSchemaOutput struct {
	ContentType string         `json:"content_type"`
	SampleCount int            `json:"sample_count"`
	Schema      map[string]any `json:"schema,omitzero"`
}

// CheckSampleOutput is the output of wp_check_sample.
type CheckSampleOutput struct {
	ContentType string               `json:"content_type"`
	Checked     int                  `json:"checked"`
	Valid       int                  `json:"valid"`
	Issues      []schema.RecordIssue `json:"issues,omitzero"`
	Hint        string               `json:"hint,omitempty"`
}
