package types

import "github.com/usestring/wpbridge-mcp/pkg/record"

// ContentTypesOutput is the output of wp_content_types_list.
type ContentTypesOutput struct {
	ContentTypes []record.ContentType `json:"content_types,omitzero"`
	Hint         string               `json:"hint,omitempty"`
}

// TaxonomiesOutput is the output of wp_taxonomies_list.
type TaxonomiesOutput struct {
	Taxonomies []record.Taxonomy `json:"taxonomies,omitzero"`
}

// FetchRecordsOutput is the output of wp_fetch_records.
//
// Records are untyped JSON objects; FieldOrder carries the first record's
// key order, which JSON objects do not preserve on the consumer side.
type FetchRecordsOutput struct {
	ContentType string   `json:"content_type"`
	Total       int      `json:"total"`    // Collection size reported by WordPress
	Returned    int      `json:"returned"` // Records in this batch
	Pages       int      `json:"pages"`
	Truncated   bool     `json:"truncated"`
	FieldOrder  []string `json:"field_order,omitzero"`
	Records     []any    `json:"records,omitzero"`
	Hint        string   `json:"hint,omitempty"`
}

// QueryRecordsOutput is the output of wp_query_records.
type QueryRecordsOutput struct {
	ContentType    string         `json:"content_type"`
	Expression     string         `json:"expression"`
	Values         []any          `json:"values,omitzero"`
	Errors         []string       `json:"errors,omitzero"`
	RawCount       int            `json:"raw_count"`
	RecordsScanned int            `json:"records_scanned"`
	LabelCounts    map[string]int `json:"label_counts,omitzero"`
}
