// Package jsonschema infers JSON Schemas (Draft 2020-12) describing the
// records of a WordPress content type.
package jsonschema

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// RecordSchema is the schema inferred for one content type batch.
type RecordSchema struct {
	Schema      *jsonschema.Schema `json:"schema"`       // JSON Schema (Draft 2020-12)
	SampleCount int                `json:"sample_count"` // Records used
}

// Options controls record schema inference.
type Options struct {
	// Title and Description are copied onto the root schema.
	Title       string
	Description string
	// StrictRequired marks fields required when present and non-null in every record.
	// Default: true
	StrictRequired bool
	// AdditionalProperties sets additionalProperties on the root object.
	// Default: nil (not set)
	AdditionalProperties *bool
}

// DefaultOptions returns the default inference options.
func DefaultOptions() *Options {
	return &Options{StrictRequired: true}
}

// InferRecords builds an object schema whose properties are the fields of
// the first record, in record order. Types of each property are merged
// across every record that carries the field. Returns nil for no records.
func InferRecords(records []record.Record, opts *Options) *RecordSchema {
	if len(records) == 0 {
		return nil
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Type:        "object",
		Title:       opts.Title,
		Description: opts.Description,
		Properties:  jsonschema.NewProperties(),
	}

	var required []string
	for _, name := range records[0].Keys() {
		var observed []*jsonschema.Schema
		present, nulls := 0, 0
		for _, r := range records {
			v, ok := r.Get(name)
			if !ok {
				continue
			}
			present++
			if v == nil {
				nulls++
			}
			observed = append(observed, InferValue(v))
		}
		root.Properties.Set(name, mergeSchemas(observed))

		if present == len(records) && nulls == 0 {
			required = append(required, name)
		}
	}

	if opts.StrictRequired && len(required) > 0 {
		root.Required = required
	}
	if opts.AdditionalProperties != nil {
		if *opts.AdditionalProperties {
			root.AdditionalProperties = jsonschema.TrueSchema
		} else {
			root.AdditionalProperties = jsonschema.FalseSchema
		}
	}

	return &RecordSchema{Schema: root, SampleCount: len(records)}
}

// InferValue generates a schema for a single decoded value.
// Rich-text wrappers are described as objects with a string "rendered" property.
func InferValue(v any) *jsonschema.Schema {
	if v == nil {
		return &jsonschema.Schema{Type: "null"}
	}

	switch val := v.(type) {
	case bool:
		return &jsonschema.Schema{Type: "boolean"}

	case float64:
		// JSON unmarshals all numbers as float64
		if math.Trunc(val) == val && !math.IsInf(val, 0) && !math.IsNaN(val) {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{Type: "number"}

	case json.Number:
		if _, err := val.Int64(); err == nil {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{Type: "number"}

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &jsonschema.Schema{Type: "integer"}

	case string:
		return &jsonschema.Schema{Type: "string"}

	case []any:
		return inferArraySchema(val)

	case map[string]any:
		return inferObjectSchema(val)

	case record.Record:
		return inferObjectSchema(val.ToMap())

	default:
		return &jsonschema.Schema{}
	}
}

func inferArraySchema(arr []any) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "array"}
	if len(arr) == 0 {
		return schema
	}

	items := make([]*jsonschema.Schema, 0, len(arr))
	for _, item := range arr {
		items = append(items, InferValue(item))
	}
	schema.Items = mergeSchemas(items)
	return schema
}

func inferObjectSchema(obj map[string]any) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		schema.Properties.Set(k, InferValue(obj[k]))
	}
	return schema
}

// mergeSchemas unions the schemas observed for one field.
// Nullable fields become anyOf [T, null].
func mergeSchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 0 {
		return &jsonschema.Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	types := make(map[string]bool)
	var objects, arrays []*jsonschema.Schema
	for _, s := range schemas {
		if s.Type == "" {
			continue
		}
		types[s.Type] = true
		switch s.Type {
		case "object":
			objects = append(objects, s)
		case "array":
			arrays = append(arrays, s)
		}
	}

	// integer widens to number when both are seen
	if types["integer"] && types["number"] {
		delete(types, "integer")
	}

	if len(types) == 1 {
		for t := range types {
			switch t {
			case "object":
				return mergeObjectSchemas(objects)
			case "array":
				return mergeArraySchemas(arrays)
			default:
				return &jsonschema.Schema{Type: t}
			}
		}
	}

	typeList := make([]string, 0, len(types))
	for t := range types {
		typeList = append(typeList, t)
	}
	sort.Strings(typeList)

	anyOf := make([]*jsonschema.Schema, 0, len(typeList))
	for _, t := range typeList {
		switch t {
		case "object":
			anyOf = append(anyOf, mergeObjectSchemas(objects))
		case "array":
			anyOf = append(anyOf, mergeArraySchemas(arrays))
		default:
			anyOf = append(anyOf, &jsonschema.Schema{Type: t})
		}
	}
	if len(anyOf) == 1 {
		return anyOf[0]
	}
	return &jsonschema.Schema{AnyOf: anyOf}
}

func mergeObjectSchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	all := make(map[string][]*jsonschema.Schema)
	for _, s := range schemas {
		if s.Properties == nil {
			continue
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			all[pair.Key] = append(all[pair.Key], pair.Value)
		}
	}

	merged := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged.Properties.Set(k, mergeSchemas(all[k]))
	}
	return merged
}

func mergeArraySchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	var items []*jsonschema.Schema
	for _, s := range schemas {
		if s.Items != nil {
			items = append(items, s.Items)
		}
	}
	merged := &jsonschema.Schema{Type: "array"}
	if len(items) > 0 {
		merged.Items = mergeSchemas(items)
	}
	return merged
}

// ToMap converts a schema to a generic map for embedding in documents.
func ToMap(schema *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
