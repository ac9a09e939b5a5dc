// Package profile derives per-field metadata from a batch of records:
// a coarse type tag for every observed value and fill-rate/cardinality
// statistics for every field of the structural sample.
package profile

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// Type tags assigned by InferType.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
)

// InferType maps a single observed value to a coarse type tag.
// The boolean check runs before the numeric one; nil and anything
// unrecognized fall back to string.
func InferType(v any) string {
	switch v.(type) {
	case bool:
		return TypeBoolean
	case float64, float32, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return TypeNumber
	case map[string]any, []any, []string, record.Record,
		*orderedmap.OrderedMap[string, any]:
		return TypeObject
	}
	return TypeString
}

// DefaultValue returns the zero default a template field of the given type starts with.
func DefaultValue(typ string) any {
	switch typ {
	case TypeNumber:
		return 0
	case TypeBoolean:
		return false
	case TypeObject:
		return map[string]any{}
	}
	return ""
}
