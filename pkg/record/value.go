package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// IsEmpty reports whether a value counts as missing for statistics:
// nil, "", an empty list or map, or rich text with no rendered text.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if rt, ok := AsRichText(v); ok {
		return rt.Rendered == ""
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case Record:
		return val.Len() == 0
	}
	return false
}

// SimpleString returns the string form of a primitive value.
// Rich text yields its rendered text. Other structured values return false.
func SimpleString(v any) (string, bool) {
	if rt, ok := AsRichText(v); ok {
		return rt.Rendered, true
	}
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case json.Number:
		return val.String(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), true
	}
	return "", false
}
