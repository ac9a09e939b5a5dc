// Package jsoncompact shrinks JSON values and WordPress records for previews
// by trimming long arrays and strings.
package jsoncompact

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// Options controls compaction behavior.
type Options struct {
	MaxArrayItems int // Trim arrays to N items (0 = no limit)
	MaxStringLen  int // Truncate strings longer than N characters (0 = no limit)
	MaxDepth      int // Max recursion depth (0 = unlimited)
	// FlattenRichText replaces {"rendered": ...} wrappers with their text,
	// markup stripped. Only applies to records.
	FlattenRichText bool
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 500
	DefaultMaxDepth      = 0 // unlimited
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Compact compresses JSON bytes by trimming arrays and strings.
// Returns error if input is not valid JSON.
// If opts is nil, DefaultOptions() is used.
func Compact(data []byte, opts *Options) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return json.Marshal(CompactValue(v, opts))
}

// CompactValue compresses a parsed JSON value (any type from json.Unmarshal).
// If opts is nil, DefaultOptions() is used.
func CompactValue(v any, opts *Options) any {
	if opts == nil {
		opts = DefaultOptions()
	}
	return compactRecursive(v, opts, 0)
}

// CompactRecord compresses every field of a record, keeping field order.
// If opts is nil, DefaultOptions() is used.
func CompactRecord(r record.Record, opts *Options) record.Record {
	if opts == nil {
		opts = DefaultOptions()
	}
	return compactRecord(r, opts, 0)
}

// CompactRecords compresses each record of a batch.
func CompactRecords(records []record.Record, opts *Options) []record.Record {
	out := make([]record.Record, len(records))
	for i, r := range records {
		out[i] = CompactRecord(r, opts)
	}
	return out
}

func compactRecord(r record.Record, opts *Options, depth int) record.Record {
	keys := r.Keys()
	fields := make([]record.Field, 0, len(keys))
	for _, k := range keys {
		v, _ := r.Get(k)
		fields = append(fields, record.F(k, compactRecursive(v, opts, depth+1)))
	}
	return record.New(fields...)
}

func compactRecursive(v any, opts *Options, depth int) any {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return "[max depth]"
	}

	if opts.FlattenRichText {
		if rt, ok := record.AsRichText(v); ok {
			return compactString(rt.Text(), opts)
		}
	}

	switch val := v.(type) {
	case []any:
		return compactArray(val, opts, depth)
	case map[string]any:
		return compactObject(val, opts, depth)
	case record.Record:
		return compactRecord(val, opts, depth)
	case string:
		return compactString(val, opts)
	default:
		return v
	}
}

// compactString truncates on a rune boundary.
func compactString(s string, opts *Options) string {
	if opts.MaxStringLen <= 0 || utf8.RuneCountInString(s) <= opts.MaxStringLen {
		return s
	}
	runes := []rune(s)
	remaining := len(runes) - opts.MaxStringLen
	return string(runes[:opts.MaxStringLen]) + fmt.Sprintf("... (%d more chars)", remaining)
}

func compactArray(arr []any, opts *Options, depth int) []any {
	if len(arr) == 0 {
		return arr
	}

	if opts.MaxArrayItems <= 0 || len(arr) <= opts.MaxArrayItems {
		result := make([]any, len(arr))
		for i, item := range arr {
			result[i] = compactRecursive(item, opts, depth+1)
		}
		return result
	}

	result := make([]any, opts.MaxArrayItems+1)
	for i := 0; i < opts.MaxArrayItems; i++ {
		result[i] = compactRecursive(arr[i], opts, depth+1)
	}
	remaining := len(arr) - opts.MaxArrayItems
	result[opts.MaxArrayItems] = fmt.Sprintf("... (%d more items)", remaining)
	return result
}

func compactObject(obj map[string]any, opts *Options, depth int) map[string]any {
	result := make(map[string]any, len(obj))
	for k, v := range obj {
		result[k] = compactRecursive(v, opts, depth+1)
	}
	return result
}
