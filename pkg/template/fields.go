package template

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/wpbridge-mcp/pkg/profile"
	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// maxPreviewFields caps the field names listed in a document's metadata.
const maxPreviewFields = 10

// systemFields are identity, audit and computed-link fields. They are
// excluded from editable field lists but kept in read-only output lists.
var systemFields = map[string]bool{
	"id":           true,
	"date":         true,
	"date_gmt":     true,
	"modified":     true,
	"modified_gmt": true,
	"guid":         true,
	"link":         true,
	"_links":       true,
	"_embedded":    true,
}

// IsSystemField reports whether name is an identity, audit or link field.
func IsSystemField(name string) bool {
	return systemFields[name]
}

// sample is the classified structure of the first record.
type sample struct {
	names    []string
	system   []Field
	editable []Field
}

// inspect classifies the fields of the first record.
func inspect(records []record.Record) (sample, error) {
	if len(records) == 0 {
		return sample{}, ErrEmptyInput
	}

	first := records[0]
	s := sample{
		names:    first.Keys(),
		system:   []Field{},
		editable: []Field{},
	}
	for _, name := range s.names {
		v, _ := first.Get(name)
		f := describe(name, v)
		if IsSystemField(name) {
			s.system = append(s.system, f)
		} else {
			s.editable = append(s.editable, f)
		}
	}
	return s, nil
}

func describe(name string, v any) Field {
	typ := profile.InferType(v)
	_, rich := record.AsRichText(v)
	return Field{
		Name:     name,
		Label:    Label(name),
		Type:     typ,
		Default:  profile.DefaultValue(typ),
		RichText: rich,
	}
}

// Label turns a field name into a display label: underscores become
// spaces and the first letter is upper-cased.
func Label(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// pascal converts a key like "product_review" to "ProductReview".
func pascal(key string) string {
	var b strings.Builder
	upper := true
	for _, r := range key {
		if r == '_' || r == '-' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type kv struct {
	k string
	v any
}

func object(pairs ...kv) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.New[string, any](len(pairs))
	for _, p := range pairs {
		m.Set(p.k, p.v)
	}
	return m
}

func metadataBlock(e *env, req Request, s sample) *orderedmap.OrderedMap[string, any] {
	preview := s.names
	if len(preview) > maxPreviewFields {
		preview = preview[:maxPreviewFields]
	}
	names := make([]any, len(preview))
	for i, n := range preview {
		names[i] = n
	}

	return object(
		kv{"generated_at", e.now().UTC().Format(time.RFC3339)},
		kv{"content_type", req.key()},
		kv{"content_type_name", req.name()},
		kv{"field_count", len(s.names)},
		kv{"fields_preview", names},
	)
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
