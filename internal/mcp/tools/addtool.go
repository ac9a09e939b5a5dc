package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that its output type round-trips
// through the schema the SDK infers for it. Panics on a mismatch so that a
// bad output struct fails at startup instead of on the first call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T would be rejected by the
// schema the SDK infers from T, or when T contains a field whose JSON encoding
// is not described by its Go structure.
//
// Two mistakes are caught:
//
//   - nil slices and maps marshal as null while the inferred schema expects an
//     array or object. Tag them omitzero.
//   - types with a custom MarshalJSON (json.RawMessage, record.Record,
//     *template.Document) encode arbitrary JSON while the schema is derived
//     from their fields. Convert them with types.ToAny or render them to a
//     string first.
//
// The untyped any output is not checked. Schema inference failures are left to
// the SDK to report.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	elem := rt
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	if paths := findOpaqueFields(elem, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has custom-marshaled fields at %s\n"+
				"  their JSON does not match the schema inferred from the Go type\n"+
				"  Fix: declare the field as any (or []any) and fill it with types.ToAny",
			toolName, elem, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(elem, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(elem).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  JSON: %s\n"+
				"  Fix: tag nil-defaulting slice and map fields omitzero",
			toolName, elem, err, data,
		))
	}
}

var (
	marshalerType = reflect.TypeFor[json.Marshaler]()
	timeType      = reflect.TypeFor[time.Time]()
)

// opaque reports whether t (or *t) encodes itself.
func opaque(t reflect.Type) bool {
	if t == timeType {
		return false
	}
	return t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType)
}

// findOpaqueFields walks t and returns the paths of fields whose type has its
// own MarshalJSON.
func findOpaqueFields(t reflect.Type, path []string, visited map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if opaque(t) {
		return []string{strings.Join(path, ".")}
	}
	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				continue
			}
			found = append(found, findOpaqueFields(f.Type, append(path, f.Name), visited)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, findOpaqueFields(t.Elem(), append(path, "[]"), visited)...)
	case reflect.Map:
		found = append(found, findOpaqueFields(t.Elem(), append(path, "[value]"), visited)...)
	}
	return found
}
