package record

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an ordered mapping from field name to value.
// The zero value is an empty record.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// Field is a single name/value pair used to build records.
type Field struct {
	Name  string
	Value any
}

// New builds a record from fields in the given order.
// Later duplicates overwrite the earlier value but keep its position.
func New(fields ...Field) Record {
	m := orderedmap.New[string, any](len(fields))
	for _, f := range fields {
		m.Set(f.Name, f.Value)
	}
	return Record{fields: m}
}

// F is shorthand for constructing a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Parse decodes a single JSON object into a record.
func Parse(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// ParseList decodes a JSON array of objects into records.
func ParseList(data []byte) ([]Record, error) {
	var rs []Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Len returns the number of fields.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns field names in insertion order.
func (r Record) Keys() []string {
	if r.fields == nil {
		return nil
	}
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the value for name and whether the field is present.
func (r Record) Get(name string) (any, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(name)
}

// Has reports whether the field is present (even if null).
func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// String returns the string form of a simple field value.
// Rich-text fields yield their rendered text.
func (r Record) String(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	return SimpleString(v)
}

// ToMap returns an unordered copy suitable for jq or schema validation.
func (r Record) ToMap() map[string]any {
	out := make(map[string]any, r.Len())
	if r.fields == nil {
		return out
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// MarshalJSON encodes the record preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, any]()
	if err := m.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	r.fields = m
	return nil
}
