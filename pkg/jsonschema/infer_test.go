package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

func parseList(t *testing.T, s string) []record.Record {
	t.Helper()
	rs, err := record.ParseList([]byte(s))
	require.NoError(t, err)
	return rs
}

func propertyNames(rs *RecordSchema) []string {
	var names []string
	for pair := rs.Schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func TestInferRecords_PropertiesFollowFirstRecord(t *testing.T) {
	rs := InferRecords(parseList(t, `[
		{"id":1,"title":{"rendered":"A"},"price":9.5,"featured":true},
		{"id":2,"title":{"rendered":"B"},"price":10,"featured":false,"extra":1}
	]`), nil)
	require.NotNil(t, rs)

	assert.Equal(t, 2, rs.SampleCount)
	assert.Equal(t, "object", rs.Schema.Type)
	assert.Equal(t, []string{"id", "title", "price", "featured"}, propertyNames(rs))

	id, _ := rs.Schema.Properties.Get("id")
	assert.Equal(t, "integer", id.Type)

	price, _ := rs.Schema.Properties.Get("price")
	assert.Equal(t, "number", price.Type, "integer and number widen to number")

	title, _ := rs.Schema.Properties.Get("title")
	assert.Equal(t, "object", title.Type)
	rendered, ok := title.Properties.Get("rendered")
	require.True(t, ok)
	assert.Equal(t, "string", rendered.Type)

	assert.Equal(t, []string{"id", "title", "price", "featured"}, rs.Schema.Required)
}

func TestInferRecords_NullableAndOptional(t *testing.T) {
	rs := InferRecords(parseList(t, `[
		{"id":1,"subtitle":"x","note":"a"},
		{"id":2,"subtitle":null},
		{"id":3,"subtitle":"y","note":"b"}
	]`), nil)

	subtitle, _ := rs.Schema.Properties.Get("subtitle")
	require.Len(t, subtitle.AnyOf, 2)
	assert.Equal(t, "null", subtitle.AnyOf[0].Type)
	assert.Equal(t, "string", subtitle.AnyOf[1].Type)

	assert.Equal(t, []string{"id"}, rs.Schema.Required)
}

func TestInferRecords_Options(t *testing.T) {
	closed := false
	rs := InferRecords(parseList(t, `[{"id":1}]`), &Options{
		Title:                "Product",
		AdditionalProperties: &closed,
	})

	assert.Equal(t, "Product", rs.Schema.Title)
	assert.Nil(t, rs.Schema.Required)

	data, err := json.Marshal(rs.Schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"additionalProperties":false`)
}

func TestInferRecords_Empty(t *testing.T) {
	assert.Nil(t, InferRecords(nil, nil))
}

func TestInferValue_Arrays(t *testing.T) {
	s := InferValue([]any{1.0, 2.0})
	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, "integer", s.Items.Type)

	empty := InferValue([]any{})
	assert.Equal(t, "array", empty.Type)
	assert.Nil(t, empty.Items)
}

func TestToMap(t *testing.T) {
	rs := InferRecords(parseList(t, `[{"id":1}]`), nil)
	m, err := ToMap(rs.Schema)
	require.NoError(t, err)
	assert.Equal(t, "object", m["type"])
	assert.Contains(t, m, "properties")
}
