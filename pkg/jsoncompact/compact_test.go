package jsoncompact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

func TestCompact_TrimsArrays(t *testing.T) {
	result, err := Compact([]byte(`{"tags": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]}`), &Options{MaxArrayItems: 3})
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(result, &parsed))
	assert.Equal(t, []any{float64(1), float64(2), float64(3), "... (7 more items)"}, parsed["tags"])
}

func TestCompact_EmptyAndInvalid(t *testing.T) {
	result, err := Compact(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result)

	_, err = Compact([]byte(`{"broken":`), nil)
	assert.Error(t, err)
}

func TestCompactValue_MaxDepth(t *testing.T) {
	v := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	out := CompactValue(v, &Options{MaxDepth: 2}).(map[string]any)
	assert.Equal(t, "[max depth]", out["a"].(map[string]any)["b"])
}

func TestCompactString_RuneBoundary(t *testing.T) {
	got := compactString("ééééé", &Options{MaxStringLen: 2})
	assert.Equal(t, "éé... (3 more chars)", got)
	assert.Equal(t, "short", compactString("short", &Options{MaxStringLen: 0}))
}

func TestCompactRecord_KeepsOrder(t *testing.T) {
	r, err := record.Parse([]byte(`{"title":{"rendered":"<p>Hello <b>world</b></p>"},"tags":[1,2,3,4],"id":9}`))
	require.NoError(t, err)

	out := CompactRecord(r, &Options{MaxArrayItems: 2, FlattenRichText: true})
	assert.Equal(t, []string{"title", "tags", "id"}, out.Keys())

	title, _ := out.Get("title")
	assert.Equal(t, "Hello world", title)
	tags, _ := out.Get("tags")
	assert.Equal(t, []any{float64(1), float64(2), "... (2 more items)"}, tags)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Hello world","tags":[1,2,"... (2 more items)"],"id":9}`, string(data))
}

func TestCompactRecord_RichTextKeptByDefault(t *testing.T) {
	r, err := record.Parse([]byte(`{"title":{"rendered":"Hi"}}`))
	require.NoError(t, err)

	out := CompactRecord(r, nil)
	title, _ := out.Get("title")
	assert.Equal(t, map[string]any{"rendered": "Hi"}, title)
}

func TestCompactRecords(t *testing.T) {
	rs := []record.Record{record.New(record.F("a", "x")), record.New(record.F("b", "y"))}
	out := CompactRecords(rs, nil)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"b"}, out[1].Keys())
}
