package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

func sampleRecords(t *testing.T) []record.Record {
	t.Helper()
	rs, err := record.ParseList([]byte(`[
		{"id": 1, "status": "publish", "title": {"rendered": "Alpha"}, "tags": [3, 4]},
		{"id": 2, "status": "draft", "title": {"rendered": "Beta"}, "tags": []},
		{"id": 3, "status": "publish", "title": {"rendered": "Alpha"}, "tags": [4]}
	]`))
	require.NoError(t, err)
	return rs
}

func TestEngine_Query_Simple(t *testing.T) {
	result, err := NewEngine().Query(sampleRecords(t), ".title.rendered", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Alpha", "Beta", "Alpha"}, result.Values)
	assert.Equal(t, 3, result.RawCount)
	assert.Equal(t, []int{0, 1, 2}, result.MatchedIndices)
	assert.Equal(t, 1, result.LabelCounts["record[id=2]"])
}

func TestEngine_Query_Deduplicate(t *testing.T) {
	result, err := NewEngine().Query(sampleRecords(t), ".tags[]", true, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(3), float64(4)}, result.Values)
	assert.Equal(t, 3, result.RawCount)
	assert.Equal(t, []int{0, 2}, result.MatchedIndices)
}

func TestEngine_Query_MaxResults(t *testing.T) {
	result, err := NewEngine().Query(sampleRecords(t), ".id", false, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, result.Values)
}

func TestEngine_Query_RuntimeErrorsAreCollected(t *testing.T) {
	result, err := NewEngine().Query(sampleRecords(t), ".status[]", false, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "record[id=1]")
}

func TestEngine_Query_InvalidExpression(t *testing.T) {
	_, err := NewEngine().Query(sampleRecords(t), ".[", false, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEngine_Filter(t *testing.T) {
	kept, err := NewEngine().Filter(sampleRecords(t), `.status == "publish"`)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	id, _ := kept[1].String("id")
	assert.Equal(t, "3", id)

	kept, err = NewEngine().Filter(sampleRecords(t), `.tags | length > 0`)
	require.NoError(t, err)
	assert.Len(t, kept, 2)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "record[id=7]", Label(0, record.New(record.F("id", 7))))
	assert.Equal(t, "record[4]", Label(4, record.New(record.F("slug", "x"))))
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine()
	assert.NoError(t, engine.ValidateExpression(".title.rendered"))
	assert.Error(t, engine.ValidateExpression(".foo["))
}
