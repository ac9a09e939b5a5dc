package profile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

func mustParseList(t *testing.T, s string) []record.Record {
	t.Helper()
	rs, err := record.ParseList([]byte(s))
	require.NoError(t, err)
	return rs
}

func TestProfileFields_Example(t *testing.T) {
	records := mustParseList(t, `[
		{"id":1,"title":"A","status":"publish","price":10},
		{"id":2,"title":"B","status":"draft","price":20}
	]`)

	profiles := ProfileFields(records)
	require.Len(t, profiles, 4)

	price := profiles["price"]
	assert.Equal(t, []string{TypeNumber}, price.Types)
	assert.Equal(t, 100.0, price.FillRate)
	assert.Equal(t, 2, price.DistinctCount)
	assert.Equal(t, CardinalityHigh, price.Cardinality)
}

func TestProfileFields_FirstRecordDefinesFields(t *testing.T) {
	records := mustParseList(t, `[
		{"id":1,"title":"A"},
		{"id":2,"title":"B","extra":"only here"}
	]`)

	profiles := ProfileFields(records)
	assert.Contains(t, profiles, "id")
	assert.Contains(t, profiles, "title")
	assert.NotContains(t, profiles, "extra")
	assert.Equal(t, []string{"id", "title"}, ProfileOrder(records))
}

func TestProfileFields_FillRate(t *testing.T) {
	records := mustParseList(t, `[
		{"id":1,"subtitle":"x"},
		{"id":2,"subtitle":""},
		{"id":3},
		{"id":4,"subtitle":null}
	]`)

	profiles := ProfileFields(records)
	assert.Equal(t, 25.0, profiles["subtitle"].FillRate)
	assert.Equal(t, 1, profiles["subtitle"].Present)
	assert.Equal(t, 100.0, profiles["id"].FillRate)

	for name, p := range profiles {
		assert.GreaterOrEqual(t, p.FillRate, 0.0, name)
		assert.LessOrEqual(t, p.FillRate, 100.0, name)
	}
}

func TestProfileFields_RichTextCountsRenderedValue(t *testing.T) {
	records := mustParseList(t, `[
		{"title":{"rendered":"Same"}},
		{"title":{"rendered":"Same"}},
		{"title":{"rendered":""}}
	]`)

	p := ProfileFields(records)["title"]
	assert.Equal(t, []string{TypeObject}, p.Types)
	assert.Equal(t, 2, p.Present)
	assert.Equal(t, 1, p.DistinctCount)
	assert.Equal(t, CardinalityMedium, p.Cardinality) // 1/3
}

func TestProfileFields_MixedTypes(t *testing.T) {
	records := mustParseList(t, `[{"v":1},{"v":"one"},{"v":true}]`)

	p := ProfileFields(records)["v"]
	assert.Equal(t, []string{TypeBoolean, TypeNumber, TypeString}, p.Types)
	assert.Equal(t, TypeBoolean, p.PrimaryType())
}

func TestProfileFields_StructuredValuesHaveNoDistinctCount(t *testing.T) {
	records := mustParseList(t, `[{"meta":{"a":1}},{"meta":{"a":2}}]`)

	p := ProfileFields(records)["meta"]
	assert.Equal(t, 0, p.DistinctCount)
	assert.Equal(t, CardinalityLow, p.Cardinality)
	assert.Equal(t, 100.0, p.FillRate)
}

func TestProfileFields_Empty(t *testing.T) {
	profiles := ProfileFields(nil)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
	assert.Empty(t, ProfileOrder(nil))
}

func TestFieldProfile_PrimaryTypeNeverFilled(t *testing.T) {
	records := mustParseList(t, `[{"v":null}]`)
	assert.Equal(t, TypeString, ProfileFields(records)["v"].PrimaryType())
}

func TestClassify_Thresholds(t *testing.T) {
	assert.Equal(t, CardinalityLow, Classify(3, 10))
	assert.Equal(t, CardinalityMedium, Classify(4, 10))
	assert.Equal(t, CardinalityMedium, Classify(8, 10))
	assert.Equal(t, CardinalityHigh, Classify(9, 10))
	assert.Equal(t, CardinalityLow, Classify(0, 0))
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[string]int{CardinalityLow: 0, CardinalityMedium: 1, CardinalityHigh: 2}

	for total := 1; total <= 50; total++ {
		prev := -1
		for distinct := 0; distinct <= total; distinct++ {
			got := rank[Classify(distinct, total)]
			assert.GreaterOrEqual(t, got, prev, fmt.Sprintf("distinct=%d total=%d", distinct, total))
			prev = got
		}
	}
}
