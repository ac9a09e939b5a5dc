package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	r, err := Parse([]byte(`{"zeta": 1, "alpha": "a", "mid": true}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, r.Keys())
	assert.Equal(t, 3, r.Len())

	v, ok := r.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestParseList(t *testing.T) {
	rs, err := ParseList([]byte(`[{"id": 1, "title": {"rendered": "A"}}, {"id": 2}]`))
	require.NoError(t, err)
	require.Len(t, rs, 2)

	title, ok := rs[0].String("title")
	require.True(t, ok)
	assert.Equal(t, "A", title)
	assert.False(t, rs[1].Has("title"))
}

func TestRecord_MarshalRoundTripKeepsOrder(t *testing.T) {
	r := New(F("b", 2), F("a", "x"), F("c", nil))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":"x","c":null}`, string(data))
}

func TestRecord_ZeroValue(t *testing.T) {
	var r Record
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Keys())
	_, ok := r.Get("id")
	assert.False(t, ok)
	assert.Empty(t, r.ToMap())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestNew_DuplicateKeepsFirstPosition(t *testing.T) {
	r := New(F("a", 1), F("b", 2), F("a", 3))
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	v, _ := r.Get("a")
	assert.Equal(t, 3, v)
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"string", "x", false},
		{"zero number", 0.0, false},
		{"false", false, false},
		{"empty list", []any{}, true},
		{"list", []any{1.0}, false},
		{"empty map", map[string]any{}, true},
		{"empty rendered", map[string]any{"rendered": ""}, true},
		{"rendered", map[string]any{"rendered": "Hi"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.value))
		})
	}
}

func TestSimpleString(t *testing.T) {
	s, ok := SimpleString(10.0)
	assert.True(t, ok)
	assert.Equal(t, "10", s)

	s, ok = SimpleString(9.99)
	assert.True(t, ok)
	assert.Equal(t, "9.99", s)

	s, ok = SimpleString(true)
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	s, ok = SimpleString(42)
	assert.True(t, ok)
	assert.Equal(t, "42", s)

	s, ok = SimpleString(map[string]any{"rendered": "Hello"})
	assert.True(t, ok)
	assert.Equal(t, "Hello", s)

	_, ok = SimpleString(map[string]any{"a": 1})
	assert.False(t, ok)

	_, ok = SimpleString([]any{1.0})
	assert.False(t, ok)
}
