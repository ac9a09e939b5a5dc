package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

func orderedDoc() *orderedmap.OrderedMap[string, any] {
	m := orderedmap.New[string, any]()
	m.Set("zeta", "last letter first")
	m.Set("alpha", 1)
	m.Set("flag", "true")
	m.Set("list", []any{"a", map[string]any{"k": 2.5}})
	m.Set("code", "<?php\necho 1;\n")
	return m
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("out/node.yml", FormatJSON))
	assert.Equal(t, FormatJSON, FormatForPath("node.json", FormatYAML))
	assert.Equal(t, FormatYAML, FormatForPath("node", FormatYAML))
}

func TestMarshal_JSONKeepsOrder(t *testing.T) {
	data, err := Marshal(orderedDoc(), FormatJSON)
	require.NoError(t, err)
	assert.Regexp(t, `(?s)^\{\n  "zeta": .*"alpha": 1,.*"code"`, string(data))
	assert.Contains(t, string(data), `"<?php\necho 1;\n"`)
}

func TestMarshal_YAMLKeepsOrderAndTypes(t *testing.T) {
	data, err := Marshal(orderedDoc(), FormatYAML)
	require.NoError(t, err)

	out := string(data)
	assert.Regexp(t, `(?s)^zeta: last letter first\nalpha: 1\n`, out)
	assert.Contains(t, out, `flag: "true"`)
	assert.Contains(t, out, "code: |")

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, "true", back["flag"])
	assert.Equal(t, 1, back["alpha"])
	assert.Equal(t, "<?php\necho 1;\n", back["code"])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.yaml")
	require.NoError(t, WriteFile(path, orderedDoc(), FormatYAML))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zeta:")
}
