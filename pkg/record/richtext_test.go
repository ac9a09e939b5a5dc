package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsRichText(t *testing.T) {
	rt, ok := AsRichText(map[string]any{"rendered": "<p>x</p>", "protected": true})
	assert.True(t, ok)
	assert.Equal(t, "<p>x</p>", rt.Rendered)
	assert.True(t, rt.Protected)

	_, ok = AsRichText(map[string]any{"rendered": 5.0})
	assert.False(t, ok, "rendered must be a string")

	_, ok = AsRichText(map[string]any{"raw": "x"})
	assert.False(t, ok)

	_, ok = AsRichText("plain")
	assert.False(t, ok)

	_, ok = AsRichText(nil)
	assert.False(t, ok)
}

func TestAsRichText_OrderedRecord(t *testing.T) {
	rt, ok := AsRichText(New(F("rendered", "Hi"), F("raw", "Hi raw")))
	assert.True(t, ok)
	assert.Equal(t, "Hi", rt.Rendered)
	assert.Equal(t, "Hi raw", rt.Raw)
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "hello world", StripMarkup("<p>hello world</p>"))
	assert.Equal(t, "plain", StripMarkup("plain"))
	assert.Equal(t, "", StripMarkup(""))
	assert.Equal(t, "ab", StripMarkup("<div>a<script>var x = 1;</script><b>b</b></div>"))
}

func TestRichText_Text(t *testing.T) {
	rt := RichText{Rendered: "<p>hello <em>world</em></p>"}
	assert.Equal(t, "hello world", rt.Text())
	assert.Len(t, []rune(rt.Text()), 11)
}
