package record

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RichText is a field value shaped like {"rendered": "<p>...</p>"}.
// Protected is set when the API marks the content as password protected.
type RichText struct {
	Rendered  string
	Raw       string
	Protected bool
}

// AsRichText reports whether v structurally matches {rendered: string}.
// Extra keys (raw, protected) are read when present.
func AsRichText(v any) (RichText, bool) {
	var get func(string) (any, bool)
	switch val := v.(type) {
	case map[string]any:
		get = func(k string) (any, bool) { x, ok := val[k]; return x, ok }
	case Record:
		get = val.Get
	default:
		return RichText{}, false
	}

	rendered, ok := get("rendered")
	if !ok {
		return RichText{}, false
	}
	s, ok := rendered.(string)
	if !ok {
		return RichText{}, false
	}

	rt := RichText{Rendered: s}
	if raw, ok := get("raw"); ok {
		rt.Raw, _ = raw.(string)
	}
	if p, ok := get("protected"); ok {
		rt.Protected, _ = p.(bool)
	}
	return rt, true
}

// Text returns the rendered text with markup removed.
func (rt RichText) Text() string {
	return StripMarkup(rt.Rendered)
}

// StripMarkup removes HTML tags and returns the text content.
// Script and style bodies are dropped.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
