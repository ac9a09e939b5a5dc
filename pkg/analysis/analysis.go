// Package analysis computes descriptive statistics over a batch of records:
// status, date and author histograms, content length buckets and taxonomy
// term usage. It never fails on missing or malformed data; records that
// lack a field simply do not contribute to the statistic that needs it.
package analysis

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/wpbridge-mcp/pkg/profile"
	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// StatusUnknown is the bucket for records without a status field.
const StatusUnknown = "unknown"

// Content length buckets, in ascending order.
const (
	LengthVeryShort = "very_short" // < 100 characters
	LengthShort     = "short"      // < 500
	LengthMedium    = "medium"     // < 2000
	LengthLong      = "long"       // < 5000
	LengthVeryLong  = "very_long"  // >= 5000
)

// LengthBuckets lists the content length bucket names in ascending order.
var LengthBuckets = []string{LengthVeryShort, LengthShort, LengthMedium, LengthLong, LengthVeryLong}

// DefaultTaxonomyFields are the term-list fields WordPress posts carry.
var DefaultTaxonomyFields = []string{"categories", "tags"}

// Bucket is one entry of a chronologically ordered histogram.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Analysis holds aggregate statistics for one content type batch.
type Analysis struct {
	Total           int                             `json:"total"`
	Fields          map[string]profile.FieldProfile `json:"fields"`
	FieldOrder      []string                        `json:"field_order"`
	Status          map[string]int                  `json:"status"`
	CreatedByMonth  []Bucket                        `json:"created_by_month"`
	ModifiedByMonth []Bucket                        `json:"modified_by_month"`
	Authors         map[string]int                  `json:"authors,omitempty"`
	ContentLength   map[string]int                  `json:"content_length"`
	Taxonomies      map[string]TaxonomyUsage        `json:"taxonomies,omitempty"`
}

// Options tunes which fields feed the taxonomy statistics.
type Options struct {
	// TaxonomyFields names record fields holding lists of term IDs.
	// Default: DefaultTaxonomyFields.
	TaxonomyFields []string
}

// Analyze computes statistics over records using default options.
func Analyze(records []record.Record) *Analysis {
	return AnalyzeWithOptions(records, nil)
}

// AnalyzeWithOptions computes statistics over records.
func AnalyzeWithOptions(records []record.Record, opts *Options) *Analysis {
	taxFields := DefaultTaxonomyFields
	if opts != nil && len(opts.TaxonomyFields) > 0 {
		taxFields = opts.TaxonomyFields
	}

	a := &Analysis{
		Total:           len(records),
		Fields:          profile.ProfileFields(records),
		FieldOrder:      profile.ProfileOrder(records),
		Status:          make(map[string]int),
		CreatedByMonth:  []Bucket{},
		ModifiedByMonth: []Bucket{},
		ContentLength:   make(map[string]int, len(LengthBuckets)),
	}
	for _, b := range LengthBuckets {
		a.ContentLength[b] = 0
	}

	created := make(map[string]int)
	modified := make(map[string]int)
	authors := make(map[string]int)

	for _, r := range records {
		status := StatusUnknown
		if s, ok := r.String("status"); ok && s != "" {
			status = s
		}
		a.Status[status]++

		if month, ok := monthOf(r, "date"); ok {
			created[month]++
		}
		if month, ok := monthOf(r, "modified"); ok {
			modified[month]++
		}

		if v, ok := r.Get("author"); ok && !record.IsEmpty(v) {
			if s, ok := record.SimpleString(v); ok {
				authors[s]++
			}
		}

		if n, ok := contentLength(r); ok {
			a.ContentLength[LengthBucket(n)]++
		}
	}

	a.CreatedByMonth = sortedBuckets(created)
	a.ModifiedByMonth = sortedBuckets(modified)
	if len(authors) > 0 {
		a.Authors = authors
	}
	a.Taxonomies = taxonomyUsage(records, taxFields)

	return a
}

// LengthBucket returns the bucket name for a content length in characters.
func LengthBucket(n int) string {
	switch {
	case n < 100:
		return LengthVeryShort
	case n < 500:
		return LengthShort
	case n < 2000:
		return LengthMedium
	case n < 5000:
		return LengthLong
	default:
		return LengthVeryLong
	}
}

// contentLength measures the content field after markup is stripped.
func contentLength(r record.Record) (int, bool) {
	v, ok := r.Get("content")
	if !ok || v == nil {
		return 0, false
	}
	var text string
	if rt, ok := record.AsRichText(v); ok {
		text = rt.Text()
	} else if s, ok := v.(string); ok {
		text = record.StripMarkup(s)
	} else {
		return 0, false
	}
	return utf8.RuneCountInString(text), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the ISO-8601 variants the WordPress API emits.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthOf(r record.Record, field string) (string, bool) {
	s, ok := r.String(field)
	if !ok || s == "" {
		return "", false
	}
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format("2006-01"), true
}

func sortedBuckets(counts map[string]int) []Bucket {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, Bucket{Key: k, Count: counts[k]})
	}
	return buckets
}

var printer = message.NewPrinter(language.English)

// Summary renders a short human-readable description of the analysis.
func (a *Analysis) Summary() string {
	published := a.Status["publish"]
	return printer.Sprintf("%d records, %d published, %d fields profiled, %d authors",
		a.Total, published, len(a.Fields), len(a.Authors))
}
