package profile

import (
	"sort"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// Cardinality classes.
const (
	CardinalityLow    = "low"
	CardinalityMedium = "medium"
	CardinalityHigh   = "high"
)

const (
	highCardinalityRatio   = 0.8
	mediumCardinalityRatio = 0.3
)

// FieldProfile holds per-field statistics for one content type batch.
type FieldProfile struct {
	Types         []string `json:"types"`          // Sorted set of observed type tags
	FillRate      float64  `json:"fill_rate"`      // Percentage of records with a non-empty value (0-100)
	Present       int      `json:"present"`        // Records with a non-empty value
	DistinctCount int      `json:"distinct_count"` // Distinct simple values
	Cardinality   string   `json:"cardinality"`    // low, medium or high
}

// PrimaryType returns the single type tag, or the first in sorted order
// when several were observed. Fields never filled report string.
func (p FieldProfile) PrimaryType() string {
	if len(p.Types) == 0 {
		return TypeString
	}
	return p.Types[0]
}

// ProfileFields builds a profile for every field of the first record.
//
// Fields that only appear in later records are not profiled: the first
// record is treated as the representative sample. An empty input yields
// an empty map.
func ProfileFields(records []record.Record) map[string]FieldProfile {
	profiles := make(map[string]FieldProfile)
	if len(records) == 0 {
		return profiles
	}

	for _, name := range records[0].Keys() {
		profiles[name] = profileField(name, records)
	}
	return profiles
}

// ProfileOrder returns the profiled field names in first-record order.
func ProfileOrder(records []record.Record) []string {
	if len(records) == 0 {
		return []string{}
	}
	return records[0].Keys()
}

func profileField(name string, records []record.Record) FieldProfile {
	types := make(map[string]bool)
	distinct := make(map[string]bool)
	present := 0

	for _, r := range records {
		v, ok := r.Get(name)
		if !ok || record.IsEmpty(v) {
			continue
		}
		present++
		types[InferType(v)] = true

		if s, ok := record.SimpleString(v); ok {
			distinct[s] = true
		}
	}

	tags := make([]string, 0, len(types))
	for t := range types {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return FieldProfile{
		Types:         tags,
		FillRate:      100 * float64(present) / float64(len(records)),
		Present:       present,
		DistinctCount: len(distinct),
		Cardinality:   Classify(len(distinct), len(records)),
	}
}

// Classify assigns a cardinality class from the ratio of distinct values to records.
func Classify(distinct, total int) string {
	if total <= 0 {
		return CardinalityLow
	}
	ratio := float64(distinct) / float64(total)
	switch {
	case ratio > highCardinalityRatio:
		return CardinalityHigh
	case ratio > mediumCardinalityRatio:
		return CardinalityMedium
	default:
		return CardinalityLow
	}
}
