package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// TaxonomyUsage describes how a term-list field is used across a batch.
type TaxonomyUsage struct {
	RecordsTagged int         `json:"records_tagged"` // Records carrying at least one term
	Terms         []TermCount `json:"terms"`          // Per-term record counts, most used first
}

// TermCount is the number of records carrying a term.
type TermCount struct {
	TermID  int64 `json:"term_id"`
	Records int   `json:"records"`
}

// taxonomyUsage builds one bitmap of record positions per term so that
// duplicate term IDs inside a record count once.
func taxonomyUsage(records []record.Record, fields []string) map[string]TaxonomyUsage {
	out := make(map[string]TaxonomyUsage)

	for _, field := range fields {
		terms := make(map[int64]*roaring.Bitmap)
		tagged := roaring.New()

		for i, r := range records {
			v, ok := r.Get(field)
			if !ok {
				continue
			}
			list, ok := v.([]any)
			if !ok {
				continue
			}
			for _, item := range list {
				id, ok := termID(item)
				if !ok {
					continue
				}
				bm, exists := terms[id]
				if !exists {
					bm = roaring.New()
					terms[id] = bm
				}
				bm.Add(uint32(i))
				tagged.Add(uint32(i))
			}
		}

		if len(terms) == 0 {
			continue
		}

		usage := TaxonomyUsage{
			RecordsTagged: int(tagged.GetCardinality()),
			Terms:         make([]TermCount, 0, len(terms)),
		}
		for id, bm := range terms {
			usage.Terms = append(usage.Terms, TermCount{TermID: id, Records: int(bm.GetCardinality())})
		}
		sort.Slice(usage.Terms, func(i, j int) bool {
			if usage.Terms[i].Records != usage.Terms[j].Records {
				return usage.Terms[i].Records > usage.Terms[j].Records
			}
			return usage.Terms[i].TermID < usage.Terms[j].TermID
		})
		out[field] = usage
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func termID(v any) (int64, bool) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
		return int64(val), true
	case int:
		return int64(val), true
	case int64:
		return val, true
	case string:
		id, err := strconv.ParseInt(val, 10, 64)
		return id, err == nil
	}
	return 0, false
}
