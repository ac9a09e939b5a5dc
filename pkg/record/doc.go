// Package record models WordPress REST records and the metadata that
// describes their content types and taxonomies.
//
// A [Record] keeps the key order of the JSON object it was decoded from, so
// field enumeration is stable: the first record of a batch is the structural
// sample for every profile and template built from it.
//
//	var records []record.Record
//	if err := json.Unmarshal(body, &records); err != nil {
//	    return err
//	}
//	for _, name := range records[0].Keys() {
//	    v, _ := records[0].Get(name)
//	    if rt, ok := record.AsRichText(v); ok {
//	        fmt.Println(name, rt.Rendered)
//	    }
//	}
//
// # Rich text
//
// WordPress wraps rich-text fields (title, content, excerpt, guid) in an
// object shaped like {"rendered": "..."}. [AsRichText] is the single
// discriminated check for that shape.
package record
