package template

import (
	"fmt"
	"strconv"
)

// scenarioGenerator emits a Make-style scenario: a watch module feeding a
// spreadsheet row module with one lettered column per editable field.
type scenarioGenerator struct {
	env *env
}

func (g *scenarioGenerator) Kind() Kind { return KindScenario }

// ColumnLabel returns the spreadsheet column letter for a zero-based index:
// 0 is A, 25 is Z, 26 is AA.
func ColumnLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

// Expression returns the Make reference to a field of the watch module's output.
func Expression(f Field) string {
	if f.RichText {
		return fmt.Sprintf("{{1.%s.rendered}}", f.Name)
	}
	return fmt.Sprintf("{{1.%s}}", f.Name)
}

func (g *scenarioGenerator) Generate(req Request) (*Document, error) {
	s, err := inspect(req.Records)
	if err != nil {
		return emptyDocument(KindScenario), err
	}
	nodeName, err := referencedNode(req.Node)
	if err != nil {
		return emptyDocument(KindScenario), err
	}

	watchModule := "wordpress:watchPosts"
	if nodeName != "" {
		watchModule = "wordpress:" + nodeName
	}

	mappings := make([]any, 0, len(s.editable))
	values := make([]kv, 0, len(s.editable))
	for i, f := range s.editable {
		col := ColumnLabel(i)
		expr := Expression(f)
		mappings = append(mappings, object(
			kv{"column", col},
			kv{"label", f.Label},
			kv{"field", f.Name},
			kv{"type", f.Type},
			kv{"expression", expr},
		))
		values = append(values, kv{strconv.Itoa(i), expr})
	}

	flow := []any{
		object(
			kv{"id", 1},
			kv{"module", watchModule},
			kv{"version", 1},
			kv{"parameters", object(
				kv{"postType", req.path()},
				kv{"limit", 10},
			)},
			kv{"mapper", object()},
			kv{"metadata", object(kv{"designer", object(kv{"x", 0}, kv{"y", 0})})},
		),
		object(
			kv{"id", 2},
			kv{"module", "google-sheets:addRow"},
			kv{"version", 2},
			kv{"parameters", object()},
			kv{"mapper", object(
				kv{"mode", "select"},
				kv{"valueInputOption", "USER_ENTERED"},
				kv{"insertDataOption", "INSERT_ROWS"},
				kv{"values", object(values...)},
			)},
			kv{"metadata", object(kv{"designer", object(kv{"x", 300}, kv{"y", 0})})},
		),
	}

	body := object(
		kv{"name", fmt.Sprintf("%s to spreadsheet", req.name())},
		kv{"flow", flow},
		kv{"mappings", mappings},
		kv{"scheduling", object(kv{"type", "interval"}, kv{"interval", 900})},
		kv{"metadata", metadataBlock(g.env, req, s)},
	)

	return &Document{Kind: KindScenario, Fields: s.editable, Body: body}, nil
}
