package template

import (
	"fmt"
)

// zapierGenerator emits a Zapier-style app: one polling trigger per
// lifecycle event and create/update actions.
type zapierGenerator struct {
	env *env
}

func (g *zapierGenerator) Kind() Kind { return KindZapier }

func (g *zapierGenerator) Generate(req Request) (*Document, error) {
	s, err := inspect(req.Records)
	if err != nil {
		return emptyDocument(KindZapier), err
	}

	key := req.key()
	noun := req.name()
	url := "{{bundle.authData.site_url}}/wp-json/wp/v2/" + req.path()

	outputFields := make([]any, 0, len(s.system)+len(s.editable))
	for _, f := range s.system {
		outputFields = append(outputFields, zapField(f))
	}
	for _, f := range s.editable {
		outputFields = append(outputFields, zapField(f))
	}

	inputFields := make([]any, 0, len(s.editable))
	body := make([]kv, 0, len(s.editable))
	for _, f := range s.editable {
		inputFields = append(inputFields, zapField(f))
		body = append(body, kv{f.Name, "{{bundle.inputData." + f.Name + "}}"})
	}

	updateInput := append([]any{object(
		kv{"key", "id"},
		kv{"label", noun + " ID"},
		kv{"type", "integer"},
		kv{"required", true},
	)}, inputFields...)

	trigger := func(event, orderBy string) any {
		return object(
			kv{"key", event + "_" + key},
			kv{"noun", noun},
			kv{"display", object(
				kv{"label", fmt.Sprintf("%s %s", Label(event), noun)},
				kv{"description", fmt.Sprintf("Triggers when a %s is %s.", noun, pastTense(event))},
			)},
			kv{"operation", object(
				kv{"type", "polling"},
				kv{"perform", object(
					kv{"method", "GET"},
					kv{"url", url},
					kv{"params", object(
						kv{"orderby", orderBy},
						kv{"order", "desc"},
						kv{"per_page", 25},
					)},
				)},
				kv{"outputFields", outputFields},
			)},
		)
	}

	action := func(verb, method, target string, input []any) any {
		return object(
			kv{"key", verb + "_" + key},
			kv{"noun", noun},
			kv{"display", object(
				kv{"label", fmt.Sprintf("%s %s", Label(verb), noun)},
				kv{"description", fmt.Sprintf("%ss a %s.", Label(verb), noun)},
			)},
			kv{"operation", object(
				kv{"perform", object(
					kv{"method", method},
					kv{"url", target},
					kv{"body", object(body...)},
				)},
				kv{"inputFields", input},
				kv{"outputFields", outputFields},
			)},
		)
	}

	doc := object(
		kv{"version", "1.0.0"},
		kv{"authentication", object(
			kv{"type", "basic"},
			kv{"fields", []any{object(
				kv{"key", "site_url"},
				kv{"label", "Site URL"},
				kv{"type", "string"},
				kv{"required", true},
			)}},
			kv{"test", object(kv{"url", "{{bundle.authData.site_url}}/wp-json/wp/v2/users/me"})},
			kv{"connectionLabel", "{{bundle.authData.username}}"},
		)},
		kv{"triggers", object(
			kv{"new_" + key, trigger("new", "date")},
			kv{"updated_" + key, trigger("updated", "modified")},
		)},
		kv{"creates", object(
			kv{"create_" + key, action("create", "POST", url, inputFields)},
			kv{"update_" + key, action("update", "POST", url+"/{{bundle.inputData.id}}", updateInput)},
		)},
		kv{"metadata", metadataBlock(g.env, req, s)},
	)

	return &Document{Kind: KindZapier, Fields: s.editable, Body: doc}, nil
}

func zapField(f Field) any {
	return object(
		kv{"key", f.Name},
		kv{"label", f.Label},
		kv{"type", f.Type},
		kv{"required", false},
	)
}

func pastTense(event string) string {
	switch event {
	case "new":
		return "created"
	default:
		return event
	}
}
