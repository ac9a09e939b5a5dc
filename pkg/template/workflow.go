package template

import (
	"fmt"
	"strings"
)

const scheduleStepName = "Schedule Trigger"

// workflowGenerator emits an n8n-style workflow: a schedule trigger feeding
// a single fetch-and-export step, wired through an explicit connection list.
type workflowGenerator struct {
	env *env
}

func (g *workflowGenerator) Kind() Kind { return KindWorkflow }

func (g *workflowGenerator) Generate(req Request) (*Document, error) {
	s, err := inspect(req.Records)
	if err != nil {
		return emptyDocument(KindWorkflow), err
	}
	nodeName, err := referencedNode(req.Node)
	if err != nil {
		return emptyDocument(KindWorkflow), err
	}

	name := req.name()
	fetchStep := "Fetch and Export " + name

	fields := make([]any, 0, len(s.editable))
	for _, f := range s.editable {
		fields = append(fields, object(
			kv{"name", f.Name},
			kv{"label", f.Label},
			kv{"type", f.Type},
		))
	}

	trigger := object(
		kv{"id", g.env.newID()},
		kv{"name", scheduleStepName},
		kv{"type", "n8n-nodes-base.scheduleTrigger"},
		kv{"typeVersion", 1.2},
		kv{"position", []any{0, 0}},
		kv{"parameters", object(
			kv{"rule", object(kv{"interval", []any{object(
				kv{"field", "hours"},
				kv{"hoursInterval", 1},
			)}})},
		)},
	)

	var fetch any
	if nodeName != "" {
		fetch = object(
			kv{"id", g.env.newID()},
			kv{"name", fetchStep},
			kv{"type", "n8n-nodes-wordpress." + nodeName},
			kv{"typeVersion", 1},
			kv{"position", []any{260, 0}},
			kv{"parameters", object(
				kv{"operation", OpGetAll},
				kv{"limit", 100},
				kv{"fields", fields},
			)},
			kv{"credentials", object(kv{"wordpressApi", object(kv{"name", "WordPress"})})},
		)
	} else {
		fetch = object(
			kv{"id", g.env.newID()},
			kv{"name", fetchStep},
			kv{"type", "n8n-nodes-base.httpRequest"},
			kv{"typeVersion", 4.2},
			kv{"position", []any{260, 0}},
			kv{"parameters", object(
				kv{"method", "GET"},
				kv{"url", fmt.Sprintf("={{$env.WP_BASE_URL}}/wp-json/wp/v2/%s", req.path())},
				kv{"authentication", "genericCredentialType"},
				kv{"genericAuthType", "httpBasicAuth"},
				kv{"sendQuery", true},
				kv{"queryParameters", object(kv{"parameters", []any{
					object(kv{"name", "per_page"}, kv{"value", "100"}),
					object(kv{"name", "_fields"}, kv{"value", strings.Join(s.names, ",")}),
				}})},
				kv{"fields", fields},
				kv{"options", object(kv{"response", object(kv{"response", object(kv{"responseFormat", "json"})})})},
			)},
			kv{"credentials", object(kv{"httpBasicAuth", object(kv{"name", "WordPress"})})},
		)
	}

	connections := object(
		kv{scheduleStepName, object(kv{"main", []any{[]any{object(
			kv{"node", fetchStep},
			kv{"type", "main"},
			kv{"index", 0},
		)}}})},
	)

	body := object(
		kv{"name", fmt.Sprintf("Export %s from WordPress", name)},
		kv{"nodes", []any{trigger, fetch}},
		kv{"connections", connections},
		kv{"active", false},
		kv{"settings", object(kv{"executionOrder", "v1"})},
		kv{"metadata", metadataBlock(g.env, req, s)},
	)

	return &Document{Kind: KindWorkflow, Fields: s.editable, Body: body}, nil
}

// ErrNodeKind is returned when Request.Node is not a node definition.
var ErrNodeKind = fmt.Errorf("referenced document must be a %s document", KindNode)

// referencedNode returns the machine name of a supplied node definition.
func referencedNode(doc *Document) (string, error) {
	if doc == nil || doc.Empty() {
		return "", nil
	}
	if doc.Kind != KindNode {
		return "", ErrNodeKind
	}
	v, ok := doc.Body.Get("name")
	if !ok {
		return "", nil
	}
	name, _ := v.(string)
	return name, nil
}
