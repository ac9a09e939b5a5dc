package template

import (
	"fmt"
)

// Operations offered by a node definition.
const (
	OpGetAll = "getAll"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

var operationLabels = []struct{ value, name, action string }{
	{OpGetAll, "Get Many", "Get many records"},
	{OpGet, "Get", "Get a record"},
	{OpCreate, "Create", "Create a record"},
	{OpUpdate, "Update", "Update a record"},
	{OpDelete, "Delete", "Delete a record"},
}

// nodeGenerator emits a reusable n8n-style node definition with an
// operation selector and field groups shown per operation.
type nodeGenerator struct {
	env *env
}

func (g *nodeGenerator) Kind() Kind { return KindNode }

// NodeName returns the machine name a node definition uses for a content type.
func NodeName(contentType string) string {
	return "wordpress" + pascal(contentType)
}

func (g *nodeGenerator) Generate(req Request) (*Document, error) {
	s, err := inspect(req.Records)
	if err != nil {
		return emptyDocument(KindNode), err
	}

	name := req.name()

	options := make([]any, 0, len(operationLabels))
	for _, op := range operationLabels {
		options = append(options, object(
			kv{"name", op.name},
			kv{"value", op.value},
			kv{"action", op.action},
		))
	}

	properties := []any{
		object(
			kv{"displayName", "Operation"},
			kv{"name", "operation"},
			kv{"type", "options"},
			kv{"noDataExpression", true},
			kv{"options", options},
			kv{"default", OpGetAll},
		),
		object(
			kv{"displayName", name + " ID"},
			kv{"name", "recordId"},
			kv{"type", "string"},
			kv{"required", true},
			kv{"default", ""},
			kv{"displayOptions", showFor(OpGet, OpUpdate, OpDelete)},
		),
		object(
			kv{"displayName", "Limit"},
			kv{"name", "limit"},
			kv{"type", "number"},
			kv{"typeOptions", object(kv{"minValue", 1}, kv{"maxValue", 100})},
			kv{"default", 10},
			kv{"displayOptions", showFor(OpGetAll)},
		),
	}
	used := map[string]bool{"operation": true, "recordId": true, "limit": true}
	for _, f := range s.editable {
		properties = append(properties, object(
			kv{"displayName", f.Label},
			kv{"name", propertyName(f.Name, used)},
			kv{"type", f.Type},
			kv{"default", f.Default},
			kv{"displayOptions", showFor(OpCreate, OpUpdate)},
		))
	}

	body := object(
		kv{"displayName", "WordPress " + name},
		kv{"name", NodeName(req.key())},
		kv{"icon", "file:wordpress.svg"},
		kv{"group", []any{"transform"}},
		kv{"version", 1},
		kv{"subtitle", `={{$parameter["operation"]}}`},
		kv{"description", fmt.Sprintf("Read and write %s records through the WordPress REST API", name)},
		kv{"defaults", object(kv{"name", name})},
		kv{"inputs", []any{"main"}},
		kv{"outputs", []any{"main"}},
		kv{"credentials", []any{object(kv{"name", "wordpressApi"}, kv{"required", true})}},
		kv{"requestDefaults", object(
			kv{"baseURL", "={{$credentials.url}}/wp-json/wp/v2"},
			kv{"url", "/" + req.path()},
			kv{"headers", object(
				kv{"Accept", "application/json"},
				kv{"Content-Type", "application/json"},
			)},
		)},
		kv{"properties", properties},
		kv{"metadata", metadataBlock(g.env, req, s)},
	)

	return &Document{Kind: KindNode, Fields: s.editable, Body: body}, nil
}

// FieldPropertyPrefix is prepended to a record field whose name is already
// taken by a node control property (operation, recordId, limit), repeatedly
// until the name is free.
const FieldPropertyPrefix = "field_"

func propertyName(name string, used map[string]bool) string {
	for used[name] {
		name = FieldPropertyPrefix + name
	}
	used[name] = true
	return name
}

func showFor(ops ...string) any {
	list := make([]any, len(ops))
	for i, op := range ops {
		list[i] = op
	}
	return object(kv{"show", object(kv{"operation", list})})
}
