package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: wp_content_types_list
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_content_types_list",
		Description: "List the WordPress site's content types (posts, pages, custom post types) with key, name, rest_base and attached taxonomies. Start here: every other record tool takes one of these keys as content_type.",
	}, ToolContentTypesList(d))

	// Tool 2: wp_taxonomies_list
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_taxonomies_list",
		Description: "List taxonomies (categories, tags, custom taxonomies) with the content types they attach to. Pass content_type to list only that type's taxonomies.",
	}, ToolTaxonomiesList(d))

	// Tool 3: wp_fetch_records
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_fetch_records",
		Description: "Fetch a batch of records for a content type. Returns records (compacted by default: long strings and arrays trimmed, rendered HTML flattened to text), field_order of the first record, and the collection total. Set full=true for raw records. Batches are cached; set fresh=true to refetch.",
	}, ToolFetchRecords(d))

	// Tool 4: wp_query_records
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_query_records",
		Description: "Extract values from a batch of records with a jq expression (e.g. .title.rendered, .meta | keys). Optional where predicate selects records first. Returns values, per-record errors and per-record match counts. Use wp_fetch_records instead to view whole records.",
	}, ToolQueryRecords(d))

	// Tool 5: wp_profile_fields
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_profile_fields",
		Description: "Profile every field of a content type across a batch: observed value types, fill rate (percent of records with a non-empty value), distinct count and cardinality class (low, medium, high). Fields follow the first record's order; fields only present in later records are not profiled.",
	}, ToolProfileFields(d))

	// Tool 6: wp_analyze_content
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_analyze_content",
		Description: "Compute dashboard statistics for a content type: status counts, records created and modified per month, author counts, content length buckets, taxonomy term usage and the field profiles. Set summary_only=true for a one-line summary.",
	}, ToolAnalyzeContent(d))

	// Tool 7: wp_infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_infer_schema",
		Description: "Infer a JSON Schema (Draft 2020-12) for a content type from a batch of records. Properties follow the first record's field order; types are merged across records. Set first_only=true to see the exact sample templates are built from.",
	}, ToolInferSchema(d))

	// Tool 8: wp_check_sample
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_check_sample",
		Description: "Validate every record of a batch against the schema of its first record and list the records that drift (missing fields, changed types). Run this before wp_generate_template to see whether the first record is a representative sample.",
	}, ToolCheckSample(d))

	// Tool 9: wp_generate_template
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_generate_template",
		Description: "Generate an automation platform template from a content type sample. Kinds: single-node-schema (n8n node definition), two-step-pipeline (n8n workflow), trigger-action-pair (Zapier app), mapped-pipeline (Make scenario), webhook-config (webhook registration with a fresh secret and PHP handlers). Returns the editable fields and the document serialized as JSON or YAML.",
	}, ToolGenerateTemplate(d))

	// Tool 10: wp_send_webhook
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_send_webhook",
		Description: "POST a JSON payload to an automation webhook (for example an n8n webhook trigger), optionally with a bearer token. Returns the status code and the decoded JSON or raw text reply.",
	}, ToolSendWebhook(d))

	// Tool 11: wp_auth_token
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_auth_token",
		Description: "Obtain a JWT from the site's JWT Authentication plugin (/wp-json/jwt-auth/v1/token) for a username and password.",
	}, ToolAuthToken(d))

	// Tool 12: wp_load_json_feed
	AddTool(srv, &sdkmcp.Tool{
		Name:        "wp_load_json_feed",
		Description: "Download a remote JSON document and classify it: a list of items (returned compacted), a list of .json links, or a single document.",
	}, ToolLoadFeed(d))
}
