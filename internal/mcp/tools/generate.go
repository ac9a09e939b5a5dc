package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/export"
	"github.com/usestring/wpbridge-mcp/pkg/template"
	"github.com/usestring/wpbridge-mcp/pkg/types"
)

// GenerateTemplateInput is the input for wp_generate_template.
type GenerateTemplateInput struct {
	ContentType string        `json:"content_type" jsonschema:"Content type key or REST base"`
	Kind        string        `json:"kind" jsonschema:"Template kind: single-node-schema (n8n-node), two-step-pipeline (n8n-workflow), trigger-action-pair (zapier), mapped-pipeline (make) or webhook-config (webhook)"`
	Format      string        `json:"format,omitempty" jsonschema:"Document encoding: json (default) or yaml"`
	TargetURL   string        `json:"target_url,omitempty" jsonschema:"Delivery URL for webhook-config documents (default: WEBHOOK_TARGET_URL)"`
	Limit       int           `json:"limit,omitempty" jsonschema:"Records to sample; only the first shapes the template, up to 10 are previewed (default: DEFAULT_PER_PAGE)"`
	Filter      *RecordFilter `json:"filter,omitempty" jsonschema:"Status, search, ordering and extra REST parameters"`
	Fresh       bool          `json:"fresh,omitempty" jsonschema:"Bypass the batch cache"`
}

// ToolGenerateTemplate renders an automation platform template from a
// content type sample.
func ToolGenerateTemplate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateTemplateInput) (*sdkmcp.CallToolResult, types.GenerateTemplateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateTemplateInput) (*sdkmcp.CallToolResult, types.GenerateTemplateOutput, error) {
		if err := validateSelection(input.ContentType, input.Limit, input.Filter); err != nil {
			return nil, types.GenerateTemplateOutput{}, err
		}
		kind, err := template.ParseKind(input.Kind)
		if err != nil {
			return nil, types.GenerateTemplateOutput{}, ErrInvalidInput(fmt.Sprintf("%v; valid kinds: %s", err, kindList(d.Templates)))
		}
		format, err := export.ParseFormat(input.Format)
		if err != nil {
			return nil, types.GenerateTemplateOutput{}, ErrInvalidInput(err.Error())
		}

		doc, b, err := d.Generate(ctx, kind, batchRequest(input.ContentType, input.Limit, input.Filter, input.Fresh, d.Config.DefaultPerPage), input.TargetURL)
		if err != nil {
			return nil, types.GenerateTemplateOutput{}, err
		}

		data, err := export.Marshal(doc, format)
		if err != nil {
			return nil, types.GenerateTemplateOutput{}, err
		}

		output := types.GenerateTemplateOutput{
			Kind:        string(kind),
			ContentType: b.ContentType.Key,
			Fields:      doc.Fields,
			Format:      string(format),
			Document:    string(data),
		}
		// Webhook documents embed a fresh secret; re-reading would rotate it.
		if kind != template.KindWebhook {
			output.Resource = TemplateResource(string(kind), b.ContentType.Key)
		}
		return nil, output, nil
	}
}

func kindList(reg *template.Registry) string {
	kinds := reg.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
