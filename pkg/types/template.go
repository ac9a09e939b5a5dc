package types

import "github.com/usestring/wpbridge-mcp/pkg/template"

// GenerateTemplateOutput is the output of wp_generate_template.
//
// Document is the serialized template in the requested format, so the
// platform's key order survives transport.
type GenerateTemplateOutput struct {
	Kind        string           `json:"kind"`
	ContentType string           `json:"content_type"`
	Fields      []template.Field `json:"fields,omitzero"`
	Format      string           `json:"format"`
	Document    string           `json:"document"`
	Resource    *ResourceRef     `json:"resource,omitempty"`
}
