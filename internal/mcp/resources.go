package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/internal/mcp/tools"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

// Resource URI scheme: wpbridge://
// Supported URIs:
//   wpbridge://template/{platform}/{content_type}
//   wpbridge://analysis/{content_type}

const scheme = "wpbridge://"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "wpbridge://template/{platform}/{content_type}",
		Name:        "Automation Template",
		Description: "Full generated template document for a platform kind (single-node-schema, two-step-pipeline, trigger-action-pair, mapped-pipeline) and content type, rendered from a fresh sample. The wp_generate_template tool returns the same document plus its field list.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceTemplate)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "wpbridge://analysis/{content_type}",
		Name:        "Content Analysis",
		Description: "Complete analysis of a content type: field profiles, status, monthly and author histograms, content length buckets and taxonomy usage. High context cost for large sites - wp_analyze_content with summary_only gives the headline numbers.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceAnalysis)
}

// Resource handlers

func (s *Server) handleResourceTemplate(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	kind, err := template.ParseKind(params["platform"])
	if err != nil {
		return nil, tools.ErrInvalidInput(err.Error())
	}
	// Reading a webhook document would mint and expose a new secret.
	if kind == template.KindWebhook {
		return nil, tools.ErrInvalidInput("webhook-config documents are only available through wp_generate_template")
	}

	doc, _, err := s.deps.Generate(ctx, kind, batch.Request{
		ContentType: params["content_type"],
		Limit:       s.deps.Config.DefaultPerPage,
	}, "")
	if err != nil {
		return nil, err
	}

	return toResourceResult(req.Params.URI, doc)
}

func (s *Server) handleResourceAnalysis(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	_, a, err := s.deps.Analyze(ctx, batch.Request{
		ContentType: params["content_type"],
		Limit:       s.deps.Config.MaxRecords,
	})
	if err != nil {
		return nil, err
	}

	return toResourceResult(req.Params.URI, a)
}

// Helper functions

// parseResourceURI extracts parameters from a wpbridge:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, scheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + scheme)
	}

	path := strings.TrimPrefix(uri, scheme)
	parts := strings.Split(path, "/")

	if len(parts) == 0 || parts[0] == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "template":
		if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
			return nil, tools.ErrInvalidInput("template URI requires platform and content type")
		}
		params["platform"] = parts[1]
		params["content_type"] = parts[2]

	case "analysis":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("analysis URI requires content type")
		}
		params["content_type"] = parts[1]

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
