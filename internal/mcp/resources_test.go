package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/internal/mcp/tools"
	"github.com/usestring/wpbridge-mcp/internal/query"
	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wp/v2/types":
			fmt.Fprint(w, `{"post":{"name":"Posts","slug":"post","rest_base":"posts","taxonomies":["category"]}}`)
		case "/wp-json/wp/v2/taxonomies":
			fmt.Fprint(w, `{"category":{"name":"Categories","slug":"category","rest_base":"categories","types":["post"]}}`)
		case "/wp-json/wp/v2/posts":
			w.Header().Set("X-WP-Total", "1")
			w.Header().Set("X-WP-TotalPages", "1")
			fmt.Fprint(w, `[{"id":7,"date":"2026-01-02T03:04:05","status":"publish","title":{"rendered":"Hello"},"categories":[1]}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(site.Close)

	c := client.New(client.WithBaseURL(site.URL), client.WithHTTPClient(site.Client()))
	cfg := &config.Config{WordPressURL: site.URL, DefaultPerPage: 10, MaxRecords: 50}
	deps := &tools.Deps{
		Client:    c,
		Fetcher:   batch.New(c, batch.Config{Workers: 1, PerPage: 10, MaxRecords: 50, CacheTTL: time.Minute}),
		Templates: template.NewRegistry(),
		Query:     query.NewEngine(),
		Config:    cfg,
	}

	s, err := NewServer(deps, WithBuiltinTools(), WithBuiltinPrompts())
	require.NoError(t, err)
	return s
}

func readRequest(uri string) *sdkmcp.ReadResourceRequest {
	return &sdkmcp.ReadResourceRequest{Params: &sdkmcp.ReadResourceParams{URI: uri}}
}

func TestParseResourceURI(t *testing.T) {
	params, err := parseResourceURI("wpbridge://template/zapier/product")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"platform": "zapier", "content_type": "product"}, params)

	params, err = parseResourceURI("wpbridge://analysis/post")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"content_type": "post"}, params)

	for _, bad := range []string{
		"other://analysis/post",
		"wpbridge://",
		"wpbridge://template/zapier",
		"wpbridge://analysis/",
		"wpbridge://records/post",
	} {
		_, err := parseResourceURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
	_, err = NewServer(&tools.Deps{})
	assert.Error(t, err)
}

func TestHandleResourceTemplate(t *testing.T) {
	s := newTestServer(t)
	uri := "wpbridge://template/mapped-pipeline/post"

	res, err := s.handleResourceTemplate(context.Background(), readRequest(uri))
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	assert.Equal(t, tools.MimeJSON, res.Contents[0].MIMEType)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &doc))
	assert.NotEmpty(t, doc)
}

func TestHandleResourceTemplate_RejectsWebhook(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handleResourceTemplate(context.Background(), readRequest("wpbridge://template/webhook/post"))
	assert.Error(t, err)
}

func TestHandleResourceAnalysis(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleResourceAnalysis(context.Background(), readRequest("wpbridge://analysis/posts"))
	require.NoError(t, err)

	var a map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &a))
	assert.EqualValues(t, 1, a["total"])
	assert.Contains(t, a, "taxonomies")
}
