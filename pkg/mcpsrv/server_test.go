package mcpsrv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/pkg/client"
)

func authEcho(t *testing.T, want string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, want, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_PrefersJWT(t *testing.T) {
	srv := authEcho(t, "Bearer jwt")
	c := NewClient(&config.Config{
		WordPressURL:      srv.URL + "/wp-json",
		Username:          "admin",
		AppPassword:       "abcd efgh",
		JWTToken:          "jwt",
		HTTPClientTimeout: time.Second,
	})
	assert.Equal(t, srv.URL, c.BaseURL())
	_, err := c.ListContentTypes(context.Background())
	require.NoError(t, err)
}

func TestNewClient_ApplicationPassword(t *testing.T) {
	// base64("admin:abcd efgh")
	srv := authEcho(t, "Basic YWRtaW46YWJjZCBlZmdo")
	c := NewClient(&config.Config{
		WordPressURL:      srv.URL,
		Username:          "admin",
		AppPassword:       "abcd efgh",
		HTTPClientTimeout: time.Second,
	})
	_, err := c.ListContentTypes(context.Background())
	require.NoError(t, err)
}

func TestNewServer_RequiresClient(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestNewServer_CustomTool(t *testing.T) {
	type countInput struct {
		ContentType string `json:"content_type"`
	}
	type countOutput struct {
		Fields int `json:"fields"`
	}

	cfg := config.Load()
	cfg.LogLevel = "error"

	var built *Deps
	s, err := NewServer(client.New(),
		WithConfig(cfg),
		WithoutBuiltinPrompts(),
		WithDepsTool(&sdkmcp.Tool{Name: "count_fields", Description: "Count fields"},
			func(d *Deps) func(context.Context, *sdkmcp.CallToolRequest, countInput) (*sdkmcp.CallToolResult, countOutput, error) {
				built = d
				return func(ctx context.Context, req *sdkmcp.CallToolRequest, in countInput) (*sdkmcp.CallToolResult, countOutput, error) {
					return nil, countOutput{}, nil
				}
			}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NotNil(t, built)
	assert.Same(t, s.Deps(), built)
	assert.NotNil(t, built.Fetcher)
	assert.NotNil(t, built.Templates)
	assert.Same(t, cfg, built.Config)
	assert.NotNil(t, s.MCPServer())
}

func TestCheckOutput(t *testing.T) {
	type good struct {
		IDs []string `json:"ids,omitzero"`
	}
	type bad struct {
		IDs []string `json:"ids"`
	}
	assert.NotPanics(t, func() { CheckOutput[good]("good") })
	assert.Panics(t, func() { CheckOutput[bad]("bad") })
}

func TestNewServer_ExtensionsOnly(t *testing.T) {
	type echoInput struct {
		Text string `json:"text"`
	}
	type echoOutput struct {
		Text string `json:"text"`
	}

	cfg := config.Load()
	cfg.LogLevel = "error"

	s, err := NewServer(client.New(),
		WithConfig(cfg),
		WithoutBuiltinTools(),
		WithoutBuiltinPrompts(),
		WithTool(&sdkmcp.Tool{Name: "echo", Description: "Echo text"},
			func(ctx context.Context, req *sdkmcp.CallToolRequest, in echoInput) (*sdkmcp.CallToolResult, echoOutput, error) {
				return nil, echoOutput{Text: in.Text}, nil
			}),
		WithPrompt(&sdkmcp.Prompt{Name: "hello"},
			func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
				return &sdkmcp.GetPromptResult{}, nil
			}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	serverT, clientT := sdkmcp.NewInMemoryTransports()
	ss, err := s.MCPServer().Connect(ctx, serverT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	cs, err := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "0.0.0"}, nil).Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, "echo", tools.Tools[0].Name)

	prompts, err := cs.ListPrompts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, prompts.Prompts, 1)
	assert.Equal(t, "hello", prompts.Prompts[0].Name)
}
