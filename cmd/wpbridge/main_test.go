package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/usestring/wpbridge-mcp/internal/config"
)

func fakeSite(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wp/v2/types":
			fmt.Fprint(w, `{"product":{"name":"Products","slug":"product","rest_base":"products"},"empty":{"name":"Empty","slug":"empty","rest_base":"empties"}}`)
		case "/wp-json/wp/v2/taxonomies":
			fmt.Fprint(w, `{}`)
		case "/wp-json/wp/v2/products":
			w.Header().Set("X-WP-Total", "1")
			w.Header().Set("X-WP-TotalPages", "1")
			fmt.Fprint(w, `[{"id":1,"date":"2026-01-05T10:00:00","status":"publish","title":{"rendered":"Mug"},"price":9.99}]`)
		case "/wp-json/wp/v2/empties":
			w.Header().Set("X-WP-Total", "0")
			w.Header().Set("X-WP-TotalPages", "0")
			fmt.Fprint(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code":"rest_no_route","message":"No route"}`)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("WP_JWT_TOKEN", "")
	t.Setenv("WP_USERNAME", "")
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"wpbridge"}, args...))
	return out.String(), err
}

func TestGenerate_Stdout(t *testing.T) {
	url := fakeSite(t)

	out, err := run(t, "--url", url, "generate", "--type", "product", "--kind", "zapier")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "triggers")
	assert.Contains(t, out, "price")
}

func TestProfile_WritesYAMLFile(t *testing.T) {
	url := fakeSite(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")

	out, err := run(t, "--url", url, "profile", "--type", "products", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: price")
}

func TestGenerate_Errors(t *testing.T) {
	url := fakeSite(t)

	_, err := run(t, "--url", url, "generate", "--type", "product", "--kind", "airtable")
	assert.Error(t, err)

	_, err = run(t, "--url", url, "generate", "--type", "empty", "--kind", "n8n-node")
	assert.Error(t, err)

	_, err = run(t, "--url", url, "generate", "--type", "product")
	assert.Error(t, err, "kind is required")
}

func levelFor(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	var level string
	app := newApp()
	app.Commands = append(app.Commands, &cli.Command{
		Name: "levels",
		Action: func(c *cli.Context) error {
			level = logConfig(c, cfg).Level
			return nil
		},
	})
	require.NoError(t, app.Run(append(append([]string{"wpbridge"}, args...), "levels")))
	return level
}

func TestLogConfig_LevelPrecedence(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	assert.Equal(t, "warn", levelFor(t, &config.Config{LogLevel: "warn"}))
	assert.Equal(t, "error", levelFor(t, &config.Config{LogLevel: "warn"}, "--log-level", "error"))

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "debug", levelFor(t, config.Load()))
	assert.Equal(t, "error", levelFor(t, config.Load(), "--log-level", "error"))
}
