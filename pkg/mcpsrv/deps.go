package mcpsrv

import (
	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/internal/config"
	"github.com/usestring/wpbridge-mcp/internal/query"
	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client    *client.Client
	Fetcher   *batch.Fetcher
	Templates *template.Registry
	Query     *query.Engine
	Config    *config.Config
}
