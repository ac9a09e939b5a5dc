package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wpbridge-mcp/internal/mcp/tools"
)

// AddTool registers a custom tool with the same startup check the builtin
// tools get: the output type's zero value must satisfy its inferred schema,
// and it must not embed record.Record, *template.Document or json.RawMessage
// directly. Panics with the offending field path otherwise.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}

// CheckOutput runs the output check without registering anything. Useful in
// tests for custom tools.
func CheckOutput[Out any](toolName string) {
	tools.CheckOutputSchema[Out](toolName)
}
