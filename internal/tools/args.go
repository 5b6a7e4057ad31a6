// Package tools provides the MCP tool handlers for the journal.
//
// Each handler follows the same pattern:
// - A struct with its dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Input validation problems become tool-result errors, never Go errors:
// the transport stays healthy and the caller sees what went wrong.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// strArg extracts a string argument, returning defaultVal if the key
// is missing or not a string.
func strArg(req mcp.CallToolRequest, key, defaultVal string) string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return defaultVal
	}
	return v
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}
