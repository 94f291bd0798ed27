// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Preceptor. It enables AI assistants to ask questions against the routing
// engine and manage the document index.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
