// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It enables AI assistants like Claude to search the remedy library directly.
package mcp

import "errors"

// ErrMissingRemedyService is returned when the remedy service is not provided.
var ErrMissingRemedyService = errors.New("mcp: remedy service is required")
