package mcp

import (
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Remedy provides remedy search capabilities.
	Remedy driving.RemedyService

	// Library manages the book library.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Remedy == nil {
		return ErrMissingRemedyService
	}
	// Library is optional; the books resource degrades to an empty list.
	return nil
}
