package httpapi

import (
	"errors"

	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
)

// ErrMissingService indicates the server was built without a required
// service.
var ErrMissingService = errors.New("httpapi: missing required service")

// Ports aggregates the driving port interfaces required by the HTTP API.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library manages book ingest.
	Library driving.LibraryService

	// Remedy provides remedy search.
	Remedy driving.RemedyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Library == nil || p.Remedy == nil {
		return ErrMissingService
	}
	return nil
}
