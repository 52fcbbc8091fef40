package driving

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// RemedyService provides remedy search to external actors.
type RemedyService interface {
	// Search ranks chunks by keyword overlap with the query, extracts
	// remedies from the best matches and attaches affiliate links.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Remedy, error)

	// ExtractMode reports the effective extraction mode.
	ExtractMode() domain.ExtractMode
}
