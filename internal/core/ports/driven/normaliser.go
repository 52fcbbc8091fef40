package driven

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// Normaliser transforms raw EPUB bytes into a book with per-chapter
// plain text. Chunking is handled by the PostProcessor pipeline.
type Normaliser interface {
	// SupportedExtensions returns the file extensions this normaliser
	// handles (lowercase, with leading dot).
	SupportedExtensions() []string

	// Normalise parses the raw book into a Book and its chapters.
	Normalise(ctx context.Context, raw *domain.RawBook) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Book is the normalised book. Chapters holds the per-spine-item
	// text in reading order.
	Book     domain.Book
	Chapters []domain.Chapter
}
