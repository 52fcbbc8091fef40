package driving

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// LibraryService manages the book library.
type LibraryService interface {
	// Ingest parses an EPUB, chunks its text and stores the result.
	// A book with the same filename is replaced. Returns the stored
	// book and the number of chunks produced.
	Ingest(ctx context.Context, raw *domain.RawBook) (*domain.Book, int, error)

	// Books lists all ingested books, newest first.
	Books(ctx context.Context) ([]domain.Book, error)

	// Remove deletes a book and its chunks.
	Remove(ctx context.Context, bookID string) error

	// Status reports the library size.
	Status(ctx context.Context) (LibraryStatus, error)
}

// LibraryStatus summarises the current library contents.
type LibraryStatus struct {
	Books  int
	Chunks int
}
