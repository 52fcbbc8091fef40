package driven

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// BookStore persists books and their chunks.
// Implementations must be safe for concurrent use: searches scan chunks
// while the watcher or an upload may be replacing a book.
type BookStore interface {
	// SaveBook stores a book and its chunks atomically, replacing any
	// existing book with the same filename.
	SaveBook(ctx context.Context, book *domain.Book, chunks []domain.Chunk) error

	// GetBook retrieves a book by ID.
	GetBook(ctx context.Context, id string) (*domain.Book, error)

	// ListBooks returns all books, newest first.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// ListChunks returns every chunk in the store. The search service
	// scans these linearly; ordering follows ingest order.
	ListChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteBook removes a book and its chunks.
	DeleteBook(ctx context.Context, id string) error

	// Counts returns the number of books and chunks stored.
	Counts(ctx context.Context) (books, chunks int, err error)

	// Close releases storage resources.
	Close() error
}
