// Package memory provides in-memory storage adapters. The default
// backend: the library is rebuilt per process, exactly like the
// original request-scoped corpus.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
// Safe for concurrent use.
type BookStore struct {
	mu     sync.RWMutex
	books  map[string]domain.Book
	chunks map[string][]domain.Chunk // keyed by book ID
	order  []string                  // book IDs in ingest order
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books:  make(map[string]domain.Book),
		chunks: make(map[string][]domain.Chunk),
	}
}

// SaveBook stores a book and its chunks, replacing any existing book
// with the same filename.
func (s *BookStore) SaveBook(_ context.Context, book *domain.Book, chunks []domain.Chunk) error {
	if book == nil || book.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.books {
		if existing.Filename == book.Filename {
			s.removeLocked(id)
			break
		}
	}

	s.books[book.ID] = *book
	s.chunks[book.ID] = append([]domain.Chunk(nil), chunks...)
	s.order = append(s.order, book.ID)
	return nil
}

// GetBook retrieves a book by ID.
func (s *BookStore) GetBook(_ context.Context, id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

// ListBooks returns all books, newest first.
func (s *BookStore) ListBooks(_ context.Context) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]domain.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

// ListChunks returns every chunk in ingest order.
func (s *BookStore) ListChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.Chunk
	for _, id := range s.order {
		all = append(all, s.chunks[id]...)
	}
	return all, nil
}

// DeleteBook removes a book and its chunks.
func (s *BookStore) DeleteBook(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return domain.ErrNotFound
	}
	s.removeLocked(id)
	return nil
}

// Counts returns the number of books and chunks stored.
func (s *BookStore) Counts(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := 0
	for _, c := range s.chunks {
		chunks += len(c)
	}
	return len(s.books), chunks, nil
}

// Close is a no-op for the in-memory store.
func (s *BookStore) Close() error {
	return nil
}

// removeLocked deletes a book and its order entry. Caller holds the
// write lock.
func (s *BookStore) removeLocked(id string) {
	delete(s.books, id)
	delete(s.chunks, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
