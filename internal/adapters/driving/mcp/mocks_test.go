package mcp

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
)

// mockRemedyService implements driving.RemedyService.
type mockRemedyService struct {
	remedies []domain.Remedy
	err      error
	gotQuery string
	gotOpts  domain.SearchOptions
}

func (m *mockRemedyService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Remedy, error) {
	m.gotQuery = query
	m.gotOpts = opts
	return m.remedies, m.err
}

func (m *mockRemedyService) ExtractMode() domain.ExtractMode {
	return domain.ExtractModeHeuristic
}

// mockLibraryService implements driving.LibraryService.
type mockLibraryService struct {
	books     []domain.Book
	booksErr  error
	status    driving.LibraryStatus
	statusErr error
}

func (m *mockLibraryService) Ingest(context.Context, *domain.RawBook) (*domain.Book, int, error) {
	return nil, 0, nil
}

func (m *mockLibraryService) Books(context.Context) ([]domain.Book, error) {
	return m.books, m.booksErr
}

func (m *mockLibraryService) Remove(context.Context, string) error { return nil }

func (m *mockLibraryService) Status(context.Context) (driving.LibraryStatus, error) {
	return m.status, m.statusErr
}
