package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
	"github.com/remedylabs/remedysearch/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService runs the ingest pipeline: normalise an uploaded EPUB,
// chunk each chapter and store the result.
type LibraryService struct {
	store       driven.BookStore
	pipeline    driven.PostProcessorPipeline
	normalisers map[string]driven.Normaliser
}

// NewLibraryService creates a library service. Normalisers are keyed by
// the file extensions they support.
func NewLibraryService(
	store driven.BookStore,
	pipeline driven.PostProcessorPipeline,
	normalisers ...driven.Normaliser,
) *LibraryService {
	byExt := make(map[string]driven.Normaliser)
	for _, n := range normalisers {
		for _, ext := range n.SupportedExtensions() {
			byExt[ext] = n
		}
	}

	return &LibraryService{
		store:       store,
		pipeline:    pipeline,
		normalisers: byExt,
	}
}

// Ingest parses, chunks and stores a book. A book previously ingested
// under the same filename is replaced.
func (s *LibraryService) Ingest(ctx context.Context, raw *domain.RawBook) (*domain.Book, int, error) {
	logger.Section("Ingest")
	if raw == nil || raw.Filename == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	logger.Debug("File: %s (%d bytes)", raw.Filename, len(raw.Content))

	ext := strings.ToLower(filepath.Ext(raw.Filename))
	normaliser, ok := s.normalisers[ext]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	result, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, 0, fmt.Errorf("normalise %s: %w", raw.Filename, err)
	}
	logger.Debug("Normalised %q: %d chapters", result.Book.Title, len(result.Chapters))

	var chunks []domain.Chunk
	for _, chapter := range result.Chapters {
		chapterChunks, err := s.pipeline.Process(ctx, &result.Book, chapter)
		if err != nil {
			return nil, 0, fmt.Errorf("chunk chapter %s: %w", chapter.Path, err)
		}
		chunks = append(chunks, chapterChunks...)
	}
	if len(chunks) == 0 {
		return nil, 0, domain.ErrNoText
	}

	if err := s.store.SaveBook(ctx, &result.Book, chunks); err != nil {
		return nil, 0, fmt.Errorf("save book: %w", err)
	}

	logger.Info("Ingested %q: %d chunks", result.Book.Title, len(chunks))
	return &result.Book, len(chunks), nil
}

// Books lists all ingested books, newest first.
func (s *LibraryService) Books(ctx context.Context) ([]domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// Remove deletes a book and its chunks.
func (s *LibraryService) Remove(ctx context.Context, bookID string) error {
	if bookID == "" {
		return domain.ErrInvalidInput
	}
	return s.store.DeleteBook(ctx, bookID)
}

// Status reports the library size.
func (s *LibraryService) Status(ctx context.Context) (driving.LibraryStatus, error) {
	books, chunks, err := s.store.Counts(ctx)
	if err != nil {
		return driving.LibraryStatus{}, fmt.Errorf("count library: %w", err)
	}
	return driving.LibraryStatus{Books: books, Chunks: chunks}, nil
}
