package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

func makeBook(id, filename string, created time.Time) *domain.Book {
	return &domain.Book{
		ID:        id,
		Title:     "Book " + id,
		Filename:  filename,
		Chapters:  1,
		CreatedAt: created,
	}
}

func makeChunks(bookID string, n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:       fmt.Sprintf("%s-chunk-%d", bookID, i),
			BookID:   bookID,
			Chapter:  "ch1",
			Position: i,
			Text:     "some text",
		}
	}
	return chunks
}

func TestSaveBook_AndGet(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()

	book := makeBook("b1", "a.epub", time.Now())
	require.NoError(t, store.SaveBook(ctx, book, makeChunks("b1", 3)))

	got, err := store.GetBook(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Book b1", got.Title)

	books, chunks, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, books)
	assert.Equal(t, 3, chunks)
}

func TestSaveBook_InvalidInput(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveBook(ctx, nil, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveBook(ctx, &domain.Book{}, nil), domain.ErrInvalidInput)
}

func TestSaveBook_ReplacesByFilename(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()

	require.NoError(t, store.SaveBook(ctx, makeBook("b1", "same.epub", time.Now()), makeChunks("b1", 2)))
	require.NoError(t, store.SaveBook(ctx, makeBook("b2", "same.epub", time.Now()), makeChunks("b2", 4)))

	_, err := store.GetBook(ctx, "b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	books, chunks, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, books)
	assert.Equal(t, 4, chunks)
}

func TestGetBook_NotFound(t *testing.T) {
	store := NewBookStore()
	_, err := store.GetBook(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListBooks_NewestFirst(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.SaveBook(ctx, makeBook("old", "old.epub", now.Add(-time.Hour)), nil))
	require.NoError(t, store.SaveBook(ctx, makeBook("new", "new.epub", now), nil))

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "new", books[0].ID)
	assert.Equal(t, "old", books[1].ID)
}

func TestListChunks_IngestOrder(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()

	require.NoError(t, store.SaveBook(ctx, makeBook("b1", "a.epub", time.Now()), makeChunks("b1", 2)))
	require.NoError(t, store.SaveBook(ctx, makeBook("b2", "b.epub", time.Now()), makeChunks("b2", 2)))

	chunks, err := store.ListChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, "b1-chunk-0", chunks[0].ID)
	assert.Equal(t, "b1-chunk-1", chunks[1].ID)
	assert.Equal(t, "b2-chunk-0", chunks[2].ID)
}

func TestDeleteBook(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()

	require.NoError(t, store.SaveBook(ctx, makeBook("b1", "a.epub", time.Now()), makeChunks("b1", 2)))
	require.NoError(t, store.DeleteBook(ctx, "b1"))

	books, chunks, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, books)
	assert.Equal(t, 0, chunks)

	assert.ErrorIs(t, store.DeleteBook(ctx, "b1"), domain.ErrNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	store := NewBookStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("b%d", n)
			store.SaveBook(ctx, makeBook(id, id+".epub", time.Now()), makeChunks(id, 1)) //nolint:errcheck
		}(i)
		go func() {
			defer wg.Done()
			store.ListChunks(ctx) //nolint:errcheck
		}()
	}
	wg.Wait()

	books, chunks, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, books)
	assert.Equal(t, 10, chunks)
}

func TestClose(t *testing.T) {
	assert.NoError(t, NewBookStore().Close())
}
