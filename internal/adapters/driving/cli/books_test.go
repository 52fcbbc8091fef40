package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

func TestBooksCmd_Use(t *testing.T) {
	assert.Equal(t, "books", booksCmd.Use)
	assert.Equal(t, "list", booksListCmd.Use)
	assert.Equal(t, "remove <book-id>", booksRemoveCmd.Use)
}

func TestBooksCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"books"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No books ingested.")
}

func TestBooksCmd_ListsBooks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	libraryService = &mockLibraryService{books: []domain.Book{
		{ID: "b1", Title: "Old Herbal Remedies", Filename: "old.epub", Chapters: 9},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"books", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "b1")
	assert.Contains(t, buf.String(), "Old Herbal Remedies")
	assert.Contains(t, buf.String(), "old.epub")
	assert.Contains(t, buf.String(), "9 chapters")
}

func TestBooksCmd_ListError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	libraryService = &mockLibraryService{booksErr: errors.New("store closed")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"books"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listing books")
}

func TestBooksRemoveCmd_Removes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	library := &mockLibraryService{}
	libraryService = library

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"books", "remove", "b1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []string{"b1"}, library.removed)
	assert.Contains(t, buf.String(), "Removed.")
}

func TestBooksRemoveCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	libraryService = &mockLibraryService{removeErr: domain.ErrNotFound}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"books", "remove", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "removing book")
}
