package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoBooks indicates the library is empty. Searches require at
	// least one ingested book.
	ErrNoBooks = errors.New("no books ingested")

	// ErrNoText indicates an EPUB contained no extractable text.
	ErrNoText = errors.New("no parsable text found")

	// ErrUnsupportedFormat indicates the uploaded file is not an EPUB.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Extraction degrades to the heuristic rules without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnauthorized indicates a missing or wrong admin token.
	ErrUnauthorized = errors.New("unauthorized")
)
