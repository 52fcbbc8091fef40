package domain

import "time"

// Book represents an ingested EPUB book.
type Book struct {
	// ID is the unique identifier for the book.
	ID string

	// Title is the human-readable title, taken from the OPF metadata
	// or the upload filename.
	Title string

	// Filename is the name of the uploaded EPUB file. Re-ingesting a
	// file with the same name replaces the previous book.
	Filename string

	// Chapters is the number of spine items that produced text.
	Chapters int

	// CreatedAt is when the book was ingested.
	CreatedAt time.Time
}

// Chapter is a single spine item's extracted text, the intermediate
// form between EPUB normalisation and chunking.
type Chapter struct {
	// Path is the content file path inside the EPUB archive.
	Path string

	// Text is the plain text with markup stripped.
	Text string
}

// RawBook represents opaque EPUB bytes before normalisation, either
// uploaded over HTTP or picked up from a watched directory.
type RawBook struct {
	// Filename is the name the book arrived under.
	Filename string

	// Content is the raw EPUB bytes.
	Content []byte
}

// Chunk is the unit of search and extraction: a window of book text
// with a fixed word count and overlap between neighbouring windows.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// BookID links to the Book that produced this chunk.
	BookID string

	// Chapter is the spine item (content file path) the text came from.
	Chapter string

	// Position is the ordinal of this window within the chapter.
	Position int

	// Text is the chunk content.
	Text string
}
