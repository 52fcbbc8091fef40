// Package chunker provides an overlapping word-window chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// DefaultMaxWords is the default number of words per chunk.
const DefaultMaxWords = 900

// DefaultOverlap is the default number of overlapping words.
const DefaultOverlap = 150

// Processor splits chapter text into overlapping word windows.
// Windows are built from whole lines so bullet lists and section
// headings survive chunking intact; only a single line longer than the
// window budget is split mid-line. It implements the PostProcessor
// interface.
type Processor struct {
	maxWords int
	overlap  int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxWords sets the window size in words.
func WithMaxWords(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxWords = n
		}
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlap = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxWords: DefaultMaxWords,
		overlap:  DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave the window advancing.
	if p.overlap >= p.maxWords {
		p.overlap = p.maxWords / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// line is a chapter line with its word count, the unit the windows are
// assembled from.
type line struct {
	text  string
	words int
}

// Process splits the chapter text into overlapping word windows.
// Input chunks are ignored; this processor creates new chunks.
func (p *Processor) Process(_ context.Context, book *domain.Book, chapter domain.Chapter, _ []domain.Chunk) ([]domain.Chunk, error) {
	lines := splitLines(chapter.Text, p.maxWords)
	if len(lines) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	position := 0
	start := 0

	for start < len(lines) {
		end := start
		words := 0
		for end < len(lines) && words+lines[end].words <= p.maxWords {
			words += lines[end].words
			end++
		}
		// A window always advances by at least one line.
		if end == start {
			end++
		}

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			BookID:   book.ID,
			Chapter:  chapter.Path,
			Position: position,
			Text:     joinLines(lines[start:end]),
		})
		position++

		if end >= len(lines) {
			break
		}

		// Step back whole lines until roughly `overlap` words repeat.
		next := end
		back := 0
		for next > start+1 && back < p.overlap {
			next--
			back += lines[next].words
		}
		start = next
	}

	return chunks, nil
}

// splitLines breaks the chapter into non-empty lines with word counts.
// Lines longer than maxWords are cut into maxWords-sized pieces so a
// single run-on paragraph cannot exceed the window budget.
func splitLines(text string, maxWords int) []line {
	var lines []line
	for _, l := range strings.Split(text, "\n") {
		words := strings.Fields(l)
		if len(words) == 0 {
			continue
		}
		for start := 0; start < len(words); start += maxWords {
			end := start + maxWords
			if end > len(words) {
				end = len(words)
			}
			lines = append(lines, line{
				text:  strings.Join(words[start:end], " "),
				words: end - start,
			})
		}
	}
	return lines
}

func joinLines(lines []line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}
