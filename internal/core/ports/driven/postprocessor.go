package driven

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// PostProcessor processes chapter text to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a chapter and returns chunks.
	// A chunk-creating processor (the chunker) receives nil chunks and
	// returns new ones; a chunk-modifying processor receives and
	// returns chunks.
	Process(ctx context.Context, book *domain.Book, chapter domain.Chapter, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the chapter through all processors in order.
	Process(ctx context.Context, book *domain.Book, chapter domain.Chapter) ([]domain.Chunk, error)
}
