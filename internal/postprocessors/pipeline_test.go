package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// appendProcessor appends one marker chunk each time it runs.
type appendProcessor struct {
	name string
	err  error
}

func (p *appendProcessor) Name() string { return p.name }

func (p *appendProcessor) Process(_ context.Context, book *domain.Book, chapter domain.Chapter, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if p.err != nil {
		return nil, p.err
	}
	return append(chunks, domain.Chunk{
		ID:      p.name,
		BookID:  book.ID,
		Chapter: chapter.Path,
		Text:    chapter.Text,
	}), nil
}

func TestPipeline_RunsInOrder(t *testing.T) {
	pipeline := NewPipeline(
		&appendProcessor{name: "first"},
		&appendProcessor{name: "second"},
	)

	chunks, err := pipeline.Process(context.Background(),
		&domain.Book{ID: "b1"}, domain.Chapter{Path: "ch1", Text: "text"})

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first", chunks[0].ID)
	assert.Equal(t, "second", chunks[1].ID)
}

func TestPipeline_NilBook(t *testing.T) {
	pipeline := NewPipeline(&appendProcessor{name: "p"})

	_, err := pipeline.Process(context.Background(), nil, domain.Chapter{})

	assert.Error(t, err)
}

func TestPipeline_ProcessorErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	pipeline := NewPipeline(&appendProcessor{name: "broken", err: boom})

	_, err := pipeline.Process(context.Background(), &domain.Book{ID: "b1"}, domain.Chapter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
}

func TestPipeline_AddAndLen(t *testing.T) {
	pipeline := NewPipeline()
	assert.Equal(t, 0, pipeline.Len())

	pipeline.Add(&appendProcessor{name: "p"})
	assert.Equal(t, 1, pipeline.Len())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.True(t, r.Has("chunker"))
	assert.Contains(t, r.Names(), "chunker")

	t.Run("builds chunker", func(t *testing.T) {
		p, err := r.Build("chunker", nil)
		require.NoError(t, err)
		assert.Equal(t, "chunker", p.Name())
	})

	t.Run("builds chunker with config", func(t *testing.T) {
		p, err := r.Build("chunker", map[string]any{
			"max_words": int64(200),
			"overlap":   float64(40),
		})
		require.NoError(t, err)
		require.NotNil(t, p)
	})

	t.Run("unknown processor", func(t *testing.T) {
		_, err := r.Build("embedder", nil)
		assert.Error(t, err)
	})
}
