package services

import (
	"context"
	"errors"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
)

// fakeLLM returns a canned response (or error) for every Generate call.
type fakeLLM struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) ModelName() string { return "fake-model" }

func (f *fakeLLM) Ping(context.Context) error { return f.err }

func (f *fakeLLM) Close() error { return nil }

// fakeNormaliser returns a fixed result for any input.
type fakeNormaliser struct {
	result *driven.NormaliseResult
	err    error
}

func (f *fakeNormaliser) SupportedExtensions() []string { return []string{".epub"} }

func (f *fakeNormaliser) Normalise(_ context.Context, _ *domain.RawBook) (*driven.NormaliseResult, error) {
	return f.result, f.err
}

// fakePipeline emits one chunk per chapter, or fails.
type fakePipeline struct {
	fail    bool
	noText  bool
	counter int
}

func (f *fakePipeline) Process(_ context.Context, book *domain.Book, chapter domain.Chapter) ([]domain.Chunk, error) {
	if f.fail {
		return nil, errors.New("pipeline broke")
	}
	if f.noText {
		return nil, nil
	}
	f.counter++
	return []domain.Chunk{{
		ID:       chapter.Path,
		BookID:   book.ID,
		Chapter:  chapter.Path,
		Position: f.counter - 1,
		Text:     chapter.Text,
	}}, nil
}
