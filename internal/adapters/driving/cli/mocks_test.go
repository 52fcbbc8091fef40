package cli

import (
	"context"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
)

// mockRemedyService implements driving.RemedyService.
type mockRemedyService struct {
	remedies []domain.Remedy
	err      error
	mode     domain.ExtractMode

	gotQuery string
	gotOpts  domain.SearchOptions
}

func (m *mockRemedyService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Remedy, error) {
	m.gotQuery = query
	m.gotOpts = opts
	return m.remedies, m.err
}

func (m *mockRemedyService) ExtractMode() domain.ExtractMode {
	if m.mode == "" {
		return domain.ExtractModeHeuristic
	}
	return m.mode
}

// mockLibraryService implements driving.LibraryService.
type mockLibraryService struct {
	book      *domain.Book
	chunks    int
	ingestErr error

	books    []domain.Book
	booksErr error

	removed   []string
	removeErr error

	status    driving.LibraryStatus
	statusErr error
}

func (m *mockLibraryService) Ingest(_ context.Context, raw *domain.RawBook) (*domain.Book, int, error) {
	if m.ingestErr != nil {
		return nil, 0, m.ingestErr
	}
	if m.book != nil {
		return m.book, m.chunks, nil
	}
	return &domain.Book{Title: raw.Filename, Filename: raw.Filename}, m.chunks, nil
}

func (m *mockLibraryService) Books(context.Context) ([]domain.Book, error) {
	return m.books, m.booksErr
}

func (m *mockLibraryService) Remove(_ context.Context, id string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removed = append(m.removed, id)
	return nil
}

func (m *mockLibraryService) Status(context.Context) (driving.LibraryStatus, error) {
	return m.status, m.statusErr
}

// mockLLM implements driven.LLMService.
type mockLLM struct {
	response string
	err      error
	pingErr  error
	closed   bool
}

func (m *mockLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return m.response, m.err
}

func (m *mockLLM) ModelName() string { return "test-model" }

func (m *mockLLM) Ping(context.Context) error { return m.pingErr }

func (m *mockLLM) Close() error {
	m.closed = true
	return nil
}

// mockConfigStore implements driven.ConfigStore over a plain map.
type mockConfigStore struct {
	values map[string]any
	saved  bool
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error {
	m.saved = true
	return nil
}

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/remedysearch-test/config.toml" }

// setupTestServices installs mock services into the package vars so
// commands run without touching disk. The returned cleanup restores the
// previous state.
func setupTestServices() func() {
	oldConfig := configStore
	oldStore := bookStore
	oldLLM := llmService
	oldLibrary := libraryService
	oldRemedy := remedyService

	configStore = newMockConfigStore()
	bookStore = nil
	llmService = nil
	libraryService = &mockLibraryService{}
	remedyService = &mockRemedyService{remedies: []domain.Remedy{{
		ID:    "r1",
		Title: "Ginger Tea for Nausea",
		Ingredients: []domain.Ingredient{
			{Name: "ginger", Amount: "1", Unit: "tsp", Link: "https://www.amazon.com/s?k=ginger"},
		},
		Instructions: []string{"Steep in hot water", "Drink warm"},
		Source:       domain.RemedySource{Chapter: "ch1.xhtml", Position: 0},
	}}}

	return func() {
		configStore = oldConfig
		bookStore = oldStore
		llmService = oldLLM
		libraryService = oldLibrary
		remedyService = oldRemedy
	}
}
