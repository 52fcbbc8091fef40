package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	configfile "github.com/remedylabs/remedysearch/internal/adapters/driven/config/file"
	"github.com/remedylabs/remedysearch/internal/adapters/driven/llm/anthropic"
	"github.com/remedylabs/remedysearch/internal/adapters/driven/llm/ollama"
	"github.com/remedylabs/remedysearch/internal/adapters/driven/llm/openai"
	"github.com/remedylabs/remedysearch/internal/adapters/driven/storage/memory"
	"github.com/remedylabs/remedysearch/internal/adapters/driven/storage/sqlite"
	"github.com/remedylabs/remedysearch/internal/affiliate"
	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/core/services"
	"github.com/remedylabs/remedysearch/internal/logger"
	"github.com/remedylabs/remedysearch/internal/normalisers/epub"
	"github.com/remedylabs/remedysearch/internal/postprocessors"
)

// initServices builds the service graph from configuration. Environment
// variables take precedence over the config file. Already-wired services
// are left alone so tests can install their own.
func initServices() error {
	if remedyService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	bookStore = store

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	libraryService = services.NewLibraryService(store, pipeline, epub.New())

	llmService = buildLLM(cfg)
	mode := domain.ExtractMode(cfg.GetString("extract.mode"))
	extractor := services.NewExtractor(llmService, mode)

	tag := os.Getenv("AMZ_TAG")
	if tag == "" {
		tag = cfg.GetString("affiliate.tag")
	}

	remedyService = services.NewRemedyService(store, extractor, affiliate.NewBuilder(tag))
	return nil
}

// closeServices releases resources held by the service graph.
func closeServices() error {
	var errs []error
	if llmService != nil {
		errs = append(errs, llmService.Close())
	}
	if bookStore != nil {
		errs = append(errs, bookStore.Close())
	}
	return errors.Join(errs...)
}

// buildStore selects the book store backend. SQLite is the default so
// ingested books survive restarts.
func buildStore(cfg driven.ConfigStore) (driven.BookStore, error) {
	backend := cfg.GetString("storage.backend")
	switch backend {
	case "memory":
		logger.Debug("Using in-memory book store")
		return memory.NewBookStore(), nil
	case "sqlite", "":
		dataDir := ""
		if configDir != "" {
			dataDir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("Using SQLite book store at %s", store.Path())
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// buildPipeline assembles the post-processing pipeline from the registry.
func buildPipeline(cfg driven.ConfigStore) (driven.PostProcessorPipeline, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	chunkerCfg := map[string]any{}
	if v := cfg.GetInt("chunker.max_words"); v > 0 {
		chunkerCfg["max_words"] = v
	}
	if v, ok := cfg.Get("chunker.overlap"); ok {
		chunkerCfg["overlap"] = v
	}

	chunker, err := registry.Build("chunker", chunkerCfg)
	if err != nil {
		return nil, fmt.Errorf("building chunker: %w", err)
	}

	return postprocessors.NewPipeline(chunker), nil
}

// buildLLM wires the configured language model provider, or nil when
// none is usable. Extraction degrades to heuristics without one.
func buildLLM(cfg driven.ConfigStore) driven.LLMService {
	provider := domain.AIProvider(cfg.GetString("extract.provider"))
	model := cfg.GetString("extract.model")

	// With no explicit provider, pick from available API keys.
	if provider == "" {
		switch {
		case os.Getenv("OPENAI_API_KEY") != "":
			provider = domain.AIProviderOpenAI
		case os.Getenv("ANTHROPIC_API_KEY") != "":
			provider = domain.AIProviderAnthropic
		default:
			return nil
		}
	}

	switch provider {
	case domain.AIProviderOpenAI:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			logger.Warn("OpenAI provider configured but OPENAI_API_KEY is not set")
			return nil
		}
		svc, err := openai.NewLLMService(openai.Config{APIKey: key, Model: model})
		if err != nil {
			logger.Warn("OpenAI service unavailable: %v", err)
			return nil
		}
		return verifyLLM(svc)

	case domain.AIProviderAnthropic:
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			logger.Warn("Anthropic provider configured but ANTHROPIC_API_KEY is not set")
			return nil
		}
		svc, err := anthropic.NewLLMService(anthropic.Config{APIKey: key, Model: model})
		if err != nil {
			logger.Warn("Anthropic service unavailable: %v", err)
			return nil
		}
		return verifyLLM(svc)

	case domain.AIProviderOllama:
		return verifyLLM(ollama.NewLLMService(ollama.Config{
			BaseURL: cfg.GetString("extract.base_url"),
			Model:   model,
		}))

	default:
		logger.Warn("Unknown AI provider %q, extraction stays heuristic", provider)
		return nil
	}
}

// llmPingTimeout bounds the startup reachability check.
const llmPingTimeout = 5 * time.Second

// verifyLLM pings the provider before the extract mode commits to it.
// An unreachable provider degrades to heuristic extraction.
func verifyLLM(svc driven.LLMService) driven.LLMService {
	ctx, cancel := context.WithTimeout(context.Background(), llmPingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		logger.Warn("%s unreachable, extraction stays heuristic: %v", svc.ModelName(), err)
		svc.Close() //nolint:errcheck
		return nil
	}
	logger.Debug("LLM ready: %s", svc.ModelName())
	return svc
}
