package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/remedylabs/remedysearch/internal/affiliate"
	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
	"github.com/remedylabs/remedysearch/internal/logger"
)

// Ensure RemedyService implements the interface.
var _ driving.RemedyService = (*RemedyService)(nil)

// DefaultLimit is the number of chunks considered when the request
// carries no k.
const DefaultLimit = 5

// DefaultMaxRemedies caps remedies per response unless overridden.
const DefaultMaxRemedies = 3

// extractParallelism bounds concurrent per-chunk extractions. Only
// relevant when extraction calls a language model.
const extractParallelism = 4

// remedyKeywords earn a scoring bonus and mark a chunk as remedy-like.
var remedyKeywords = []string{"remedy", "treatment", "cure", "heal", "recipe"}

// candidateKeywords gate which scored chunks are worth extracting.
// "for " catches phrasings like "for headaches".
var candidateKeywords = []string{"remedy", "treatment", "recipe", "for ", "cure", "heal"}

// RemedyService ranks chunks by keyword overlap and assembles remedies
// from the best matches.
type RemedyService struct {
	store     driven.BookStore
	extractor *Extractor
	links     *affiliate.Builder
}

// NewRemedyService creates a remedy search service.
func NewRemedyService(store driven.BookStore, extractor *Extractor, links *affiliate.Builder) *RemedyService {
	return &RemedyService{
		store:     store,
		extractor: extractor,
		links:     links,
	}
}

// ExtractMode reports the effective extraction mode.
func (s *RemedyService) ExtractMode() domain.ExtractMode {
	return s.extractor.EffectiveMode()
}

// Search scores every chunk against the query, extracts remedies from
// the best remedy-looking matches and attaches affiliate links.
func (s *RemedyService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Remedy, error) {
	logger.Section("Remedy Search")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Remedy{}, nil
	}

	chunks, err := s.store.ListChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, domain.ErrNoBooks
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	maxRemedies := opts.MaxRemedies
	if maxRemedies <= 0 {
		maxRemedies = DefaultMaxRemedies
	}
	// Never return more remedies than the caller asked chunks for.
	if maxRemedies > limit {
		maxRemedies = limit
	}

	// Consider twice as many chunks as requested so the remedy filter
	// has slack to discard non-extractable matches.
	scored := scoreChunks(chunks, query)
	if len(scored) > limit*2 {
		scored = scored[:limit*2]
	}
	logger.Debug("Scored candidates: %d (limit %d)", len(scored), limit)

	candidates := make([]domain.Chunk, 0, len(scored))
	for _, sc := range scored {
		low := strings.ToLower(sc.Chunk.Text)
		if strings.Contains(low, "ingredient") && containsAny(low, candidateKeywords) {
			candidates = append(candidates, sc.Chunk)
		}
	}
	logger.Debug("Remedy-looking candidates: %d", len(candidates))

	extractions, err := s.extractAll(ctx, candidates)
	if err != nil {
		return nil, err
	}

	remedies := s.assemble(candidates, extractions, maxRemedies)
	logger.Info("Returning %d remedies", len(remedies))
	return remedies, nil
}

// scoreChunks ranks chunks by per-word occurrence counts plus fixed
// bonuses for remedy vocabulary. Zero-score chunks are dropped; ties
// keep ingest order.
func scoreChunks(chunks []domain.Chunk, query string) []domain.ScoredChunk {
	words := strings.Fields(strings.ToLower(query))

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		low := strings.ToLower(chunk.Text)

		score := 0
		for _, w := range words {
			score += strings.Count(low, w)
		}
		if containsAny(low, remedyKeywords) {
			score += 5
		}
		if strings.Contains(low, "ingredient") {
			score += 3
		}

		if score > 0 {
			scored = append(scored, domain.ScoredChunk{Chunk: chunk, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// extractAll runs the extractor over all candidates. Extractions run
// concurrently under a bounded errgroup because model-refined
// extraction is network-bound; results keep candidate order.
func (s *RemedyService) extractAll(ctx context.Context, candidates []domain.Chunk) ([]Extraction, error) {
	extractions := make([]Extraction, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractParallelism)
	for i := range candidates {
		g.Go(func() error {
			extractions[i] = s.extractor.Extract(gctx, candidates[i].Text)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract candidates: %w", err)
	}
	return extractions, nil
}

// assemble builds the response: drop extractions without ingredients,
// suppress duplicate source locations, attach affiliate links and cap
// the result count.
func (s *RemedyService) assemble(candidates []domain.Chunk, extractions []Extraction, maxRemedies int) []domain.Remedy {
	remedies := make([]domain.Remedy, 0, maxRemedies)
	seen := make(map[string]bool)

	for i, chunk := range candidates {
		ext := extractions[i]
		if len(ext.Ingredients) == 0 {
			continue
		}

		id := domain.RemedyID(chunk.Chapter, chunk.Position)
		if seen[id] {
			continue
		}
		seen[id] = true

		title := ext.Title
		if title == "" {
			title = deriveTitle(chunk.Text)
		}

		ingredients := make([]domain.Ingredient, len(ext.Ingredients))
		for j, ing := range ext.Ingredients {
			ing.Link = s.links.SearchURL(ing.Name)
			ingredients[j] = ing
		}

		remedies = append(remedies, domain.Remedy{
			ID:           id,
			Title:        title,
			Summary:      ext.Summary,
			Ingredients:  ingredients,
			Instructions: ext.Instructions,
			Source: domain.RemedySource{
				Chapter:  chunk.Chapter,
				Position: chunk.Position,
			},
		})

		if len(remedies) >= maxRemedies {
			break
		}
	}

	return remedies
}

// deriveTitle takes the first sentence of the chunk's opening and
// truncates it to a display-friendly length.
func deriveTitle(text string) string {
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(runes) > 150 {
		runes = runes[:150]
	}

	title := string(runes)
	if idx := strings.Index(title, "."); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)

	if tr := []rune(title); len(tr) > 100 {
		title = string(tr[:100]) + "..."
	}
	return title
}
