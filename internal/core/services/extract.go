package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/logger"
)

// maxInstructions caps the instruction list per remedy.
const maxInstructions = 12

// llmSnippetLimit bounds how much chunk text is sent to the model.
const llmSnippetLimit = 4000

// Extraction holds the structured fields pulled from one chunk.
type Extraction struct {
	// Title and Summary are only set by model-refined extraction.
	Title   string
	Summary string

	Ingredients  []domain.Ingredient
	Instructions []string
}

// Extractor pulls ingredients and instructions out of remedy-looking
// passages. The regex/keyword heuristics always run; when a language
// model is configured and the mode allows it, the model refines the
// result, with any failure falling back silently to the heuristics.
type Extractor struct {
	llm  driven.LLMService
	mode domain.ExtractMode
}

// NewExtractor creates an extractor. llm may be nil, in which case the
// heuristics are the only path regardless of mode.
func NewExtractor(llm driven.LLMService, mode domain.ExtractMode) *Extractor {
	if !mode.IsValid() {
		mode = domain.ExtractModeAuto
	}
	return &Extractor{llm: llm, mode: mode}
}

// EffectiveMode resolves the configured mode against the available
// services: auto becomes llm when a provider is wired, heuristic
// otherwise, and llm degrades to heuristic without a provider.
func (e *Extractor) EffectiveMode() domain.ExtractMode {
	if e.llm == nil {
		return domain.ExtractModeHeuristic
	}
	if e.mode == domain.ExtractModeAuto {
		return domain.ExtractModeLLM
	}
	return e.mode
}

// Extract runs the heuristics on the chunk text and, when enabled,
// refines the result with the language model.
func (e *Extractor) Extract(ctx context.Context, text string) Extraction {
	result := heuristicExtract(text)

	if e.EffectiveMode() != domain.ExtractModeLLM {
		return result
	}

	refined, err := e.refine(ctx, text)
	if err != nil {
		logger.Warn("LLM extraction failed, keeping heuristic result: %v", err)
		return result
	}
	return refined
}

// Regex rules for heuristic extraction.
var (
	// Fractions come first so "1/2" is not matched as "1".
	amountPattern = `(?:\d+/\d+|\d+(?:\.\d+)?)`
	unitPattern   = `(?:tsp|tbsp|teaspoon|tablespoon|cup|cups|ml|l|g|kg|ounce|oz|inches|slice|slices|piece|pieces|drops?|pinch|handful)`

	bulletRe     = regexp.MustCompile(`^\s*(?:[-•*]|\d+\.)\s+`)
	amountRe     = regexp.MustCompile(amountPattern)
	unitRe       = regexp.MustCompile(`(?i)\b` + unitPattern + `\b`)
	ingredientRe = regexp.MustCompile(`(?i)^\s*(?:` + amountPattern + `\s*` + unitPattern + `?\s+)?([A-Za-z][\w\s\-']+)`)
)

// inlineUnitRe marks a bulleted line as ingredient-like outside an
// ingredient section. Word boundaries keep "g" from matching inside
// ordinary words.
var inlineUnitRe = regexp.MustCompile(`(?i)\b(?:tsp|tbsp|cup|cups|ml|g|oz)\b`)

// methodWords introduce an instruction section.
var methodWords = []string{"method", "directions", "instructions", "preparation", "steps"}

// heuristicExtract is the line-oriented rule scan: section headers flip
// the mode, bulleted measured lines become ingredients, remaining
// bulleted lines become steps.
func heuristicExtract(text string) Extraction {
	var (
		ingredients []domain.Ingredient
		steps       []string
		section     string
	)

	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		low := strings.ToLower(ln)

		if strings.Contains(low, "ingredient") {
			section = "ingredients"
			continue
		}
		if containsAny(low, methodWords) {
			section = "steps"
			continue
		}

		if section == "ingredients" || (bulletRe.MatchString(ln) && inlineUnitRe.MatchString(ln)) {
			if ing, ok := parseIngredientLine(ln); ok {
				ingredients = append(ingredients, ing)
				continue
			}
		}

		if bulletRe.MatchString(ln) || section == "steps" {
			steps = append(steps, bulletRe.ReplaceAllString(ln, ""))
		}
	}

	if len(steps) > maxInstructions {
		steps = steps[:maxInstructions]
	}

	return Extraction{
		Ingredients:  dedupeIngredients(ingredients),
		Instructions: steps,
	}
}

// parseIngredientLine extracts name, amount and unit from one line.
func parseIngredientLine(ln string) (domain.Ingredient, bool) {
	stripped := bulletRe.ReplaceAllString(ln, "")
	m := ingredientRe.FindStringSubmatch(stripped)
	if m == nil {
		return domain.Ingredient{}, false
	}

	ing := domain.Ingredient{
		Name: strings.TrimSpace(m[1]),
		Raw:  ln,
	}
	// Scan the stripped line so a numbered bullet ("3.") is not
	// mistaken for the amount.
	if amt := amountRe.FindString(stripped); amt != "" {
		ing.Amount = amt
	}
	if unit := unitRe.FindString(stripped); unit != "" {
		ing.Unit = strings.ToLower(unit)
	}
	return ing, ing.Name != ""
}

// herbSynonyms maps known alternate herb names to a canonical slug so
// the same plant listed twice under different names collapses to one
// entry. This is a fixed lookup, not a general algorithm.
var herbSynonyms = map[string]string{
	"cilantro":            "coriander",
	"coriander-leaves":    "coriander",
	"bicarbonate-of-soda": "baking-soda",
	"sodium-bicarbonate":  "baking-soda",
	"curcuma":             "turmeric",
	"haldi":               "turmeric",
	"indian-gooseberry":   "amla",
	"holy-basil":          "tulsi",
	"aloe":                "aloe-vera",
	"marigold":            "calendula",
	"melaleuca-oil":       "tea-tree-oil",
	"acv":                 "apple-cider-vinegar",
}

// dedupeIngredients drops repeats by slugified, synonym-normalised name.
func dedupeIngredients(ingredients []domain.Ingredient) []domain.Ingredient {
	seen := make(map[string]bool, len(ingredients))
	out := make([]domain.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		key := slugify(ing.Name)
		if canonical, ok := herbSynonyms[key]; ok {
			key = canonical
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ing)
	}
	return out
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases a name and collapses runs of non-alphanumerics
// into single hyphens.
func slugify(s string) string {
	s = strings.ToLower(s)
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// extractPrompt asks the model for strict JSON. The coercion below is
// still best-effort: models wrap JSON in prose and code fences.
const extractPrompt = `You are given a passage from a book of traditional home remedies.
Extract the remedy it describes. Respond with ONLY a JSON object, no
markdown, in exactly this shape:
{"title": "...", "summary": "...", "ingredients": [{"name": "...", "amount": "...", "unit": "..."}], "instructions": ["..."]}
Use empty strings for unknown amounts or units. If the passage contains
no remedy, return {"title": "", "summary": "", "ingredients": [], "instructions": []}.

Passage:
%s`

// llmExtraction is the JSON shape requested from the model.
type llmExtraction struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Ingredients []struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
		Unit   string `json:"unit"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// refine asks the model for a structured extraction of the passage.
func (e *Extractor) refine(ctx context.Context, text string) (Extraction, error) {
	if e.llm == nil {
		return Extraction{}, domain.ErrLLMUnavailable
	}

	snippet := text
	if len(snippet) > llmSnippetLimit {
		// Back up to a rune boundary so the prompt stays valid UTF-8.
		cut := llmSnippetLimit
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}

	raw, err := e.llm.Generate(ctx, fmt.Sprintf(extractPrompt, snippet), driven.GenerateOptions{
		MaxTokens:   800,
		Temperature: 0.2,
	})
	if err != nil {
		return Extraction{}, err
	}

	parsed, err := coerceExtraction(raw)
	if err != nil {
		return Extraction{}, err
	}

	result := Extraction{
		Title:        strings.TrimSpace(parsed.Title),
		Summary:      strings.TrimSpace(parsed.Summary),
		Instructions: parsed.Instructions,
	}
	for _, ing := range parsed.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		result.Ingredients = append(result.Ingredients, domain.Ingredient{
			Name:   name,
			Amount: strings.TrimSpace(ing.Amount),
			Unit:   strings.ToLower(strings.TrimSpace(ing.Unit)),
		})
	}
	if len(result.Instructions) > maxInstructions {
		result.Instructions = result.Instructions[:maxInstructions]
	}
	result.Ingredients = dedupeIngredients(result.Ingredients)

	if len(result.Ingredients) == 0 {
		return Extraction{}, domain.ErrInvalidInput
	}
	return result, nil
}

// coerceExtraction digs the JSON object out of a model response that
// may carry code fences or surrounding prose.
func coerceExtraction(raw string) (*llmExtraction, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, domain.ErrInvalidInput
	}

	var parsed llmExtraction
	if err := json.Unmarshal([]byte(s[start:end+1]), &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
