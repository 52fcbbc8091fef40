package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

const remedyPassage = `Remedy for sore throat
Ingredients:
- 1 tsp honey
- 2 cups warm water
Method:
1. Mix the honey into the warm water
2. Gargle twice daily`

func TestNewExtractor_InvalidModeFallsBackToAuto(t *testing.T) {
	e := NewExtractor(nil, domain.ExtractMode("nonsense"))
	assert.Equal(t, domain.ExtractModeAuto, e.mode)
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeLLM
		mode domain.ExtractMode
		want domain.ExtractMode
	}{
		{"no llm forces heuristic", nil, domain.ExtractModeLLM, domain.ExtractModeHeuristic},
		{"no llm auto is heuristic", nil, domain.ExtractModeAuto, domain.ExtractModeHeuristic},
		{"auto with llm becomes llm", &fakeLLM{}, domain.ExtractModeAuto, domain.ExtractModeLLM},
		{"explicit heuristic ignores llm", &fakeLLM{}, domain.ExtractModeHeuristic, domain.ExtractModeHeuristic},
		{"explicit llm with llm", &fakeLLM{}, domain.ExtractModeLLM, domain.ExtractModeLLM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *Extractor
			if tt.llm == nil {
				e = NewExtractor(nil, tt.mode)
			} else {
				e = NewExtractor(tt.llm, tt.mode)
			}
			assert.Equal(t, tt.want, e.EffectiveMode())
		})
	}
}

func TestHeuristicExtract_Sections(t *testing.T) {
	result := heuristicExtract(remedyPassage)

	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, "honey", result.Ingredients[0].Name)
	assert.Equal(t, "1", result.Ingredients[0].Amount)
	assert.Equal(t, "tsp", result.Ingredients[0].Unit)
	assert.Equal(t, "warm water", result.Ingredients[1].Name)
	assert.Equal(t, "2", result.Ingredients[1].Amount)
	assert.Equal(t, "cups", result.Ingredients[1].Unit)

	require.Len(t, result.Instructions, 2)
	assert.Equal(t, "Mix the honey into the warm water", result.Instructions[0])
	assert.Equal(t, "Gargle twice daily", result.Instructions[1])
}

func TestHeuristicExtract_MeasuredBulletsOutsideSection(t *testing.T) {
	text := "A cough remedy.\n- 1 tsp turmeric powder\n- some patience"
	result := heuristicExtract(text)

	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, "turmeric powder", result.Ingredients[0].Name)

	// The unmeasured bullet becomes a step instead.
	require.Len(t, result.Instructions, 1)
	assert.Equal(t, "some patience", result.Instructions[0])
}

func TestHeuristicExtract_NoRemedyContent(t *testing.T) {
	result := heuristicExtract("Just some narrative prose about the weather in spring.")

	assert.Empty(t, result.Ingredients)
	assert.Empty(t, result.Instructions)
}

func TestHeuristicExtract_InstructionCap(t *testing.T) {
	text := "Directions:\n"
	for i := 0; i < 20; i++ {
		text += "stir the pot again\n"
	}

	result := heuristicExtract(text)
	assert.Len(t, result.Instructions, maxInstructions)
}

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		ok     bool
		want   string
		amount string
		unit   string
	}{
		{"measured", "- 2 tbsp apple cider vinegar", true, "apple cider vinegar", "2", "tbsp"},
		{"fraction", "- 1/2 cup oats", true, "oats", "1/2", "cup"},
		{"bare name", "- ginger root", true, "ginger root", "", ""},
		{"numbered bullet", "3. 5 drops lavender oil", true, "lavender oil", "5", "drops"},
		{"no name", "- 123", false, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing, ok := parseIngredientLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, ing.Name)
			assert.Equal(t, tt.amount, ing.Amount)
			assert.Equal(t, tt.unit, ing.Unit)
			assert.Equal(t, tt.line, ing.Raw)
		})
	}
}

func TestDedupeIngredients(t *testing.T) {
	t.Run("exact repeats collapse", func(t *testing.T) {
		out := dedupeIngredients([]domain.Ingredient{
			{Name: "Honey"},
			{Name: "honey"},
			{Name: "Ginger"},
		})
		require.Len(t, out, 2)
		assert.Equal(t, "Honey", out[0].Name)
		assert.Equal(t, "Ginger", out[1].Name)
	})

	t.Run("synonyms collapse", func(t *testing.T) {
		out := dedupeIngredients([]domain.Ingredient{
			{Name: "Cilantro"},
			{Name: "Coriander"},
			{Name: "Holy Basil"},
			{Name: "Tulsi"},
		})
		require.Len(t, out, 2)
		assert.Equal(t, "Cilantro", out[0].Name)
		assert.Equal(t, "Holy Basil", out[1].Name)
	})

	t.Run("empty names dropped", func(t *testing.T) {
		out := dedupeIngredients([]domain.Ingredient{{Name: "  "}, {Name: "salt"}})
		require.Len(t, out, 1)
		assert.Equal(t, "salt", out[0].Name)
	})
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "apple-cider-vinegar", slugify("Apple Cider Vinegar"))
	assert.Equal(t, "aloe-vera", slugify("  Aloe   Vera! "))
	assert.Equal(t, "", slugify("---"))
}

func TestCoerceExtraction(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		parsed, err := coerceExtraction(`{"title": "Tea", "summary": "", "ingredients": [], "instructions": []}`)
		require.NoError(t, err)
		assert.Equal(t, "Tea", parsed.Title)
	})

	t.Run("fenced json", func(t *testing.T) {
		parsed, err := coerceExtraction("```json\n{\"title\": \"Tea\", \"ingredients\": [], \"instructions\": []}\n```")
		require.NoError(t, err)
		assert.Equal(t, "Tea", parsed.Title)
	})

	t.Run("prose wrapped json", func(t *testing.T) {
		parsed, err := coerceExtraction(`Sure! Here is the remedy: {"title": "Tea", "ingredients": [], "instructions": []} Hope that helps.`)
		require.NoError(t, err)
		assert.Equal(t, "Tea", parsed.Title)
	})

	t.Run("no json object", func(t *testing.T) {
		_, err := coerceExtraction("I cannot help with that.")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := coerceExtraction(`{"title": }`)
		assert.Error(t, err)
	})
}

func TestExtract_LLMRefinement(t *testing.T) {
	llm := &fakeLLM{response: `{"title": "Honey Gargle", "summary": "A soothing gargle.", "ingredients": [{"name": "honey", "amount": "1", "unit": "TSP"}], "instructions": ["Mix", "Gargle"]}`}
	e := NewExtractor(llm, domain.ExtractModeLLM)

	result := e.Extract(context.Background(), remedyPassage)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "Honey Gargle", result.Title)
	assert.Equal(t, "A soothing gargle.", result.Summary)
	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, "honey", result.Ingredients[0].Name)
	assert.Equal(t, "tsp", result.Ingredients[0].Unit)
	assert.Equal(t, []string{"Mix", "Gargle"}, result.Instructions)
}

func TestExtract_LLMErrorFallsBackToHeuristics(t *testing.T) {
	llm := &fakeLLM{err: errors.New("api down")}
	e := NewExtractor(llm, domain.ExtractModeLLM)

	result := e.Extract(context.Background(), remedyPassage)

	// The heuristic result survives the model failure.
	assert.Empty(t, result.Title)
	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, "honey", result.Ingredients[0].Name)
}

func TestExtract_LLMGarbageFallsBackToHeuristics(t *testing.T) {
	llm := &fakeLLM{response: "I am sorry, I cannot do that."}
	e := NewExtractor(llm, domain.ExtractModeLLM)

	result := e.Extract(context.Background(), remedyPassage)

	require.Len(t, result.Ingredients, 2)
	assert.Empty(t, result.Title)
}

func TestExtract_LLMSnippetKeepsValidUTF8(t *testing.T) {
	llm := &fakeLLM{response: `{"title": "", "ingredients": [{"name": "mint"}], "instructions": []}`}
	e := NewExtractor(llm, domain.ExtractModeLLM)

	// 2000 three-byte runes: the byte cap falls inside a rune.
	e.Extract(context.Background(), strings.Repeat("茶", 2000))

	require.Equal(t, 1, llm.calls)
	assert.True(t, utf8.ValidString(llm.prompt))
}

func TestExtract_LLMEmptyIngredientsFallsBack(t *testing.T) {
	llm := &fakeLLM{response: `{"title": "x", "ingredients": [], "instructions": []}`}
	e := NewExtractor(llm, domain.ExtractModeLLM)

	result := e.Extract(context.Background(), remedyPassage)

	// A refinement without ingredients is treated as a failure.
	require.Len(t, result.Ingredients, 2)
}

func TestExtract_HeuristicModeSkipsLLM(t *testing.T) {
	llm := &fakeLLM{response: `{"title": "x"}`}
	e := NewExtractor(llm, domain.ExtractModeHeuristic)

	e.Extract(context.Background(), remedyPassage)

	assert.Equal(t, 0, llm.calls)
}
