package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

// SearchInput is the input schema for the search_remedies tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the symptom or ailment to find remedies for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of remedies to return (default 5)"`
}

// SearchOutput is the output schema for the search_remedies tool.
type SearchOutput struct {
	Remedies []RemedyOutput `json:"remedies"`
	Count    int            `json:"count"`
}

// RemedyOutput represents a single extracted remedy.
type RemedyOutput struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Summary      string             `json:"summary,omitempty"`
	Ingredients  []IngredientOutput `json:"ingredients"`
	Instructions []string           `json:"instructions,omitempty"`
	Chapter      string             `json:"chapter"`
	Position     int                `json:"position"`
}

// IngredientOutput represents a single remedy ingredient.
type IngredientOutput struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Link   string `json:"link,omitempty"`
}

// StatusInput is the input schema for the library_status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the library_status tool.
type StatusOutput struct {
	Books       int    `json:"books"`
	Chunks      int    `json:"chunks"`
	ExtractMode string `json:"extract_mode"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_remedies",
		Description: "Search the remedy library for traditional remedies matching a symptom",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "library_status",
		Description: "Report how many books and text chunks are in the remedy library",
	}, s.handleStatus)
}

// handleSearch handles the search_remedies tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	opts := domain.SearchOptions{Limit: limit}
	remedies, err := s.ports.Remedy.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Remedies: make([]RemedyOutput, len(remedies)),
		Count:    len(remedies),
	}

	for i := range remedies {
		ingredients := make([]IngredientOutput, len(remedies[i].Ingredients))
		for j, ing := range remedies[i].Ingredients {
			ingredients[j] = IngredientOutput{
				Name:   ing.Name,
				Amount: ing.Amount,
				Unit:   ing.Unit,
				Link:   ing.Link,
			}
		}
		output.Remedies[i] = RemedyOutput{
			ID:           remedies[i].ID,
			Title:        remedies[i].Title,
			Summary:      remedies[i].Summary,
			Ingredients:  ingredients,
			Instructions: remedies[i].Instructions,
			Chapter:      remedies[i].Source.Chapter,
			Position:     remedies[i].Source.Position,
		}
	}

	return nil, output, nil
}

// handleStatus handles the library_status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	output := StatusOutput{
		ExtractMode: s.ports.Remedy.ExtractMode().String(),
	}

	if s.ports.Library != nil {
		status, err := s.ports.Library.Status(ctx)
		if err != nil {
			return nil, StatusOutput{}, err
		}
		output.Books = status.Books
		output.Chunks = status.Chunks
	}

	return nil, output, nil
}
