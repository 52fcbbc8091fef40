package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for remedy library resources.
	uriScheme = "remedysearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing ingested books.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "books",
		Name:        "books",
		Description: "List of all ingested EPUB books",
		MIMEType:    "application/json",
	}, s.handleBooksResource)
}

// handleBooksResource returns a list of all ingested books.
func (s *Server) handleBooksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	books, err := s.ports.Library.Books(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	// Build simplified book list.
	type bookInfo struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Filename string `json:"filename"`
		Chapters int    `json:"chapters"`
	}

	infos := make([]bookInfo, len(books))
	for i := range books {
		infos[i] = bookInfo{
			ID:       books[i].ID,
			Title:    books[i].Title,
			Filename: books[i].Filename,
			Chapters: books[i].Chapters,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling books: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
