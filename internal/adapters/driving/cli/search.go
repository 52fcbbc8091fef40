package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the library for remedies",
	Long: `Ranks stored text chunks against the query, extracts remedies from the
best matches and prints them with ingredients, instructions and
affiliate links.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of remedies")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	limit := searchLimit
	if !cmd.Flags().Changed("limit") {
		if n := configStore.GetInt("search.max_results"); n > 0 {
			limit = n
		}
	}

	remedies, err := remedyService.Search(cmd.Context(), query, domain.SearchOptions{
		Limit: limit,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, remedies)
	}
	return outputSearchText(cmd, remedies)
}

func outputSearchJSON(cmd *cobra.Command, remedies []domain.Remedy) error {
	data, err := json.MarshalIndent(remedies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, remedies []domain.Remedy) error {
	if len(remedies) == 0 {
		cmd.Println("No remedies found.")
		return nil
	}

	for i := range remedies {
		r := &remedies[i]
		cmd.Printf("[%d] %s\n", i+1, r.Title)
		if r.Summary != "" {
			cmd.Printf("    %s\n", r.Summary)
		}
		if len(r.Ingredients) > 0 {
			cmd.Println("    Ingredients:")
			for _, ing := range r.Ingredients {
				parts := []string{}
				for _, p := range []string{ing.Amount, ing.Unit, ing.Name} {
					if p != "" {
						parts = append(parts, p)
					}
				}
				cmd.Printf("      - %s\n", strings.Join(parts, " "))
				if ing.Link != "" {
					cmd.Printf("        %s\n", ing.Link)
				}
			}
		}
		if len(r.Instructions) > 0 {
			cmd.Println("    Instructions:")
			for j, step := range r.Instructions {
				cmd.Printf("      %d. %s\n", j+1, step)
			}
		}
		cmd.Printf("    Source: %s, section %d\n", r.Source.Chapter, r.Source.Position)
		cmd.Println()
	}
	return nil
}
