package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest EPUB files into the library",
	Long: `Parse one or more EPUB files, chunk their text and store them in the
library. A book previously ingested under the same filename is replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		book, chunks, err := libraryService.Ingest(cmd.Context(), &domain.RawBook{
			Filename: filepath.Base(path),
			Content:  content,
		})
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("Ingested %q: %d chapters, %d chunks\n", book.Title, book.Chapters, chunks)
	}
	return nil
}
