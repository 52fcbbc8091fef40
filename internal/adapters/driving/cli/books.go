package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage ingested books",
	RunE:  runBooksList,
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested books",
	RunE:  runBooksList,
}

var booksRemoveCmd = &cobra.Command{
	Use:   "remove <book-id>",
	Short: "Remove a book and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBooksRemove,
}

func init() {
	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksRemoveCmd)
	rootCmd.AddCommand(booksCmd)
}

func runBooksList(cmd *cobra.Command, _ []string) error {
	books, err := libraryService.Books(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	if len(books) == 0 {
		cmd.Println("No books ingested. Use 'remedysearch ingest <file.epub>' to add one.")
		return nil
	}

	for i := range books {
		cmd.Printf("%s  %s (%s, %d chapters)\n",
			books[i].ID, books[i].Title, books[i].Filename, books[i].Chapters)
	}
	return nil
}

func runBooksRemove(cmd *cobra.Command, args []string) error {
	if err := libraryService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing book: %w", err)
	}
	cmd.Println("Removed.")
	return nil
}
