// Package cli implements the command-line interface. Commands are thin
// wrappers over the driving ports; service construction happens once in
// the root command's PersistentPreRunE.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
	"github.com/remedylabs/remedysearch/internal/logger"
)

// version is set by Execute from the main package.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services wired by initServices and shared by all commands.
var (
	configStore    driven.ConfigStore
	bookStore      driven.BookStore
	llmService     driven.LLMService
	libraryService driving.LibraryService
	remedyService  driving.RemedyService
)

var rootCmd = &cobra.Command{
	Use:   "remedysearch",
	Short: "Search traditional remedies extracted from EPUB books",
	Long: `Remedy Search ingests EPUB books, chunks their text and extracts
traditional remedies (ingredients and preparation steps) from passages
matching a symptom query. Ingredients carry Amazon affiliate search links.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.remedysearch)")
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
