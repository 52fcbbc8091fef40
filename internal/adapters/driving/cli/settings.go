package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/remedylabs/remedysearch/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure extraction mode, chunking, storage and other options.

Settings live in the TOML config file; environment variables (AMZ_TAG,
OPENAI_API_KEY, ANTHROPIC_API_KEY, ADMIN_TOKEN) take precedence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value by dotted key, for example:

  remedysearch settings set extract.mode llm
  remedysearch settings set chunker.max_words 600
  remedysearch settings set library.watch_dir ~/books`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsKeys is the set of keys shown by `settings show`, in display
// order.
var settingsKeys = []string{
	"extract.mode",
	"extract.provider",
	"extract.model",
	"chunker.max_words",
	"chunker.overlap",
	"search.max_results",
	"library.watch_dir",
	"storage.backend",
	"affiliate.tag",
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Config file: %s\n\n", configStore.Path())

	for _, key := range settingsKeys {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-20s (default)\n", key)
			continue
		}
		cmd.Printf("  %-20s %v\n", key, value)
	}

	cmd.Printf("\nEffective extract mode: %s\n", remedyService.ExtractMode())
	if llmService != nil {
		cmd.Printf("Extraction model: %s\n", llmService.ModelName())
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if key == "extract.mode" && !domain.ExtractMode(value).IsValid() {
		return fmt.Errorf("invalid extract mode %q (want heuristic, llm or auto)", value)
	}

	// Store numbers as numbers so GetInt sees them.
	var stored any = value
	if n, err := strconv.Atoi(value); err == nil {
		stored = int64(n)
	}

	if err := configStore.Set(key, stored); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
