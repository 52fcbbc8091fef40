package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/remedylabs/remedysearch/internal/adapters/driving/httpapi"
	"github.com/remedylabs/remedysearch/internal/connectors/filesystem"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and search page",
	Long: `Start the web server serving the search page, the JSON API and EPUB
uploads. When library.watch_dir is configured, a directory watcher
ingests EPUB files dropped there.

The listen address comes from --addr, then REMEDYSEARCH_ADDR, then :8000.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = os.Getenv("REMEDYSEARCH_ADDR")
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Library: libraryService,
		Remedy:  remedyService,
	}, httpapi.WithAdminToken(os.Getenv("ADMIN_TOKEN")))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx, addr)
	})

	if watchDir := configStore.GetString("library.watch_dir"); watchDir != "" {
		watcher := filesystem.NewWatcher(watchDir, libraryService)
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
