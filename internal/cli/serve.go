package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"worklens/internal/resources"
	"worklens/internal/server"
	"worklens/internal/tools"
)

var serveHTTP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool-calling interface on stdio (or HTTP with --http)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		registry := tools.NewRegistry()
		res := resources.NewRegistry()
		registry.Register(tools.NewSearchTool(a.index, res))
		registry.Register(tools.NewCrawlTool(a.crawler, a.targets))
		registry.Register(tools.NewClearTool(a.crawler))
		registry.Register(tools.NewListCollectionsTool(a.index))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Refresh the index in the background so the server answers
		// immediately from the restored snapshot.
		if len(a.targets) > 0 {
			go func() {
				slog.Info("starting background crawl", "targets", len(a.targets))
				if err := a.crawler.CrawlAll(ctx, a.targets); err != nil {
					slog.Error("crawl completed with errors", "error", err)
				} else {
					slog.Info("crawl completed")
				}
			}()
		}

		if serveHTTP {
			addr := ":" + a.cfg.APIPort
			slog.Info("starting HTTP server", "addr", addr)
			return server.ListenAndServe(ctx, addr, registry)
		}

		slog.Info("serving on stdio")
		return server.NewStdioServer(registry, slog.Default()).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "serve JSON-RPC over HTTP instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
