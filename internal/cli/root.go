// Package cli wires the gateway together behind cobra commands.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"worklens/internal/config"
	"worklens/internal/confluence"
	"worklens/internal/crawler"
	"worklens/internal/gitlab"
	"worklens/internal/jira"
	"worklens/internal/search"
	"worklens/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "worklens",
	Short: "Tool-calling gateway over GitLab, Jira and Confluence content",
	Long: "worklens crawls repository files, wiki pages, issues and pages from " +
		"configured project-management services, indexes them for BM25 search, " +
		"and exposes search and crawl operations to tool-calling clients.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired components shared by the commands.
type app struct {
	cfg     *config.Config
	db      *sql.DB
	index   *search.Index
	crawler *crawler.Crawler
	targets []crawler.Target
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// buildApp loads config, configures logging, opens storage, and restores
// the index snapshot.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database initialized", "path", cfg.DBPath)

	index := search.New(cfg.SnapshotPath, slog.Default())
	index.Load()

	docRepo := storage.NewDocumentRepo(db)
	c := crawler.New(docRepo, index)

	var targets []crawler.Target
	if len(cfg.GitLabProjects) > 0 {
		targets = append(targets, crawler.Target{
			Source:      gitlab.NewClient(cfg.GitLabBaseURL, cfg.GitLabToken),
			Collections: cfg.GitLabProjects,
		})
	}
	if cfg.JiraBaseURL != "" && len(cfg.JiraProjects) > 0 {
		targets = append(targets, crawler.Target{
			Source:      jira.NewClient(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraToken),
			Collections: cfg.JiraProjects,
		})
	}
	if cfg.ConfluenceBaseURL != "" && len(cfg.ConfluenceSpaces) > 0 {
		targets = append(targets, crawler.Target{
			Source:      confluence.NewClient(cfg.ConfluenceBaseURL, cfg.ConfluenceToken),
			Collections: cfg.ConfluenceSpaces,
		})
	}

	return &app{
		cfg:     cfg,
		db:      db,
		index:   index,
		crawler: c,
		targets: targets,
	}, nil
}
