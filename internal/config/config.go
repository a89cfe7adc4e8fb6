package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the gateway.
type Config struct {
	GitLabBaseURL string
	GitLabToken   string
	// GitLabProjects lists project paths (e.g. "group/repo") to crawl.
	GitLabProjects []string

	JiraBaseURL string
	JiraEmail   string
	JiraToken   string
	// JiraProjects lists project keys (e.g. "OPS") to crawl.
	JiraProjects []string

	ConfluenceBaseURL string
	ConfluenceToken   string
	// ConfluenceSpaces lists space keys to crawl.
	ConfluenceSpaces []string

	DBPath       string
	SnapshotPath string
	APIPort      string
	LogLevel     slog.Level
	LogFormat    string
}

// Load reads configuration from environment variables and returns a Config
// struct. It applies defaults for optional fields. If a .env file exists in
// the current directory or a parent, it is loaded first; variables already
// set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels looking for a .env next to go.mod.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		GitLabBaseURL:     getEnv("GITLAB_BASE_URL", "https://gitlab.com"),
		GitLabToken:       getEnv("GITLAB_TOKEN", ""),
		GitLabProjects:    splitList(getEnv("GITLAB_PROJECTS", "")),
		JiraBaseURL:       getEnv("JIRA_BASE_URL", ""),
		JiraEmail:         getEnv("JIRA_EMAIL", ""),
		JiraToken:         getEnv("JIRA_TOKEN", ""),
		JiraProjects:      splitList(getEnv("JIRA_PROJECTS", "")),
		ConfluenceBaseURL: getEnv("CONFLUENCE_BASE_URL", ""),
		ConfluenceToken:   getEnv("CONFLUENCE_TOKEN", ""),
		ConfluenceSpaces:  splitList(getEnv("CONFLUENCE_SPACES", "")),
		DBPath:            getEnv("DB_PATH", "./data/worklens.db"),
		SnapshotPath:      getEnv("SNAPSHOT_PATH", "./data/index.json"),
		APIPort:           getEnv("API_PORT", "9400"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	// Create the data directory up front so the DB and snapshot can be
	// written without further checks.
	for _, p := range []string{cfg.DBPath, cfg.SnapshotPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory for %s: %w", p, err)
		}
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
