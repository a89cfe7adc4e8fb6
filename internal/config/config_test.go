package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitLabBaseURL != "https://gitlab.com" {
		t.Errorf("GitLabBaseURL = %q, want default", cfg.GitLabBaseURL)
	}
	if cfg.APIPort != "9400" {
		t.Errorf("APIPort = %q, want 9400", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
	if cfg.GitLabProjects != nil {
		t.Errorf("GitLabProjects = %v, want nil", cfg.GitLabProjects)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GITLAB_BASE_URL", "https://git.internal.example")
	t.Setenv("GITLAB_PROJECTS", "platform/api, platform/web ,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SNAPSHOT_PATH", filepath.Join(t.TempDir(), "snap", "index.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitLabBaseURL != "https://git.internal.example" {
		t.Errorf("GitLabBaseURL = %q", cfg.GitLabBaseURL)
	}
	want := []string{"platform/api", "platform/web"}
	if !reflect.DeepEqual(cfg.GitLabProjects, want) {
		t.Errorf("GitLabProjects = %v, want %v", cfg.GitLabProjects, want)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}

	// The snapshot directory must exist after Load.
	if _, err := os.Stat(filepath.Dir(cfg.SnapshotPath)); err != nil {
		t.Errorf("snapshot directory not created: %v", err)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LOG_FORMAT", "yaml")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid LOG_FORMAT")
	}
}
