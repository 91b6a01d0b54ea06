package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvToken, "ghp_env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.PageSize != 100 || cfg.Concurrency != 8 || cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Token != "ghp_env" {
		t.Errorf("expected token from environment, got %q", cfg.Token)
	}
	if want := filepath.Join(tmpDir, DirName, "marketplace.log"); cfg.LogPath != want {
		t.Errorf("LogPath = %q, want %q", cfg.LogPath, want)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config")
	}
}

func TestLoad_File(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	path := filepath.Join(tmpDir, "marketplace.yaml")
	content := `
search_base_url: http://localhost:9000/api/
page_size: 500
concurrency: 2
timeout: 5s
log_path: ~/logs/market.log
topics:
  themes: my-themes
blacklist:
  - https://github.com/bad/repo
`
	os.WriteFile(path, []byte(content), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"search base", cfg.SearchBaseURL, "http://localhost:9000/api/"},
		{"page size capped", cfg.PageSize, 100},
		{"concurrency", cfg.Concurrency, 2},
		{"timeout", cfg.Timeout, 5 * time.Second},
		{"log path", cfg.LogPath, filepath.Join(tmpDir, "logs", "market.log")},
		{"themes topic", cfg.Topics.Themes, "my-themes"},
		{"extensions topic kept", cfg.Topics.Extensions, "spicetify-extensions"},
		{"raw base kept", cfg.RawBaseURL, "https://raw.githubusercontent.com"},
		{"blacklist", len(cfg.Blacklist), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoad_EnvironmentPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	os.WriteFile(path, []byte("concurrency: 3\n"), 0600)
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", cfg.Concurrency)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative concurrency", "concurrency: -1\n", "concurrency"},
		{"zero timeout", "timeout: 0s\n", "timeout"},
		{"empty topic", "topics:\n  extensions: \"\"\n", "topics"},
		{"malformed yaml", "page_size: [\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			os.WriteFile(path, []byte(tt.content), 0600)

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
