// ABOUTME: Tests for configuration resolution
// ABOUTME: Verifies precedence of flag, env, config file, and defaults

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("expected default cache TTL, got %d", cfg.CacheTTL)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://books.example.com\ncache_ttl: 30\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://books.example.com" {
		t.Errorf("expected config file URL, got %q", cfg.APIURL)
	}
	if cfg.CacheTTL != 30 {
		t.Errorf("expected cache TTL 30, got %d", cfg.CacheTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://from-file.example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("BOOKSHELF_API_URL", "https://from-env.example.com")

	cfg, err := Load("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://from-env.example.com" {
		t.Errorf("expected env URL to win, got %q", cfg.APIURL)
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("BOOKSHELF_API_URL", "https://from-env.example.com")

	cfg, err := Load("https://from-flag.example.com", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://from-flag.example.com" {
		t.Errorf("expected flag URL to win, got %q", cfg.APIURL)
	}
}

func TestLoad_BareHostGetsScheme(t *testing.T) {
	cfg, err := Load("books.example.com:5501", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://books.example.com:5501" {
		t.Errorf("expected http scheme added, got %q", cfg.APIURL)
	}
}

func TestLoad_TrailingSlashTrimmed(t *testing.T) {
	cfg, err := Load("http://books.example.com/", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://books.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{bad yaml"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load("", dir); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	t.Setenv("BOOKSHELF_CACHE_TTL", "0")

	if _, err := Load("", t.TempDir()); err == nil {
		t.Error("expected error for out-of-range cache TTL")
	}
}
