// ABOUTME: Configuration resolution for the bookshelf CLI
// ABOUTME: Precedence: flag > environment (.env aware) > config file > default

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL matches the Book API's default local port
	DefaultAPIURL = "http://localhost:5501"

	// DefaultCacheTTL is how long a fetched book list stays fresh
	DefaultCacheTTL = 10 // seconds
)

type Config struct {
	APIURL    string
	CacheTTL  int // seconds
	ConfigDir string
}

// fileConfig is the optional config.yaml shape
type fileConfig struct {
	APIURL   string `yaml:"api_url"`
	CacheTTL int    `yaml:"cache_ttl"`
}

// Load resolves configuration. flagAPIURL is the --api-url flag value
// and wins over everything else. A .env file in the working directory
// is folded into the environment before env vars are read.
func Load(flagAPIURL, configDir string) (*Config, error) {
	// Missing .env is the normal case, not an error
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:    DefaultAPIURL,
		CacheTTL:  DefaultCacheTTL,
		ConfigDir: configDir,
	}

	if fc, err := loadFile(configDir); err != nil {
		return nil, err
	} else if fc != nil {
		if fc.APIURL != "" {
			cfg.APIURL = fc.APIURL
		}
		if fc.CacheTTL > 0 {
			cfg.CacheTTL = fc.CacheTTL
		}
	}

	if env := os.Getenv("BOOKSHELF_API_URL"); env != "" {
		cfg.APIURL = env
	}
	cfg.CacheTTL = getEnvInt("BOOKSHELF_CACHE_TTL", cfg.CacheTTL)

	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}

	cfg.APIURL = strings.TrimRight(ensureScheme(cfg.APIURL), "/")

	if cfg.CacheTTL < 1 || cfg.CacheTTL > 3600 {
		return nil, fmt.Errorf("cache TTL must be between 1 and 3600 seconds, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}

// loadFile reads config.yaml from the config directory if present
func loadFile(configDir string) (*fileConfig, error) {
	if configDir == "" {
		return nil, nil
	}
	path := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &fc, nil
}

// ensureScheme defaults bare host:port values to http
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "http://" + url
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
