// Package config loads the gateway configuration from the user's
// config directory and PLEXSTREAM_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Provider names accepted by the "provider" setting.
const (
	ProviderOMDb = "omdb"
	ProviderTMDB = "tmdb"
)

// Config holds all application configuration.
type Config struct {
	// Provider selects the active metadata adapter: "omdb" or "tmdb".
	Provider string

	// OMDb
	OMDbAPIKey  string
	OMDbBaseURL string // empty means the public endpoint

	// TMDB
	TMDBAPIKey   string
	TMDBLanguage string

	// Gateway
	RequestTimeout      time.Duration
	CacheTTL            time.Duration
	ListingLimit        int
	RecommendationLimit int

	// User is the id store commands act on.
	User string

	// Paths
	StateFile string // $CONFIG_DIR/state.json

	// Logging
	LogLevel string
}

// Load reads configuration from ~/.plexstream/config.yaml and the
// environment.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return LoadFrom(filepath.Join(homeDir, ".plexstream"))
}

// LoadFrom reads configuration rooted at the given config directory.
// The directory is created if missing; an absent config file is fine,
// environment variables and defaults still apply.
func LoadFrom(configDir string) (*Config, error) {
	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(absDir)
	v.SetEnvPrefix("plexstream")
	v.AutomaticEnv()

	// Load config file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	v.SetDefault("provider", ProviderOMDb)
	v.SetDefault("tmdb_language", "en-US")
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("cache_ttl_minutes", 10)
	v.SetDefault("listing_limit", 20)
	v.SetDefault("recommendation_limit", 10)
	v.SetDefault("user", "default")
	v.SetDefault("log_level", "info")

	config := &Config{
		Provider: v.GetString("provider"),

		OMDbAPIKey:  v.GetString("omdb_api_key"),
		OMDbBaseURL: v.GetString("omdb_base_url"),

		TMDBAPIKey:   v.GetString("tmdb_api_key"),
		TMDBLanguage: v.GetString("tmdb_language"),

		RequestTimeout:      time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
		CacheTTL:            time.Duration(v.GetInt("cache_ttl_minutes")) * time.Minute,
		ListingLimit:        v.GetInt("listing_limit"),
		RecommendationLimit: v.GetInt("recommendation_limit"),

		User: v.GetString("user"),

		StateFile: filepath.Join(absDir, "state.json"),

		LogLevel: v.GetString("log_level"),
	}

	// Validate required fields
	switch config.Provider {
	case ProviderOMDb:
		if config.OMDbAPIKey == "" {
			return nil, fmt.Errorf("omdb_api_key is required when provider is %q", ProviderOMDb)
		}
	case ProviderTMDB:
		if config.TMDBAPIKey == "" {
			return nil, fmt.Errorf("tmdb_api_key is required when provider is %q", ProviderTMDB)
		}
	default:
		return nil, fmt.Errorf("unknown provider %q (expected %q or %q)", config.Provider, ProviderOMDb, ProviderTMDB)
	}

	return config, nil
}
