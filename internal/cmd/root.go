// Package cmd wires the configuration, the provider registry, the
// gateway, and the user-state store into the plexstream CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plexstream/plexstream/internal/config"
	"github.com/plexstream/plexstream/internal/gateway"
	"github.com/plexstream/plexstream/internal/provider"
	"github.com/plexstream/plexstream/internal/provider/omdb"
	"github.com/plexstream/plexstream/internal/provider/tmdb"
	"github.com/plexstream/plexstream/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "plexstream",
	Short: "Browse movie and TV metadata from OMDb or TMDB",
	Long: `plexstream is a storefront-style metadata browser. It searches and
lists movies and TV shows through a configured provider (OMDb or TMDB),
keeps working with fallback data when the provider is unreachable, and
tracks a local watch list, watch history, and star ratings.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var userFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User id for watch list, history, and ratings")
}

// app bundles everything a command needs at run time.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	gateway *gateway.Gateway
	store   *store.Store
	user    string
}

// newApp loads configuration and builds the provider, gateway, and
// store stack. Every command starts here.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	adapter, err := buildAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(gateway.Config{
		Adapter:             adapter,
		Logger:              logger,
		CacheTTL:            cfg.CacheTTL,
		ListingLimit:        cfg.ListingLimit,
		RecommendationLimit: cfg.RecommendationLimit,
	})
	if err != nil {
		return nil, err
	}

	st, err := store.New(store.Config{Path: cfg.StateFile})
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	user := cfg.User
	if userFlag != "" {
		user = userFlag
	}

	return &app{cfg: cfg, logger: logger, gateway: gw, store: st, user: user}, nil
}

// buildAdapter registers every configured provider and selects the
// active one.
func buildAdapter(cfg *config.Config, logger *logrus.Logger) (provider.Adapter, error) {
	registry := provider.NewRegistry()

	if cfg.OMDbAPIKey != "" {
		adapter, err := omdb.New(omdb.Config{
			APIKey:  cfg.OMDbAPIKey,
			BaseURL: cfg.OMDbBaseURL,
			Timeout: cfg.RequestTimeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("configure omdb: %w", err)
		}
		if err := registry.Register(adapter); err != nil {
			return nil, err
		}
	}
	if cfg.TMDBAPIKey != "" {
		adapter, err := tmdb.New(tmdb.Config{
			APIKey:   cfg.TMDBAPIKey,
			Language: cfg.TMDBLanguage,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("configure tmdb: %w", err)
		}
		if err := registry.Register(adapter); err != nil {
			return nil, err
		}
	}

	adapter, ok := registry.Get(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("provider %q is not configured (known: %v)", cfg.Provider, registry.Names())
	}
	return adapter, nil
}
