// Package tmdb adapts The Movie Database API v3 through the go-tmdb client.
// TMDB ids are numeric, search is type-scoped, genre ids are real upstream
// ids, and detail payloads carry credits and videos when requested through
// append_to_response.
package tmdb

import (
	"strconv"
	"strings"
	"time"

	tmdb "github.com/ryanbradynd05/go-tmdb"
	"github.com/sirupsen/logrus"

	"github.com/plexstream/plexstream/internal/provider"
)

const providerName = "tmdb"

// TMDB allows 40 requests per 10 seconds per API key.
const (
	rateLimitRequests = 40
	rateLimitWindow   = 10 * time.Second
)

// Client is the slice of *tmdb.TMDb the adapter calls, split out so tests
// can substitute a mock (the method set matches *tmdb.TMDb exactly).
type Client interface {
	SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error)
	SearchTv(name string, options map[string]string) (*tmdb.TvSearchResults, error)
	GetMovieInfo(id int, options map[string]string) (*tmdb.Movie, error)
	GetTvInfo(id int, options map[string]string) (*tmdb.TV, error)
	GetMoviePopular(options map[string]string) (*tmdb.MoviePagedResults, error)
	GetMovieTopRated(options map[string]string) (*tmdb.MoviePagedResults, error)
	GetTvPopular(options map[string]string) (*tmdb.TvPagedResults, error)
	GetTvTopRated(options map[string]string) (*tmdb.TvPagedResults, error)
}

// Config carries the settings a TMDB adapter needs.
type Config struct {
	APIKey   string
	Language string
	Logger   *logrus.Logger
}

// Adapter implements provider.Adapter against TMDB.
type Adapter struct {
	client   Client
	language string
	limiter  *rateLimiter
	logger   *logrus.Logger
}

// New creates a TMDB adapter.
func New(cfg Config) (*Adapter, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, provider.NewError(providerName, provider.KindInvalidQuery, "api key is required", nil)
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	client := tmdb.Init(tmdb.Config{
		APIKey:   apiKey,
		Proxies:  nil,
		UseProxy: false,
	})

	return &Adapter{
		client:   client,
		language: language,
		limiter:  newRateLimiter(rateLimitRequests, rateLimitWindow),
		logger:   logger,
	}, nil
}

// Name returns the adapter's registry key.
func (a *Adapter) Name() string {
	return providerName
}

// Capabilities reports native listing feeds and in-payload videos.
func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{
		NativeListings: true,
		Videos:         true,
	}
}

// SetClient swaps the underlying API client (for testing).
func (a *Adapter) SetClient(client Client) {
	a.client = client
}

func (a *Adapter) options() map[string]string {
	return map[string]string{"language": a.language}
}

// parseID converts a record id into TMDB's numeric form.
func parseID(id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return 0, provider.NewError(providerName, provider.KindInvalidQuery,
			"invalid tmdb id "+strconv.Quote(id), err)
	}
	return n, nil
}

// mapError classifies go-tmdb failures by status-code sniffing: the client
// folds HTTP errors into the message text.
func mapError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "404") || strings.Contains(msg, "could not be found"):
		return provider.NewError(providerName, provider.KindNotFound, notFoundMsg, err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "unauthorized"):
		return provider.NewError(providerName, provider.KindInvalidQuery, "authentication rejected", err)
	case strings.Contains(msg, "400") || strings.Contains(msg, "422"):
		return provider.NewError(providerName, provider.KindInvalidQuery, "request rejected", err)
	default:
		return provider.NewError(providerName, provider.KindUnreachable, "request failed", err)
	}
}
