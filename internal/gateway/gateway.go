// Package gateway is the resolution layer between callers and a provider
// adapter. It owns the degradation policy: transport-level provider failures
// are absorbed into documented fallback data on read paths, while not-found
// and invalid-query failures always surface as typed errors. It also owns
// response caching and the listing synthesis for providers without native
// feeds.
package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/provider"
)

const (
	defaultListingLimit        = 20
	defaultRecommendationLimit = 10
	defaultCacheTTL            = 10 * time.Minute
	cacheCleanupInterval       = 10 * time.Minute
)

// Config carries gateway construction settings. Only Adapter is required.
type Config struct {
	Adapter provider.Adapter
	Logger  *logrus.Logger
	// CacheTTL bounds how long responses are reused. Zero means the default.
	CacheTTL time.Duration
	// ListingLimit caps listing and search responses. Zero means 20.
	ListingLimit int
	// RecommendationLimit caps recommendation responses. Zero means 10.
	RecommendationLimit int
	// Now is the clock used for trailer deep links. Zero means time.Now.
	Now func() time.Time
}

// Gateway resolves catalog operations through one adapter.
type Gateway struct {
	adapter   provider.Adapter
	cache     *cache.Cache
	logger    *logrus.Logger
	listLimit int
	recLimit  int
	now       func() time.Time
	shuffle   func([]media.Media)
}

// New creates a gateway over the given adapter.
func New(cfg Config) (*Gateway, error) {
	if cfg.Adapter == nil {
		return nil, fmt.Errorf("gateway: adapter is required")
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	listLimit := cfg.ListingLimit
	if listLimit == 0 {
		listLimit = defaultListingLimit
	}
	recLimit := cfg.RecommendationLimit
	if recLimit == 0 {
		recLimit = defaultRecommendationLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Gateway{
		adapter:   cfg.Adapter,
		cache:     cache.New(ttl, cacheCleanupInterval),
		logger:    logger,
		listLimit: listLimit,
		recLimit:  recLimit,
		now:       now,
		shuffle: func(items []media.Media) {
			rand.Shuffle(len(items), func(i, j int) {
				items[i], items[j] = items[j], items[i]
			})
		},
	}, nil
}

// Search runs the user's query against both kinds concurrently and merges
// movies before series. A trailing parenthesized year in the query scopes
// both branches. A kind whose branch is unreachable contributes nothing;
// if both branches are unreachable the fallback records are returned so
// the view has something to render.
func (g *Gateway) Search(ctx context.Context, raw string) ([]media.Media, error) {
	term, year := media.ParseQuery(raw)
	if term == "" {
		return []media.Media{}, nil
	}

	cacheKey := "search:" + raw
	if cached, found := g.cache.Get(cacheKey); found {
		return cached.([]media.Media), nil
	}

	var movies, shows []media.Media
	var moviesDown, showsDown bool

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		results, err := g.adapter.Search(grpCtx, provider.Query{Term: term, Year: year, Type: media.TypeMovie})
		if err != nil {
			if provider.IsUnreachable(err) {
				g.degrade("search", err)
				moviesDown = true
				return nil
			}
			return err
		}
		movies = results
		return nil
	})
	grp.Go(func() error {
		results, err := g.adapter.Search(grpCtx, provider.Query{Term: term, Year: year, Type: media.TypeTV})
		if err != nil {
			if provider.IsUnreachable(err) {
				g.degrade("search", err)
				showsDown = true
				return nil
			}
			return err
		}
		shows = results
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if moviesDown && showsDown {
		return FallbackMedia(), nil
	}

	merged := truncate(dedupe(append(movies, shows...)), g.listLimit)
	// A half-degraded merge is served but never cached, so the missing
	// kind returns as soon as the provider recovers.
	if !moviesDown && !showsDown {
		g.cache.Set(cacheKey, merged, cache.DefaultExpiration)
	}
	return merged, nil
}

// Details fetches the full record for one title. Unreachable providers
// degrade to the fallback detail record, which is never cached so a
// recovered provider is consulted again.
func (g *Gateway) Details(ctx context.Context, mediaType media.Type, id string) (*media.MediaDetails, error) {
	cacheKey := fmt.Sprintf("details:%s:%s", mediaType, id)
	if cached, found := g.cache.Get(cacheKey); found {
		return cached.(*media.MediaDetails), nil
	}

	details, err := g.adapter.Lookup(ctx, mediaType, id)
	if err != nil {
		if provider.IsUnreachable(err) {
			g.degrade("details", err)
			return FallbackDetails(mediaType), nil
		}
		return nil, err
	}

	g.cache.Set(cacheKey, details, cache.DefaultExpiration)
	return details, nil
}

// Recommendations finds titles related to the given one by searching the
// record's first genre within the same kind. The original title never
// recommends itself. A record without genres recommends nothing.
func (g *Gateway) Recommendations(ctx context.Context, mediaType media.Type, id string) ([]media.Media, error) {
	details, err := g.Details(ctx, mediaType, id)
	if err != nil {
		return nil, err
	}
	if len(details.Genres) == 0 {
		return []media.Media{}, nil
	}

	results, err := g.adapter.Search(ctx, provider.Query{Term: details.Genres[0].Name, Type: mediaType})
	if err != nil {
		if provider.IsUnreachable(err) {
			g.degrade("recommendations", err)
			return []media.Media{}, nil
		}
		return nil, err
	}

	related := make([]media.Media, 0, len(results))
	for _, m := range results {
		if m.ID == details.ID {
			continue
		}
		related = append(related, m)
	}
	return truncate(related, g.recLimit), nil
}

func (g *Gateway) degrade(op string, err error) {
	g.logger.WithFields(logrus.Fields{
		"operation": op,
		"error":     err,
	}).Warn("provider unreachable, degrading")
}

// dedupeKey identifies a record across a merged feed. Movie and tv ids
// are independent id spaces, so the kind is part of the key.
type dedupeKey struct {
	kind media.Type
	id   string
}

// dedupe keeps the first occurrence of every record.
func dedupe(items []media.Media) []media.Media {
	seen := make(map[dedupeKey]struct{}, len(items))
	out := make([]media.Media, 0, len(items))
	for _, m := range items {
		key := dedupeKey{kind: m.Type, id: m.ID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

func truncate(items []media.Media, limit int) []media.Media {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
