package gateway

import (
	"context"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/provider"
)

// Seed terms synthesize curated feeds for providers whose API is
// search-only. Each listing fans out one search per seed and merges the
// results in seed order.
var (
	popularMovieSeeds = []string{
		"Inception", "The Dark Knight", "Interstellar", "The Matrix", "Avatar",
		"Avengers", "Jurassic Park", "Star Wars", "Titanic", "Terminator",
	}
	popularTVSeeds = []string{
		"Game of Thrones", "Breaking Bad", "Stranger Things", "The Office", "Friends",
		"The Crown", "The Mandalorian", "The Witcher", "Westworld", "House of Cards",
	}
	topRatedMovieSeeds = []string{
		"The Shawshank Redemption", "The Godfather", "Pulp Fiction", "Schindler's List", "Forrest Gump",
		"The Lord of the Rings", "Fight Club", "The Silence of the Lambs", "Goodfellas", "Seven",
	}
	topRatedTVSeeds = []string{
		"Planet Earth", "Band of Brothers", "The Wire", "Chernobyl", "True Detective",
		"Sherlock", "Fargo", "Black Mirror", "Narcos", "The Handmaid's Tale",
	}
)

// seedConcurrency bounds simultaneous upstream searches during fan-out.
const seedConcurrency = 5

// Trending merges the popular feeds of both kinds, shuffles, and caps. When
// nothing at all could be fetched the fallback records are returned.
func (g *Gateway) Trending(ctx context.Context) ([]media.Media, error) {
	if cached, found := g.cache.Get("trending"); found {
		return g.shuffled(cached.([]media.Media)), nil
	}

	var movies, shows []media.Media
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		movies, err = g.listing(grpCtx, provider.ListingPopular, media.TypeMovie, popularMovieSeeds)
		return err
	})
	grp.Go(func() error {
		var err error
		shows, err = g.listing(grpCtx, provider.ListingPopular, media.TypeTV, popularTVSeeds)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	merged := truncate(dedupe(append(movies, shows...)), g.listLimit)
	if len(merged) == 0 {
		return FallbackMedia(), nil
	}

	g.cache.Set("trending", merged, cache.DefaultExpiration)
	return g.shuffled(merged), nil
}

// Popular serves the popular feed for one kind.
func (g *Gateway) Popular(ctx context.Context, mediaType media.Type) ([]media.Media, error) {
	seeds := popularMovieSeeds
	if mediaType == media.TypeTV {
		seeds = popularTVSeeds
	}
	return g.cachedListing(ctx, provider.ListingPopular, mediaType, seeds)
}

// TopRated serves the top-rated feed for one kind.
func (g *Gateway) TopRated(ctx context.Context, mediaType media.Type) ([]media.Media, error) {
	seeds := topRatedMovieSeeds
	if mediaType == media.TypeTV {
		seeds = topRatedTVSeeds
	}
	return g.cachedListing(ctx, provider.ListingTopRated, mediaType, seeds)
}

func (g *Gateway) cachedListing(ctx context.Context, listing provider.Listing, mediaType media.Type, seeds []string) ([]media.Media, error) {
	cacheKey := string(listing) + ":" + string(mediaType)
	if cached, found := g.cache.Get(cacheKey); found {
		return cached.([]media.Media), nil
	}

	results, err := g.listing(ctx, listing, mediaType, seeds)
	if err != nil {
		return nil, err
	}
	results = truncate(dedupe(results), g.listLimit)
	if len(results) == 0 {
		return fallbackFor(mediaType), nil
	}

	g.cache.Set(cacheKey, results, cache.DefaultExpiration)
	return results, nil
}

// listing fetches one feed, natively when the adapter supports it and by
// seed fan-out otherwise. Unreachable failures degrade to an empty feed;
// other errors propagate.
func (g *Gateway) listing(ctx context.Context, listing provider.Listing, mediaType media.Type, seeds []string) ([]media.Media, error) {
	if g.adapter.Capabilities().NativeListings {
		results, err := g.adapter.List(ctx, listing, mediaType)
		if err != nil {
			if provider.IsUnreachable(err) {
				g.degrade("listing", err)
				return []media.Media{}, nil
			}
			return nil, err
		}
		return results, nil
	}
	return g.seedFanOut(ctx, mediaType, seeds)
}

// seedFanOut issues one kind-scoped search per seed term concurrently and
// merges the hits in seed order. A failed seed contributes nothing.
func (g *Gateway) seedFanOut(ctx context.Context, mediaType media.Type, seeds []string) ([]media.Media, error) {
	slots := make([][]media.Media, len(seeds))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(seedConcurrency)
	for i, seed := range seeds {
		grp.Go(func() error {
			results, err := g.adapter.Search(grpCtx, provider.Query{Term: seed, Type: mediaType})
			if err != nil {
				if provider.IsUnreachable(err) {
					g.degrade("seed search", err)
					return nil
				}
				return err
			}
			slots[i] = results
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	merged := make([]media.Media, 0, len(seeds)*2)
	for _, slot := range slots {
		merged = append(merged, slot...)
	}
	return merged, nil
}

// shuffled returns a shuffled copy so cached listings stay in fetch order.
func (g *Gateway) shuffled(items []media.Media) []media.Media {
	out := make([]media.Media, len(items))
	copy(out, items)
	g.shuffle(out)
	return out
}

func fallbackFor(mediaType media.Type) []media.Media {
	for _, m := range FallbackMedia() {
		if m.Type == mediaType {
			return []media.Media{m}
		}
	}
	return FallbackMedia()
}
