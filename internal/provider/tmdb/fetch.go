package tmdb

import (
	"context"
	"strings"

	tmdb "github.com/ryanbradynd05/go-tmdb"
	"github.com/sirupsen/logrus"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/provider"
)

// Search runs a kind-scoped title search.
func (a *Adapter) Search(ctx context.Context, q provider.Query) ([]media.Media, error) {
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return []media.Media{}, nil
	}
	if err := a.limiter.wait(ctx); err != nil {
		return nil, provider.NewError(providerName, provider.KindUnreachable, "rate limit wait", err)
	}

	a.logger.WithFields(logrus.Fields{
		"provider": providerName,
		"term":     term,
		"type":     q.Type,
	}).Debug("tmdb search")

	options := a.options()
	if q.Year != "" {
		options["year"] = q.Year
	}

	switch q.Type {
	case media.TypeMovie:
		results, err := a.client.SearchMovie(term, options)
		if err != nil {
			return nil, mapError(err, "no movies matching "+term)
		}
		if results == nil {
			return []media.Media{}, nil
		}
		out := make([]media.Media, 0, len(results.Results))
		for i := range results.Results {
			m, err := normalizeMovieShort(&results.Results[i])
			if err != nil {
				a.dropRecord(results.Results[i].ID, err)
				continue
			}
			out = append(out, m)
		}
		return out, nil
	case media.TypeTV:
		results, err := a.client.SearchTv(term, options)
		if err != nil {
			return nil, mapError(err, "no series matching "+term)
		}
		if results == nil {
			return []media.Media{}, nil
		}
		out := make([]media.Media, 0, len(results.Results))
		for i := range results.Results {
			show := (*tvSummary)(&results.Results[i])
			m, err := normalizeTvSummary(show)
			if err != nil {
				a.dropRecord(show.ID, err)
				continue
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, provider.NewError(providerName, provider.KindInvalidQuery,
		"search requires a concrete media type", nil)
}

// Lookup fetches a full record by numeric id, pulling credits and videos in
// the same round trip.
func (a *Adapter) Lookup(ctx context.Context, mediaType media.Type, id string) (*media.MediaDetails, error) {
	numericID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := a.limiter.wait(ctx); err != nil {
		return nil, provider.NewError(providerName, provider.KindUnreachable, "rate limit wait", err)
	}

	a.logger.WithFields(logrus.Fields{
		"provider": providerName,
		"id":       numericID,
		"type":     mediaType,
	}).Debug("tmdb lookup")

	options := a.options()
	options["append_to_response"] = "credits,videos"

	switch mediaType {
	case media.TypeMovie:
		movie, err := a.client.GetMovieInfo(numericID, options)
		if err != nil {
			return nil, mapError(err, "movie "+id+" not found")
		}
		details, err := normalizeMovie(movie)
		if err != nil {
			return nil, provider.NewError(providerName, provider.KindNormalization, "normalizing movie "+id, err)
		}
		return details, nil
	case media.TypeTV:
		show, err := a.client.GetTvInfo(numericID, options)
		if err != nil {
			return nil, mapError(err, "series "+id+" not found")
		}
		details, err := normalizeTv(show)
		if err != nil {
			return nil, provider.NewError(providerName, provider.KindNormalization, "normalizing series "+id, err)
		}
		return details, nil
	}
	return nil, provider.NewError(providerName, provider.KindInvalidQuery,
		"lookup requires a concrete media type", nil)
}

// List serves the popular and top-rated feeds natively.
func (a *Adapter) List(ctx context.Context, listing provider.Listing, mediaType media.Type) ([]media.Media, error) {
	if err := a.limiter.wait(ctx); err != nil {
		return nil, provider.NewError(providerName, provider.KindUnreachable, "rate limit wait", err)
	}

	a.logger.WithFields(logrus.Fields{
		"provider": providerName,
		"listing":  listing,
		"type":     mediaType,
	}).Debug("tmdb list")

	options := a.options()

	switch mediaType {
	case media.TypeMovie:
		var results *tmdb.MoviePagedResults
		var err error
		switch listing {
		case provider.ListingPopular:
			results, err = a.client.GetMoviePopular(options)
		case provider.ListingTopRated:
			results, err = a.client.GetMovieTopRated(options)
		default:
			return nil, unknownListing(listing)
		}
		if err != nil {
			return nil, mapError(err, string(listing)+" movies unavailable")
		}
		if results == nil {
			return []media.Media{}, nil
		}
		out := make([]media.Media, 0, len(results.Results))
		for i := range results.Results {
			m, err := normalizeMovieShort(&results.Results[i])
			if err != nil {
				a.dropRecord(results.Results[i].ID, err)
				continue
			}
			out = append(out, m)
		}
		return out, nil
	case media.TypeTV:
		var results *tmdb.TvPagedResults
		var err error
		switch listing {
		case provider.ListingPopular:
			results, err = a.client.GetTvPopular(options)
		case provider.ListingTopRated:
			results, err = a.client.GetTvTopRated(options)
		default:
			return nil, unknownListing(listing)
		}
		if err != nil {
			return nil, mapError(err, string(listing)+" series unavailable")
		}
		if results == nil {
			return []media.Media{}, nil
		}
		out := make([]media.Media, 0, len(results.Results))
		for i := range results.Results {
			m, err := normalizeTvShort(&results.Results[i])
			if err != nil {
				a.dropRecord(results.Results[i].ID, err)
				continue
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, provider.NewError(providerName, provider.KindInvalidQuery,
		"listing requires a concrete media type", nil)
}

func unknownListing(listing provider.Listing) error {
	return provider.NewError(providerName, provider.KindInvalidQuery,
		"unknown listing "+string(listing), nil)
}

func (a *Adapter) dropRecord(id int, err error) {
	a.logger.WithFields(logrus.Fields{
		"provider": providerName,
		"id":       id,
		"error":    err,
	}).Warn("dropping unnormalizable record")
}
