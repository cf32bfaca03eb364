// Package omdb adapts the Open Movie Database API. OMDb is an IMDb-backed
// catalog: record ids are IMDb ids, search is type-scoped, absent fields
// carry the "N/A" sentinel, and business failures arrive in-band on a 200
// response.
package omdb

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Digital-Shane/omdb"
	"github.com/sirupsen/logrus"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/provider"
)

const providerName = "omdb"

const defaultTimeout = 10 * time.Second

// Config carries the settings an OMDb adapter needs. HTTPClient and Logger
// are optional and mostly useful for tests.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Adapter implements provider.Adapter against OMDb.
type Adapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// New creates an OMDb adapter.
func New(cfg Config) (*Adapter, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, provider.NewError(providerName, provider.KindInvalidQuery, "api key is required", nil)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = omdb.DefaultURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &Adapter{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Name returns the adapter's registry key.
func (a *Adapter) Name() string {
	return providerName
}

// Capabilities reports that OMDb serves neither curated listings nor
// promotional videos, so the resolution layer synthesizes both.
func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{}
}

// Search runs a kind-scoped title search. OMDb reports an empty result set
// as the in-band error "Movie not found!", which is translated back into an
// empty slice here. Items that fail normalization are dropped.
func (a *Adapter) Search(ctx context.Context, q provider.Query) ([]media.Media, error) {
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return []media.Media{}, nil
	}
	searchType, err := searchTypeFor(q.Type)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("s", term)
	params.Set("type", searchType)
	if q.Year != "" {
		params.Set("y", q.Year)
	}

	var envelope searchEnvelope
	if err := a.get(ctx, params, &envelope); err != nil {
		return nil, err
	}
	if envelope.Response == "False" {
		mapped := mapBusinessError(envelope.Error)
		if mapped.Kind == provider.KindNotFound {
			return []media.Media{}, nil
		}
		return nil, mapped
	}

	results := make([]media.Media, 0, len(envelope.Search))
	for _, item := range envelope.Search {
		m, err := normalizeSearchItem(item, q.Type)
		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"provider": providerName,
				"id":       item.ImdbID,
				"error":    err,
			}).Warn("dropping unnormalizable search result")
			continue
		}
		results = append(results, m)
	}
	return results, nil
}

// Lookup fetches a full record by IMDb id.
func (a *Adapter) Lookup(ctx context.Context, mediaType media.Type, id string) (*media.MediaDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, provider.NewError(providerName, provider.KindInvalidQuery, "lookup requires an id", nil)
	}

	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	var record detailRecord
	if err := a.get(ctx, params, &record); err != nil {
		return nil, err
	}
	if record.Response == "False" {
		return nil, mapBusinessError(record.ErrorMsg)
	}
	if kind := kindFromPayload(record.Type); kind != mediaType {
		return nil, provider.NewError(providerName, provider.KindNotFound,
			"no "+string(mediaType)+" with id "+id, nil)
	}

	details, err := normalizeDetail(&record)
	if err != nil {
		return nil, provider.NewError(providerName, provider.KindNormalization, "normalizing "+id, err)
	}
	return details, nil
}

// List is unsupported: OMDb has no curated feeds.
func (a *Adapter) List(ctx context.Context, listing provider.Listing, mediaType media.Type) ([]media.Media, error) {
	return nil, provider.NewError(providerName, provider.KindInvalidQuery,
		"omdb has no native "+string(listing)+" listing", nil)
}

// searchTypeFor maps a media kind onto OMDb's type parameter.
func searchTypeFor(t media.Type) (string, error) {
	switch t {
	case media.TypeMovie:
		return "movie", nil
	case media.TypeTV:
		return "series", nil
	}
	return "", provider.NewError(providerName, provider.KindInvalidQuery,
		"search requires a concrete media type", nil)
}

// kindFromPayload maps OMDb's Type field onto a media kind. Episode payloads
// map to "", which callers treat as a mismatch.
func kindFromPayload(s string) media.Type {
	switch strings.ToLower(s) {
	case "movie":
		return media.TypeMovie
	case "series":
		return media.TypeTV
	}
	return ""
}
