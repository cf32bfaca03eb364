// Package provider defines the adapter contract between upstream media
// catalogs and the resolution layer, plus the shared error taxonomy every
// adapter maps its upstream failures into.
package provider

import (
	"context"

	"github.com/plexstream/plexstream/internal/media"
)

// Query is a kind-scoped search request. Term is the raw user input; Year is
// an optional filter for providers that support it.
type Query struct {
	Term string
	Type media.Type
	Year string
}

// Listing names the curated list feeds a provider may serve natively.
type Listing string

const (
	ListingPopular  Listing = "popular"
	ListingTopRated Listing = "top_rated"
)

// Capabilities describes what an adapter can do beyond search and lookup, so
// the resolution layer can pick between native calls and synthesized ones.
type Capabilities struct {
	// NativeListings reports whether List serves popular/top-rated feeds
	// directly. When false the resolution layer synthesizes listings from
	// seeded searches.
	NativeListings bool
	// Videos reports whether detail records carry promotional clip entries.
	Videos bool
}

// Adapter is one upstream catalog. Implementations own all upstream-specific
// transport, payload shapes, and sentinel values; everything they return is
// normalized and validated.
type Adapter interface {
	// Name returns the adapter's registry key.
	Name() string

	// Capabilities reports the adapter's optional features.
	Capabilities() Capabilities

	// Search runs a kind-scoped title search. A query matching nothing
	// returns an empty slice, not an error.
	Search(ctx context.Context, q Query) ([]media.Media, error)

	// Lookup fetches the full detail record for one title. An unknown id
	// returns an *Error with KindNotFound.
	Lookup(ctx context.Context, mediaType media.Type, id string) (*media.MediaDetails, error)

	// List serves a native curated feed for one kind. Adapters without
	// native listings return an *Error with KindInvalidQuery.
	List(ctx context.Context, listing Listing, mediaType media.Type) ([]media.Media, error)
}
