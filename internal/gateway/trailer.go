package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/plexstream/plexstream/internal/media"
)

const (
	youtubeWatchURL  = "https://www.youtube.com/watch?v="
	youtubeSearchURL = "https://www.youtube.com/results?search_query="
)

// TrailerURL resolves a watchable trailer link for one title. YouTube
// entries from the detail record win, trailers before teasers; when the
// record carries no usable video a YouTube search deep link is returned
// instead. A direct video link is never fabricated.
func (g *Gateway) TrailerURL(ctx context.Context, mediaType media.Type, id string) (string, error) {
	details, err := g.Details(ctx, mediaType, id)
	if err != nil {
		return "", err
	}

	if g.adapter.Capabilities().Videos {
		for _, kind := range []string{"Trailer", "Teaser"} {
			for _, video := range details.Videos.Results {
				if video.Site == "YouTube" && video.Type == kind && video.Key != "" {
					return youtubeWatchURL + video.Key, nil
				}
			}
		}
	}

	return g.searchDeepLink(details), nil
}

// searchDeepLink builds the "{title} {kind} trailer {year}" YouTube search
// link used when no direct video is known.
func (g *Gateway) searchDeepLink(details *media.MediaDetails) string {
	kind := "movie"
	if details.Type == media.TypeTV {
		kind = "tv"
	}
	query := fmt.Sprintf("%s %s trailer %d", details.DisplayTitle(), kind, g.now().Year())
	return youtubeSearchURL + url.QueryEscape(query)
}
