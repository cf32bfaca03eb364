package media

import "strings"

// PlaceholderOverview fills the overview of records whose upstream payload
// carried none, so list views always have text to render.
const PlaceholderOverview = "No overview available"

// PlaceholderImageURL stands in for artwork when a record has no poster.
const PlaceholderImageURL = "https://via.placeholder.com/500x750?text=No+Image"

const imageBaseURL = "https://image.tmdb.org/t/p/"

// ImageSize selects an artwork rendition.
type ImageSize string

const (
	ImageOriginal ImageSize = "original"
	ImageW500     ImageSize = "w500"
	ImageW300     ImageSize = "w300"
	ImageW185     ImageSize = "w185"
)

// ImageURL expands a stored poster or backdrop path into a fetchable URL.
// Absolute URLs pass through untouched, relative paths are expanded against
// the image CDN at the requested size, and an empty path yields the
// placeholder.
func ImageURL(path string, size ImageSize) string {
	if path == "" {
		return PlaceholderImageURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if size == "" {
		size = ImageW500
	}
	return imageBaseURL + string(size) + path
}
