package gateway

import "github.com/plexstream/plexstream/internal/media"

// Fallback records stand in for listing and detail responses when the
// provider is unreachable. Their ids are clearly synthetic so nothing
// downstream mistakes them for catalog records.

const (
	FallbackMovieID = "fallback-movie"
	FallbackTVID    = "fallback-tv"

	fallbackOverview = "Media information is temporarily unavailable. Please try again later."
)

// FallbackMedia returns the placeholder listing records, one per kind.
func FallbackMedia() []media.Media {
	return []media.Media{fallbackMovie(), fallbackShow()}
}

// FallbackDetails returns the placeholder detail record for one kind. The
// record is fully populated so detail views render: status set, genre
// present, credits and videos empty.
func FallbackDetails(mediaType media.Type) *media.MediaDetails {
	base := fallbackMovie()
	if mediaType == media.TypeTV {
		base = fallbackShow()
	}
	return &media.MediaDetails{
		Media:               base,
		Genres:              []media.Genre{{ID: 18, Name: "Drama"}},
		Status:              "Released",
		ProductionCompanies: []media.Company{},
		Credits:             media.Credits{Cast: []media.CastMember{}, Crew: []media.CrewMember{}},
		Videos:              media.VideoList{Results: []media.Video{}},
	}
}

func fallbackMovie() media.Media {
	return media.Media{
		ID:          FallbackMovieID,
		Title:       "Fallback Movie",
		Overview:    fallbackOverview,
		ReleaseDate: "2024-01-01",
		Type:        media.TypeMovie,
	}
}

func fallbackShow() media.Media {
	return media.Media{
		ID:           FallbackTVID,
		Name:         "Fallback TV Show",
		Overview:     fallbackOverview,
		FirstAirDate: "2024-01-01",
		Type:         media.TypeTV,
	}
}
