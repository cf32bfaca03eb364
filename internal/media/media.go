// Package media defines the provider-neutral record shapes shared by every
// adapter and the resolution layer. Records are normalized before they leave
// a provider package, so consumers never see upstream sentinels or raw
// payload quirks.
package media

import (
	"fmt"
	"strings"
)

// Type discriminates the two media kinds served by upstream catalogs.
type Type string

const (
	TypeMovie Type = "movie"
	TypeTV    Type = "tv"
)

// ParseType converts user or config input into a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film":
		return TypeMovie, nil
	case "tv", "series", "show", "shows":
		return TypeTV, nil
	}
	return "", fmt.Errorf("unknown media type %q (want movie or tv)", s)
}

// Genre is a normalized genre tag. Providers without numeric genre ids get
// synthetic positional ids assigned during normalization.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company credit.
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one entry of a detail record's cast list, ordered by billing.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// CrewMember is one entry of a detail record's crew list.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Video is a promotional clip reference attached to a detail record.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList wraps videos the way detail payloads carry them.
type VideoList struct {
	Results []Video `json:"results"`
}

// Credits holds the people attached to a detail record.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Media is a normalized summary record, the unit of every listing and search
// response. Exactly one of Title/Name and exactly one of
// ReleaseDate/FirstAirDate is populated, keyed off Type: movies carry
// Title+ReleaseDate, tv carries Name+FirstAirDate.
type Media struct {
	ID           string  `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Type         Type    `json:"media_type"`
	GenreIDs     []int   `json:"genre_ids"`
}

// DisplayTitle returns the populated title field for either kind.
func (m *Media) DisplayTitle() string {
	if m.Type == TypeTV {
		return m.Name
	}
	return m.Title
}

// Date returns the populated date field for either kind.
func (m *Media) Date() string {
	if m.Type == TypeTV {
		return m.FirstAirDate
	}
	return m.ReleaseDate
}

// Validate checks the kind/field pairing invariant. Normalizers call this
// before handing records to callers.
func (m *Media) Validate() error {
	switch m.Type {
	case TypeMovie:
		if m.Title == "" {
			return fmt.Errorf("movie record %s: title is empty", m.ID)
		}
		if m.Name != "" {
			return fmt.Errorf("movie record %s: name must be empty, got %q", m.ID, m.Name)
		}
		if m.FirstAirDate != "" {
			return fmt.Errorf("movie record %s: first_air_date must be empty, got %q", m.ID, m.FirstAirDate)
		}
	case TypeTV:
		if m.Name == "" {
			return fmt.Errorf("tv record %s: name is empty", m.ID)
		}
		if m.Title != "" {
			return fmt.Errorf("tv record %s: title must be empty, got %q", m.ID, m.Title)
		}
		if m.ReleaseDate != "" {
			return fmt.Errorf("tv record %s: release_date must be empty, got %q", m.ID, m.ReleaseDate)
		}
	default:
		return fmt.Errorf("record %s: unknown media type %q", m.ID, m.Type)
	}
	return nil
}

// MediaDetails is the full detail record for a single title. The embedded
// Media carries the summary fields under the same invariant; Runtime is only
// meaningful for movies and NumberOfSeasons/NumberOfEpisodes only for tv.
type MediaDetails struct {
	Media
	Runtime             int       `json:"runtime,omitempty"`
	NumberOfSeasons     int       `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes    int       `json:"number_of_episodes,omitempty"`
	Genres              []Genre   `json:"genres"`
	Tagline             string    `json:"tagline,omitempty"`
	Status              string    `json:"status"`
	Homepage            string    `json:"homepage,omitempty"`
	ProductionCompanies []Company `json:"production_companies"`
	Credits             Credits   `json:"credits"`
	Videos              VideoList `json:"videos"`
}
