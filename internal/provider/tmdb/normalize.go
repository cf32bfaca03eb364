package tmdb

import (
	"fmt"
	"strconv"

	tmdb "github.com/ryanbradynd05/go-tmdb"

	"github.com/plexstream/plexstream/internal/media"
)

// tvSummary matches the inline struct go-tmdb uses for tv search results, so
// elements can be converted with a plain type conversion.
type tvSummary struct {
	BackdropPath  string   `json:"backdrop_path"`
	ID            int      `json:"id"`
	OriginalName  string   `json:"original_name"`
	FirstAirDate  string   `json:"first_air_date"`
	OriginCountry []string `json:"origin_country"`
	PosterPath    string   `json:"poster_path"`
	Popularity    float32  `json:"popularity"`
	Name          string   `json:"name"`
	VoteAverage   float32  `json:"vote_average"`
	VoteCount     uint32   `json:"vote_count"`
}

func normalizeMovieShort(m *tmdb.MovieShort) (media.Media, error) {
	genreIDs := make([]int, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		genreIDs = append(genreIDs, int(id))
	}

	out := media.Media{
		ID:           strconv.Itoa(m.ID),
		Title:        m.Title,
		Overview:     overviewOrPlaceholder(m.Overview),
		PosterPath:   m.PosterPath,
		BackdropPath: optional(m.BackdropPath),
		ReleaseDate:  m.ReleaseDate,
		VoteAverage:  float64(m.VoteAverage),
		Type:         media.TypeMovie,
		GenreIDs:     genreIDs,
	}
	if err := out.Validate(); err != nil {
		return media.Media{}, err
	}
	return out, nil
}

func normalizeTvSummary(s *tvSummary) (media.Media, error) {
	out := media.Media{
		ID: strconv.Itoa(s.ID),
		// Search payloads for tv carry no overview in this client.
		Overview:     media.PlaceholderOverview,
		Name:         s.Name,
		PosterPath:   s.PosterPath,
		BackdropPath: optional(s.BackdropPath),
		FirstAirDate: s.FirstAirDate,
		VoteAverage:  float64(s.VoteAverage),
		Type:         media.TypeTV,
	}
	if err := out.Validate(); err != nil {
		return media.Media{}, err
	}
	return out, nil
}

func normalizeTvShort(s *tmdb.TvShort) (media.Media, error) {
	return normalizeTvSummary(&tvSummary{
		BackdropPath:  s.BackdropPath,
		ID:            s.ID,
		FirstAirDate:  s.FirstAirDate,
		OriginCountry: s.OriginCountry,
		PosterPath:    s.PosterPath,
		Popularity:    s.Popularity,
		Name:          s.Name,
		VoteAverage:   s.VoteAverage,
		VoteCount:     s.VoteCount,
	})
}

func normalizeMovie(m *tmdb.Movie) (*media.MediaDetails, error) {
	if m == nil {
		return nil, fmt.Errorf("empty movie payload")
	}

	genres := make([]media.Genre, 0, len(m.Genres))
	genreIDs := make([]int, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, media.Genre{ID: g.ID, Name: g.Name})
		genreIDs = append(genreIDs, g.ID)
	}

	companies := make([]media.Company, 0, len(m.ProductionCompanies))
	for _, c := range m.ProductionCompanies {
		companies = append(companies, media.Company{ID: c.ID, Name: c.Name})
	}

	details := &media.MediaDetails{
		Media: media.Media{
			ID:           strconv.Itoa(m.ID),
			Title:        m.Title,
			Overview:     overviewOrPlaceholder(m.Overview),
			PosterPath:   m.PosterPath,
			BackdropPath: optional(m.BackdropPath),
			ReleaseDate:  m.ReleaseDate,
			VoteAverage:  float64(m.VoteAverage),
			Type:         media.TypeMovie,
			GenreIDs:     genreIDs,
		},
		Runtime:             int(m.Runtime),
		Genres:              genres,
		Tagline:             m.Tagline,
		Status:              m.Status,
		Homepage:            m.Homepage,
		ProductionCompanies: companies,
		Credits:             movieCredits(m.Credits),
		Videos:              movieVideos(m.Videos),
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return details, nil
}

func normalizeTv(s *tmdb.TV) (*media.MediaDetails, error) {
	if s == nil {
		return nil, fmt.Errorf("empty series payload")
	}

	genres := make([]media.Genre, 0, len(s.Genres))
	genreIDs := make([]int, 0, len(s.Genres))
	for _, g := range s.Genres {
		genres = append(genres, media.Genre{ID: g.ID, Name: g.Name})
		genreIDs = append(genreIDs, g.ID)
	}

	companies := make([]media.Company, 0, len(s.ProductionCompanies))
	for _, c := range s.ProductionCompanies {
		companies = append(companies, media.Company{ID: c.ID, Name: c.Name})
	}

	details := &media.MediaDetails{
		Media: media.Media{
			ID:           strconv.Itoa(s.ID),
			Name:         s.Name,
			Overview:     overviewOrPlaceholder(s.Overview),
			PosterPath:   s.PosterPath,
			BackdropPath: optional(s.BackdropPath),
			FirstAirDate: s.FirstAirDate,
			VoteAverage:  float64(s.VoteAverage),
			Type:         media.TypeTV,
			GenreIDs:     genreIDs,
		},
		NumberOfSeasons:     s.NumberOfSeasons,
		NumberOfEpisodes:    s.NumberOfEpisodes,
		Genres:              genres,
		Status:              s.Status,
		Homepage:            s.Homepage,
		ProductionCompanies: companies,
		Credits:             tvCredits(s.Credits),
		Videos:              tvVideos(s.Videos),
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return details, nil
}

func movieCredits(c *tmdb.MovieCredits) media.Credits {
	credits := media.Credits{Cast: []media.CastMember{}, Crew: []media.CrewMember{}}
	if c == nil {
		return credits
	}
	for _, member := range c.Cast {
		credits.Cast = append(credits.Cast, media.CastMember{
			ID:          member.ID,
			Name:        member.Name,
			Character:   member.Character,
			ProfilePath: optional(member.ProfilePath),
		})
	}
	for _, member := range c.Crew {
		credits.Crew = append(credits.Crew, media.CrewMember{
			ID:         member.ID,
			Name:       member.Name,
			Job:        member.Job,
			Department: member.Department,
		})
	}
	return credits
}

func tvCredits(c *tmdb.TvCredits) media.Credits {
	credits := media.Credits{Cast: []media.CastMember{}, Crew: []media.CrewMember{}}
	if c == nil {
		return credits
	}
	for _, member := range c.Cast {
		credits.Cast = append(credits.Cast, media.CastMember{
			ID:          member.ID,
			Name:        member.Name,
			Character:   member.Character,
			ProfilePath: optional(member.ProfilePath),
		})
	}
	for _, member := range c.Crew {
		credits.Crew = append(credits.Crew, media.CrewMember{
			ID:         member.ID,
			Name:       member.Name,
			Job:        member.Job,
			Department: member.Department,
		})
	}
	return credits
}

func movieVideos(v *tmdb.MovieVideos) media.VideoList {
	videos := media.VideoList{Results: []media.Video{}}
	if v == nil {
		return videos
	}
	for _, entry := range v.Results {
		videos.Results = append(videos.Results, media.Video{
			ID:   entry.ID,
			Key:  entry.Key,
			Name: entry.Name,
			Site: entry.Site,
			Type: entry.Type,
		})
	}
	return videos
}

func tvVideos(v *tmdb.TvVideos) media.VideoList {
	videos := media.VideoList{Results: []media.Video{}}
	if v == nil {
		return videos
	}
	for _, entry := range v.Results {
		videos.Results = append(videos.Results, media.Video{
			ID:   strconv.Itoa(entry.ID),
			Key:  entry.Key,
			Name: entry.Name,
			Site: entry.Site,
			Type: entry.Type,
		})
	}
	return videos
}

func overviewOrPlaceholder(overview string) string {
	if overview != "" {
		return overview
	}
	return media.PlaceholderOverview
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
