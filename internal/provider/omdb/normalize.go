package omdb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Digital-Shane/omdb"

	"github.com/plexstream/plexstream/internal/media"
)

// placeholderCharacter fills the character slot of cast entries because OMDb
// credits actors without roles.
const placeholderCharacter = "Character information not available"

// scrub collapses OMDb's "N/A" sentinel into an empty string.
func scrub(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "N/A") {
		return ""
	}
	return s
}

// normalizeSearchItem converts one search hit into a summary record. Search
// payloads carry no plot or rating, so the overview gets the placeholder and
// the vote average stays zero.
func normalizeSearchItem(item searchItem, want media.Type) (media.Media, error) {
	if item.ImdbID == "" {
		return media.Media{}, fmt.Errorf("search result %q has no imdb id", item.Title)
	}
	kind := kindFromPayload(item.Type)
	if kind == "" {
		kind = want
	}

	poster := scrub(item.Poster)
	m := media.Media{
		ID:           item.ImdbID,
		Overview:     media.PlaceholderOverview,
		PosterPath:   poster,
		BackdropPath: optional(poster),
		Type:         kind,
	}

	date := yearToDate(item.Year)
	switch kind {
	case media.TypeMovie:
		m.Title = scrub(item.Title)
		m.ReleaseDate = date
	case media.TypeTV:
		m.Name = scrub(item.Title)
		m.FirstAirDate = date
	}

	if err := m.Validate(); err != nil {
		return media.Media{}, err
	}
	return m, nil
}

// normalizeDetail converts a full OMDb record into a detail record. Genres
// get synthetic positional ids because OMDb only supplies names.
func normalizeDetail(record *detailRecord) (*media.MediaDetails, error) {
	kind := kindFromPayload(record.Type)
	poster := scrub(record.Poster)

	details := &media.MediaDetails{
		Media: media.Media{
			ID:           record.ImdbID,
			Overview:     overviewOrPlaceholder(record.Plot),
			PosterPath:   poster,
			BackdropPath: optional(poster),
			VoteAverage:  parseRating(record.ImdbRating),
			Type:         kind,
		},
		Genres:              genreList(record.Genre),
		Status:              "Released",
		Homepage:            homepage(record),
		ProductionCompanies: companyList(record.Production),
		Credits: media.Credits{
			Cast: castList(record.Actors),
			Crew: crewList(record.Director, record.Writer),
		},
		Videos: media.VideoList{Results: []media.Video{}},
	}

	date := releaseDate(record)
	switch kind {
	case media.TypeMovie:
		details.Title = scrub(record.Title)
		details.ReleaseDate = date
		details.Runtime = parseRuntime(record.Runtime)
	case media.TypeTV:
		details.Name = scrub(record.Title)
		details.FirstAirDate = date
		if n, err := strconv.Atoi(scrub(record.TotalSeasons)); err == nil {
			details.NumberOfSeasons = n
		}
	}

	if err := details.Validate(); err != nil {
		return nil, err
	}
	return details, nil
}

// yearToDate turns OMDb's Year field into an ISO date. Series years arrive
// as ranges ("2011–2019" or "2011–"), so only the first year is kept.
func yearToDate(year string) string {
	y := omdb.FirstYear(scrub(year))
	if y == "" {
		return ""
	}
	return y + "-01-01"
}

// releaseDate prefers the precise Released field ("16 Jul 2010") and falls
// back to the year.
func releaseDate(record *detailRecord) string {
	if released := scrub(record.Released); released != "" {
		if t, err := time.Parse("02 Jan 2006", released); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return yearToDate(record.Year)
}

func overviewOrPlaceholder(plot string) string {
	if p := scrub(plot); p != "" {
		return p
	}
	return media.PlaceholderOverview
}

func genreList(raw string) []media.Genre {
	names := omdb.SplitAndTrim(scrub(raw))
	genres := make([]media.Genre, 0, len(names))
	for i, name := range names {
		genres = append(genres, media.Genre{ID: i, Name: name})
	}
	return genres
}

func castList(actors string) []media.CastMember {
	names := omdb.SplitAndTrim(scrub(actors))
	cast := make([]media.CastMember, 0, len(names))
	for i, name := range names {
		cast = append(cast, media.CastMember{
			ID:        i,
			Name:      name,
			Character: placeholderCharacter,
		})
	}
	return cast
}

func crewList(director, writer string) []media.CrewMember {
	crew := []media.CrewMember{}
	id := 0
	for _, name := range omdb.SplitAndTrim(scrub(director)) {
		crew = append(crew, media.CrewMember{ID: id, Name: name, Job: "Director", Department: "Directing"})
		id++
	}
	for _, name := range omdb.SplitAndTrim(scrub(writer)) {
		crew = append(crew, media.CrewMember{ID: id, Name: name, Job: "Writer", Department: "Writing"})
		id++
	}
	return crew
}

func companyList(production string) []media.Company {
	companies := []media.Company{}
	for i, name := range omdb.SplitAndTrim(scrub(production)) {
		companies = append(companies, media.Company{ID: i, Name: name})
	}
	return companies
}

// homepage points at the IMDb title page when the record has no website of
// its own.
func homepage(record *detailRecord) string {
	if site := scrub(record.Website); site != "" {
		return site
	}
	if record.ImdbID != "" {
		return "https://www.imdb.com/title/" + record.ImdbID
	}
	return ""
}

// parseRating parses the imdbRating field at full precision.
func parseRating(raw string) float64 {
	r, err := strconv.ParseFloat(scrub(raw), 64)
	if err != nil {
		return 0
	}
	return r
}

// parseRuntime extracts the minute count from strings like "148 min".
func parseRuntime(raw string) int {
	fields := strings.Fields(scrub(raw))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
