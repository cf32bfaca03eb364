package omdb

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plexstream/plexstream/internal/media"
)

func TestScrub(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sentinel", "N/A", ""},
		{"sentinelLower", "n/a", ""},
		{"sentinelPadded", " N/A ", ""},
		{"value", "Inception", "Inception"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrub(tt.input); got != tt.want {
				t.Errorf("scrub(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestYearToDate(t *testing.T) {
	tests := []struct {
		name string
		year string
		want string
	}{
		{"single", "2010", "2010-01-01"},
		{"closedRange", "2011–2019", "2011-01-01"},
		{"openRange", "2011–", "2011-01-01"},
		{"sentinel", "N/A", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearToDate(tt.year); got != tt.want {
				t.Errorf("yearToDate(%q) = %q, want %q", tt.year, got, tt.want)
			}
		})
	}
}

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"minutes", "148 min", 148},
		{"bare", "62", 62},
		{"sentinel", "N/A", 0},
		{"garbage", "unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRuntime(tt.raw); got != tt.want {
				t.Errorf("parseRuntime(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestGenreListAssignsPositionalIDs(t *testing.T) {
	want := []media.Genre{{ID: 0, Name: "Action"}, {ID: 1, Name: "Sci-Fi"}}
	if diff := cmp.Diff(want, genreList("Action, Sci-Fi")); diff != "" {
		t.Errorf("genreList mismatch (-want +got):\n%s", diff)
	}
	if got := genreList("N/A"); len(got) != 0 {
		t.Errorf("genreList(N/A) = %v, want empty", got)
	}
}

func TestNormalizeSearchItemRequiresID(t *testing.T) {
	_, err := normalizeSearchItem(searchItem{Title: "Ghost", Year: "1990", Type: "movie"}, media.TypeMovie)
	if err == nil {
		t.Fatal("normalizeSearchItem() error = nil, want error for missing id")
	}
}

func TestNormalizeDetailSeries(t *testing.T) {
	record := &detailRecord{
		Title:        "Game of Thrones",
		Year:         "2011–2019",
		Released:     "17 Apr 2011",
		Runtime:      "57 min",
		Genre:        "Action, Adventure, Drama",
		Director:     "N/A",
		Writer:       "David Benioff, D.B. Weiss",
		Actors:       "Emilia Clarke, Peter Dinklage",
		Plot:         "Nine noble families fight for control over the lands of Westeros.",
		Poster:       "N/A",
		ImdbRating:   "9.2",
		ImdbID:       "tt0944947",
		Type:         "series",
		TotalSeasons: "8",
		Production:   "N/A",
		Website:      "N/A",
		Response:     "True",
	}

	got, err := normalizeDetail(record)
	if err != nil {
		t.Fatalf("normalizeDetail() error = %v", err)
	}

	if got.Name != "Game of Thrones" || got.Title != "" {
		t.Errorf("fields = title %q name %q, want name only", got.Title, got.Name)
	}
	if got.FirstAirDate != "2011-04-17" {
		t.Errorf("FirstAirDate = %q, want 2011-04-17", got.FirstAirDate)
	}
	if got.NumberOfSeasons != 8 {
		t.Errorf("NumberOfSeasons = %d, want 8", got.NumberOfSeasons)
	}
	if got.Runtime != 0 {
		t.Errorf("Runtime = %d, want 0 for series", got.Runtime)
	}
	if got.PosterPath != "" || got.BackdropPath != nil {
		t.Errorf("artwork = %q/%v, want scrubbed", got.PosterPath, got.BackdropPath)
	}

	wantCrew := []media.CrewMember{
		{ID: 0, Name: "David Benioff", Job: "Writer", Department: "Writing"},
		{ID: 1, Name: "D.B. Weiss", Job: "Writer", Department: "Writing"},
	}
	if diff := cmp.Diff(wantCrew, got.Credits.Crew); diff != "" {
		t.Errorf("Crew mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeDetailMissingPlot(t *testing.T) {
	record := &detailRecord{
		Title:    "Obscure Film",
		Year:     "1977",
		Plot:     "N/A",
		ImdbID:   "tt0000001",
		Type:     "movie",
		Response: "True",
	}

	got, err := normalizeDetail(record)
	if err != nil {
		t.Fatalf("normalizeDetail() error = %v", err)
	}
	if got.Overview != media.PlaceholderOverview {
		t.Errorf("Overview = %q, want placeholder", got.Overview)
	}
}
