package gateway

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/plexstream/plexstream/internal/media"
	"github.com/plexstream/plexstream/internal/provider"
)

// fakeAdapter implements provider.Adapter with pluggable behavior.
type fakeAdapter struct {
	capabilities provider.Capabilities
	searchFunc   func(context.Context, provider.Query) ([]media.Media, error)
	lookupFunc   func(context.Context, media.Type, string) (*media.MediaDetails, error)
	listFunc     func(context.Context, provider.Listing, media.Type) ([]media.Media, error)
}

func (f *fakeAdapter) Name() string                        { return "fake" }
func (f *fakeAdapter) Capabilities() provider.Capabilities { return f.capabilities }
func (f *fakeAdapter) Search(ctx context.Context, q provider.Query) ([]media.Media, error) {
	return f.searchFunc(ctx, q)
}
func (f *fakeAdapter) Lookup(ctx context.Context, t media.Type, id string) (*media.MediaDetails, error) {
	return f.lookupFunc(ctx, t, id)
}
func (f *fakeAdapter) List(ctx context.Context, l provider.Listing, t media.Type) ([]media.Media, error) {
	return f.listFunc(ctx, l, t)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGateway(t *testing.T, adapter provider.Adapter) *Gateway {
	t.Helper()
	g, err := New(Config{Adapter: adapter, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// Keep listings deterministic.
	g.shuffle = func([]media.Media) {}
	return g
}

func movieRecord(id, title string) media.Media {
	return media.Media{
		ID: id, Title: title, Overview: media.PlaceholderOverview,
		ReleaseDate: "2010-01-01", Type: media.TypeMovie,
	}
}

func tvRecord(id, name string) media.Media {
	return media.Media{
		ID: id, Name: name, Overview: media.PlaceholderOverview,
		FirstAirDate: "2010-01-01", Type: media.TypeTV,
	}
}

func unreachable(op string) error {
	return provider.NewError("fake", provider.KindUnreachable, op+" timed out", nil)
}

func TestSearchMergesMoviesBeforeSeries(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(ctx context.Context, q provider.Query) ([]media.Media, error) {
			switch q.Type {
			case media.TypeMovie:
				return []media.Media{movieRecord("tt0372784", "Batman Begins")}, nil
			case media.TypeTV:
				return []media.Media{tvRecord("tt0059968", "Batman")}, nil
			}
			return nil, fmt.Errorf("unexpected query %+v", q)
		},
	})

	got, err := g.Search(context.Background(), "batman")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search() returned %d records, want 2", len(got))
	}

	movie, show := got[0], got[1]
	if movie.Type != media.TypeMovie || movie.Title == "" || movie.Name != "" || movie.ReleaseDate == "" {
		t.Errorf("movie record = %+v, want title and release_date populated", movie)
	}
	if show.Type != media.TypeTV || show.Name == "" || show.Title != "" || show.FirstAirDate == "" {
		t.Errorf("tv record = %+v, want name and first_air_date populated", show)
	}
}

func TestSearchScopesTrailingYear(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(ctx context.Context, q provider.Query) ([]media.Media, error) {
			if q.Term != "Inception" || q.Year != "2010" {
				t.Errorf("query = %+v, want term Inception year 2010", q)
			}
			if q.Type == media.TypeMovie {
				return []media.Media{movieRecord("27205", "Inception")}, nil
			}
			return []media.Media{}, nil
		},
	})

	got, err := g.Search(context.Background(), "Inception (2010)")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "27205" {
		t.Errorf("Search() = %v, want single 27205 record", got)
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(context.Context, provider.Query) ([]media.Media, error) {
			t.Error("no search expected for empty term")
			return nil, nil
		},
	})

	got, err := g.Search(context.Background(), "")
	if err != nil || len(got) != 0 {
		t.Errorf("Search(\"\") = %v, %v, want empty, nil", got, err)
	}
}

func TestSearchDegradesPerKind(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(ctx context.Context, q provider.Query) ([]media.Media, error) {
			if q.Type == media.TypeMovie {
				return nil, unreachable("search")
			}
			return []media.Media{tvRecord("1396", "Breaking Bad")}, nil
		},
	})

	got, err := g.Search(context.Background(), "breaking bad")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	want := []media.Media{tvRecord("1396", "Breaking Bad")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchKeepsCrossKindIDCollisions(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(ctx context.Context, q provider.Query) ([]media.Media, error) {
			// Movie and tv ids come from independent id spaces, so the
			// same numeric id can name two different titles.
			if q.Type == media.TypeMovie {
				return []media.Media{movieRecord("603", "The Matrix")}, nil
			}
			return []media.Media{tvRecord("603", "Matrix")}, nil
		},
	})

	got, err := g.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search() returned %d records, want both the movie and the series with id 603", len(got))
	}
	if got[0].Type != media.TypeMovie || got[1].Type != media.TypeTV {
		t.Errorf("Search() kinds = [%s %s], want [movie tv]", got[0].Type, got[1].Type)
	}
}

func TestSearchDoesNotCacheDegradedMerge(t *testing.T) {
	moviesReachable := false
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(ctx context.Context, q provider.Query) ([]media.Media, error) {
			switch q.Type {
			case media.TypeMovie:
				if !moviesReachable {
					return nil, unreachable("search")
				}
				return []media.Media{movieRecord("27205", "Inception")}, nil
			case media.TypeTV:
				return []media.Media{tvRecord("1396", "Breaking Bad")}, nil
			}
			return nil, fmt.Errorf("unexpected query %+v", q)
		},
	})

	got, err := g.Search(context.Background(), "catalog")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("degraded Search() returned %d records, want 1", len(got))
	}

	// Once the movie branch recovers, the next identical query must see
	// both kinds instead of the degraded merge.
	moviesReachable = true
	got, err = g.Search(context.Background(), "catalog")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search() after recovery returned %d records, want 2", len(got))
	}
}

func TestSearchFallsBackWhenAllKindsUnreachable(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(context.Context, provider.Query) ([]media.Media, error) {
			return nil, unreachable("search")
		},
	})

	got, err := g.Search(context.Background(), "batman")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff(FallbackMedia(), got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPropagatesInvalidQuery(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		searchFunc: func(context.Context, provider.Query) ([]media.Media, error) {
			return nil, provider.NewError("fake", provider.KindInvalidQuery, "bad key", nil)
		},
	})

	_, err := g.Search(context.Background(), "batman")
	if !provider.IsInvalidQuery(err) {
		t.Errorf("Search() error = %v, want invalid_query", err)
	}
}

func inceptionDetails() *media.MediaDetails {
	return &media.MediaDetails{
		Media: media.Media{
			ID: "27205", Title: "Inception", Overview: "A thief.",
			ReleaseDate: "2010-07-16", Type: media.TypeMovie,
		},
		Runtime: 148,
		Genres:  []media.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Sci-Fi"}},
		Status:  "Released",
		Credits: media.Credits{Cast: []media.CastMember{}, Crew: []media.CrewMember{}},
		Videos:  media.VideoList{Results: []media.Video{}},
	}
}

func TestDetailsCachesSuccess(t *testing.T) {
	calls := 0
	g := newTestGateway(t, &fakeAdapter{
		lookupFunc: func(ctx context.Context, mt media.Type, id string) (*media.MediaDetails, error) {
			calls++
			return inceptionDetails(), nil
		},
	})

	first, err := g.Details(context.Background(), media.TypeMovie, "27205")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	second, err := g.Details(context.Background(), media.TypeMovie, "27205")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("adapter lookups = %d, want 1 (second call cached)", calls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Details() mismatch (-first +second):\n%s", diff)
	}
}

func TestDetailsUnreachableFallsBack(t *testing.T) {
	calls := 0
	g := newTestGateway(t, &fakeAdapter{
		lookupFunc: func(context.Context, media.Type, string) (*media.MediaDetails, error) {
			calls++
			return nil, unreachable("lookup")
		},
	})

	got, err := g.Details(context.Background(), media.TypeMovie, "27205")
	if err != nil {
		t.Fatalf("Details() error = %v, want degraded nil", err)
	}
	if got.ID != FallbackMovieID {
		t.Errorf("Details() id = %q, want %q", got.ID, FallbackMovieID)
	}
	if got.Status == "" {
		t.Error("fallback Status is empty, want populated")
	}
	if got.Credits.Cast == nil || len(got.Credits.Cast) != 0 {
		t.Errorf("fallback Cast = %v, want empty non-nil", got.Credits.Cast)
	}

	// Fallbacks are not cached: the provider is retried next call.
	if _, err := g.Details(context.Background(), media.TypeMovie, "27205"); err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("adapter lookups = %d, want 2 (fallback never cached)", calls)
	}
}

func TestDetailsPropagatesNotFound(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		lookupFunc: func(context.Context, media.Type, string) (*media.MediaDetails, error) {
			return nil, provider.NewError("fake", provider.KindNotFound, "unknown id", nil)
		},
	})

	_, err := g.Details(context.Background(), media.TypeMovie, "999999")
	if !provider.IsNotFound(err) {
		t.Errorf("Details() error = %v, want not_found", err)
	}
}

func TestRecommendationsExcludeSelfAndCap(t *testing.T) {
	var searched provider.Query
	g := newTestGateway(t, &fakeAdapter{
		lookupFunc: func(context.Context, media.Type, string) (*media.MediaDetails, error) {
			return inceptionDetails(), nil
		},
		searchFunc: func(ctx context.Context, q provider.Query) ([]media.Media, error) {
			searched = q
			results := []media.Media{movieRecord("27205", "Inception")}
			for i := 0; i < 14; i++ {
				results = append(results, movieRecord(fmt.Sprintf("m%d", i), fmt.Sprintf("Movie %d", i)))
			}
			return results, nil
		},
	})

	got, err := g.Recommendations(context.Background(), media.TypeMovie, "27205")
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}

	if searched.Term != "Action" || searched.Type != media.TypeMovie {
		t.Errorf("search query = %+v, want first genre, kind-scoped", searched)
	}
	if len(got) != 10 {
		t.Errorf("Recommendations() returned %d records, want 10", len(got))
	}
	for _, m := range got {
		if m.ID == "27205" {
			t.Error("Recommendations() contains the original title")
		}
	}
}

func TestRecommendationsWithoutGenres(t *testing.T) {
	details := inceptionDetails()
	details.Genres = nil
	g := newTestGateway(t, &fakeAdapter{
		lookupFunc: func(context.Context, media.Type, string) (*media.MediaDetails, error) {
			return details, nil
		},
		searchFunc: func(context.Context, provider.Query) ([]media.Media, error) {
			t.Error("no search expected without genres")
			return nil, nil
		},
	})

	got, err := g.Recommendations(context.Background(), media.TypeMovie, "27205")
	if err != nil || len(got) != 0 {
		t.Errorf("Recommendations() = %v, %v, want empty, nil", got, err)
	}
}

func TestRecommendationsPropagateNotFound(t *testing.T) {
	g := newTestGateway(t, &fakeAdapter{
		lookupFunc: func(context.Context, media.Type, string) (*media.MediaDetails, error) {
			return nil, provider.NewError("fake", provider.KindNotFound, "unknown id", nil)
		},
	})

	_, err := g.Recommendations(context.Background(), media.TypeMovie, "999999")
	if !provider.IsNotFound(err) {
		t.Errorf("Recommendations() error = %v, want not_found", err)
	}
}
