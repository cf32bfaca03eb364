// Package store keeps per-user storefront state: the watch list, the
// watch history, and star ratings. State lives in memory behind a
// concurrent map and round-trips through a single JSON file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mhmtszr/concurrent-swiss-map"

	"github.com/plexstream/plexstream/internal/media"
)

const (
	// historyLimit bounds the per-user watch history.
	historyLimit = 50

	minStars = 1
	maxStars = 5
)

// WatchListItem is one saved title on a user's watch list.
type WatchListItem struct {
	MediaID    string     `json:"media_id"`
	Type       media.Type `json:"type"`
	Title      string     `json:"title"`
	PosterPath string     `json:"poster_path,omitempty"`
	AddedAt    time.Time  `json:"added_at"`
}

// HistoryItem records one watch event. Re-watching a title moves its
// entry to the front instead of adding a duplicate.
type HistoryItem struct {
	MediaID   string     `json:"media_id"`
	Type      media.Type `json:"type"`
	Title     string     `json:"title"`
	WatchedAt time.Time  `json:"watched_at"`
}

// Rating is a user's star rating for one title, on a 1-5 scale.
type Rating struct {
	MediaID string     `json:"media_id"`
	Type    media.Type `json:"type"`
	Stars   int        `json:"stars"`
	RatedAt time.Time  `json:"rated_at"`
}

// userState is everything tracked for a single user. Slice and map
// access is guarded by mu; the concurrent map only guards the lookup
// of the state itself.
type userState struct {
	mu        sync.Mutex
	WatchList []WatchListItem   `json:"watch_list"`
	History   []HistoryItem     `json:"history"`
	Ratings   map[string]Rating `json:"ratings"`
}

// Config controls how a Store is created.
type Config struct {
	// Path is the JSON state file. Defaults to ~/.plexstream/state.json.
	Path string

	// Now stamps new items. Defaults to time.Now.
	Now func() time.Time
}

// Store holds user state for every known user id.
type Store struct {
	users *csmap.CsMap[string, *userState]
	path  string
	now   func() time.Time

	saveMu sync.Mutex
}

// DefaultPath returns the state file location under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".plexstream", "state.json"), nil
}

// New creates a Store and loads existing state from the configured
// path when the file exists. A missing file is a fresh store, not an
// error.
func New(cfg Config) (*Store, error) {
	path := cfg.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		users: csmap.Create[string, *userState](),
		path:  path,
		now:   now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state file: %w", err)
	}

	states := map[string]*userState{}
	if err := json.Unmarshal(data, &states); err != nil {
		return fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	for userID, state := range states {
		if state.Ratings == nil {
			state.Ratings = map[string]Rating{}
		}
		s.users.Store(userID, state)
	}
	return nil
}

// Save writes the full state to the configured path. The file is
// written to a temp sibling and renamed so a crash never leaves a
// half-written state file.
func (s *Store) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	states := make(map[string]*userState, s.users.Count())
	s.users.Range(func(userID string, state *userState) bool {
		states[userID] = state
		return false
	})

	for _, state := range states {
		state.mu.Lock()
	}
	data, err := json.MarshalIndent(states, "", "  ")
	for _, state := range states {
		state.mu.Unlock()
	}
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *Store) state(userID string) *userState {
	s.users.SetIfAbsent(userID, &userState{Ratings: map[string]Rating{}})
	state, _ := s.users.Load(userID)
	return state
}

// AddToWatchList saves a title for the user. Adding an id the list
// already holds is a no-op and returns false.
func (s *Store) AddToWatchList(userID string, item WatchListItem) bool {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	for _, existing := range state.WatchList {
		if existing.MediaID == item.MediaID {
			return false
		}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now()
	}
	state.WatchList = append(state.WatchList, item)
	return true
}

// RemoveFromWatchList drops a title from the user's watch list and
// reports whether it was present.
func (s *Store) RemoveFromWatchList(userID, mediaID string) bool {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	for i, item := range state.WatchList {
		if item.MediaID == mediaID {
			state.WatchList = append(state.WatchList[:i], state.WatchList[i+1:]...)
			return true
		}
	}
	return false
}

// WatchList returns a copy of the user's saved titles in insertion
// order.
func (s *Store) WatchList(userID string) []WatchListItem {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	items := make([]WatchListItem, len(state.WatchList))
	copy(items, state.WatchList)
	return items
}

// InWatchList reports whether the user has saved the given title.
func (s *Store) InWatchList(userID, mediaID string) bool {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	for _, item := range state.WatchList {
		if item.MediaID == mediaID {
			return true
		}
	}
	return false
}

// ClearWatchList removes every saved title for the user.
func (s *Store) ClearWatchList(userID string) {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.WatchList = nil
}

// RecordWatch notes that the user watched a title. The newest event
// sits at the front; re-watching moves the existing entry there, and
// the history never grows past its bound.
func (s *Store) RecordWatch(userID string, item HistoryItem) {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if item.WatchedAt.IsZero() {
		item.WatchedAt = s.now()
	}
	for i, existing := range state.History {
		if existing.MediaID == item.MediaID {
			state.History = append(state.History[:i], state.History[i+1:]...)
			break
		}
	}
	state.History = append([]HistoryItem{item}, state.History...)
	if len(state.History) > historyLimit {
		state.History = state.History[:historyLimit]
	}
}

// History returns a copy of the user's watch events, newest first.
func (s *Store) History(userID string) []HistoryItem {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	items := make([]HistoryItem, len(state.History))
	copy(items, state.History)
	return items
}

// ClearHistory drops every watch event for the user.
func (s *Store) ClearHistory(userID string) {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.History = nil
}

// SetRating stores the user's star rating for a title, clamped to the
// 1-5 scale. A second rating for the same title replaces the first.
func (s *Store) SetRating(userID string, rating Rating) Rating {
	if rating.Stars < minStars {
		rating.Stars = minStars
	}
	if rating.Stars > maxStars {
		rating.Stars = maxStars
	}
	if rating.RatedAt.IsZero() {
		rating.RatedAt = s.now()
	}

	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.Ratings[rating.MediaID] = rating
	return rating
}

// RatingFor returns the user's rating for a title, if any.
func (s *Store) RatingFor(userID, mediaID string) (Rating, bool) {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	rating, ok := state.Ratings[mediaID]
	return rating, ok
}

// DeleteRating removes the user's rating for a title and reports
// whether one existed.
func (s *Store) DeleteRating(userID, mediaID string) bool {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if _, ok := state.Ratings[mediaID]; !ok {
		return false
	}
	delete(state.Ratings, mediaID)
	return true
}

// Ratings returns every rating the user has set, ordered by media id
// for stable output.
func (s *Store) Ratings(userID string) []Rating {
	state := s.state(userID)
	state.mu.Lock()
	defer state.mu.Unlock()

	ratings := make([]Rating, 0, len(state.Ratings))
	for _, rating := range state.Ratings {
		ratings = append(ratings, rating)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].MediaID < ratings[j].MediaID })
	return ratings
}
