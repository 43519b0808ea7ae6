package client

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/calebtr/watchlist/internal/data"
)

// Status filter values accepted by Filter.
const (
	FilterAll       = "all"
	FilterWatched   = data.StatusWatched
	FilterUnwatched = data.StatusUnwatched
)

// Watchlist is the client-side cache of the movie collection. It is the
// single authoritative local copy, keyed by id, and is only modified from
// server-confirmed state: a full refetch, or the record returned by a
// confirmed mutation. Callers that learn the server may have changed
// elsewhere flag it with MarkStale and refresh before reading.
//
// Watchlist is safe for concurrent use. Mutations of the same movie are
// serialized through a per-id guard, so a rapid double toggle cannot
// interleave its read-modify-write cycles.
type Watchlist struct {
	api *Client

	mu     sync.RWMutex
	movies map[int64]data.Movie
	loaded bool
	stale  bool

	guardMu sync.Mutex
	guards  map[int64]*sync.Mutex
}

// NewWatchlist creates an empty, unloaded cache over the given API client.
func NewWatchlist(api *Client) *Watchlist {
	return &Watchlist{
		api:    api,
		movies: make(map[int64]data.Movie),
		guards: make(map[int64]*sync.Mutex),
	}
}

// Load fetches the full collection from the server, replacing the cache
// contents. On failure the cache keeps its previous contents (an empty
// collection on first load) and the error surfaces once to the caller.
func (w *Watchlist) Load(ctx context.Context) error {
	movies, err := w.api.List(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.movies = make(map[int64]data.Movie, len(movies))
	for _, movie := range movies {
		w.movies[movie.ID] = movie
	}
	w.loaded = true
	w.stale = false
	return nil
}

// Loaded reports whether the cache has completed at least one Load.
func (w *Watchlist) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loaded
}

// MarkStale flags the cache as possibly behind the server, without
// discarding its contents. The next reader that cares about freshness
// should call Load.
func (w *Watchlist) MarkStale() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stale = true
}

// Stale reports whether the cache has been flagged as possibly behind
// the server.
func (w *Watchlist) Stale() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stale
}

// Movies returns a snapshot of the cached collection, most recently
// created first. The returned slice is the caller's to keep.
func (w *Watchlist) Movies() []data.Movie {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

// snapshotLocked collects the cached movies ordered by descending id.
// Callers must hold at least a read lock.
func (w *Watchlist) snapshotLocked() []data.Movie {
	movies := make([]data.Movie, 0, len(w.movies))
	for _, movie := range w.movies {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID > movies[j].ID })
	return movies
}

// Get returns the cached movie with the given id, if present.
func (w *Watchlist) Get(id int64) (data.Movie, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	movie, ok := w.movies[id]
	return movie, ok
}

// Filter returns the movies matching the search query and status filter,
// most recently created first. The query matches case-insensitively
// against the title, or as a substring of the year's digits. The base
// collection is never modified.
func (w *Watchlist) Filter(query, status string) []data.Movie {
	w.mu.RLock()
	movies := w.snapshotLocked()
	w.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]data.Movie, 0, len(movies))
	for _, movie := range movies {
		if query != "" {
			titleMatch := strings.Contains(strings.ToLower(movie.Title), query)
			yearMatch := strings.Contains(strconv.Itoa(movie.Year), query)
			if !titleMatch && !yearMatch {
				continue
			}
		}
		if status != "" && status != FilterAll && movie.Status != status {
			continue
		}
		filtered = append(filtered, movie)
	}
	return filtered
}

// Stats summarizes the cached collection by status.
type Stats struct {
	Total     int
	Watched   int
	Unwatched int
}

// Stats counts the cached movies by status.
func (w *Watchlist) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var s Stats
	for _, movie := range w.movies {
		s.Total++
		if movie.Status == data.StatusWatched {
			s.Watched++
		} else {
			s.Unwatched++
		}
	}
	return s
}

// Toggle flips the viewing status of the cached movie with the given id.
// It sends a full-replace update carrying the cached title and year with
// the flipped status, then patches the cache from the record the server
// returned. On failure the cache is left unchanged.
func (w *Watchlist) Toggle(ctx context.Context, id int64) (data.Movie, error) {
	unlock := w.guard(id)
	defer unlock()

	if !w.Loaded() {
		// Toggling reuses the cached title and year, so it needs a
		// loaded collection to work from.
		return data.Movie{}, ErrNotLoaded
	}

	movie, ok := w.Get(id)
	if !ok {
		return data.Movie{}, fmt.Errorf("%w: id %d is not in the watchlist", ErrNotFound, id)
	}

	status := data.StatusWatched
	if movie.Status == data.StatusWatched {
		status = data.StatusUnwatched
	}

	updated, err := w.api.Update(ctx, id, data.MovieInput{
		Title:  movie.Title,
		Year:   movie.Year,
		Status: status,
	})
	if err != nil {
		return data.Movie{}, err
	}

	w.put(*updated)
	return *updated, nil
}

// Save creates a movie when id is zero, otherwise replaces the movie with
// that id. Either way the cache is patched from server-confirmed state,
// so no list refetch or settling delay is needed afterwards. On failure
// the cache is left unchanged and the caller keeps its input.
func (w *Watchlist) Save(ctx context.Context, id int64, input data.MovieInput) (data.Movie, error) {
	if id == 0 {
		createdID, err := w.api.Create(ctx, input)
		if err != nil {
			return data.Movie{}, err
		}
		// The create reply carries only the id; fetch the full record so
		// the cache holds the store's trimmed title and created_at.
		created, err := w.api.Get(ctx, createdID)
		if err != nil {
			// The row exists but we could not read it back; flag the
			// cache rather than inventing a record.
			w.MarkStale()
			return data.Movie{}, err
		}
		w.put(*created)
		return *created, nil
	}

	unlock := w.guard(id)
	defer unlock()

	updated, err := w.api.Update(ctx, id, input)
	if err != nil {
		return data.Movie{}, err
	}
	w.put(*updated)
	return *updated, nil
}

// Remove deletes the movie with the given id and, on success, evicts it
// from the cache. On failure the cache is left unchanged.
func (w *Watchlist) Remove(ctx context.Context, id int64) error {
	unlock := w.guard(id)
	defer unlock()

	if err := w.api.Delete(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	delete(w.movies, id)
	w.mu.Unlock()
	return nil
}

// put replaces the cache entry for the movie's id with server-confirmed state.
func (w *Watchlist) put(movie data.Movie) {
	w.mu.Lock()
	w.movies[movie.ID] = movie
	w.mu.Unlock()
}

// guard locks the per-id mutation mutex, creating it on first use, and
// returns the unlock function. Guards are kept for the cache's lifetime;
// a personal watchlist never accumulates enough ids for that to matter.
func (w *Watchlist) guard(id int64) func() {
	w.guardMu.Lock()
	g, ok := w.guards[id]
	if !ok {
		g = &sync.Mutex{}
		w.guards[id] = g
	}
	w.guardMu.Unlock()

	g.Lock()
	return g.Unlock
}
