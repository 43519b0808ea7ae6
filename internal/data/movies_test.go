package data

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/calebtr/watchlist/internal/validator"
)

// newTestDB opens an in-memory SQLite database with the movies table
// created. The pool is capped at one connection because every :memory:
// connection is a separate database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE movies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			year INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'unwatched',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func newTestModel(t *testing.T) MovieModel {
	t.Helper()
	return MovieModel{DB: newTestDB(t)}
}

func TestMovieModelInsert(t *testing.T) {
	m := newTestModel(t)

	movie := &Movie{Title: "  Inception  ", Year: 2010, Status: StatusUnwatched}
	require.NoError(t, m.Insert(movie))

	assert.Equal(t, int64(1), movie.ID)
	assert.Equal(t, "Inception", movie.Title, "title should be stored trimmed")
	assert.False(t, movie.CreatedAt.IsZero(), "created_at should be assigned by the store")

	// A round-trip read returns the same record.
	got, err := m.Get(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, got.ID)
	assert.Equal(t, "Inception", got.Title)
	assert.Equal(t, 2010, got.Year)
	assert.Equal(t, StatusUnwatched, got.Status)
}

func TestMovieModelGetNotFound(t *testing.T) {
	m := newTestModel(t)

	_, err := m.Get(42)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = m.Get(0)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMovieModelGetAllNewestFirst(t *testing.T) {
	m := newTestModel(t)

	for _, title := range []string{"Avatar", "Inception", "Dune"} {
		require.NoError(t, m.Insert(&Movie{Title: title, Year: 2010, Status: StatusUnwatched}))
	}

	movies, err := m.GetAll()
	require.NoError(t, err)
	require.Len(t, movies, 3)

	assert.Equal(t, "Dune", movies[0].Title)
	assert.Equal(t, "Inception", movies[1].Title)
	assert.Equal(t, "Avatar", movies[2].Title)
}

func TestMovieModelGetAllEmpty(t *testing.T) {
	m := newTestModel(t)

	movies, err := m.GetAll()
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.NotNil(t, movies, "empty list should marshal as [], not null")
}

func TestMovieModelUpdate(t *testing.T) {
	m := newTestModel(t)

	movie := &Movie{Title: "Inception", Year: 2010, Status: StatusUnwatched}
	require.NoError(t, m.Insert(movie))
	createdAt := movie.CreatedAt

	movie.Title = "Inception (Director's Cut)"
	movie.Status = StatusWatched
	require.NoError(t, m.Update(movie))

	got, err := m.Get(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inception (Director's Cut)", got.Title)
	assert.Equal(t, StatusWatched, got.Status)
	assert.Equal(t, 2010, got.Year)
	assert.True(t, got.CreatedAt.Equal(createdAt), "update must not touch created_at")
}

func TestMovieModelUpdateNotFound(t *testing.T) {
	m := newTestModel(t)

	err := m.Update(&Movie{ID: 99, Title: "Ghost", Year: 2000, Status: StatusWatched})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMovieModelDelete(t *testing.T) {
	m := newTestModel(t)

	movie := &Movie{Title: "Inception", Year: 2010, Status: StatusUnwatched}
	require.NoError(t, m.Insert(movie))

	require.NoError(t, m.Delete(movie.ID))

	// The id must not resolve to anything afterwards.
	_, err := m.Get(movie.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, m.Delete(movie.ID), ErrRecordNotFound)
}

func TestMovieModelDeleteNotFound(t *testing.T) {
	m := newTestModel(t)

	require.NoError(t, m.Insert(&Movie{Title: "Avatar", Year: 2009, Status: StatusWatched}))

	assert.ErrorIs(t, m.Delete(123), ErrRecordNotFound)

	// A failed delete must not change the collection.
	movies, err := m.GetAll()
	require.NoError(t, err)
	assert.Len(t, movies, 1)
}

func TestValidateMovieInput(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name      string
		input     MovieInput
		wantField string // empty means valid
	}{
		{
			name:  "valid",
			input: MovieInput{Title: "Inception", Year: 2010, Status: StatusUnwatched},
		},
		{
			name:  "valid at lower year bound",
			input: MovieInput{Title: "Le Voyage dans la Lune", Year: 1900, Status: StatusWatched},
		},
		{
			name:  "valid at upper year bound",
			input: MovieInput{Title: "Upcoming", Year: currentYear + 5, Status: StatusUnwatched},
		},
		{
			name:      "empty title",
			input:     MovieInput{Title: "", Year: 2010, Status: StatusUnwatched},
			wantField: "title",
		},
		{
			name:      "whitespace-only title",
			input:     MovieInput{Title: "   ", Year: 2010, Status: StatusUnwatched},
			wantField: "title",
		},
		{
			name:      "year too early",
			input:     MovieInput{Title: "Roundhay Garden Scene", Year: 1888, Status: StatusWatched},
			wantField: "year",
		},
		{
			name:      "year too far in the future",
			input:     MovieInput{Title: "Sequel", Year: currentYear + 6, Status: StatusUnwatched},
			wantField: "year",
		},
		{
			name:      "unknown status",
			input:     MovieInput{Title: "Inception", Year: 2010, Status: "queued"},
			wantField: "status",
		},
		{
			name:      "empty status",
			input:     MovieInput{Title: "Inception", Year: 2010},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateMovieInput(v, tt.input)

			if tt.wantField == "" {
				assert.True(t, v.Valid(), "expected valid input, got errors: %v", v.Errors)
				return
			}
			assert.False(t, v.Valid())
			assert.Contains(t, v.Errors, tt.wantField)
		})
	}
}
