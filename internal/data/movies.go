// Package data provides the data models and database interaction logic
// for the watchlist service.
package data

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/calebtr/watchlist/internal/validator"
)

// Movie statuses. A movie is always in exactly one of these states.
const (
	StatusWatched   = "watched"
	StatusUnwatched = "unwatched"
)

// MinYear is the earliest release year accepted for a movie.
const MinYear = 1900

// Movie represents a single movie record stored in the database.
// It maps directly to a row in the "movies" table.
type Movie struct {
	ID        int64     `json:"id"`         // Unique identifier assigned by the database
	Title     string    `json:"title"`      // Movie title, never empty
	Year      int       `json:"year"`       // Release year
	Status    string    `json:"status"`     // Viewing state: "watched" or "unwatched"
	CreatedAt time.Time `json:"created_at"` // Timestamp when the record was created
}

// MovieInput holds the fields a client supplies when creating or updating
// a movie. Updates are full replacements, so the same input type serves
// both operations and both run through the same validation.
type MovieInput struct {
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Status string `json:"status"`
}

// ValidateMovieInput checks input against the watchlist's write-time rules
// and records any failures on v. The rules are identical for create and
// update: non-empty title after trimming, year within [1900, now+5], and
// a recognized status value.
func ValidateMovieInput(v *validator.Validator, input MovieInput) {
	v.Check(strings.TrimSpace(input.Title) != "", "title", "must be provided")

	maxYear := time.Now().Year() + 5
	v.Check(input.Year >= MinYear, "year", "must be 1900 or later")
	v.Check(input.Year <= maxYear, "year", "must be no more than five years in the future")

	v.Check(validator.In(input.Status, StatusWatched, StatusUnwatched), "status", "must be watched or unwatched")
}

// MovieModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting movie records.
type MovieModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new movie record to the database. The title is stored
// trimmed. After a successful insert, the database-assigned id and
// created_at values are written back into the movie struct.
func (m MovieModel) Insert(movie *Movie) error {
	query := `
		INSERT INTO movies (title, year, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	movie.Title = strings.TrimSpace(movie.Title)

	return m.DB.QueryRow(query, movie.Title, movie.Year, movie.Status).
		Scan(&movie.ID, &movie.CreatedAt)
}

// Get retrieves a single movie by its primary key.
// Returns ErrRecordNotFound if no movie with the given id exists.
func (m MovieModel) Get(id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, title, year, status, created_at
		FROM movies
		WHERE id = $1`

	var movie Movie
	err := m.DB.QueryRow(query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.Status,
		&movie.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &movie, nil
}

// GetAll retrieves every movie, most recently created first.
func (m MovieModel) GetAll() ([]*Movie, error) {
	query := `
		SELECT id, title, year, status, created_at
		FROM movies
		ORDER BY id DESC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	// Always close the result set to free the database connection.
	defer rows.Close()

	movies := []*Movie{}

	for rows.Next() {
		var movie Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&movie.Status,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// Update replaces the title, year, and status of the movie with
// movie.ID. The id and created_at columns are never touched, and the
// stored created_at is scanned back into the struct so callers always
// hold the authoritative record.
// Returns ErrRecordNotFound if no matching row exists.
func (m MovieModel) Update(movie *Movie) error {
	query := `
		UPDATE movies
		SET title = $1, year = $2, status = $3
		WHERE id = $4
		RETURNING created_at`

	movie.Title = strings.TrimSpace(movie.Title)

	err := m.DB.QueryRow(query, movie.Title, movie.Year, movie.Status, movie.ID).
		Scan(&movie.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// Delete removes the movie with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m MovieModel) Delete(id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM movies WHERE id = $1`

	result, err := m.DB.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the movie didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
