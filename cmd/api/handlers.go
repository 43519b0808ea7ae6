// cmd/api/handlers.go
// This file contains all HTTP request handlers for the movies resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models.
package main

import (
	"errors"
	"net/http"

	"github.com/calebtr/watchlist/internal/data"
	"github.com/calebtr/watchlist/internal/validator"
)

// listMoviesHandler handles GET /movies.
// It fetches every movie from the database, most recently added first,
// and returns them as a bare JSON array.
func (app *applicationDependencies) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.models.Movies.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createMovieHandler handles POST /movies.
// It reads a JSON body containing the new movie's details, validates it,
// inserts a record into the database, and responds with the assigned id
// and a 201 Created status.
func (app *applicationDependencies) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input data.MovieInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Create and Update run the exact same validation rules.
	v := validator.New()
	data.ValidateMovieInput(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movie := &data.Movie{
		Title:  input.Title,
		Year:   input.Year,
		Status: input.Status,
	}

	// Insert() also writes the auto-generated id and created_at back into movie.
	err = app.models.Movies.Insert(movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "movie added successfully", "id": movie.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showMovieHandler handles GET /movies/:id.
// It parses the :id URL parameter and returns the matching movie.
// Responds 404 if no movie with that ID exists.
func (app *applicationDependencies) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateMovieHandler handles PUT /movies/:id.
// Updates are full replacements: title, year, and status are always set
// together, so the body is validated exactly like a create. The response
// carries the authoritative post-write record so clients can patch their
// local state without refetching.
// Responds 404 if the movie does not exist.
func (app *applicationDependencies) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.MovieInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateMovieInput(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movie := &data.Movie{
		ID:     id,
		Title:  input.Title,
		Year:   input.Year,
		Status: input.Status,
	}

	// Update() preserves created_at and scans it back into the struct.
	err = app.models.Movies.Update(movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "movie updated successfully", "movie": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteMovieHandler handles DELETE /movies/:id.
// It parses the :id URL parameter, deletes the matching record from the
// database, and responds with a confirmation message.
// Responds 404 if no movie with that ID exists.
func (app *applicationDependencies) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Movies.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "movie deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
