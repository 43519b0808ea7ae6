// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router
//
// Current endpoints:
//
//	GET    /movies      – list all movies, newest first
//	POST   /movies      – add a movie to the watchlist
//	GET    /movies/:id  – retrieve a single movie by ID
//	PUT    /movies/:id  – replace a movie's title, year, and status
//	DELETE /movies/:id  – remove a movie by ID
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodGet, "/movies/:id", app.showMovieHandler)
	router.HandlerFunc(http.MethodPut, "/movies/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", app.deleteMovieHandler)

	// recoverPanic is outermost so it catches panics from rateLimit and
	// router alike.
	return app.recoverPanic(app.rateLimit(router))
}
