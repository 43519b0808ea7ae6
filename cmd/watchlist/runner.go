package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/calebtr/watchlist/internal/client"
	"github.com/calebtr/watchlist/internal/data"
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action.
type Runner struct {
	config    *client.Config
	api       *client.Client
	watchlist *client.Watchlist
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *client.Config
	API    *client.Client
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = client.DefaultConfig()
	}
	if opts.API == nil {
		opts.API = opts.Config.NewClient()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:    opts.Config,
		api:       opts.API,
		watchlist: client.NewWatchlist(opts.API),
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		listCommand, addCommand, showCommand, editCommand, toggleCommand, removeCommand, statsCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// load fetches the collection into the local cache, refreshing it when a
// previous action flagged it stale.
func (r *Runner) load(ctx context.Context) error {
	if r.watchlist.Loaded() && !r.watchlist.Stale() {
		return nil
	}
	if err := r.watchlist.Load(ctx); err != nil {
		return fmt.Errorf("loading watchlist: %w", err)
	}
	return nil
}

// idArg parses the required movie id positional argument.
func idArg(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, errors.New("a movie id argument is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid movie id %q", raw)
	}
	return id, nil
}

// List prints the collection, optionally narrowed by search query and
// status filter. Filtering happens locally over the cached collection.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	if err := r.load(ctx); err != nil {
		return err
	}

	movies := r.watchlist.Filter(cmd.String("search"), cmd.String("status"))

	if cmd.Bool("json") {
		return r.writeJSON(movies)
	}

	if len(movies) == 0 {
		r.writePlain("no movies matched\n")
		return nil
	}
	for _, movie := range movies {
		r.printMovie(movie)
	}
	stats := r.watchlist.Stats()
	r.writePlain("%d of %d movies shown (%d watched, %d unwatched)\n",
		len(movies), stats.Total, stats.Watched, stats.Unwatched)
	return nil
}

// Add creates a movie from the command flags and prints the stored record.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	input := data.MovieInput{
		Title:  cmd.String("title"),
		Year:   int(cmd.Int("year")),
		Status: cmd.String("status"),
	}

	movie, err := r.watchlist.Save(ctx, 0, input)
	if err != nil {
		return err
	}

	r.logger.Info("movie added", "id", movie.ID)
	r.printMovie(movie)
	return nil
}

// Show fetches a single movie directly from the server and prints it.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	movie, err := r.api.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie)
	}
	r.printMovie(*movie)
	if !movie.CreatedAt.IsZero() {
		r.writePlain("    added %s\n", movie.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Edit replaces a movie's fields. Flags that are not set keep the
// movie's current values, but the update itself is always a full
// replacement of title, year, and status together.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	// Prefill from the current record, like an edit form.
	current, err := r.api.Get(ctx, id)
	if err != nil {
		return err
	}

	input := data.MovieInput{
		Title:  current.Title,
		Year:   current.Year,
		Status: current.Status,
	}
	if cmd.IsSet("title") {
		input.Title = cmd.String("title")
	}
	if cmd.IsSet("year") {
		input.Year = int(cmd.Int("year"))
	}
	if cmd.IsSet("status") {
		input.Status = cmd.String("status")
	}

	movie, err := r.watchlist.Save(ctx, id, input)
	if err != nil {
		return err
	}

	r.logger.Info("movie updated", "id", movie.ID)
	r.printMovie(movie)
	return nil
}

// Toggle flips a movie's watched/unwatched status.
func (r *Runner) Toggle(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	// Toggling reuses the cached title and year.
	if err := r.load(ctx); err != nil {
		return err
	}

	movie, err := r.watchlist.Toggle(ctx, id)
	if err != nil {
		return err
	}

	r.logger.Info("status changed", "id", movie.ID, "status", movie.Status)
	r.printMovie(movie)
	return nil
}

// Remove deletes a movie from the watchlist.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.watchlist.Remove(ctx, id); err != nil {
		return err
	}

	r.logger.Info("movie removed", "id", id)
	r.writePlain("movie %d removed\n", id)
	return nil
}

// Stats prints how much of the watchlist has been watched.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.load(ctx); err != nil {
		return err
	}

	stats := r.watchlist.Stats()
	if cmd.Bool("json") {
		return r.writeJSON(stats)
	}
	r.writePlain("total:     %d\n", stats.Total)
	r.writePlain("watched:   %d\n", stats.Watched)
	r.writePlain("unwatched: %d\n", stats.Unwatched)
	return nil
}

// printMovie writes one movie as a single aligned line.
func (r *Runner) printMovie(movie data.Movie) {
	marker := " "
	if movie.Status == data.StatusWatched {
		marker = "✓"
	}
	r.writePlain("%4d  [%s]  %s (%d)\n", movie.ID, marker, movie.Title, movie.Year)
}

func (r *Runner) writeJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) {
	fmt.Fprintf(r.output, format, args...)
}
