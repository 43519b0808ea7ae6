// submodule commands contains command definitions for the watchlist CLI.
package main

import "github.com/urfave/cli/v3"

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List movies, optionally filtered by search text and status",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Match against title (case-insensitive) or year",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Restrict to a status: all, watched, or unwatched",
				Value: "all",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.List,
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a movie to the watchlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Movie title",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "year",
				Aliases:  []string{"y"},
				Usage:    "Release year",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Initial status: watched or unwatched",
				Value: "unwatched",
			},
		},
		Action: r.Add,
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single movie by id",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Show,
	}
}

func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a movie; unset flags keep the current values",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "New title",
			},
			&cli.IntFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "New release year",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "New status: watched or unwatched",
			},
		},
		Action: r.Edit,
	}
}

func toggleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Flip a movie between watched and unwatched",
		ArgsUsage: "<id>",
		Action:    r.Toggle,
	}
}

func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove a movie from the watchlist",
		ArgsUsage: "<id>",
		Action:    r.Remove,
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show watched/unwatched counts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
	}
}
