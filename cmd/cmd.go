// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag(r *Runner) cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   r.configPath,
	}
}

// serveCommand runs the dashboard web service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard web service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to server.host:server.port)",
			},
			&cli.DurationFlag{
				Name:  "purge-after",
				Usage: "Remove sessions logged out longer ago than this at startup (0 disables)",
				Value: defaultPurgeAfter,
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run migrations",
				Flags:  []cli.Flag{configFlag(r)},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the dashboard session used by the CLI",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with Spotify and store a dashboard session id in the config",
				Description: "Runs a temporary callback server on server.host:server.port, the dashboard's own address,\n" +
					"so stop `spotdash serve` first. With the dashboard running, sign in through it in the browser\n" +
					"and pass the spotify_dashboard_session cookie value with --session instead.",
				Flags: []cli.Flag{
					configFlag(r),
					&cli.StringFlag{
						Name:  "session",
						Usage: "Use an existing session id (copied from the browser cookie) instead of signing in",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Check the dashboard is reachable (calls /healthz)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// playerCommand sends playback controls through the dashboard API.
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "player",
		Usage:     "Control playback: play, pause, next or previous",
		ArgsUsage: "<action>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "action"},
		},
		Action: r.Player,
	}
}

// searchCommand searches tracks or artists through the dashboard API.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search Spotify for tracks or artists",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "What to search for: track or artist",
				Value:   "track",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, html, csv, markdown or json",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the results to a file instead of stdout",
			},
		},
		Action: r.Search,
	}
}

// tuiCommand returns the top-level TUI command for the interactive controller.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive player and search controller",
		Action:  r.TUI,
	}
}
