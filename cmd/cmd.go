// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// tuiCommand returns the top-level TUI command for the interactive client.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive emotion detection client",
		Action:  r.TUI,
	}
}

// analyzeCommand handles one-shot analysis from the terminal
func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"detect"},
		Usage:   "Detect emotions from text or a captured photo",
		Commands: []*cli.Command{
			{
				Name:  "text",
				Usage: "Analyze a piece of text",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "text",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Record the result in the local analysis log",
						Value: true,
					},
				},
				Action: r.AnalyzeText,
			},
			{
				Name:    "face",
				Aliases: []string{"photo"},
				Usage:   "Capture a photo and analyze the facial expression",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Analyze an image file instead of capturing from the camera",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Record the result in the local analysis log",
						Value: true,
					},
				},
				Action: r.AnalyzeFace,
			},
		},
	}
}

// historyCommand prints past sessions from the backend
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show your past emotion detection sessions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// statsCommand prints aggregate session figures
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregate stats across your sessions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
	}
}

// feedbackCommand rates a past session's recommendations
func feedbackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Rate the recommendations from a session",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "session",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "rating",
				Aliases:  []string{"r"},
				Usage:    "Rating to record (1 good, -1 poor)",
				Required: true,
			},
		},
		Action: r.Feedback,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// sessionsCommand inspects the local analysis log
func sessionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sessions",
		Aliases: []string{"log"},
		Usage:   "Inspect the local analysis log",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded analyses",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "emotion",
						Usage: "Filter by detected emotion",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Filter by input type (text or face)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SessionsList,
			},
			{
				Name:  "show",
				Usage: "Show a single recorded analysis",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.SessionsShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a recorded analysis",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.SessionsDelete,
			},
		},
	}
}

// configCommand handles configuration file management
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the generated file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// serveCommand runs the stub backend for offline development
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a stub backend with canned responses for offline development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: ":5000",
			},
		},
		Action: r.Serve,
	}
}
