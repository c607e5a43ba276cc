// submodule cmd contains command definitions
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/campus/internal/formatter"
	"github.com/desertthunder/campus/internal/models"
	"github.com/urfave/cli/v3"
)

// configFlag is declared on the root command and visible to every subcommand.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
		Sources: cli.EnvVars("CAMPUS_CONFIG"),
	}
}

// setupCommand creates the config file and initializes the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing, initialize the database and seed the first account",
		Action: r.Setup,
	}
}

// userCommand handles account operations
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"users"},
		Usage:   "Account operations",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email address (unique, case-sensitive)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Sources:  cli.EnvVars("CAMPUS_PASSWORD"),
						Required: true,
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Role (" + models.RoleUser + " or " + models.RoleAdmin + ")",
						Value: models.RoleUser,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UserRegister,
			},
			{
				Name:  "login",
				Usage: "Check credentials and print the stored account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Sources:  cli.EnvVars("CAMPUS_PASSWORD"),
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UserLogin,
			},
		},
	}
}

// eventCommand handles event operations
func eventCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "event",
		Aliases: []string{"events", "ev"},
		Usage:   "Event operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create an event",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Event title", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Event description"},
					&cli.StringFlag{Name: "location", Usage: "Building or venue", Required: true},
					&cli.StringFlag{Name: "room", Usage: "Room number"},
					&cli.StringFlag{Name: "address", Usage: "Street address"},
					&cli.StringFlag{Name: "zip", Usage: "Zip code"},
					&cli.StringFlag{Name: "date", Usage: "Date as YYYY-MM-DD", Required: true},
					&cli.StringFlag{Name: "time", Usage: "Start time as HH:MM"},
					&cli.StringFlag{Name: "end-time", Usage: "End time as HH:MM"},
					&cli.StringFlag{Name: "category", Usage: "Category", Required: true},
					&cli.StringFlag{Name: "image", Usage: "Image URI"},
					&cli.StringFlag{Name: "limit", Usage: "Participant limit (non-numeric input is stored as 0)"},
				},
				Action: r.EventCreate,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List events, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (" + strings.Join(formatter.Formats, ", ") + ")",
						Value:   formatter.FormatText,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to file instead of stdout",
					},
				},
				Action: r.EventList,
			},
			{
				Name:  "get",
				Usage: "Show one event",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.EventGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing events interactively.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"browse", "ui"},
		Usage:   "Launch interactive event browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: filepath.Join(os.TempDir(), "campus-tui.log"),
			},
		},
		Action: r.TUI,
	}
}
