// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: txt, csv, md or json",
		Value:   "txt",
	}
}

func sportArg() cli.Argument  { return &cli.StringArg{Name: "sport"} }
func teamIDArg() cli.Argument { return &cli.StringArg{Name: "team-id"} }

// setupCommand prepares the config file and local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and initialize the local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles account creation and the local session
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign up, log in and manage the local session",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
					&cli.StringFlag{Name: "first-name", Usage: "First name"},
					&cli.StringFlag{Name: "last-name", Usage: "Last name"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
				},
				Action: r.AuthSignup,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show who is logged in",
				Action: r.AuthStatus,
			},
		},
	}
}

// profileCommand handles the logged-in user's account
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update profile fields; omitted fields keep their value",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "New username"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "New email address"},
					&cli.StringFlag{Name: "first-name", Usage: "New first name"},
					&cli.StringFlag{Name: "last-name", Usage: "New last name"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password"},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:   "delete",
				Usage:  "Delete your account",
				Action: r.ProfileDelete,
			},
		},
	}
}

// favoritesCommand handles the favorite teams collection
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage your favorite teams",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorite teams",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.BoolFlag{Name: "offline", Usage: "Read the last synced list from the local cache"},
				},
				Action: r.FavoritesList,
			},
			{
				Name:      "add",
				Usage:     "Add a team to favorites",
				ArgsUsage: "<sport> <team-id>",
				Arguments: []cli.Argument{sportArg(), teamIDArg()},
				Action:    r.FavoritesAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a team from favorites",
				ArgsUsage: "<team-id>",
				Arguments: []cli.Argument{teamIDArg()},
				Action:    r.FavoritesRemove,
			},
			{
				Name:      "toggle",
				Usage:     "Add a team, or remove it when it is already a favorite",
				ArgsUsage: "<sport> <team-id>",
				Arguments: []cli.Argument{sportArg(), teamIDArg()},
				Action:    r.FavoritesToggle,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when omitted)",
					},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// teamsCommand handles team lookups
func teamsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "teams",
		Usage: "Search teams and show team details",
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search teams by name",
				ArgsUsage: "<sport> <name>",
				Arguments: []cli.Argument{sportArg(), &cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					formatFlag(),
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of teams to show (0 uses the config value)"},
				},
				Action: r.TeamsSearch,
			},
			{
				Name:      "show",
				Usage:     "Show details for a team",
				ArgsUsage: "<sport> <team-id>",
				Arguments: []cli.Argument{sportArg(), teamIDArg()},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "open", Usage: "Open the team logo in the browser"},
				},
				Action: r.TeamsShow,
			},
		},
	}
}

// gamesCommand handles live game listings
func gamesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "games",
		Usage: "Show live games",
		Commands: []*cli.Command{
			{
				Name:      "live",
				Usage:     "List live games for a sport",
				ArgsUsage: "[sport]",
				Arguments: []cli.Argument{sportArg()},
				Flags: []cli.Flag{
					formatFlag(),
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "List every sport"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum games per sport (0 uses the config value)"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent requests for --all", Value: 4},
				},
				Action: r.GamesLive,
			},
			{
				Name:      "watch",
				Usage:     "Refresh live games until interrupted",
				ArgsUsage: "[sport]",
				Arguments: []cli.Argument{sportArg()},
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "interval", Aliases: []string{"i"}, Usage: "Refresh interval (0 uses the config value)"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum games to show (0 uses the config value)"},
					&cli.IntFlag{Name: "count", Usage: "Stop after this many refreshes (0 runs until interrupted)"},
				},
				Action: r.GamesWatch,
			},
		},
	}
}

// tuiCommand launches the terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}
