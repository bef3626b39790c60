package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sportshub/internal/favorites"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/repositories"
	"github.com/desertthunder/sportshub/internal/services"
	"github.com/desertthunder/sportshub/internal/session"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	logger    *log.Logger
	output    io.Writer
	input     *bufio.Reader
	client    *services.Client
	session   *session.Store
	favorites *favorites.Manager
	cache     *repositories.FavoritesCache
	assumeYes bool

	// readPassword reads a secret without echoing it when stdin is a terminal.
	readPassword func(prompt string) (string, error)
	openURL      func(link string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Client      *services.Client
	Persistence session.Persistence
	Cache       *repositories.FavoritesCache
	Logger      *log.Logger
	Output      io.Writer
	Input       io.Reader
}

// NewRunner creates a new Runner with the provided configuration.
//
// The session store and favorites manager are built here so every command shares one instance of each.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Client == nil {
		opts.Client = services.NewClient(services.NewAPIServiceFromConfig(opts.Config.API, opts.Logger))
	}
	if opts.Persistence == nil {
		opts.Persistence = session.NewMemoryPersistence()
	}

	r := &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		input:  bufio.NewReader(opts.Input),
		client: opts.Client,
		cache:  opts.Cache,
	}
	r.openURL = shared.OpenBrowser
	r.readPassword = r.prompt
	if f, ok := opts.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		r.readPassword = func(label string) (string, error) { return r.promptSecret(fd, label) }
	}

	r.session = session.NewStore(opts.Persistence, opts.Client.Accounts, r.logger)
	r.favorites = favorites.NewManager(
		opts.Client.Favorites,
		favorites.WithConfirmer(favorites.ConfirmFunc(r.confirm)),
		favorites.WithLogger(r.logger),
		favorites.WithObserver(r.cacheFavorites),
	)
	r.session.Subscribe(func(ev session.Event) {
		if ev.Kind != session.LoggedOut {
			return
		}
		r.favorites.Reset()
		if prev := ev.Previous.User; prev != nil {
			r.clearCachedFavorites(prev.ID)
		}
	})
	return r
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "sportshub",
		Usage:   "Follow live games and keep track of your favorite teams",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Answer yes to confirmation prompts",
			},
		},
		Before:   r.before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, profileCommand, favoritesCommand, teamsCommand, gamesCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before restores the persisted session ahead of any command.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	r.assumeYes = cmd.Bool("yes")

	if err := r.session.Initialize(ctx); err != nil {
		r.logger.Warn("continuing without a stored session", "error", err)
	}
	return ctx, nil
}

// requireToken returns the current token or explains how to get one.
func (r *Runner) requireToken() (string, error) {
	token, err := r.session.RequireToken()
	if err != nil {
		return "", fmt.Errorf("%w: run `sportshub auth login` first", err)
	}
	return token, nil
}

func (r *Runner) currentUser() *models.User {
	return r.session.Current().User
}

// cacheFavorites stores each confirmed favorites snapshot for offline listing.
func (r *Runner) cacheFavorites(favs []models.Favorite) {
	user := r.currentUser()
	if r.cache == nil || user == nil {
		return
	}
	if err := r.cache.Replace(context.Background(), user.ID, favs); err != nil {
		r.logger.Warn("failed to cache favorites", "error", err)
	}
}

// clearCachedFavorites drops a user's offline snapshot once they are logged out.
func (r *Runner) clearCachedFavorites(userID models.ID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Clear(context.Background(), userID); err != nil {
		r.logger.Warn("failed to clear cached favorites", "error", err)
	}
}

// confirm asks a yes/no question on the input, defaulting to no.
func (r *Runner) confirm(ctx context.Context, prompt string) (bool, error) {
	if r.assumeYes {
		return true, nil
	}
	answer, err := r.prompt(prompt + " [y/N]: ")
	if errors.Is(err, shared.ErrMissingArgument) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// prompt writes label and reads one trimmed line.
func (r *Runner) prompt(label string) (string, error) {
	if err := r.writePlain("%s", label); err != nil {
		return "", err
	}
	line, err := r.input.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("%w: no input for %q", shared.ErrMissingArgument, strings.TrimSpace(label))
		}
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a line from the terminal fd without echo.
func (r *Runner) promptSecret(fd int, label string) (string, error) {
	if err := r.writePlain("%s", label); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(fd)
	r.writePlain("\n")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

// stringOrPrompt returns the flag value, prompting for it when empty.
func (r *Runner) stringOrPrompt(cmd *cli.Command, flag, label string) (string, error) {
	if v := strings.TrimSpace(cmd.String(flag)); v != "" {
		return v, nil
	}
	return r.prompt(label + ": ")
}

func (r *Runner) passwordOrPrompt(cmd *cli.Command, flag, label string) (string, error) {
	if v := cmd.String(flag); v != "" {
		return v, nil
	}
	return r.readPassword(label + ": ")
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		return r.writePlain("\n")
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
