package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campus/internal/auth"
	"github.com/desertthunder/campus/internal/repositories"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/desertthunder/campus/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store and the services on top of it are built lazily by [Runner.open] so that commands
// which only touch configuration never create a database file.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer

	store  *store.Store
	auth   *auth.Service
	events *repositories.EventRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
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

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, userCommand, eventCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's config with the file named by --config when it exists.
// A missing file keeps the current config with environment overrides applied.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return err
			}
			r.config = config
			return r.applyLogLevel()
		}
	}

	if err := shared.ApplyEnv(r.config); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}
	return r.applyLogLevel()
}

func (r *Runner) applyLogLevel() error {
	if err := shared.ApplyLogLevel(r.logger, r.config.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", shared.ErrInvalidConfig, err)
	}
	return nil
}

// open builds the store, the auth service and the event repository, and initializes the store.
// Calling open again after a successful call is a no-op.
func (r *Runner) open(ctx context.Context) error {
	if r.store != nil && r.store.Ready() {
		return nil
	}

	hasher, err := auth.NewHasher(r.config.Auth.BcryptCost)
	if err != nil {
		return err
	}

	r.store = store.New(store.Options{
		Path:      r.config.DatabasePath(),
		OpTimeout: r.config.Database.OpTimeout,
		Seeder:    auth.NewSeeder(r.config.Seed, hasher, r.logger),
		Logger:    r.logger,
	})

	if _, err := r.store.Initialize(ctx).Wait(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	r.auth, err = auth.NewService(r.store, auth.Options{
		Hasher:     hasher,
		LoginRate:  r.config.Auth.LoginRate,
		LoginBurst: r.config.Auth.LoginBurst,
		Logger:     r.logger,
	})
	if err != nil {
		return err
	}

	r.events = repositories.NewEventRepository(r.store, r.logger)
	return nil
}

// close releases the store if one was opened.
func (r *Runner) close() {
	if r.store == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.logger.Warn("failed to close database", "error", err)
	}
}

// prepare loads configuration and opens the store. Callers defer [Runner.close].
func (r *Runner) prepare(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}
	return r.open(ctx)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// SetLogger replaces the logger used by the runner and by anything it opens afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}
