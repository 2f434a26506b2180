package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/nag/internal/commands"
	"github.com/colonyops/nag/internal/core/config"
	"github.com/colonyops/nag/internal/core/notify"
	"github.com/colonyops/nag/internal/data/db"
	"github.com/colonyops/nag/internal/data/stores"
	"github.com/colonyops/nag/internal/nag"
	"github.com/colonyops/nag/internal/tui"
	"github.com/colonyops/nag/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// openDatabase opens the SQLite file, recovering once from a corrupted
// database by backing it up and starting fresh.
func openDatabase(dataDir string, cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(dataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, err
	}

	log.Warn().Err(err).Msg("database corrupted, backing it up and starting fresh")
	if recErr := stores.RecoverFromCorruption(dataDir); recErr != nil {
		return nil, fmt.Errorf("recover from corruption: %w", recErr)
	}

	return db.Open(dataDir, opts)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		nagApp    = &nag.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "nag",
		Usage:     "Track tasks and get nagged about their deadlines",
		UsageText: "nag [global options] command [command options]",
		Description: `Nag is a task list that watches due dates for you. Tasks due within 24
hours, due within the hour, or recently overdue raise alerts on a
periodic scan.

Run 'nag' with no arguments to open the interactive task list.
Run 'nag add "text"' to capture a task from anywhere.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("NAG_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/nag.log)",
				Sources:     cli.EnvVars("NAG_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("NAG_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("NAG_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/nag.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "nag.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			database, err = openDatabase(cfg.DataDir, cfg)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			taskStore := stores.NewTaskStore(database)
			alertStore := stores.NewAlertStore(database)

			tasks := nag.NewTaskService(taskStore, logger)
			if err := tasks.Load(ctx); err != nil {
				return ctx, fmt.Errorf("load tasks: %w", err)
			}

			// Headless commands alert through the log; the TUI swaps in
			// its toast sink before starting the scheduler.
			sink := notify.NewLogSink(logger)
			scheduler := nag.NewScheduler(tasks, sink, alertStore, cfg.Notifications, logger)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*nagApp = *nag.NewApp(tasks, scheduler, alertStore, cfg, database)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if nagApp.Scheduler != nil {
				nagApp.Scheduler.Stop()
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewAddCmd(flags, nagApp).Register(app)
	app = commands.NewLsCmd(flags, nagApp).Register(app)
	app = commands.NewEditCmd(flags, nagApp).Register(app)
	app = commands.NewDoneCmd(flags, nagApp).Register(app)
	app = commands.NewRmCmd(flags, nagApp).Register(app)
	app = commands.NewAlertsCmd(flags, nagApp).Register(app)
	app = commands.NewWatchCmd(flags, nagApp).Register(app)
	app = commands.NewTransferCmd(flags, nagApp).Register(app)

	// Open the TUI when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'nag --help' for usage", c.Args().First())
		}
		return tui.Run(ctx, nagApp)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
