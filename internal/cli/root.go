// Package cli implements coachctl, the operator command line for the coaching
// backend: calorie estimates, the video catalog, user accounts and a local
// login session.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/wangtaito/workout-project/internal/app"
	"github.com/wangtaito/workout-project/internal/config"
)

type rootOptions struct {
	backend  string
	dbPath   string
	dataDir  string
	authMode string
	verbose  bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "coachctl",
		Short:         "coachctl manages the fitness coaching backend from a terminal",
		Long:          "coachctl estimates meal calories, curates the exercise video catalog, manages user accounts and keeps a local login session.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", "", "Storage backend: sqlite, file or memory (default $STORAGE_BACKEND or sqlite)")
	flags.StringVar(&opts.dbPath, "db", "", "Path to the SQLite database (default $DB_PATH)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Slot directory for the file backend (default $DATA_DIR)")
	flags.StringVar(&opts.authMode, "auth-mode", "", "Credential check: mock or directory (default $AUTH_MODE or mock)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log storage diagnostics to stderr")

	root.AddCommand(
		newEstimateCommand(),
		newVideosCommand(opts),
		newUsersCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
	)
	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (opts *rootOptions) config() (config.Config, error) {
	if err := config.LoadEnvFiles(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if opts.backend != "" {
		cfg.StorageBackend = opts.backend
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.authMode != "" {
		cfg.AuthMode = opts.authMode
	}
	if cfg.AuthMode != config.AuthModeMock && cfg.AuthMode != config.AuthModeDirectory {
		return config.Config{}, fmt.Errorf("%w: %q", config.ErrInvalidAuthMode, cfg.AuthMode)
	}
	return cfg, nil
}

// withRuntime opens storage for one command run and closes it afterwards.
func withRuntime(cmd *cobra.Command, opts *rootOptions, run func(*app.Runtime) error) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	output := io.Discard
	if opts.verbose {
		output = cmd.ErrOrStderr()
	}

	runtime, err := app.Open(cfg, log.New(output, "coachctl: ", log.LstdFlags))
	if err != nil {
		return err
	}
	defer runtime.Close()
	return run(runtime)
}
