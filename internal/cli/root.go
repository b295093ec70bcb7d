// Package cli implements the todo command-line interface: a thin shell that
// resolves configuration, opens the task store, calls one store operation,
// and renders the result.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todo/internal/paths"
	"github.com/mesh-intelligence/todo/internal/store"
	"github.com/mesh-intelligence/todo/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps a command error to a process exit code. Persistence failures
// are system errors; anything unclassified is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var perr *types.PersistenceError
	if errors.As(err, &perr) {
		return exitSysError
	}
	return exitUserError
}

// app holds global flag values and the state resolved before each command.
type app struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool

	resolvedConfigDir string
	cfg               types.Config
	logger            *slog.Logger
}

// NewRootCmd creates the top-level "todo" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "todo",
		Short:   "A personal task tracker",
		Long:    "todo keeps a list of tasks with a category, priority, optional due date,\nand completion state in a local data file.",
		Version: Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newDoneCmd(a))
	root.AddCommand(newUndoCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newCategoriesCmd(a))
	root.AddCommand(newStatsCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError("%w", err)
	}

	dataDir, err := paths.ResolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError("resolve data dir: %w", err)
	}

	a.resolvedConfigDir = configDir
	a.cfg = types.Config{
		Backend:  v.GetString(cfgKeyBackend),
		DataDir:  dataDir,
		LogLevel: v.GetString(cfgKeyLogLevel),
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return userError("config %s: %w (valid: %s, %s)", configDir, err, types.BackendJSON, types.BackendSQLite)
	}

	a.logger, err = newLogger(cmd.ErrOrStderr(), a.cfg.LogLevel)
	if err != nil {
		return userError("%w", err)
	}
	a.logger.Debug("resolved configuration",
		"config_dir", configDir, "backend", a.cfg.Backend, "data_file", a.cfg.DataFile())
	return nil
}

// openStore opens the configured task store.
func (a *app) openStore() (*store.Store, error) {
	s, err := store.Open(a.cfg, store.WithLogger(a.logger))
	if err != nil {
		return nil, sysError("open store: %w", err)
	}
	return s, nil
}

// newLogger returns a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
