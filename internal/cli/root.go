// Package cli implements the achievements command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/achievements/internal/paths"
	"github.com/mesh-intelligence/achievements/internal/query"
	"github.com/mesh-intelligence/achievements/pkg/achievements"
	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by one command invocation.
type app struct {
	flags    rootFlags
	settings settings
	logger   *zap.Logger
}

// systemError marks failures of the environment rather than the input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// NewRootCmd creates the top-level "achievements" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "achievements",
		Short:   "A personal log of achievements",
		Long:    "Achievements records personal, career, and education milestones\nand lets you search them by title, category, and date range.",
		Version: achievements.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newServeCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// setup resolves directories, loads config.yaml, and builds the logger.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	flagDataDir := a.flags.dataDir
	if flagDataDir != "" {
		if flagDataDir, err = filepath.Abs(flagDataDir); err != nil {
			return sysErr(fmt.Errorf("resolve data dir: %w", err))
		}
	}
	v, err := loadConfig(configDir, flagDataDir)
	if err != nil {
		return sysErr(err)
	}
	s, err := readSettings(v)
	if err != nil {
		return err
	}
	s.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, s.DataDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	if a.flags.logLevel != "" {
		s.LogLevel = a.flags.logLevel
	}
	logger, err := newLogger(s.LogLevel)
	if err != nil {
		return err
	}
	a.settings = s
	a.logger = logger
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// exitCode maps an error onto an exit code: storage and environment
// failures are system errors, everything else is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	switch {
	case errors.As(err, &se),
		errors.Is(err, types.ErrStorageUnavailable),
		errors.Is(err, types.ErrStorageCorrupt),
		errors.Is(err, query.ErrClosed):
		return exitSysError
	default:
		return exitUserError
	}
}
