// Package cli implements the intellicomp command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/intellicomp/internal/config"
	"github.com/atinylittleshell/intellicomp/internal/core"
	"github.com/atinylittleshell/intellicomp/internal/schemastore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// errCompletionFailed marks failures of the complete command. They are logged
// but never printed, since anything written there ends up in the shell.
var errCompletionFailed = errors.New("completion failed")

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	version string

	configPath   string
	schemaDir    string
	logLevelFlag string

	cfg    *config.Config
	logger *zap.Logger

	// fixedLogger, when set, is used instead of the log file.
	fixedLogger *zap.Logger
	getenv      func(string) string
}

// Option configures the root command.
type Option func(*app)

// WithLogger sends logs to logger instead of the log file.
func WithLogger(logger *zap.Logger) Option {
	return func(a *app) {
		a.fixedLogger = logger
	}
}

// WithEnv replaces environment lookups made by subcommands.
func WithEnv(getenv func(string) string) Option {
	return func(a *app) {
		a.getenv = getenv
	}
}

// NewRootCommand builds the intellicomp command tree.
func NewRootCommand(version string, opts ...Option) *cobra.Command {
	a := &app{
		version: version,
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   "intellicomp",
		Short: "Schema-driven shell completions",
		Long: `intellicomp completes command lines from declarative schemas.

A shell hook registers intellicomp for every command that has a schema; the
shell then calls back into intellicomp each time completion is requested.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default "+core.ConfigFile()+")")
	rootCmd.PersistentFlags().StringVar(&a.schemaDir, "schema-dir", "", "Directory holding schema files")
	rootCmd.PersistentFlags().StringVar(&a.logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newCompleteCommand(a),
		newHookCommand(a),
		newSyncCommand(a),
		newListCommand(a),
		newAutogenerateCommand(a),
		newSchemaCommand(a),
	)
	return rootCmd
}

// Execute runs the CLI.
func Execute(version string) error {
	err := NewRootCommand(version).Execute()
	if err != nil && !errors.Is(err, errCompletionFailed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func (a *app) setup() error {
	loader := config.NewLoader(a.fixedLogger)

	var (
		result *config.LoadResult
		err    error
	)
	if a.configPath != "" {
		result, err = loader.LoadFromFile(a.configPath)
	} else {
		result, err = loader.LoadDefaultConfigPath()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.cfg = result.Config
	if a.schemaDir != "" {
		a.cfg.SchemaDir = a.schemaDir
	}
	if a.logLevelFlag != "" {
		a.cfg.LogLevel = a.logLevelFlag
	}

	a.logger = a.fixedLogger
	if a.logger == nil {
		a.logger = a.initializeLogger()
	}
	a.logger.Debug("-------- new intellicomp invocation --------", zap.Strings("args", os.Args))
	for _, problem := range result.Errors {
		a.logger.Warn("config problem", zap.Error(problem))
	}
	return nil
}

// initializeLogger writes to the log file. A logger that cannot be opened is
// replaced by a no-op one rather than breaking completion.
func (a *app) initializeLogger() *zap.Logger {
	level, err := a.cfg.Level()
	if err != nil {
		level = zapcore.InfoLevel
	}
	if a.version == "dev" {
		level = zapcore.DebugLevel
	}

	if err := core.EnsureDataDir(); err != nil {
		return zap.NewNop()
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	loggerConfig.OutputPaths = []string{core.LogFile()}
	loggerConfig.ErrorOutputPaths = []string{core.LogFile()}

	logger, err := loggerConfig.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (a *app) store() *schemastore.Store {
	return schemastore.New(a.cfg.SchemaDir, a.cfg.SchemaRepository, a.logger)
}

// isTerminal reports whether w is a terminal the user is looking at.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
