// Package config loads intellicomp's settings from a TOML file and the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/core"
	"github.com/atinylittleshell/intellicomp/internal/schemastore"
	"go.uber.org/zap/zapcore"
)

const (
	EnvSchemaDir = "INTELLICOMP_SCHEMA_DIR"
	EnvLogLevel  = "INTELLICOMP_LOG_LEVEL"
)

// Config holds all intellicomp configuration.
type Config struct {
	// SchemaDir is the directory schema files are read from.
	SchemaDir string `toml:"schema_dir"`

	// SchemaRepository is the git repository SchemaDir is cloned from.
	SchemaRepository string `toml:"schema_repository"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		SchemaDir:        core.SchemaDir(),
		SchemaRepository: schemastore.DefaultRepository,
		LogLevel:         "info",
	}
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
