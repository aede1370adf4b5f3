package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atinylittleshell/intellicomp/internal/core"
	"go.uber.org/zap"
)

// Loader handles loading and parsing of config.toml files.
type Loader struct {
	logger *zap.Logger
	getenv func(string) string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		getenv: os.Getenv,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from path and applies environment
// overrides. Returns the configuration and any non-fatal errors encountered.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// File doesn't exist, defaults plus environment
			return l.LoadFromString(""), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result := l.LoadFromString(string(content))
	l.logger.Debug("loaded config", zap.String("path", path), zap.Int("errors", len(result.Errors)))
	return result, nil
}

// LoadFromString decodes TOML source. Decoding problems are collected in
// Errors and the defaults are kept.
func (l *Loader) LoadFromString(source string) *LoadResult {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	var decoded Config
	meta, err := toml.Decode(source, &decoded)
	if err != nil {
		// Continue with defaults on parse errors
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
	} else {
		l.apply(meta, &decoded, result)
	}

	l.applyEnvironment(result.Config)

	if _, err := result.Config.Level(); err != nil {
		result.Errors = append(result.Errors, err)
		result.Config.LogLevel = DefaultConfig().LogLevel
	}
	return result
}

func (l *Loader) apply(meta toml.MetaData, decoded *Config, result *LoadResult) {
	for _, key := range meta.Undecoded() {
		result.Errors = append(result.Errors, fmt.Errorf("unknown config key %q", key.String()))
	}

	if meta.IsDefined("schema_dir") {
		result.Config.SchemaDir = l.expandHome(decoded.SchemaDir)
	}
	if meta.IsDefined("schema_repository") {
		result.Config.SchemaRepository = decoded.SchemaRepository
	}
	if meta.IsDefined("log_level") {
		result.Config.LogLevel = decoded.LogLevel
	}
}

// LoadDefaultConfigPath loads configuration from the default path.
func (l *Loader) LoadDefaultConfigPath() (*LoadResult, error) {
	return l.LoadFromFile(core.ConfigFile())
}

func (l *Loader) applyEnvironment(cfg *Config) {
	if dir := l.getenv(EnvSchemaDir); dir != "" {
		cfg.SchemaDir = l.expandHome(dir)
	}
	if level := l.getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
}

func (l *Loader) expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			l.logger.Warn("cannot expand ~ without a home directory", zap.Error(err))
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
