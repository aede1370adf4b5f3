// Package hooks generates the shell code that registers intellicomp as the
// completion provider for every command with a schema.
package hooks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/schemastore"
	"github.com/atinylittleshell/intellicomp/internal/shell"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"
)

// ErrUnsupportedShell is returned for shells that cannot be hooked yet.
var ErrUnsupportedShell = errors.New("shell is not supported")

// CompletableShell generates completion registrations for one shell.
type CompletableShell interface {
	// GenerateCompletionCommands returns the lines registering every schema in
	// schemaDir.
	GenerateCompletionCommands(schemaDir string) ([]string, error)

	// GenerateCompletionsFromSchema returns the lines for a single schema file.
	GenerateCompletionsFromSchema(schemaFile string) ([]string, error)
}

// ForShell returns the generator for sh. binary is the path of the intellicomp
// executable that shells call back into.
func ForShell(sh shell.Shell, binary string, logger *zap.Logger) (CompletableShell, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch sh {
	case shell.Bash:
		return &Bash{Binary: binary, logger: logger}, nil
	case shell.Zsh:
		return &Zsh{Bash: Bash{Binary: binary, logger: logger}}, nil
	case shell.Fish:
		return &Fish{logger: logger}, nil
	case shell.Csh:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedShell, sh)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShell, string(sh))
	}
}

// generateForDirectory runs generate over every schema in dir. A schema that
// cannot be turned into completions is skipped so one bad file does not
// disable the rest.
func generateForDirectory(dir string, logger *zap.Logger, generate func(string) ([]string, error)) ([]string, error) {
	entries, err := schemastore.New(dir, "", logger).List()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, entry := range entries {
		generated, err := generate(entry.Path)
		if err != nil {
			logger.Warn("skipping schema", zap.String("path", entry.Path), zap.Error(err))
			continue
		}
		lines = append(lines, generated...)
	}
	return lines, nil
}

// verifyScript makes sure the generated lines parse as a shell program before
// they are handed to a shell for evaluation.
func verifyScript(lines []string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(strings.Join(lines, "\n")), "hook"); err != nil {
		return fmt.Errorf("generated hook does not parse: %w", err)
	}
	return nil
}
