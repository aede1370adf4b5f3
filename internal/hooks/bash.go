package hooks

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/schema"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"
)

// Bash registers each command with `complete -C`, so bash calls back into
// intellicomp with COMP_LINE and COMP_POINT set on every completion request.
type Bash struct {
	Binary string

	logger *zap.Logger
}

// GenerateCompletionCommands implements CompletableShell.
func (b *Bash) GenerateCompletionCommands(schemaDir string) ([]string, error) {
	lines, err := generateForDirectory(schemaDir, b.log(), b.GenerateCompletionsFromSchema)
	if err != nil {
		return nil, err
	}
	if err := verifyScript(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// GenerateCompletionsFromSchema implements CompletableShell. Only the file name
// is used; the schema itself is read when completions are requested.
func (b *Bash) GenerateCompletionsFromSchema(schemaFile string) ([]string, error) {
	line, err := completeCommand(b.Binary, "bash", schemaFile)
	if err != nil {
		return nil, err
	}
	return []string{line}, nil
}

func (b *Bash) log() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

// completeCommand builds `complete -C '<binary> complete <shell> <schema> --' <command>`.
// The trailing -- keeps the words bash appends from being read as flags.
func completeCommand(binary, shellName, schemaFile string) (string, error) {
	commandName, ok := schema.CommandName(schemaFile)
	if !ok {
		return "", fmt.Errorf("%s is not a schema file", schemaFile)
	}

	quotedBinary, err := syntax.Quote(binary, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("failed to quote binary path: %w", err)
	}
	quotedSchema, err := syntax.Quote(schemaFile, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("failed to quote schema path: %w", err)
	}

	callback := strings.Join([]string{quotedBinary, "complete", shellName, quotedSchema, "--"}, " ")
	quotedCallback, err := syntax.Quote(callback, syntax.LangBash)
	if err != nil {
		return "", err
	}
	quotedName, err := syntax.Quote(commandName, syntax.LangBash)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("complete -C %s %s", quotedCallback, quotedName), nil
}
