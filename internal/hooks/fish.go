package hooks

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Fish emits static `complete -c` definitions, since fish has no equivalent of
// bash's `complete -C` callback.
type Fish struct {
	logger *zap.Logger
}

// GenerateCompletionCommands implements CompletableShell.
func (f *Fish) GenerateCompletionCommands(schemaDir string) ([]string, error) {
	logger := f.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return generateForDirectory(schemaDir, logger, f.GenerateCompletionsFromSchema)
}

// GenerateCompletionsFromSchema implements CompletableShell.
func (f *Fish) GenerateCompletionsFromSchema(schemaFile string) ([]string, error) {
	commandName, ok := schema.CommandName(schemaFile)
	if !ok {
		return nil, fmt.Errorf("%s is not a schema file", schemaFile)
	}
	cmd, err := schema.Load(schemaFile)
	if err != nil {
		return nil, err
	}
	return FishCompletions(commandName, cmd), nil
}

// FishCompletions renders the fish definitions for one command.
func FishCompletions(commandName string, cmd *schema.Command) []string {
	base := "complete -c " + fishQuote(commandName)

	lines := lo.Map(cmd.KeywordArguments, func(arg schema.KeywordArgument, _ int) string {
		parts := []string{base}
		if arg.Style == schema.StyleOld {
			parts = append(parts, "-o", fishQuote(arg.Name))
		} else {
			parts = append(parts, "-l", fishQuote(arg.Name))
		}
		if arg.Shorthand != "" {
			parts = append(parts, "-s", fishQuote(strings.TrimLeft(arg.Shorthand, "-")))
		}
		parts = append(parts, fishValueOptions(arg.ValueType)...)
		if arg.Description != "" {
			parts = append(parts, "-d", fishQuote(arg.Description))
		}
		return strings.Join(parts, " ")
	})

	// Enumerated positionals become candidates offered without a preceding option.
	for _, arg := range cmd.PositionalArguments {
		if arg.ValueType.Kind != schema.KindEnumeration || len(arg.ValueType.Values) == 0 {
			continue
		}
		parts := []string{base, "-f", "-a", fishQuote(strings.Join(arg.ValueType.Values, " "))}
		if arg.Description != "" {
			parts = append(parts, "-d", fishQuote(arg.Description))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

func fishValueOptions(valueType schema.ValueType) []string {
	switch valueType.Kind {
	case schema.KindFlag:
		return nil
	case schema.KindPath:
		return []string{"-r", "-F"}
	case schema.KindEnumeration:
		return []string{"-x", "-a", fishQuote(strings.Join(valueType.Values, " "))}
	default:
		return []string{"-x"}
	}
}

// fishQuote single-quotes s for fish, where only \ and ' are special inside
// single quotes.
func fishQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
