// Package autogenerate bootstraps schemas from existing shell completion
// scripts.
package autogenerate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrUnsupportedFormat is returned for completion scripts that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported completion script format")

// fish accepts \' inside single quotes, which POSIX shells do not.
const (
	escapedApostrophe = `\'`
	apostropheMarker  = "IntellicompApostropheMarker"
)

// Result is the schema recovered for one command.
type Result struct {
	Command string
	Schema  *schema.Command
}

// completeLine is one `complete` invocation from a fish script.
type completeLine struct {
	command     string
	short       string
	long        string
	old         string
	description string
	arguments   string
	forceFiles  bool
	requireArg  bool
	exclusive   bool
}

// GenerateFile converts the completion script at path and writes one schema per
// command into outputDir. It returns the written files.
func GenerateFile(path, outputDir string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if filepath.Ext(path) != ".fish" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open completion script: %w", err)
	}
	defer f.Close()

	results, err := ParseFish(f, logger)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no completions found in %s", path)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(results))
	for _, result := range results {
		target := filepath.Join(outputDir, result.Command+schema.FileExtension)
		if err := writeSchema(target, result.Schema); err != nil {
			return written, err
		}
		logger.Info("wrote schema", zap.String("command", result.Command), zap.String("path", target))
		written = append(written, target)
	}
	return written, nil
}

func writeSchema(path string, cmd *schema.Command) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create schema file: %w", err)
	}
	if err := schema.Write(f, cmd); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseFish reads the `complete` lines of a fish script. Commands come back in
// order of first appearance; a later definition of the same option replaces
// the earlier one.
func ParseFish(r io.Reader, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Result
	byCommand := map[string]int{}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		text := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(text, "complete") {
			continue
		}

		line, err := parseCompleteLine(text)
		if err != nil {
			logger.Warn("skipping unparseable line", zap.Int("line", lineNumber), zap.Error(err))
			continue
		}
		if line.command == "" {
			logger.Warn("skipping line without a command", zap.Int("line", lineNumber))
			continue
		}

		idx, ok := byCommand[line.command]
		if !ok {
			idx = len(results)
			byCommand[line.command] = idx
			results = append(results, Result{Command: line.command, Schema: &schema.Command{}})
		}
		cmd := results[idx].Schema

		if keyword, ok := line.keywordArgument(); ok {
			upsertKeyword(cmd, keyword)
			continue
		}
		if positional, ok := line.positionalArgument(len(cmd.PositionalArguments)); ok {
			cmd.PositionalArguments = append(cmd.PositionalArguments, positional)
			continue
		}
		logger.Warn("skipping line without an option name", zap.Int("line", lineNumber), zap.String("text", text))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completion script: %w", err)
	}
	return results, nil
}

func upsertKeyword(cmd *schema.Command, keyword schema.KeywordArgument) {
	for i := range cmd.KeywordArguments {
		if cmd.KeywordArguments[i].Name == keyword.Name {
			cmd.KeywordArguments[i] = keyword
			return
		}
	}
	cmd.KeywordArguments = append(cmd.KeywordArguments, keyword)
}

// parseCompleteLine splits one line into words and reads it the way fish's
// complete builtin reads its options.
func parseCompleteLine(text string) (completeLine, error) {
	words, err := splitWords(text)
	if err != nil {
		return completeLine{}, err
	}
	if len(words) == 0 || words[0] != "complete" {
		return completeLine{}, fmt.Errorf("not a complete command")
	}

	var line completeLine
	flags := pflag.NewFlagSet("complete", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)
	flags.StringVarP(&line.command, "command", "c", "", "")
	flags.StringVarP(&line.short, "short-option", "s", "", "")
	flags.StringVarP(&line.long, "long-option", "l", "", "")
	flags.StringVarP(&line.old, "old-option", "o", "", "")
	flags.StringVarP(&line.description, "description", "d", "", "")
	flags.StringVarP(&line.arguments, "arguments", "a", "", "")
	flags.BoolVarP(&line.forceFiles, "force-files", "F", false, "")
	flags.BoolVarP(&line.requireArg, "require-parameter", "r", false, "")
	flags.BoolVarP(&line.exclusive, "exclusive", "x", false, "")
	flags.BoolP("no-files", "f", false, "")
	flags.BoolP("keep-order", "k", false, "")
	flags.StringP("condition", "n", "", "")
	flags.StringP("wraps", "w", "", "")

	if err := flags.Parse(words[1:]); err != nil {
		return completeLine{}, err
	}
	if line.command == "" && flags.NArg() > 0 {
		line.command = flags.Arg(0)
	}
	return line, nil
}

// splitWords splits a fish line with a POSIX shell parser after protecting
// fish's escaped apostrophes.
func splitWords(text string) ([]string, error) {
	text = strings.ReplaceAll(text, escapedApostrophe, apostropheMarker)

	var words []string
	var expandErr error
	err := syntax.NewParser().Words(strings.NewReader(text), func(w *syntax.Word) bool {
		word, err := expand.Literal(nil, w)
		if err != nil {
			expandErr = err
			return false
		}
		words = append(words, strings.ReplaceAll(word, apostropheMarker, "'"))
		return true
	})
	if err != nil {
		return nil, err
	}
	if expandErr != nil {
		return nil, expandErr
	}
	return words, nil
}

func (l completeLine) keywordArgument() (schema.KeywordArgument, bool) {
	arg := schema.KeywordArgument{
		Description: l.description,
		Style:       schema.StyleStandard,
		ValueType:   l.valueType(),
	}
	switch {
	case l.long != "":
		arg.Name = l.long
		arg.Shorthand = l.short
	case l.old != "":
		arg.Name = l.old
		arg.Style = schema.StyleOld
		arg.Shorthand = l.short
	case l.short != "":
		arg.Name = l.short
		arg.Style = schema.StyleOld
	default:
		return schema.KeywordArgument{}, false
	}
	return arg, true
}

// positionalArgument turns an option-less line offering fixed values into a
// positional slot.
func (l completeLine) positionalArgument(index int) (schema.PositionalArgument, bool) {
	if l.arguments == "" || isDynamic(l.arguments) {
		return schema.PositionalArgument{}, false
	}
	return schema.PositionalArgument{
		Name:        fmt.Sprintf("argument%d", index+1),
		Description: l.description,
		ValueType:   schema.EnumerationValue(strings.Fields(l.arguments)...),
	}, true
}

func (l completeLine) valueType() schema.ValueType {
	switch {
	case l.arguments != "" && !isDynamic(l.arguments):
		return schema.EnumerationValue(strings.Fields(l.arguments)...)
	case l.forceFiles:
		return schema.PathValue()
	case l.requireArg, l.exclusive, l.arguments != "":
		return schema.StringValue()
	default:
		return schema.FlagValue()
	}
}

// isDynamic reports whether fish computes the argument list by running a
// command, which a static schema cannot capture.
func isDynamic(arguments string) bool {
	return strings.ContainsAny(arguments, "($")
}
