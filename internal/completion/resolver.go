// Package completion turns a partially typed command line into completion
// candidates, driven by a command's schema.
package completion

import (
	"strings"

	"github.com/atinylittleshell/intellicomp/internal/lexer"
	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Resolver generates completions for a single command.
type Resolver struct {
	command *schema.Command
	paths   PathCompleter
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPathCompleter replaces the completer used for Path values. The default
// completes relative to the working directory.
func WithPathCompleter(paths PathCompleter) Option {
	return func(r *Resolver) {
		r.paths = paths
	}
}

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver for cmd.
func NewResolver(cmd *schema.Command, opts ...Option) *Resolver {
	r := &Resolver{
		command: cmd,
		paths:   DirectoryCompleter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

type tokenKind int

const (
	populatedKeyword tokenKind = iota
	populatedPositional
	partialKeyword
)

// token is a word of the line after it has been matched against the schema.
type token struct {
	kind       tokenKind
	keyword    *schema.KeywordArgument
	positional *schema.PositionalArgument

	// value is the consumed value, or the dashless text of a partial keyword.
	value string
}

// GenerateCompletions returns the candidates for the word under the cursor.
// cursor is a byte offset into line; everything after it is ignored.
func (r *Resolver) GenerateCompletions(line string, cursor int) ([]string, error) {
	if cursor < 0 || cursor > len(line) {
		return nil, &CursorOutOfRangeError{Position: cursor}
	}
	line = line[:cursor]

	words, err := lexer.ParseWords(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 || words[0] == "" {
		r.logger.Debug("no command name on the line", zap.String("line", line))
		return []string{}, nil
	}

	tokens, err := r.classify(words[1:])
	if err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		return r.topLevelCompletions(tokens)
	}

	last := tokens[len(tokens)-1]
	r.logger.Debug("resolved word under cursor",
		zap.Int("tokens", len(tokens)),
		zap.Int("kind", int(last.kind)),
		zap.String("value", last.value),
	)

	switch last.kind {
	case populatedKeyword:
		return r.valueCompletions(last.keyword.ValueType, last.value)

	case populatedPositional:
		results := r.validKeywordArguments(tokens, last.value)
		values, err := r.valueCompletions(last.positional.ValueType, last.value)
		if err != nil {
			return nil, err
		}
		return append(results, values...), nil

	default:
		return r.validKeywordArguments(tokens, last.value), nil
	}
}

// classify walks the words after the command name, binding keyword values and
// positional slots in order.
func (r *Resolver) classify(words []string) ([]token, error) {
	var tokens []token
	positionalIndex := 0

	for i := 0; i < len(words); i++ {
		word := words[i]
		name := strings.TrimLeft(word, "-")

		if keyword, ok := r.command.FindKeywordArgument(name); ok {
			if keyword.ValueType.IsFlag() {
				continue
			}
			if i+1 >= len(words) {
				return nil, &ArgumentMissingValueError{Argument: word}
			}
			i++
			tokens = append(tokens, token{kind: populatedKeyword, keyword: keyword, value: words[i]})
			continue
		}

		if positionalIndex < len(r.command.PositionalArguments) {
			positional := &r.command.PositionalArguments[positionalIndex]
			positionalIndex++
			tokens = append(tokens, token{kind: populatedPositional, positional: positional, value: word})
			continue
		}

		tokens = append(tokens, token{kind: partialKeyword, value: name})
	}
	return tokens, nil
}

// topLevelCompletions is used when nothing follows the command name: every
// keyword argument plus whatever the first positional slot offers.
func (r *Resolver) topLevelCompletions(tokens []token) ([]string, error) {
	results := r.validKeywordArguments(tokens, "")
	if len(r.command.PositionalArguments) == 0 {
		return results, nil
	}
	values, err := r.valueCompletions(r.command.PositionalArguments[0].ValueType, "")
	if err != nil {
		return nil, err
	}
	return append(results, values...), nil
}

// validKeywordArguments returns the display names of keyword arguments that
// start with query and may still be given: repeatable ones, or ones no earlier
// token has populated.
func (r *Resolver) validKeywordArguments(tokens []token, query string) []string {
	valid := lo.Filter(r.command.KeywordArguments, func(arg schema.KeywordArgument, _ int) bool {
		if !strings.HasPrefix(arg.Name, query) {
			return false
		}
		if arg.Repeatable {
			return true
		}
		return !lo.ContainsBy(tokens, func(t token) bool {
			return t.kind == populatedKeyword && t.keyword.Name == arg.Name
		})
	})
	return lo.Map(valid, func(arg schema.KeywordArgument, _ int) string {
		return arg.DisplayName()
	})
}

// valueCompletions completes value according to the kind of value expected.
func (r *Resolver) valueCompletions(valueType schema.ValueType, value string) ([]string, error) {
	switch valueType.Kind {
	case schema.KindFlag, schema.KindString:
		return []string{}, nil
	case schema.KindPath:
		return r.paths.CompletePath(value)
	case schema.KindEnumeration:
		return lo.Filter(valueType.Values, func(member string, _ int) bool {
			return strings.HasPrefix(member, value)
		}), nil
	default:
		r.logger.Debug("no completions for unknown value type", zap.String("kind", string(valueType.Kind)))
		return []string{}, nil
	}
}
