package completion

import (
	"errors"
	"testing"

	"github.com/atinylittleshell/intellicomp/internal/lexer"
	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func mockCommand() *schema.Command {
	return &schema.Command{
		Description: "This is a mock command used for testing",
		KeywordArguments: schema.KeywordArguments{
			{
				Name:        "enum",
				Description: "An enumeration",
				Repeatable:  false,
				Style:       schema.StyleStandard,
				ValueType:   schema.EnumerationValue("foo", "bar", "baz"),
			},
			{
				Name:        "file",
				Description: "A file",
				Repeatable:  true,
				Style:       schema.StyleStandard,
				ValueType:   schema.PathValue(),
			},
		},
		PositionalArguments: []schema.PositionalArgument{
			{
				Name:        "number",
				Description: "A positional enumeration",
				ValueType:   schema.EnumerationValue("1", "2", "3"),
			},
		},
	}
}

// stubPaths records what it was asked and returns fixed candidates.
type stubPaths struct {
	candidates []string
	err        error
	queries    []string
}

func (s *stubPaths) CompletePath(partial string) ([]string, error) {
	s.queries = append(s.queries, partial)
	if s.err != nil {
		return nil, &PathCompletionError{Partial: partial, Err: s.err}
	}
	return s.candidates, nil
}

func newTestResolver(t *testing.T, cmd *schema.Command, paths PathCompleter) *Resolver {
	t.Helper()
	return NewResolver(cmd, WithPathCompleter(paths), WithLogger(zaptest.NewLogger(t)))
}

func TestGenerateCompletions(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "enumeration values after keyword",
			line:     "cmd --enum ",
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "enumeration values filtered by prefix",
			line:     "cmd --enum ba",
			expected: []string{"bar", "baz"},
		},
		{
			name:     "enumeration with no match",
			line:     "cmd --enum qux",
			expected: []string{},
		},
		{
			name:     "new word offers keywords and first positional",
			line:     "cmd ",
			expected: []string{"--enum", "--file", "1", "2", "3"},
		},
		{
			name:     "positional prefix narrows values and keywords",
			line:     "cmd 2",
			expected: []string{"2"},
		},
		{
			name:     "dashes after filled positional",
			line:     "cmd 1 --",
			expected: []string{"--enum", "--file"},
		},
		{
			name:     "partial keyword",
			line:     "cmd 1 --en",
			expected: []string{"--enum"},
		},
		{
			name:     "single dash partial keyword",
			line:     "cmd 1 -f",
			expected: []string{"--file"},
		},
		{
			name:     "non repeatable keyword is excluded once used",
			line:     "cmd --enum foo 1 --",
			expected: []string{"--file"},
		},
		{
			name:     "repeatable keyword stays available",
			line:     "cmd --file a --file b 1 --",
			expected: []string{"--enum", "--file"},
		},
		{
			name:     "used keyword excluded after positional",
			line:     "cmd --enum foo ",
			expected: []string{"--file", "1", "2", "3"},
		},
		{
			name:     "quoted value in progress",
			line:     "cmd --enum 'ba",
			expected: []string{"bar", "baz"},
		},
		{
			name:     "program name only",
			line:     "cmd",
			expected: []string{"--enum", "--file", "1", "2", "3"},
		},
		{
			name:     "empty line",
			line:     "",
			expected: []string{},
		},
		{
			name:     "no program name",
			line:     " ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, mockCommand(), &stubPaths{})
			completions, err := r.GenerateCompletions(tt.line, len(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, completions)
		})
	}
}

func TestGenerateCompletionsTruncatesAtCursor(t *testing.T) {
	r := newTestResolver(t, mockCommand(), &stubPaths{})

	line := "cmd --enum ba --file x"
	completions, err := r.GenerateCompletions(line, len("cmd --enum ba"))
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "baz"}, completions)
}

func TestGenerateCompletionsCursorOutOfRange(t *testing.T) {
	r := newTestResolver(t, mockCommand(), &stubPaths{})

	for _, cursor := range []int{len("cmd ") + 1, 100, -1} {
		_, err := r.GenerateCompletions("cmd ", cursor)

		var rangeErr *CursorOutOfRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, cursor, rangeErr.Position)
	}
}

func TestGenerateCompletionsMissingValue(t *testing.T) {
	r := newTestResolver(t, mockCommand(), &stubPaths{})

	_, err := r.GenerateCompletions("cmd --enum", len("cmd --enum"))

	var missing *ArgumentMissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "--enum", missing.Argument)
}

func TestGenerateCompletionsUnparseable(t *testing.T) {
	r := newTestResolver(t, mockCommand(), &stubPaths{})

	line := `cmd --enum \`
	_, err := r.GenerateCompletions(line, len(line))
	assert.ErrorIs(t, err, lexer.ErrUnparseableCommand)
}

func TestGenerateCompletionsFlagConsumesNothing(t *testing.T) {
	cmd := mockCommand()
	cmd.KeywordArguments = append(cmd.KeywordArguments, schema.KeywordArgument{
		Name:      "verbose",
		Style:     schema.StyleOld,
		ValueType: schema.FlagValue(),
	})
	r := newTestResolver(t, cmd, &stubPaths{})

	// The flag must not swallow "2" as its value, so "2" fills the positional slot.
	completions, err := r.GenerateCompletions("cmd -verbose 2", len("cmd -verbose 2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, completions)

	completions, err = r.GenerateCompletions("cmd 1 -v", len("cmd 1 -v"))
	require.NoError(t, err)
	assert.Equal(t, []string{"-verbose"}, completions)
}

func TestGenerateCompletionsPath(t *testing.T) {
	paths := &stubPaths{candidates: []string{"src/", "script.sh"}}
	r := newTestResolver(t, mockCommand(), paths)

	completions, err := r.GenerateCompletions("cmd --file s", len("cmd --file s"))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/", "script.sh"}, completions)
	assert.Equal(t, []string{"s"}, paths.queries)
}

func TestGenerateCompletionsPathPositional(t *testing.T) {
	cmd := &schema.Command{
		KeywordArguments: schema.KeywordArguments{
			{Name: "force", Style: schema.StyleOld, ValueType: schema.FlagValue()},
		},
		PositionalArguments: []schema.PositionalArgument{
			{Name: "target", ValueType: schema.PathValue()},
		},
	}
	paths := &stubPaths{candidates: []string{"foo.txt"}}
	r := newTestResolver(t, cmd, paths)

	completions, err := r.GenerateCompletions("rm f", len("rm f"))
	require.NoError(t, err)
	assert.Equal(t, []string{"-force", "foo.txt"}, completions)
}

func TestGenerateCompletionsPathError(t *testing.T) {
	boom := errors.New("permission denied")
	r := newTestResolver(t, mockCommand(), &stubPaths{err: boom})

	_, err := r.GenerateCompletions("cmd --file ", len("cmd --file "))

	var pathErr *PathCompletionError
	require.ErrorAs(t, err, &pathErr)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateCompletionsStringAndUnknown(t *testing.T) {
	cmd := &schema.Command{
		KeywordArguments: schema.KeywordArguments{
			{Name: "message", ValueType: schema.StringValue()},
			{Name: "remote", ValueType: schema.ValueType{Kind: "Command"}},
		},
	}
	r := newTestResolver(t, cmd, &stubPaths{})

	completions, err := r.GenerateCompletions("git --message ", len("git --message "))
	require.NoError(t, err)
	assert.Empty(t, completions)

	completions, err = r.GenerateCompletions("git --remote or", len("git --remote or"))
	require.NoError(t, err)
	assert.Empty(t, completions)
}

func TestGenerateCompletionsNoPositionalSlots(t *testing.T) {
	cmd := mockCommand()
	cmd.PositionalArguments = nil
	r := newTestResolver(t, cmd, &stubPaths{})

	completions, err := r.GenerateCompletions("cmd ", len("cmd "))
	require.NoError(t, err)
	assert.Equal(t, []string{"--enum", "--file"}, completions)

	completions, err = r.GenerateCompletions("cmd", len("cmd"))
	require.NoError(t, err)
	assert.Equal(t, []string{"--enum", "--file"}, completions)
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(mockCommand())
	assert.NotNil(t, r.logger)
	assert.IsType(t, DirectoryCompleter{}, r.paths)
}
