package autogenerate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinylittleshell/intellicomp/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tarFish = `# tar completions
complete -c tar -s f -l file -r -F -d 'Use archive file'
complete -c tar -l format -x -a 'gnu posix ustar' -d 'Archive format'
complete -c tar -s v -l verbose -d 'Verbosely list files processed'
complete -c tar -o name -x -d 'It\'s an old one'
complete -c tar -s z -d Gzip
complete -c tar -f -a 'c x t' -d 'Operation mode'
complete -c tar -l directory -xa '(__fish_complete_directories)' -d 'Change directory'
complete -c tar -n '__fish_seen_subcommand_from x' -l overwrite -d 'Overwrite existing files'
complete -c tar -l format -x -a 'gnu pax' -d 'Archive format, again'
complete -c tar -d 'nothing to name'
function __tar_helper
    echo complete
end
`

func TestParseFish(t *testing.T) {
	results, err := ParseFish(strings.NewReader(tarFish), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "tar", results[0].Command)

	cmd := results[0].Schema
	expected := schema.KeywordArguments{
		{Name: "file", Shorthand: "f", Description: "Use archive file", Style: schema.StyleStandard, ValueType: schema.PathValue()},
		{Name: "format", Description: "Archive format, again", Style: schema.StyleStandard, ValueType: schema.EnumerationValue("gnu", "pax")},
		{Name: "verbose", Shorthand: "v", Description: "Verbosely list files processed", Style: schema.StyleStandard, ValueType: schema.FlagValue()},
		{Name: "name", Description: "It's an old one", Style: schema.StyleOld, ValueType: schema.StringValue()},
		{Name: "z", Description: "Gzip", Style: schema.StyleOld, ValueType: schema.FlagValue()},
		{Name: "directory", Description: "Change directory", Style: schema.StyleStandard, ValueType: schema.StringValue()},
		{Name: "overwrite", Description: "Overwrite existing files", Style: schema.StyleStandard, ValueType: schema.FlagValue()},
	}
	require.Len(t, cmd.KeywordArguments, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(cmd.KeywordArguments[i]), "keyword %d: %+v", i, cmd.KeywordArguments[i])
	}

	require.Len(t, cmd.PositionalArguments, 1)
	assert.Equal(t, "argument1", cmd.PositionalArguments[0].Name)
	assert.True(t, cmd.PositionalArguments[0].ValueType.Equal(schema.EnumerationValue("c", "x", "t")))
}

func TestParseFishMultipleCommands(t *testing.T) {
	source := "complete -c foo -l one\ncomplete bar -l two\ncomplete -c foo -l three\n"

	results, err := ParseFish(strings.NewReader(source), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "foo", results[0].Command)
	assert.Equal(t, "bar", results[1].Command)
	assert.Len(t, results[0].Schema.KeywordArguments, 2)
	assert.Len(t, results[1].Schema.KeywordArguments, 1)
}

func TestParseFishSkipsUnparseableLines(t *testing.T) {
	source := "complete -c foo -l 'unterminated\ncomplete -c foo -l fine\n"

	results, err := ParseFish(strings.NewReader(source), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Schema.KeywordArguments, 1)
	assert.Equal(t, "fine", results[0].Schema.KeywordArguments[0].Name)
}

func TestSplitWords(t *testing.T) {
	words, err := splitWords(`complete -c git -d 'Don\'t "panic"' -a "a b"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"complete", "-c", "git", "-d", `Don't "panic"`, "-a", "a b"}, words)
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tar.fish")
	require.NoError(t, os.WriteFile(input, []byte(tarFish), 0644))
	outputDir := filepath.Join(dir, "out")

	written, err := GenerateFile(input, outputDir, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(outputDir, "tar.yaml")}, written)

	cmd, err := schema.Load(written[0])
	require.NoError(t, err)
	assert.Len(t, cmd.KeywordArguments, 7)
	assert.Len(t, cmd.PositionalArguments, 1)
}

func TestGenerateFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := GenerateFile(filepath.Join(dir, "tar.bash"), dir, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = GenerateFile(filepath.Join(dir, "missing.fish"), dir, zaptest.NewLogger(t))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.fish")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing here\n"), 0644))
	_, err = GenerateFile(empty, dir, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "no completions")
}
