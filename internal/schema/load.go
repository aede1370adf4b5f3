package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FileExtension is the extension schema files are stored with.
const FileExtension = ".yaml"

// ErrInvalidSchema is returned when a schema decodes but is not usable.
var ErrInvalidSchema = errors.New("invalid schema")

// Load reads the schema file at path. Files ending in .json are decoded as
// JSON, everything else as YAML.
func Load(path string) (*Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	var cmd *Command
	if strings.EqualFold(filepath.Ext(path), ".json") {
		cmd, err = ParseJSON(data)
	} else {
		cmd, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmd, nil
}

// Parse decodes a YAML schema.
func Parse(data []byte) (*Command, error) {
	var cmd Command
	if err := yaml.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// ParseJSON decodes a JSON schema.
func ParseJSON(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// Write encodes cmd as YAML.
func Write(w io.Writer, cmd *Command) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cmd); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return enc.Close()
}

// Validate checks the parts of a schema the completion engine depends on.
// Keyword names are not checked for uniqueness.
func (c *Command) Validate() error {
	for i, arg := range c.KeywordArguments {
		if arg.Name == "" {
			return fmt.Errorf("%w: keyword argument %d has no name", ErrInvalidSchema, i)
		}
		if strings.HasPrefix(arg.Name, "-") {
			return fmt.Errorf("%w: keyword argument %q must be named without dashes", ErrInvalidSchema, arg.Name)
		}
		if utf8.RuneCountInString(arg.Shorthand) > 1 {
			return fmt.Errorf("%w: shorthand %q of %q is longer than one character", ErrInvalidSchema, arg.Shorthand, arg.Name)
		}
		if arg.ValueType.Kind == "" {
			return fmt.Errorf("%w: keyword argument %q has no value_type", ErrInvalidSchema, arg.Name)
		}
	}
	for i, arg := range c.PositionalArguments {
		if arg.ValueType.Kind == "" {
			return fmt.Errorf("%w: positional argument %d has no value_type", ErrInvalidSchema, i)
		}
	}
	return nil
}

// CommandName derives the command a schema file describes from its file name.
func CommandName(path string) (string, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, FileExtension) {
		return "", false
	}
	name = strings.TrimSuffix(name, FileExtension)
	return name, name != ""
}
