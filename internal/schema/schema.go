// Package schema holds the declarative description of a command's arguments.
// It is pure data: the completion engine reads it, loaders and generators
// produce it.
package schema

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Command is the schema for one command.
type Command struct {
	// Description is a brief overview of the command.
	Description string `yaml:"description" json:"description"`

	// KeywordArguments are the flag-style arguments, matched by name.
	KeywordArguments KeywordArguments `yaml:"keyword_arguments,omitempty" json:"keyword_arguments,omitempty"`

	// PositionalArguments are consumed in declaration order.
	PositionalArguments []PositionalArgument `yaml:"positional_arguments,omitempty" json:"positional_arguments,omitempty"`
}

// ArgumentStyle controls how a keyword argument is written on the command line.
type ArgumentStyle string

const (
	// StyleStandard arguments are prefixed with two dashes (--name).
	StyleStandard ArgumentStyle = "Standard"
	// StyleOld arguments are prefixed with a single dash (-name).
	StyleOld ArgumentStyle = "Old"
)

// Prefix returns the dashes the style puts in front of a name.
func (s ArgumentStyle) Prefix() string {
	if s == StyleOld {
		return "-"
	}
	return "--"
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ArgumentStyle) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	style, err := parseStyle(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = style
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used for JSON.
func (s *ArgumentStyle) UnmarshalText(text []byte) error {
	style, err := parseStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

func parseStyle(raw string) (ArgumentStyle, error) {
	switch ArgumentStyle(raw) {
	case "", StyleStandard:
		return StyleStandard, nil
	case StyleOld:
		return StyleOld, nil
	default:
		return "", fmt.Errorf("unknown argument style %q", raw)
	}
}

// KeywordArgument is a named argument such as --output or -name.
type KeywordArgument struct {
	// Name is the identifier without its dash prefix.
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`

	// Shorthand is an optional single-character alias.
	Shorthand string `yaml:"shorthand,omitempty" json:"shorthand,omitempty"`

	// Repeatable arguments may appear more than once on one command line.
	Repeatable bool `yaml:"repeatable" json:"repeatable"`

	Style     ArgumentStyle `yaml:"style,omitempty" json:"style,omitempty"`
	ValueType ValueType     `yaml:"value_type" json:"value_type"`

	// IncompatibleWith is reserved; nothing enforces it yet.
	IncompatibleWith []string `yaml:"incompatible_with,omitempty" json:"incompatible_with,omitempty"`
}

// DisplayName returns the name as it is typed, including the style's dashes.
func (a KeywordArgument) DisplayName() string {
	return a.Style.Prefix() + a.Name
}

func (a KeywordArgument) String() string {
	return a.DisplayName()
}

// Equal reports structural equality.
func (a KeywordArgument) Equal(other KeywordArgument) bool {
	return a.Name == other.Name &&
		a.Description == other.Description &&
		a.Shorthand == other.Shorthand &&
		a.Repeatable == other.Repeatable &&
		a.Style.normalized() == other.Style.normalized() &&
		a.ValueType.Equal(other.ValueType) &&
		slices.Equal(a.IncompatibleWith, other.IncompatibleWith)
}

func (s ArgumentStyle) normalized() ArgumentStyle {
	if s == "" {
		return StyleStandard
	}
	return s
}

// PositionalArgument is bound by position rather than by name.
type PositionalArgument struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	ValueType   ValueType `yaml:"value_type" json:"value_type"`

	// IncompatibleWith is reserved; nothing enforces it yet.
	IncompatibleWith []string `yaml:"incompatible_with,omitempty" json:"incompatible_with,omitempty"`
}

// Equal reports structural equality.
func (a PositionalArgument) Equal(other PositionalArgument) bool {
	return a.Name == other.Name &&
		a.Description == other.Description &&
		a.ValueType.Equal(other.ValueType) &&
		slices.Equal(a.IncompatibleWith, other.IncompatibleWith)
}

// Equal reports structural equality.
func (c *Command) Equal(other *Command) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Description == other.Description &&
		slices.EqualFunc(c.KeywordArguments, other.KeywordArguments, KeywordArgument.Equal) &&
		slices.EqualFunc(c.PositionalArguments, other.PositionalArguments, PositionalArgument.Equal)
}

// FindKeywordArgument returns the keyword argument called name, if declared.
func (c *Command) FindKeywordArgument(name string) (*KeywordArgument, bool) {
	for i := range c.KeywordArguments {
		if c.KeywordArguments[i].Name == name {
			return &c.KeywordArguments[i], true
		}
	}
	return nil, false
}
