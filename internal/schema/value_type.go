package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies a ValueType variant.
type ValueKind string

const (
	// KindFlag arguments take no value.
	KindFlag ValueKind = "Flag"
	// KindString values are free text; nothing can be completed for them.
	KindString ValueKind = "String"
	// KindPath values are filesystem paths.
	KindPath ValueKind = "Path"
	// KindEnumeration values must be one of a fixed set of strings.
	KindEnumeration ValueKind = "Enumeration"
)

// IsKnown reports whether k is one of the variants this version understands.
// Schemas written by newer versions may carry other kinds.
func (k ValueKind) IsKnown() bool {
	switch k {
	case KindFlag, KindString, KindPath, KindEnumeration:
		return true
	default:
		return false
	}
}

// ValueType describes the value an argument accepts.
//
// On disk it is an adjacently tagged object, e.g. {type: Enumeration, content: [a, b]}
// or {type: Flag}. Unknown variants decode without error and keep their content so
// that they survive a load/save round trip.
type ValueType struct {
	Kind ValueKind

	// Values holds the members of an Enumeration in declaration order.
	Values []string

	unknownContent any
}

// FlagValue returns the Flag value type.
func FlagValue() ValueType { return ValueType{Kind: KindFlag} }

// StringValue returns the String value type.
func StringValue() ValueType { return ValueType{Kind: KindString} }

// PathValue returns the Path value type.
func PathValue() ValueType { return ValueType{Kind: KindPath} }

// EnumerationValue returns an Enumeration over values.
func EnumerationValue(values ...string) ValueType {
	return ValueType{Kind: KindEnumeration, Values: values}
}

// IsFlag reports whether the value type consumes no value.
func (v ValueType) IsFlag() bool {
	return v.Kind == KindFlag
}

// Equal reports structural equality.
func (v ValueType) Equal(other ValueType) bool {
	if v.Kind != other.Kind {
		return false
	}
	if !slices.Equal(v.Values, other.Values) {
		return false
	}
	return reflect.DeepEqual(v.unknownContent, other.unknownContent)
}

func (v ValueType) String() string {
	if v.Kind == KindEnumeration {
		return fmt.Sprintf("%s%v", v.Kind, v.Values)
	}
	return string(v.Kind)
}

type taggedValueType struct {
	Type    ValueKind `yaml:"type" json:"type"`
	Content any       `yaml:"content,omitempty" json:"content,omitempty"`
}

func (v ValueType) tagged() taggedValueType {
	t := taggedValueType{Type: v.Kind}
	switch {
	case v.Kind == KindEnumeration:
		values := v.Values
		if values == nil {
			values = []string{}
		}
		t.Content = values
	case !v.Kind.IsKnown():
		t.Content = v.unknownContent
	}
	return t
}

// MarshalYAML implements yaml.Marshaler.
func (v ValueType) MarshalYAML() (interface{}, error) {
	if v.Kind == "" {
		return nil, fmt.Errorf("value type has no kind")
	}
	return v.tagged(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *ValueType) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value == "" {
			return fmt.Errorf("line %d: empty value type", node.Line)
		}
		*v = ValueType{Kind: ValueKind(node.Value)}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: value type must be a mapping or a scalar", node.Line)
	}

	var raw struct {
		Type    ValueKind `yaml:"type"`
		Content yaml.Node `yaml:"content"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Type == "" {
		return fmt.Errorf("line %d: value type is missing its type tag", node.Line)
	}

	decoded := ValueType{Kind: raw.Type}
	hasContent := raw.Content.Kind != 0
	switch raw.Type {
	case KindEnumeration:
		if hasContent {
			if err := raw.Content.Decode(&decoded.Values); err != nil {
				return fmt.Errorf("line %d: enumeration content: %w", node.Line, err)
			}
		}
	case KindFlag, KindString, KindPath:
	default:
		if hasContent {
			if err := raw.Content.Decode(&decoded.unknownContent); err != nil {
				return err
			}
		}
	}
	*v = decoded
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v ValueType) MarshalJSON() ([]byte, error) {
	if v.Kind == "" {
		return nil, fmt.Errorf("value type has no kind")
	}
	return json.Marshal(v.tagged())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *ValueType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var kind string
		if err := json.Unmarshal(data, &kind); err != nil {
			return err
		}
		if kind == "" {
			return fmt.Errorf("empty value type")
		}
		*v = ValueType{Kind: ValueKind(kind)}
		return nil
	}

	var raw struct {
		Type    ValueKind       `json:"type"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		return fmt.Errorf("value type is missing its type tag")
	}

	decoded := ValueType{Kind: raw.Type}
	hasContent := len(raw.Content) > 0 && string(raw.Content) != "null"
	switch raw.Type {
	case KindEnumeration:
		if hasContent {
			if err := json.Unmarshal(raw.Content, &decoded.Values); err != nil {
				return fmt.Errorf("enumeration content: %w", err)
			}
		}
	case KindFlag, KindString, KindPath:
	default:
		if hasContent {
			if err := json.Unmarshal(raw.Content, &decoded.unknownContent); err != nil {
				return err
			}
		}
	}
	*v = decoded
	return nil
}
