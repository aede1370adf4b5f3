package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// KeywordArguments is the ordered list of a command's keyword arguments.
//
// It decodes from either a sequence of arguments that carry their own name, or a
// mapping from name to argument. Mapping order is kept.
type KeywordArguments []KeywordArgument

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *KeywordArguments) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var args []KeywordArgument
		if err := node.Decode(&args); err != nil {
			return err
		}
		*k = args
		return nil

	case yaml.MappingNode:
		args := make([]KeywordArgument, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			var arg KeywordArgument
			if err := valueNode.Decode(&arg); err != nil {
				return err
			}
			if arg.Name == "" {
				arg.Name = keyNode.Value
			}
			args = append(args, arg)
		}
		*k = args
		return nil

	default:
		return fmt.Errorf("line %d: keyword_arguments must be a sequence or a mapping", node.Line)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *KeywordArguments) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*k = nil
		return nil
	}

	if data[0] == '[' {
		var args []KeywordArgument
		if err := json.Unmarshal(data, &args); err != nil {
			return err
		}
		*k = args
		return nil
	}

	// Walk the object token by token so that declaration order survives.
	dec := json.NewDecoder(bytes.NewReader(data))
	start, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := start.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("keyword_arguments must be an array or an object")
	}
	var args []KeywordArgument
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("keyword_arguments: unexpected key %v", tok)
		}
		var arg KeywordArgument
		if err := dec.Decode(&arg); err != nil {
			return fmt.Errorf("keyword argument %q: %w", name, err)
		}
		if arg.Name == "" {
			arg.Name = name
		}
		args = append(args, arg)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*k = args
	return nil
}
