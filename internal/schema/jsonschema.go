package schema

import (
	"github.com/invopop/jsonschema"
)

// JSONSchema returns a JSON Schema document describing schema files, for
// editors and validators.
func JSONSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	s := reflector.Reflect(&Command{})
	if s.Version == "" {
		s.Version = jsonschema.Version
	}
	s.Title = "Command"
	s.Description = "Completion schema for a single command"
	return s
}

// JSONSchema implements jsonschema.JSONSchemer.
func (ValueType) JSONSchema() *jsonschema.Schema {
	tagOnly := func(kind ValueKind, description string) *jsonschema.Schema {
		props := jsonschema.NewProperties()
		props.Set("type", &jsonschema.Schema{Const: string(kind)})
		return &jsonschema.Schema{
			Type:        "object",
			Description: description,
			Properties:  props,
			Required:    []string{"type"},
		}
	}

	enumProps := jsonschema.NewProperties()
	enumProps.Set("type", &jsonschema.Schema{Const: string(KindEnumeration)})
	enumProps.Set("content", &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{Type: "string"},
	})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			tagOnly(KindFlag, "The argument is a flag and has no value."),
			tagOnly(KindString, "Free text; no completion is offered."),
			tagOnly(KindPath, "A filesystem path."),
			{
				Type:        "object",
				Description: "One of a fixed set of strings.",
				Properties:  enumProps,
				Required:    []string{"type", "content"},
			},
			{
				Type: "string",
				Enum: []any{string(KindFlag), string(KindString), string(KindPath)},
			},
		},
	}
}

// JSONSchema implements jsonschema.JSONSchemer.
func (ArgumentStyle) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        []any{string(StyleStandard), string(StyleOld)},
		Description: "Standard arguments take two dashes, Old arguments one.",
	}
}
