package openrouter

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// FunctionSpec describes a callable tool the model is forced to invoke when a
// structured response is requested. Parameters is a JSON schema for the
// function arguments. The zero value is not usable; construct one directly or
// via NewFunctionSpec.
type FunctionSpec struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	Parameters  map[string]any `json:"parameters" yaml:"parameters"`
}

// NewFunctionSpec builds a spec whose parameter schema is generated from the
// exported fields of the provided struct (or pointer to struct).
func NewFunctionSpec(name, description string, prototype any) (*FunctionSpec, error) {
	schema, err := GenerateSchema(prototype)
	if err != nil {
		return nil, err
	}
	spec := &FunctionSpec{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks that the spec can be declared to the API.
func (s *FunctionSpec) Validate() error {
	if s == nil {
		return errors.New("openrouter: function spec is nil")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("openrouter: function spec requires a name")
	}
	return nil
}

// AsTool returns the API tool declaration for this spec.
func (s *FunctionSpec) AsTool() Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  s.Parameters,
		},
	}
}

// AsToolChoice returns the directive forcing the model to call this function.
func (s *FunctionSpec) AsToolChoice() *ToolChoice {
	return &ToolChoice{
		Type:     "function",
		Function: ToolChoiceFunction{Name: s.Name},
	}
}

// DecodeArguments parses a tool call's argument payload into a generic map.
func DecodeArguments(raw string) (map[string]any, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	return args, nil
}

// GenerateSchema builds a lightweight JSON schema from a struct definition.
func GenerateSchema(v any) (map[string]any, error) {
	if v == nil {
		return nil, errors.New("schema value cannot be nil")
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema must be a struct, got %s", t.Kind())
	}
	return structSchema(t), nil
}

func structSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("json") == "-" {
			continue
		}

		name, omitEmpty := parseJSONTag(field)
		if name == "" {
			name = field.Name
		}

		prop := schemaForType(field.Type)
		if desc := field.Tag.Get("description"); desc != "" {
			prop["description"] = desc
		}
		properties[name] = prop
		if !omitEmpty {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func parseJSONTag(field reflect.StructField) (name string, omitEmpty bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, part := range parts[1:] {
		if part == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func schemaForType(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": schemaForType(t.Elem()),
		}
	case reflect.Map:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": schemaForType(t.Elem()),
		}
	case reflect.Struct:
		return structSchema(t)
	default:
		return map[string]any{"type": "string"}
	}
}
