package openrouter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionSpecValidate(t *testing.T) {
	var nilSpec *FunctionSpec
	require.Error(t, nilSpec.Validate())
	require.Error(t, (&FunctionSpec{Name: "  "}).Validate())
	require.NoError(t, (&FunctionSpec{Name: "lookup"}).Validate())
}

func TestFunctionSpecAsTool(t *testing.T) {
	spec := &FunctionSpec{
		Name:        "lookup",
		Description: "Look up a value.",
		Parameters: map[string]any{
			"type": "object",
		},
	}

	tool := spec.AsTool()
	require.Equal(t, "function", tool.Type)
	require.Equal(t, "lookup", tool.Function.Name)
	require.Equal(t, "Look up a value.", tool.Function.Description)
	require.Equal(t, spec.Parameters, tool.Function.Parameters)

	choice := spec.AsToolChoice()
	require.Equal(t, "function", choice.Type)
	require.Equal(t, "lookup", choice.Function.Name)
}

func TestNewFunctionSpec(t *testing.T) {
	type args struct {
		City  string   `json:"city" description:"city name"`
		Days  int      `json:"days,omitempty"`
		Tags  []string `json:"tags,omitempty"`
		Score float64  `json:"score"`
	}

	spec, err := NewFunctionSpec("forecast", "Weather forecast.", args{})
	require.NoError(t, err)
	require.Equal(t, "forecast", spec.Name)

	require.Equal(t, "object", spec.Parameters["type"])
	props := spec.Parameters["properties"].(map[string]any)
	require.Equal(t, map[string]any{"type": "string", "description": "city name"}, props["city"])
	require.Equal(t, map[string]any{"type": "integer"}, props["days"])
	require.Equal(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}}, props["tags"])
	require.Equal(t, map[string]any{"type": "number"}, props["score"])

	required := spec.Parameters["required"].([]string)
	require.ElementsMatch(t, []string{"city", "score"}, required)
}

func TestNewFunctionSpecRejectsNonStruct(t *testing.T) {
	_, err := NewFunctionSpec("bad", "", 42)
	require.Error(t, err)

	_, err = NewFunctionSpec("bad", "", nil)
	require.Error(t, err)
}

func TestGenerateSchemaNested(t *testing.T) {
	type inner struct {
		Flag bool `json:"flag"`
	}
	type outer struct {
		Inner inner          `json:"inner"`
		Meta  map[string]int `json:"meta,omitempty"`
	}

	schema, err := GenerateSchema(&outer{})
	require.NoError(t, err)

	props := schema["properties"].(map[string]any)
	innerSchema := props["inner"].(map[string]any)
	require.Equal(t, "object", innerSchema["type"])
	innerProps := innerSchema["properties"].(map[string]any)
	require.Equal(t, map[string]any{"type": "boolean"}, innerProps["flag"])

	metaSchema := props["meta"].(map[string]any)
	require.Equal(t, "object", metaSchema["type"])
	require.Equal(t, map[string]any{"type": "integer"}, metaSchema["additionalProperties"])
}

func TestDecodeArguments(t *testing.T) {
	args, err := DecodeArguments(`{"x":1,"s":"v"}`)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": float64(1), "s": "v"}, args)

	_, err = DecodeArguments(`{broken`)
	require.Error(t, err)
}
