package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weatherParams struct {
	Location string `json:"location" jsonschema:"description=City name,required"`
	Days     int    `json:"days,omitempty" jsonschema:"description=Forecast horizon in days"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(&weatherParams{})

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "location")
	assert.Contains(t, properties, "days")
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{"type": "string"},
			"days":     map[string]any{"type": "integer"},
		},
		"required": []string{"location"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"location": "Berlin"}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"location": "Berlin", "days": float64(3)}, schema))

	err := ValidateParameters(map[string]any{"days": 3}, schema)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "location", ve.Field)

	err = ValidateParameters(map[string]any{"location": 42}, schema)
	require.Error(t, err)

	// JSON-decoded required list and non-integral numbers
	decoded := map[string]any{
		"properties": map[string]any{"days": map[string]any{"type": "integer"}},
		"required":   []any{"days"},
	}
	assert.Error(t, ValidateParameters(map[string]any{"days": 2.5}, decoded))
	assert.Error(t, ValidateParameters(map[string]any{}, decoded))
}

func TestValidateParameters_UnknownFieldsPass(t *testing.T) {
	schema := map[string]any{
		"properties": map[string]any{"known": map[string]any{"type": "string"}},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"extra": 1}, schema))
}
