package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func inputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"goal":      map[string]any{"type": "string"},
			"max_items": map[string]any{"type": "integer"},
			"sources":   map[string]any{"type": "array"},
		},
		"required": []any{"goal"},
	}
}

func TestValidate_OK(t *testing.T) {
	err := Validate(map[string]any{
		"goal":      "summarize interviews",
		"max_items": float64(5),
		"sources":   []any{"docs"},
	}, inputSchema())
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(map[string]any{"max_items": float64(5)}, inputSchema())
	var verr *ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "goal", verr.Field)
	}
}

func TestValidate_WrongType(t *testing.T) {
	err := Validate(map[string]any{"goal": 42}, inputSchema())
	assert.ErrorContains(t, err, `invalid input field "goal"`)
}

func TestValidate_IntegerRejectsFraction(t *testing.T) {
	err := Validate(map[string]any{"goal": "x", "max_items": 2.5}, inputSchema())
	assert.Error(t, err)
}

func TestValidate_UndeclaredFieldsPass(t *testing.T) {
	err := Validate(map[string]any{"goal": "x", "extra": true}, inputSchema())
	assert.NoError(t, err)
}

func TestValidate_EmptySchema(t *testing.T) {
	assert.NoError(t, Validate(map[string]any{"anything": 1}, map[string]any{}))
}
