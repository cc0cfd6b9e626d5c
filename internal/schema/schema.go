// Package schema validates run input payloads against an agent
// definition's declared input schema before they reach the backend.
package schema

import (
	"fmt"
)

// ValidationError reports a payload field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input field %q: %s", e.Field, e.Message)
}

// Validate checks payload against a JSON-schema-shaped input schema
// ("required" list plus "properties" with a "type" per field). Fields not
// declared in the schema pass through untouched.
func Validate(payload map[string]any, schema map[string]any) error {
	required, _ := schema["required"].([]any)
	for _, req := range required {
		name, ok := req.(string)
		if !ok {
			continue
		}
		if _, exists := payload[name]; !exists {
			return &ValidationError{Field: name, Message: "required field is missing"}
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for name, value := range payload {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		want, _ := prop["type"].(string)
		if !matchesType(value, want) {
			return &ValidationError{
				Field:   name,
				Value:   value,
				Message: fmt.Sprintf("expected %s, got %T", want, value),
			}
		}
	}
	return nil
}

// matchesType checks a decoded JSON value against a JSON schema type name.
// Integers arrive as float64 after decoding, so "integer" accepts whole
// floats.
func matchesType(value any, want string) bool {
	if want == "" || value == nil {
		return true
	}
	switch want {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	}
	return true
}
