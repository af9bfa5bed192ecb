package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// FieldKind declares the JSON type a payload field must carry.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldInt
	FieldFloat
)

// FieldSpec declares the expected shape of one request payload field.
// Numeric bounds apply only when HasMin/HasMax are set.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	HasMin   bool
	Min      float64
	HasMax   bool
	Max      float64
}

// RequiredString is shorthand for a mandatory string field.
func RequiredString(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldString, Required: true}
}

// OptionalString is shorthand for an optional string field.
func OptionalString(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldString}
}

// OptionalInt is shorthand for an optional integer field.
func OptionalInt(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldInt}
}

// Schema is the per-field validation table a handler payload is checked
// against once, before any domain logic runs.
type Schema []FieldSpec

// Validate checks the payload against the schema and collects every
// violation into a single validation error, keyed by field name.
func (s Schema) Validate(payload map[string]any) *domain.ValidationError {
	verr := domain.NewValidationError()

	for _, spec := range s {
		raw, present := payload[spec.Name]
		if !present || raw == nil {
			if spec.Required {
				verr.Add(spec.Name, fmt.Sprintf("%s is required", spec.Name))
			}
			continue
		}

		switch spec.Kind {
		case FieldString:
			value, ok := raw.(string)
			if !ok {
				verr.Add(spec.Name, fmt.Sprintf("%s must be a string", spec.Name))
				continue
			}
			if spec.Required && value == "" {
				verr.Add(spec.Name, fmt.Sprintf("%s is required", spec.Name))
			}
		case FieldInt:
			value, ok := asInt(raw)
			if !ok {
				verr.Add(spec.Name, fmt.Sprintf("%s must be an integer", spec.Name))
				continue
			}
			s.checkBounds(verr, spec, float64(value))
		case FieldFloat:
			value, ok := asFloat(raw)
			if !ok {
				verr.Add(spec.Name, fmt.Sprintf("%s must be a number", spec.Name))
				continue
			}
			s.checkBounds(verr, spec, value)
		}
	}

	return verr
}

func (s Schema) checkBounds(verr *domain.ValidationError, spec FieldSpec, value float64) {
	if spec.HasMin && value < spec.Min {
		verr.Add(spec.Name, fmt.Sprintf("%s must be at least %g", spec.Name, spec.Min))
	}
	if spec.HasMax && value > spec.Max {
		verr.Add(spec.Name, fmt.Sprintf("%s must be at most %g", spec.Name, spec.Max))
	}
}

// asInt accepts the numeric representations a decoded JSON payload can
// carry and rejects anything with a fractional part.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// stringField extracts an optional string field from a validated payload.
func stringField(payload map[string]any, name string) string {
	if raw, ok := payload[name]; ok {
		if value, ok := raw.(string); ok {
			return value
		}
	}
	return ""
}

// intField extracts an optional integer field from a validated payload.
func intField(payload map[string]any, name string) int {
	if raw, ok := payload[name]; ok {
		if value, ok := asInt(raw); ok {
			return value
		}
	}
	return 0
}

// floatField extracts an optional numeric field from a validated payload.
func floatField(payload map[string]any, name string) float64 {
	if raw, ok := payload[name]; ok {
		if value, ok := asFloat(raw); ok {
			return value
		}
	}
	return 0
}
