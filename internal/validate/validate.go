// Package validate turns a raw provider payload into a typed ParsedResume,
// or a failure enumerating every violated field constraint. Validation is
// pure: the same payload always yields the same outcome, and violations are
// reported in schema field order.
package validate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resume-parser/internal/models"
	"resume-parser/internal/schema"
)

// Violation is one field-level constraint failure.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error carries the full violation list for a payload that did not satisfy
// the schema.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Violations[0].Field, e.Violations[0].Reason)
	}
	return fmt.Sprintf("validation failed with %d violations", len(e.Violations))
}

// Resume validates and coerces a raw JSON payload against the registered
// resume schema. Unknown fields are ignored; missing sequences become empty
// slices; numeral strings coerce to numbers and numbers to strings where
// the schema wants them.
func Resume(raw json.RawMessage) (*models.ParsedResume, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &Error{Violations: []Violation{{
			Field:  "$",
			Reason: "response is not a JSON object",
		}}}
	}

	var violations []Violation
	cleaned := walkObject(schema.Resume(), payload, "", &violations)
	if len(violations) > 0 {
		return nil, &Error{Violations: violations}
	}

	// Round-trip through JSON to land in the typed struct; the cleaned map
	// holds only schema fields with coerced values.
	buf, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("encode validated payload: %w", err)
	}
	var resume models.ParsedResume
	if err := json.Unmarshal(buf, &resume); err != nil {
		return nil, fmt.Errorf("decode validated payload: %w", err)
	}
	return &resume, nil
}

func walkObject(obj *schema.Object, payload map[string]any, path string, violations *[]Violation) map[string]any {
	cleaned := make(map[string]any, len(obj.Fields))
	for _, f := range obj.Fields {
		fieldPath := f.Name
		if path != "" {
			fieldPath = path + "." + f.Name
		}

		raw, present := payload[f.Name]
		if !present || raw == nil {
			switch f.Kind {
			case schema.StringArray:
				cleaned[f.Name] = []string{}
			case schema.ObjectArray:
				cleaned[f.Name] = []any{}
			default:
				if f.Required {
					add(violations, fieldPath, "required field is missing")
				}
			}
			continue
		}

		switch f.Kind {
		case schema.String:
			s, ok := coerceString(raw)
			if !ok {
				add(violations, fieldPath, fmt.Sprintf("expected a string, got %s", typeName(raw)))
				continue
			}
			if f.Required && s == "" {
				add(violations, fieldPath, "required field is empty")
				continue
			}
			cleaned[f.Name] = s

		case schema.Integer:
			n, ok := coerceInt(raw)
			if !ok {
				add(violations, fieldPath, fmt.Sprintf("expected an integer, got %v", describe(raw)))
				continue
			}
			if !inRange(float64(n), f.Min, f.Max) {
				add(violations, fieldPath, rangeReason(f.Min, f.Max))
				continue
			}
			cleaned[f.Name] = n

		case schema.Number:
			n, ok := coerceFloat(raw)
			if !ok {
				add(violations, fieldPath, fmt.Sprintf("expected a number, got %v", describe(raw)))
				continue
			}
			if !inRange(n, f.Min, f.Max) {
				add(violations, fieldPath, rangeReason(f.Min, f.Max))
				continue
			}
			cleaned[f.Name] = n

		case schema.StringArray:
			items, ok := raw.([]any)
			if !ok {
				add(violations, fieldPath, fmt.Sprintf("expected an array of strings, got %s", typeName(raw)))
				continue
			}
			out := make([]string, 0, len(items))
			for i, item := range items {
				if item == nil {
					continue
				}
				s, ok := coerceString(item)
				if !ok {
					add(violations, fmt.Sprintf("%s[%d]", fieldPath, i), fmt.Sprintf("expected a string, got %s", typeName(item)))
					continue
				}
				out = append(out, s)
			}
			cleaned[f.Name] = out

		case schema.ObjectArray:
			items, ok := raw.([]any)
			if !ok {
				add(violations, fieldPath, fmt.Sprintf("expected an array of objects, got %s", typeName(raw)))
				continue
			}
			out := make([]any, 0, len(items))
			for i, item := range items {
				entry, ok := item.(map[string]any)
				if !ok {
					add(violations, fmt.Sprintf("%s[%d]", fieldPath, i), fmt.Sprintf("expected an object, got %s", typeName(item)))
					continue
				}
				out = append(out, walkObject(f.Elem, entry, fmt.Sprintf("%s[%d]", fieldPath, i), violations))
			}
			cleaned[f.Name] = out
		}
	}
	return cleaned
}

func add(violations *[]Violation, field, reason string) {
	*violations = append(*violations, Violation{Field: field, Reason: reason})
}

// coerceString accepts strings as-is and renders JSON numbers, so a model
// that emits graduation_year as 2024 still validates.
func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}

// coerceInt accepts whole JSON numbers and numeral strings ("8" -> 8).
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func inRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func rangeReason(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("must be between %v and %v", *min, *max)
	case min != nil:
		return fmt.Sprintf("must be at least %v", *min)
	default:
		return fmt.Sprintf("must be at most %v", *max)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return typeName(v)
}
