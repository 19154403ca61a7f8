package schema

// template.go loads the WADEPS JSON template format:
//
//	{
//	  "headers": ["subject_id", "event_date", ...],
//	  "validations": {
//	    "event_date": {"type": "date", "format": "MM/DD/YYYY"},
//	    "force_used": {"type": "list", "values": ["Yes", "No"]},
//	    "officer_age": {"type": "number", "min": 18, "max": 100},
//	    "case_number": {"type": "pattern", "pattern": "[A-Z]{2}\\d{4}", "description": "..."}
//	  }
//	}
//
// A template that cannot be parsed or that carries inconsistent rule
// parameters is a fatal configuration error.

import (
	"encoding/json"
	"fmt"
	"os"
)

// ruleSpec is the wire form of a single validation rule. Type selects the
// variant; the remaining fields are variant-specific parameters.
type ruleSpec struct {
	Type        string   `json:"type"`
	Values      []string `json:"values,omitempty"`
	Format      string   `json:"format,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Description string   `json:"description,omitempty"`
}

// templateFile is the on-disk template document.
type templateFile struct {
	Headers     []string            `json:"headers"`
	Validations map[string]ruleSpec `json:"validations"`
}

// LoadTemplate reads and parses a JSON template file into a Schema.
func LoadTemplate(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	s, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return s, nil
}

// ParseTemplate parses JSON template bytes into a Schema.
func ParseTemplate(data []byte) (*Schema, error) {
	var tf templateFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if len(tf.Headers) == 0 {
		return nil, fmt.Errorf("parse template: no headers defined")
	}

	rules := make(map[string]FieldRule, len(tf.Validations))
	for col, spec := range tf.Validations {
		rule, err := spec.toRule()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		rules[col] = rule
	}

	return New(tf.Headers, rules)
}

// toRule converts a wire rule spec into its FieldRule variant.
func (spec ruleSpec) toRule() (FieldRule, error) {
	switch spec.Type {
	case "list":
		if len(spec.Values) == 0 {
			return nil, fmt.Errorf("list rule requires values")
		}
		return ListRule{Allowed: spec.Values}, nil
	case "date":
		return DateRule{Format: spec.Format}, nil
	case "time":
		return TimeRule{Format: spec.Format}, nil
	case "number":
		return NumberRule{Min: spec.Min, Max: spec.Max}, nil
	case "pattern":
		if spec.Pattern == "" {
			return nil, fmt.Errorf("pattern rule requires a pattern")
		}
		rule, err := NewPatternRule(spec.Pattern, spec.Description)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", spec.Pattern, err)
		}
		return rule, nil
	case "":
		return nil, fmt.Errorf("rule has no type")
	default:
		return nil, fmt.Errorf("unknown rule type %q", spec.Type)
	}
}
