package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTemplate = `{
	"headers": ["subject_id", "event_date", "event_time", "officer_age", "force_used", "case_number"],
	"validations": {
		"event_date": {"type": "date", "format": "MM/DD/YYYY"},
		"event_time": {"type": "time"},
		"officer_age": {"type": "number", "min": 18, "max": 100},
		"force_used": {"type": "list", "values": ["Yes", "No"]},
		"case_number": {"type": "pattern", "pattern": "[A-Z]{2}\\d{4}", "description": "Case number must start with two letters and four digits"}
	}
}`

func TestParseTemplate(t *testing.T) {
	s, err := ParseTemplate([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := s.ColumnCount(), 6; got != want {
		t.Errorf("ColumnCount() = %d, want %d", got, want)
	}
	if got, want := s.RuleCount(), 5; got != want {
		t.Errorf("RuleCount() = %d, want %d", got, want)
	}

	rule, ok := s.Rule("officer_age")
	if !ok {
		t.Fatal("missing rule for officer_age")
	}
	num, ok := rule.(NumberRule)
	if !ok {
		t.Fatalf("officer_age rule is %T, want NumberRule", rule)
	}
	if num.Min == nil || *num.Min != 18 {
		t.Errorf("Min = %v, want 18", num.Min)
	}
	if num.Max == nil || *num.Max != 100 {
		t.Errorf("Max = %v, want 100", num.Max)
	}

	rule, _ = s.Rule("case_number")
	pat, ok := rule.(PatternRule)
	if !ok {
		t.Fatalf("case_number rule is %T, want PatternRule", rule)
	}
	if pat.Expr != `[A-Z]{2}\d{4}` {
		t.Errorf("Expr = %q", pat.Expr)
	}
	if !pat.Pattern.MatchString("AB1234") {
		t.Error("compiled pattern should match AB1234")
	}
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "invalid JSON",
			input:   `{"headers": [`,
			wantMsg: "parse template",
		},
		{
			name:    "no headers",
			input:   `{"headers": [], "validations": {}}`,
			wantMsg: "no headers",
		},
		{
			name:    "unknown rule type",
			input:   `{"headers": ["a"], "validations": {"a": {"type": "uuid"}}}`,
			wantMsg: `unknown rule type "uuid"`,
		},
		{
			name:    "missing rule type",
			input:   `{"headers": ["a"], "validations": {"a": {"values": ["x"]}}}`,
			wantMsg: "no type",
		},
		{
			name:    "list without values",
			input:   `{"headers": ["a"], "validations": {"a": {"type": "list"}}}`,
			wantMsg: "requires values",
		},
		{
			name:    "pattern without expression",
			input:   `{"headers": ["a"], "validations": {"a": {"type": "pattern"}}}`,
			wantMsg: "requires a pattern",
		},
		{
			name:    "invalid pattern expression",
			input:   `{"headers": ["a"], "validations": {"a": {"type": "pattern", "pattern": "[bad"}}}`,
			wantMsg: "invalid pattern",
		},
		{
			name:    "min exceeds max",
			input:   `{"headers": ["a"], "validations": {"a": {"type": "number", "min": 10, "max": 5}}}`,
			wantMsg: "exceeds max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.json")
	if err := os.WriteFile(path, []byte(sampleTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ColumnCount() != 6 {
		t.Errorf("ColumnCount() = %d, want 6", s.ColumnCount())
	}

	if _, err := LoadTemplate(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
