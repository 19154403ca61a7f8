package schema

import (
	"strings"
	"testing"
)

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New([]string{"subject_id", "event_date", "subject_id"}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate column")
	}
	if !strings.Contains(err.Error(), "subject_id") {
		t.Errorf("error should name the duplicate column, got %v", err)
	}
}

func TestNewRejectsBadRules(t *testing.T) {
	min, max := 10.0, 5.0

	tests := []struct {
		name string
		rule FieldRule
	}{
		{"nil rule", nil},
		{"empty list", ListRule{}},
		{"min exceeds max", NumberRule{Min: &min, Max: &max}},
		{"uncompiled pattern", PatternRule{Expr: "[A-Z]+"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]string{"col"}, map[string]FieldRule{"col": tt.rule})
			if err == nil {
				t.Errorf("expected construction error for %s", tt.name)
			}
		})
	}
}

func TestNewAcceptsRuleForUnlistedColumn(t *testing.T) {
	// Rules may cover columns outside the expected set; such columns are
	// validated when they show up in a file.
	s, err := New([]string{"subject_id"}, map[string]FieldRule{
		"notes_date": DateRule{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Rule("notes_date"); !ok {
		t.Error("rule for unlisted column should be retained")
	}
}

func TestSchemaIsImmutable(t *testing.T) {
	columns := []string{"a", "b"}
	s, err := New(columns, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	columns[0] = "mutated"
	got := s.Columns()
	if got[0] != "a" {
		t.Error("schema shares backing array with caller input")
	}

	got[1] = "mutated"
	if s.Columns()[1] != "b" {
		t.Error("Columns() exposes internal slice")
	}
}

func TestNewPatternRuleAnchorsAtStart(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		input string
		want  bool
	}{
		{"prefix match passes", `[A-Z]{2}\d{4}`, "AB1234-SUFFIX", true},
		{"mid-string match fails", `[A-Z]{2}\d{4}`, "x AB1234", false},
		{"already anchored", `^UOF`, "UOF-2024", true},
		{"alternation anchored as a whole", `AA|BB`, "xBB", false},
		{"leading caret keeps alternation anchored", `^A|B`, "XB", false},
		{"leading caret alternation first branch", `^A|B`, "A-1", true},
		{"leading caret alternation second branch", `^A|B`, "B-2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewPatternRule(tt.expr, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rule.Pattern.MatchString(tt.input); got != tt.want {
				t.Errorf("match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewPatternRuleRejectsBadExpr(t *testing.T) {
	if _, err := NewPatternRule(`[unclosed`, ""); err == nil {
		t.Error("expected compile error")
	}
}
