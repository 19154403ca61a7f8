// Package schema defines the declarative description of a WADEPS submission
// template: the expected column set and the validation rule attached to each
// column. A Schema is built once (normally from a JSON template file), is
// immutable afterwards, and can be shared across concurrent validation runs.
package schema

import (
	"fmt"
	"regexp"
)

// FieldRule is one validation strategy attached to a column. It is a closed
// set: exactly ListRule, DateRule, TimeRule, NumberRule, or PatternRule.
// Consumers dispatch with a type switch; new rule kinds are added here.
type FieldRule interface {
	isFieldRule()
}

// ListRule requires the value to equal one of Allowed. Comparison is
// case-sensitive, except when Allowed is exactly the {"Yes","No"} pair,
// which is matched case-insensitively.
type ListRule struct {
	Allowed []string
}

// DateRule requires MM/DD/YYYY with MM 01-12 and DD 01-31. There is no
// month-length check; 02/30/2024 is accepted. Format only affects the
// error message shown to the submitter.
type DateRule struct {
	Format string
}

// TimeRule requires HH:MM with exactly two digits on each side. Hour and
// minute ranges are not checked. Format only affects the error message.
type TimeRule struct {
	Format string
}

// NumberRule requires the value to parse as a floating-point number.
// Min and Max, when set, bound it inclusively.
type NumberRule struct {
	Min *float64
	Max *float64
}

// PatternRule requires the upper-cased value to match Pattern at the start
// of the string. Matching is deliberately not end-anchored: the template
// format has always used prefix semantics and tightening it would reject
// files that pass today.
type PatternRule struct {
	// Expr is the expression as written in the template, used in messages.
	Expr string
	// Pattern is Expr compiled with a start anchor.
	Pattern *regexp.Regexp
	// Description overrides the default error message when set.
	Description string
}

func (ListRule) isFieldRule()    {}
func (DateRule) isFieldRule()    {}
func (TimeRule) isFieldRule()    {}
func (NumberRule) isFieldRule()  {}
func (PatternRule) isFieldRule() {}

// NewPatternRule compiles expr with prefix-match semantics.
func NewPatternRule(expr, description string) (PatternRule, error) {
	re, err := compilePrefix(expr)
	if err != nil {
		return PatternRule{}, err
	}
	return PatternRule{Expr: expr, Pattern: re, Description: description}, nil
}

// compilePrefix compiles expr so that matching is anchored at the start of
// the input but not at the end. The whole expression is wrapped in a
// non-capturing group: a bare leading ^ would anchor only the first branch
// of a top-level alternation like ^A|B.
func compilePrefix(expr string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + expr + ")")
}

// Schema is the immutable template description: ordered expected columns
// plus per-column field rules. Rules may reference columns that are not in
// the expected set; such columns are still validated when present in a file.
type Schema struct {
	columns []string
	rules   map[string]FieldRule
}

// New builds a Schema from an ordered column list and a column-to-rule map.
// It rejects misconfigured templates up front: duplicate column names,
// nil rules, numeric bounds with min > max, and uncompiled pattern rules
// are all configuration errors, never per-row findings.
func New(columns []string, rules map[string]FieldRule) (*Schema, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("schema: duplicate column %q", col)
		}
		seen[col] = struct{}{}
	}

	for col, rule := range rules {
		if err := checkRule(rule); err != nil {
			return nil, fmt.Errorf("schema: column %q: %w", col, err)
		}
	}

	s := &Schema{
		columns: append([]string(nil), columns...),
		rules:   make(map[string]FieldRule, len(rules)),
	}
	for col, rule := range rules {
		s.rules[col] = rule
	}
	return s, nil
}

// checkRule validates rule parameters at construction time.
func checkRule(rule FieldRule) error {
	switch r := rule.(type) {
	case ListRule:
		if len(r.Allowed) == 0 {
			return fmt.Errorf("list rule has no allowed values")
		}
	case DateRule, TimeRule:
		// Format is advisory; nothing to check.
	case NumberRule:
		if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
			return fmt.Errorf("number rule min (%v) exceeds max (%v)", *r.Min, *r.Max)
		}
	case PatternRule:
		if r.Pattern == nil {
			return fmt.Errorf("pattern rule is not compiled (use NewPatternRule)")
		}
	case nil:
		return fmt.Errorf("rule is nil")
	default:
		return fmt.Errorf("unsupported rule type %T", rule)
	}
	return nil
}

// Columns returns a copy of the expected column names in template order.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Rule returns the validation rule for a column, if one is defined.
func (s *Schema) Rule(column string) (FieldRule, bool) {
	r, ok := s.rules[column]
	return r, ok
}

// ColumnCount returns the number of expected columns.
func (s *Schema) ColumnCount() int { return len(s.columns) }

// RuleCount returns the number of columns with validation rules.
func (s *Schema) RuleCount() int { return len(s.rules) }
