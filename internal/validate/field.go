package validate

// field.go dispatches a raw cell value to its FieldRule variant. Each
// evaluation yields at most one finding; a passing or empty value yields
// none. Empty values are never an error here — required-field policy, if
// any, belongs to the caller.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
)

var (
	// MM 01-12, DD 01-31, four-digit year. Day range only; no awareness of
	// month lengths, so 02/30/2024 passes.
	dateRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/\d{4}$`)
	// Two digits, colon, two digits. No numeric range check.
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// maxListedValues caps how many allowed values an error message enumerates.
const maxListedValues = 5

// EvaluateField checks one cell against its rule and returns a finding if
// the value fails, or nil if it passes or is empty after trimming.
func EvaluateField(column, raw string, rule schema.FieldRule, row int) *FieldFinding {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	switch r := rule.(type) {
	case schema.ListRule:
		return evaluateList(column, value, r, row)
	case schema.DateRule:
		if !dateRe.MatchString(value) {
			format := r.Format
			if format == "" {
				format = "MM/DD/YYYY"
			}
			return errorFinding(column, value, row, "Invalid date format. Expected "+format)
		}
	case schema.TimeRule:
		if !timeRe.MatchString(value) {
			format := r.Format
			if format == "" {
				format = "HH:MM"
			}
			return errorFinding(column, value, row, "Invalid time format. Expected "+format)
		}
	case schema.NumberRule:
		return evaluateNumber(column, value, r, row)
	case schema.PatternRule:
		if !r.Pattern.MatchString(strings.ToUpper(value)) {
			msg := r.Description
			if msg == "" {
				msg = "Must match pattern: " + r.Expr
			}
			return errorFinding(column, value, row, msg)
		}
	}
	return nil
}

// evaluateList checks membership in the allowed set. The {"Yes","No"} pair
// is matched case-insensitively so that "yes" and "NO" pass; every other
// list is exact.
func evaluateList(column, value string, rule schema.ListRule, row int) *FieldFinding {
	for _, allowed := range rule.Allowed {
		if value == allowed {
			return nil
		}
	}
	if isYesNo(rule.Allowed) {
		for _, allowed := range rule.Allowed {
			if strings.EqualFold(value, allowed) {
				return nil
			}
		}
	}
	return errorFinding(column, value, row, listMessage(rule.Allowed))
}

// isYesNo reports whether allowed is exactly the Yes/No pair, in either order.
func isYesNo(allowed []string) bool {
	if len(allowed) != 2 {
		return false
	}
	return (allowed[0] == "Yes" && allowed[1] == "No") ||
		(allowed[0] == "No" && allowed[1] == "Yes")
}

// listMessage enumerates up to maxListedValues allowed values, with an
// ellipsis marker when the list is longer.
func listMessage(allowed []string) string {
	shown := allowed
	suffix := ""
	if len(allowed) > maxListedValues {
		shown = allowed[:maxListedValues]
		suffix = "..."
	}
	return "Must be one of: " + strings.Join(shown, ", ") + suffix
}

// evaluateNumber parses the value and applies the inclusive bounds. An
// unparseable value reports only the parse failure; when a bound fails, the
// minimum check wins (a single value cannot violate both on a well-formed
// rule, and min > max is rejected at schema construction).
func evaluateNumber(column, value string, rule schema.NumberRule, row int) *FieldFinding {
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errorFinding(column, value, row, "Must be a number")
	}
	if rule.Min != nil && num < *rule.Min {
		return errorFinding(column, value, row,
			fmt.Sprintf("Value must be >= %s", formatBound(*rule.Min)))
	}
	if rule.Max != nil && num > *rule.Max {
		return errorFinding(column, value, row,
			fmt.Sprintf("Value must be <= %s", formatBound(*rule.Max)))
	}
	return nil
}

// formatBound renders a bound without a trailing ".0" for whole numbers.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func errorFinding(column, value string, row int, message string) *FieldFinding {
	return &FieldFinding{
		Row:      row,
		Column:   column,
		Value:    value,
		Message:  message,
		Severity: SeverityError,
	}
}
