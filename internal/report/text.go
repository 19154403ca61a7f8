package report

// text.go renders the plain-text error report: grouped issue counts with an
// example value and a fix hint per group, written for the person who has to
// open the spreadsheet and correct it.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

// issueGroup accumulates findings that share a column and category.
type issueGroup struct {
	key     string
	count   int
	example string
	fix     string
}

// ErrorReport renders the detailed plain-text report for one file.
func ErrorReport(fileName string, rep *validate.Report, at time.Time) string {
	var b strings.Builder

	fmt.Fprintln(&b, "WADEPS VALIDATION ERROR REPORT")
	fmt.Fprintln(&b, strings.Repeat("=", 60))
	fmt.Fprintf(&b, "File: %s\n", fileName)
	fmt.Fprintf(&b, "Date: %s\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b)

	writeHeaderIssues(&b, rep.Headers)

	if len(rep.Errors) > 0 {
		fmt.Fprintln(&b, "DATA VALIDATION ISSUES:")
		for _, g := range groupFindings(rep.Errors) {
			fmt.Fprintf(&b, "  %3d x %s\n", g.count, g.key)
			fmt.Fprintf(&b, "       Example: %q\n", g.example)
			fmt.Fprintf(&b, "       Fix: %s\n", g.fix)
		}
		fmt.Fprintln(&b)
	}

	if total := rep.SubjectIDs.Total(); total > 0 {
		fmt.Fprintf(&b, "SUBJECT ID ISSUES (%d):\n", total)
		fmt.Fprintf(&b, "  Unknown values: %d\n", rep.SubjectIDs.UnknownCount)
		fmt.Fprintf(&b, "  Full names: %d\n", rep.SubjectIDs.NameCount)
		fmt.Fprintf(&b, "  Invalid format: %d\n", rep.SubjectIDs.InvalidCount)
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "VALIDATION STATUS:")
	switch StatusOf(rep) {
	case StatusPassed:
		fmt.Fprintln(&b, "  PASSED - No critical issues")
	case StatusWarning:
		fmt.Fprintln(&b, "  PASSED WITH WARNINGS - Review issues above")
	default:
		fmt.Fprintln(&b, "  FAILED - Issues must be fixed before submission")
	}

	return b.String()
}

func writeHeaderIssues(b *strings.Builder, headers validate.HeaderComparison) {
	if len(headers.Missing) > 0 {
		fmt.Fprintln(b, "MISSING HEADERS:")
		for _, h := range truncateList(headers.Missing, 10) {
			fmt.Fprintf(b, "  - %s\n", h)
		}
		if extra := len(headers.Missing) - 10; extra > 0 {
			fmt.Fprintf(b, "  ... and %d more\n", extra)
		}
		fmt.Fprintln(b)
	}

	if len(headers.Extra) > 0 {
		fmt.Fprintln(b, "EXTRA/MALFORMED HEADERS:")
		for _, h := range truncateList(headers.Extra, 10) {
			if strings.ContainsAny(h, "\n\r") {
				fmt.Fprintf(b, "  - Header has line break: %.50q\n", h)
			} else {
				fmt.Fprintf(b, "  - %s\n", h)
			}
		}
		fmt.Fprintln(b, "  FIX: Remove these columns or rename them to match the template")
		fmt.Fprintln(b)
	}
}

// groupFindings buckets errors by column and issue category, sorted by
// descending count (key breaks ties so output is deterministic).
func groupFindings(findings []validate.FieldFinding) []issueGroup {
	groups := make(map[string]*issueGroup)
	for _, f := range findings {
		category, fix := categorize(f.Message)
		key := fmt.Sprintf("%s: %s", f.Column, category)
		g, ok := groups[key]
		if !ok {
			g = &issueGroup{key: key, example: f.Value, fix: fix}
			groups[key] = g
		}
		g.count++
	}

	sorted := make([]issueGroup, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, *g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].key < sorted[j].key
	})
	return sorted
}

// categorize maps a finding message to its display category and fix hint.
func categorize(message string) (category, fix string) {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "date format"):
		return "Date format issue", "Use format MM/DD/YYYY (e.g., 09/23/2025)"
	case strings.Contains(lower, "time format"):
		return "Time format issue", "Use format HH:MM (e.g., 08:21)"
	case strings.Contains(message, "Must be one of"):
		return "Invalid dropdown value", "Use exact value from dropdown list"
	case strings.Contains(lower, "must be a number"), strings.Contains(message, "Value must be"):
		return "Numeric value issue", "Enter a number within the allowed range"
	default:
		short := message
		if len(short) > 30 {
			short = short[:30]
		}
		return short, "Check validation requirements"
	}
}

func truncateList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
