package report

// console.go prints run results to a terminal, for the CLI's auto mode.

import (
	"fmt"
	"io"
	"strings"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

// Summary prints the one-glance outcome for a file.
func Summary(w io.Writer, fileName string, rep *validate.Report) {
	fmt.Fprintf(w, "\n  Summary for %s:\n", fileName)

	if n := len(rep.Headers.Missing); n > 0 {
		fmt.Fprintf(w, "    Missing %d required headers\n", n)
	}
	if n := len(rep.Errors); n > 0 {
		fmt.Fprintf(w, "    %d data errors found\n", n)
	}
	if n := rep.SubjectIDs.Total(); n > 0 {
		fmt.Fprintf(w, "    %d subject ID issues\n", n)
	}
	if n := len(rep.Skipped); n > 0 {
		fmt.Fprintf(w, "    %d unreadable rows skipped\n", n)
	}

	switch StatusOf(rep) {
	case StatusPassed:
		fmt.Fprintln(w, "    PASSED - File meets all requirements")
	case StatusWarning:
		fmt.Fprintln(w, "    PASSED WITH WARNINGS")
	default:
		fmt.Fprintln(w, "    FAILED - Critical issues found")
	}
}

// Detailed prints the full finding listing for a file, capped so a large
// file does not flood the terminal.
func Detailed(w io.Writer, fileName string, rep *validate.Report) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nDETAILED VALIDATION RESULTS: %s\n%s\n", rule, fileName, rule)

	if len(rep.Headers.Missing) > 0 || len(rep.Headers.Extra) > 0 {
		fmt.Fprintln(w, "\nHEADER VALIDATION:")
		printHeaderList(w, "Missing headers", "-", rep.Headers.Missing)
		printHeaderList(w, "Extra headers", "+", rep.Headers.Extra)
	}

	if len(rep.Errors) > 0 {
		fmt.Fprintf(w, "\nDATA VALIDATION ERRORS (%d):\n", len(rep.Errors))
		for _, e := range capFindings(rep.Errors, 20) {
			fmt.Fprintf(w, "  Row %d, %s: %s\n", e.Row, e.Column, e.Message)
			if e.Value != "" {
				fmt.Fprintf(w, "    Value: %q\n", e.Value)
			}
		}
		if more := len(rep.Errors) - 20; more > 0 {
			fmt.Fprintf(w, "  ... and %d more errors\n", more)
		}
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(w, "\nWARNINGS (%d):\n", len(rep.Warnings))
		for _, warn := range capFindings(rep.Warnings, 10) {
			fmt.Fprintf(w, "  Row %d, %s: %s\n", warn.Row, warn.Column, warn.Message)
		}
		if more := len(rep.Warnings) - 10; more > 0 {
			fmt.Fprintf(w, "  ... and %d more warnings\n", more)
		}
	}

	if total := rep.SubjectIDs.Total(); total > 0 {
		fmt.Fprintf(w, "\nSUBJECT ID ISSUES (%d):\n", total)
		fmt.Fprintf(w, "  Unknown values: %d\n", rep.SubjectIDs.UnknownCount)
		fmt.Fprintf(w, "  Full names: %d\n", rep.SubjectIDs.NameCount)
		fmt.Fprintf(w, "  Invalid format: %d\n", rep.SubjectIDs.InvalidCount)
		if len(rep.SubjectIDs.Examples) > 0 {
			fmt.Fprintln(w, "  Examples:")
			for _, ex := range rep.SubjectIDs.Examples {
				fmt.Fprintf(w, "    Row %d: %q - %s\n", ex.Row, ex.Value, ex.Message)
			}
		}
	}

	fmt.Fprintln(w, "\nRECOMMENDATIONS:")
	for _, r := range recommendations(rep) {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	fmt.Fprintf(w, "\n%s\n", rule)
}

// recommendations lists the next actions for a submitter, in fix order.
func recommendations(rep *validate.Report) []string {
	var recs []string
	if !rep.Headers.IsValid {
		recs = append(recs, "Fix missing headers before resubmission")
	}
	if n := len(rep.Errors); n > 0 {
		recs = append(recs, fmt.Sprintf("Address %d critical validation errors", n))
	}
	if n := len(rep.Warnings); n > 0 {
		recs = append(recs, fmt.Sprintf("Review %d warnings for data quality", n))
	}
	if n := rep.SubjectIDs.Total(); n > 0 {
		recs = append(recs, fmt.Sprintf("Fix %d subject ID format issues", n))
	}
	if len(recs) == 0 {
		recs = append(recs, "File is ready for submission!")
	}
	return recs
}

func printHeaderList(w io.Writer, label, marker string, headers []string) {
	if len(headers) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s (%d):\n", label, len(headers))
	for _, h := range truncateList(headers, 10) {
		fmt.Fprintf(w, "    %s %s\n", marker, h)
	}
	if more := len(headers) - 10; more > 0 {
		fmt.Fprintf(w, "    ... and %d more\n", more)
	}
}

func capFindings(findings []validate.FieldFinding, n int) []validate.FieldFinding {
	if len(findings) > n {
		return findings[:n]
	}
	return findings
}
