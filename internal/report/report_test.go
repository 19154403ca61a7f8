package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

func passingReport() *validate.Report {
	return &validate.Report{
		Headers: validate.HeaderComparison{
			Matching: []string{"event_date", "subject_id"},
			Missing:  []string{},
			Extra:    []string{},
			IsValid:  true,
		},
		Errors:    []validate.FieldFinding{},
		Warnings:  []validate.FieldFinding{},
		TotalRows: 10,
	}
}

func failingReport() *validate.Report {
	rep := passingReport()
	rep.Errors = []validate.FieldFinding{
		{Row: 2, Column: "event_date", Value: "1/2/2024", Message: "Invalid date format. Expected MM/DD/YYYY", Severity: validate.SeverityError},
		{Row: 3, Column: "event_date", Value: "13/01/2024", Message: "Invalid date format. Expected MM/DD/YYYY", Severity: validate.SeverityError},
		{Row: 3, Column: "force_used", Value: "maybe", Message: "Must be one of: Yes, No", Severity: validate.SeverityError},
	}
	rep.SubjectIDs = validate.SubjectIDSummary{
		NameCount: 1,
		Examples: []validate.SubjectIDFinding{
			{Row: 2, Value: "John Doe", Class: validate.SubjectFullName, Message: "Subject ID appears to be a full name. Use initials instead"},
		},
	}
	return rep
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*validate.Report)
		want   Status
	}{
		{"clean run passes", func(r *validate.Report) {}, StatusPassed},
		{
			"missing headers fail",
			func(r *validate.Report) {
				r.Headers.Missing = []string{"event_date"}
				r.Headers.IsValid = false
			},
			StatusFailed,
		},
		{
			"data errors fail",
			func(r *validate.Report) {
				r.Errors = append(r.Errors, validate.FieldFinding{Message: "Must be a number"})
			},
			StatusFailed,
		},
		{
			"subject issues warn",
			func(r *validate.Report) { r.SubjectIDs.UnknownCount = 1 },
			StatusWarning,
		},
		{
			"warnings warn",
			func(r *validate.Report) {
				r.Warnings = append(r.Warnings, validate.FieldFinding{Message: "check"})
			},
			StatusWarning,
		},
		{
			"skipped rows warn",
			func(r *validate.Report) {
				r.Skipped = append(r.Skipped, validate.RowSkip{Row: 5, Reason: "bad quoting"})
			},
			StatusWarning,
		},
		{
			"extra headers alone still pass",
			func(r *validate.Report) { r.Headers.Extra = []string{"notes"} },
			StatusPassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := passingReport()
			tt.mutate(rep)
			if got := StatusOf(rep); got != tt.want {
				t.Errorf("StatusOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		errors int
		want   float64
	}{
		{"clean file", 10, 0, 100},
		{"half bad", 10, 5, 50},
		{"more errors than rows floors at zero", 2, 10, 0},
		{"zero rows clean", 0, 0, 100},
		{"zero rows with errors", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := passingReport()
			rep.TotalRows = tt.rows
			rep.Errors = make([]validate.FieldFinding, tt.errors)
			if got := QualityScore(rep); got != tt.want {
				t.Errorf("QualityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportJSONShape(t *testing.T) {
	at := time.Date(2025, 9, 23, 8, 21, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewExport("uof_2025.csv", failingReport(), at)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{"file", "timestamp", "status", "header_validation", "data_validation", "subject_id_validation"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	dv, ok := doc["data_validation"].(map[string]any)
	if !ok {
		t.Fatal("data_validation is not an object")
	}
	if got := dv["total_rows"].(float64); got != 10 {
		t.Errorf("total_rows = %v, want 10", got)
	}
	if got := len(dv["errors"].([]any)); got != 3 {
		t.Errorf("errors = %d, want 3", got)
	}

	sv := doc["subject_id_validation"].(map[string]any)
	if got := sv["name_count"].(float64); got != 1 {
		t.Errorf("name_count = %v, want 1", got)
	}
}

func TestErrorReportGroupsFindings(t *testing.T) {
	out := ErrorReport("uof_2025.csv", failingReport(), time.Now())

	if !strings.Contains(out, "WADEPS VALIDATION ERROR REPORT") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "2 x event_date: Date format issue") {
		t.Errorf("missing grouped date issue, got:\n%s", out)
	}
	if !strings.Contains(out, "1 x force_used: Invalid dropdown value") {
		t.Errorf("missing dropdown group, got:\n%s", out)
	}
	if !strings.Contains(out, "Use format MM/DD/YYYY") {
		t.Error("missing fix hint")
	}
	if !strings.Contains(out, "FAILED - Issues must be fixed before submission") {
		t.Error("missing failed status")
	}
}

func TestErrorReportPassingFile(t *testing.T) {
	out := ErrorReport("clean.csv", passingReport(), time.Now())
	if !strings.Contains(out, "PASSED - No critical issues") {
		t.Errorf("missing passed status, got:\n%s", out)
	}
}

func TestSummaryAndDetailed(t *testing.T) {
	var buf bytes.Buffer
	rep := failingReport()

	Summary(&buf, "uof_2025.csv", rep)
	if !strings.Contains(buf.String(), "3 data errors found") {
		t.Errorf("summary missing error count:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "FAILED") {
		t.Error("summary missing status")
	}

	buf.Reset()
	Detailed(&buf, "uof_2025.csv", rep)
	out := buf.String()
	if !strings.Contains(out, "Row 2, event_date: Invalid date format. Expected MM/DD/YYYY") {
		t.Errorf("detailed output missing finding:\n%s", out)
	}
	if !strings.Contains(out, "SUBJECT ID ISSUES (1)") {
		t.Error("detailed output missing subject section")
	}
	if !strings.Contains(out, "Fix 1 subject ID format issues") {
		t.Error("detailed output missing recommendation")
	}
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2025, 9, 23, 8, 21, 0, 0, time.UTC)

	if err := WriteDashboard(&buf, "uof_2025.csv", failingReport(), at); err != nil {
		t.Fatalf("WriteDashboard: %v", err)
	}
	out := buf.String()

	for _, marker := range []string{
		"<!DOCTYPE html>",
		"Validation Failed",
		"Data Validation Errors (3)",
		"Subject ID Validation Issues (1)",
		"John Doe",
		"Invalid date format. Expected MM/DD/YYYY",
	} {
		if !strings.Contains(out, marker) {
			t.Errorf("dashboard missing %q", marker)
		}
	}
}

func TestDashboardEscapesValues(t *testing.T) {
	rep := passingReport()
	rep.Errors = append(rep.Errors, validate.FieldFinding{
		Row: 2, Column: "notes", Value: `<script>alert(1)</script>`,
		Message: "Must be a number", Severity: validate.SeverityError,
	})

	var buf bytes.Buffer
	if err := WriteDashboard(&buf, "evil.csv", rep, time.Now()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("dashboard did not escape cell values")
	}
}

func TestDashboardPassedPanel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDashboard(&buf, "clean.csv", passingReport(), time.Now()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Validation Passed!") {
		t.Error("dashboard missing success panel")
	}
	if !strings.Contains(buf.String(), "ready for submission") {
		t.Error("dashboard missing ready recommendation")
	}
}
