package validate

// run.go is the report builder. A Run owns one report for one file: the
// caller feeds it parsed records one at a time (or uses Validate for a
// batch) and collects the finished Report. A bad value never aborts the
// run; structurally broken rows are recorded and skipped.

import (
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
)

// SubjectIDColumn is the conventional name of the subject-identity column.
const SubjectIDColumn = "subject_id"

// maxSubjectExamples caps how many classified subject-ID findings are
// retained as examples. Counts keep incrementing after the cap is hit.
const maxSubjectExamples = 5

// Record is one parsed row: column name to raw cell text. Records are
// consumed one at a time and never retained by the engine.
type Record map[string]string

// RowSkip records a structurally unreadable row that was passed over.
type RowSkip struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// SubjectIDSummary aggregates subject-ID classifications across a run.
// Invariant: len(Examples) <= maxSubjectExamples at all times.
type SubjectIDSummary struct {
	UnknownCount int                `json:"unknown_count"`
	NameCount    int                `json:"name_count"`
	InvalidCount int                `json:"invalid_count"`
	Examples     []SubjectIDFinding `json:"examples"`
}

// Total returns the combined count of subject-ID issues.
func (s SubjectIDSummary) Total() int {
	return s.UnknownCount + s.NameCount + s.InvalidCount
}

// Report is the accumulated outcome of validating one file. It is built
// incrementally by a Run and immutable once Finish returns it.
type Report struct {
	Headers    HeaderComparison `json:"header_validation"`
	Errors     []FieldFinding   `json:"errors"`
	Warnings   []FieldFinding   `json:"warnings"`
	TotalRows  int              `json:"total_rows"`
	Skipped    []RowSkip        `json:"skipped_rows,omitempty"`
	SubjectIDs SubjectIDSummary `json:"subject_id_validation"`
}

// Run validates records against a schema, accumulating one Report.
// Row numbering starts at 2: row 1 is the header.
type Run struct {
	schema  *schema.Schema
	columns []string
	nextRow int
	report  *Report
}

// NewRun starts a validation run. The header comparison is computed once,
// up front; columns present in the file keep their file order so findings
// come out in a stable order.
func NewRun(s *schema.Schema, header []string) *Run {
	return &Run{
		schema:  s,
		columns: append([]string(nil), header...),
		nextRow: 2,
		report: &Report{
			Headers:  CompareHeaders(s.Columns(), header),
			Errors:   []FieldFinding{},
			Warnings: []FieldFinding{},
			SubjectIDs: SubjectIDSummary{
				Examples: []SubjectIDFinding{},
			},
		},
	}
}

// Row validates one record. Every structurally valid record counts toward
// TotalRows exactly once, findings or not.
func (r *Run) Row(rec Record) {
	row := r.nextRow
	r.nextRow++
	r.report.TotalRows++

	for _, column := range r.columns {
		value, present := rec[column]
		if !present {
			continue
		}
		rule, hasRule := r.schema.Rule(column)
		if !hasRule {
			continue
		}
		if finding := EvaluateField(column, value, rule, row); finding != nil {
			if finding.Severity == SeverityWarning {
				r.report.Warnings = append(r.report.Warnings, *finding)
			} else {
				r.report.Errors = append(r.report.Errors, *finding)
			}
		}
	}

	if value, present := rec[SubjectIDColumn]; present {
		if finding := ClassifySubjectID(value, row); finding != nil {
			r.recordSubjectID(*finding)
		}
	}
}

// SkipRow records a row the row source could not parse. The row number is
// consumed so that later findings still line up with the file, but the row
// does not count toward TotalRows.
func (r *Run) SkipRow(reason string) {
	row := r.nextRow
	r.nextRow++
	r.report.Skipped = append(r.report.Skipped, RowSkip{Row: row, Reason: reason})
}

// recordSubjectID updates classification counts and retains the first few
// findings as examples.
func (r *Run) recordSubjectID(finding SubjectIDFinding) {
	switch finding.Class {
	case SubjectUnknown:
		r.report.SubjectIDs.UnknownCount++
	case SubjectFullName:
		r.report.SubjectIDs.NameCount++
	case SubjectInvalidFormat:
		r.report.SubjectIDs.InvalidCount++
	}
	if len(r.report.SubjectIDs.Examples) < maxSubjectExamples {
		r.report.SubjectIDs.Examples = append(r.report.SubjectIDs.Examples, finding)
	}
}

// Finish returns the accumulated report. The Run must not be used after.
func (r *Run) Finish() *Report {
	rep := r.report
	r.report = nil
	return rep
}

// Validate runs a whole batch of records through a fresh Run.
func Validate(s *schema.Schema, header []string, records []Record) *Report {
	run := NewRun(s, header)
	for _, rec := range records {
		run.Row(rec)
	}
	return run.Finish()
}
