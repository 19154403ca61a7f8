// Package report turns a finished validation report into the formats
// submitters and reviewers consume: a JSON results document, a plain-text
// error report, console summaries, and an HTML dashboard. Presentation-only
// metrics (status, quality score) are derived here, never inside the engine.
package report

import "github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"

// Status is the overall outcome of a validation run.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// StatusOf derives the run outcome: missing headers or data errors fail the
// file; warnings or subject-ID issues downgrade it; otherwise it passed.
func StatusOf(rep *validate.Report) Status {
	if !rep.Headers.IsValid || len(rep.Errors) > 0 {
		return StatusFailed
	}
	if len(rep.Warnings) > 0 || rep.SubjectIDs.Total() > 0 || len(rep.Skipped) > 0 {
		return StatusWarning
	}
	return StatusPassed
}

// Text returns the banner text shown for a status.
func (s Status) Text() string {
	switch s {
	case StatusFailed:
		return "Validation Failed"
	case StatusWarning:
		return "Warnings Found"
	default:
		return "Validation Passed"
	}
}

// color returns the dashboard accent color for a status.
func (s Status) color() string {
	switch s {
	case StatusFailed:
		return "#e53e3e"
	case StatusWarning:
		return "#dd6b20"
	default:
		return "#48bb78"
	}
}

// QualityScore is the share of rows free of data errors, 0-100. A file with
// no rows scores 100 when clean and 0 when it still produced errors.
func QualityScore(rep *validate.Report) float64 {
	rows := rep.TotalRows
	if rows < 1 {
		rows = 1
	}
	score := 100 - float64(len(rep.Errors))/float64(rows)*100
	if score < 0 {
		return 0
	}
	return score
}
