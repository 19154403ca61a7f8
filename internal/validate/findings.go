// Package validate is the WADEPS rule engine. It consumes a schema.Schema
// and parsed CSV rows and produces a Report. The package does no I/O and
// keeps no state between runs: reading files, rendering dashboards, and
// persisting results are the callers' concern.
package validate

// Severity indicates how a finding should be treated downstream.
type Severity string

const (
	// SeverityError indicates a value that must be fixed before submission.
	SeverityError Severity = "error"
	// SeverityWarning indicates a value that should be reviewed.
	SeverityWarning Severity = "warning"
)

// FieldFinding records a single field-rule violation on one row.
type FieldFinding struct {
	Row      int      `json:"row"`
	Column   string   `json:"column"`
	Value    string   `json:"value"`
	Message  string   `json:"error"`
	Severity Severity `json:"severity"`
}

// SubjectIDClass categorizes why a subject ID was rejected.
type SubjectIDClass string

const (
	// SubjectUnknown is a placeholder value ("unknown" or "unk").
	SubjectUnknown SubjectIDClass = "unknown"
	// SubjectFullName looks like a real name rather than initials.
	SubjectFullName SubjectIDClass = "name"
	// SubjectInvalidFormat is neither bare initials nor dotted initials.
	SubjectInvalidFormat SubjectIDClass = "invalid"
)

// SubjectIDFinding records one classified subject-ID issue. Unlike a
// FieldFinding it carries a classification so the categories can be
// counted separately in the report.
type SubjectIDFinding struct {
	Row     int            `json:"row"`
	Value   string         `json:"value"`
	Class   SubjectIDClass `json:"type"`
	Message string         `json:"error"`
}
