package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

// DataValidation groups row-level findings in the results document.
type DataValidation struct {
	Errors    []validate.FieldFinding `json:"errors"`
	Warnings  []validate.FieldFinding `json:"warnings"`
	TotalRows int                     `json:"total_rows"`
}

// Export is the JSON results document for one validated file. The layout is
// the tool's long-standing output format; downstream scripts parse it, so
// field names are stable. The timestamp belongs to this sink, not the
// engine: the same report exported twice differs only here.
type Export struct {
	File                string                    `json:"file"`
	Timestamp           string                    `json:"timestamp"`
	Status              Status                    `json:"status"`
	QualityScore        float64                   `json:"quality_score"`
	HeaderValidation    validate.HeaderComparison `json:"header_validation"`
	DataValidation      DataValidation            `json:"data_validation"`
	SubjectIDValidation validate.SubjectIDSummary `json:"subject_id_validation"`
	SkippedRows         []validate.RowSkip        `json:"skipped_rows,omitempty"`
}

// NewExport assembles the results document for a report.
func NewExport(fileName string, rep *validate.Report, at time.Time) Export {
	return Export{
		File:             fileName,
		Timestamp:        at.Format(time.RFC3339),
		Status:           StatusOf(rep),
		QualityScore:     QualityScore(rep),
		HeaderValidation: rep.Headers,
		DataValidation: DataValidation{
			Errors:    rep.Errors,
			Warnings:  rep.Warnings,
			TotalRows: rep.TotalRows,
		},
		SubjectIDValidation: rep.SubjectIDs,
		SkippedRows:         rep.Skipped,
	}
}

// WriteJSON writes the results document to w, indented for humans.
func WriteJSON(w io.Writer, ex Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ex)
}
