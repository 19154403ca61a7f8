package web

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/csvio"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/history"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/logging"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/report"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uploadPage(s.schema).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render upload page", "error", err)
	}
}

// handleValidate accepts a multipart CSV upload, validates it against the
// configured template, and responds with the HTML dashboard, or the JSON
// report when format=json is requested.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Validator.MaxFileSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(ctx, w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the %d byte limit", s.cfg.Validator.MaxFileSize))
			return
		}
		writeError(ctx, w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		writeError(ctx, w, http.StatusBadRequest, "only .csv files are accepted")
		return
	}

	parsed, err := csvio.Read(file)
	if err != nil {
		writeError(ctx, w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	run := validate.NewRun(s.schema, parsed.Header)
	for _, row := range parsed.Rows {
		if row.Err != nil {
			run.SkipRow(row.Err.Error())
			continue
		}
		run.Row(row.Record)
	}
	rep := run.Finish()

	logging.FromContext(ctx).Info("file validated",
		"file", fileHeader.Filename,
		"rows", rep.TotalRows,
		"errors", len(rep.Errors),
		"warnings", len(rep.Warnings),
		"status", string(report.StatusOf(rep)),
	)

	if err := s.history.Record(ctx, history.NewRun(fileHeader.Filename, "upload", rep)); err != nil {
		// History is best effort; the submitter still gets their report.
		logging.FromContext(ctx).Error("record run history", "error", err)
	}

	if wantsJSON(r) {
		writeJSON(ctx, w, report.NewExport(fileHeader.Filename, rep, time.Now()))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Dashboard(fileHeader.Filename, rep, time.Now()).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// wantsJSON reports whether the client asked for the JSON report, via the
// format field or an Accept header that prefers JSON over HTML.
func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.FormValue("format"), "json") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// templateColumn is one expected column in the /api/template response.
type templateColumn struct {
	Column string `json:"column"`
	Rule   string `json:"rule,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// handleTemplate returns a summary of the configured template: the expected
// columns in order, each with its rule kind and a human-readable detail.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	columns := s.schema.Columns()
	out := make([]templateColumn, 0, len(columns))
	for _, col := range columns {
		tc := templateColumn{Column: col}
		if rule, ok := s.schema.Rule(col); ok {
			tc.Rule, tc.Detail = describeRule(rule)
		}
		out = append(out, tc)
	}

	writeJSON(r.Context(), w, map[string]any{
		"columns":   out,
		"ruleCount": s.schema.RuleCount(),
	})
}

// describeRule renders a rule kind and detail string for API consumers.
func describeRule(rule schema.FieldRule) (kind, detail string) {
	switch v := rule.(type) {
	case schema.ListRule:
		return "list", strings.Join(v.Allowed, ", ")
	case schema.DateRule:
		return "date", v.Format
	case schema.TimeRule:
		return "time", v.Format
	case schema.NumberRule:
		var parts []string
		if v.Min != nil {
			parts = append(parts, ">= "+strconv.FormatFloat(*v.Min, 'f', -1, 64))
		}
		if v.Max != nil {
			parts = append(parts, "<= "+strconv.FormatFloat(*v.Max, 'f', -1, 64))
		}
		return "number", strings.Join(parts, ", ")
	case schema.PatternRule:
		if v.Description != "" {
			return "pattern", v.Description
		}
		return "pattern", v.Expr
	default:
		return "", ""
	}
}

// handleRuns lists recent validation runs from the history store.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.history == nil {
		writeJSON(ctx, w, map[string]any{"enabled": false, "runs": []history.Run{}})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			writeError(ctx, w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := s.history.Recent(ctx, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list run history", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "could not load run history")
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(ctx, w, map[string]any{"enabled": true, "runs": runs})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, map[string]string{"status": "ok"})
}
