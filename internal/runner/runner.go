// Package runner implements the CLI auto mode: pick up every CSV in the
// input folder, validate each against the template, and drop the JSON
// report, HTML dashboard, and text error report into the output folder.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/csvio"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/history"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/logging"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/report"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

// Options configures a folder run.
type Options struct {
	InputDir    string
	OutputDir   string
	SummaryOnly bool // suppress the per-finding console detail
}

// Result is the outcome for one processed file.
type Result struct {
	File         string        `json:"file"`
	Status       report.Status `json:"status"`
	TotalRows    int           `json:"total_rows"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
	Err          string        `json:"processing_error,omitempty"`
}

// Runner validates every CSV in a folder.
type Runner struct {
	schema  *schema.Schema
	opts    Options
	out     io.Writer
	history *history.Store // nil when history is disabled
}

// New builds a Runner. Console output goes to out, normally os.Stdout.
func New(s *schema.Schema, opts Options, out io.Writer, store *history.Store) *Runner {
	return &Runner{schema: s, opts: opts, out: out, history: store}
}

// ProcessFolder validates every *.csv file in the input directory in name
// order and writes the reports. It returns the per-file results; the error
// return covers setup problems only, never validation findings.
func (r *Runner) ProcessFolder(ctx context.Context) ([]Result, error) {
	logger := logging.FromContext(ctx)

	if err := os.MkdirAll(r.opts.InputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create input dir: %w", err)
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(r.opts.InputDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		fmt.Fprintf(r.out, "No CSV files found in %s\n", r.opts.InputDir)
		fmt.Fprintln(r.out, "Place files to validate there and run again.")
		return nil, nil
	}

	fmt.Fprintf(r.out, "Found %d CSV file(s) in %s\n", len(files), r.opts.InputDir)

	results := make([]Result, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := r.processFile(ctx, path)
		results = append(results, res)

		logger.Info("file processed",
			"file", res.File,
			"status", string(res.Status),
			"rows", res.TotalRows,
			"errors", res.ErrorCount,
			"warnings", res.WarningCount,
		)
	}

	if err := r.writeSummary(results); err != nil {
		logger.Error("write summary", "error", err)
	}
	r.printSummary(results)

	return results, nil
}

// processFile validates one CSV and writes its reports. Failures to read
// the file are recorded in the result rather than aborting the folder run.
func (r *Runner) processFile(ctx context.Context, path string) Result {
	name := filepath.Base(path)

	parsed, err := csvio.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.out, "\n%s: cannot read file: %v\n", name, err)
		return Result{File: name, Status: report.StatusFailed, Err: err.Error()}
	}

	run := validate.NewRun(r.schema, parsed.Header)
	for _, row := range parsed.Rows {
		if row.Err != nil {
			run.SkipRow(row.Err.Error())
			continue
		}
		run.Row(row.Record)
	}
	rep := run.Finish()
	now := time.Now()

	if err := r.writeReports(name, rep, now); err != nil {
		logging.FromContext(ctx).Error("write reports", "file", name, "error", err)
	}

	if err := r.history.Record(ctx, history.NewRun(name, "folder", rep)); err != nil {
		logging.FromContext(ctx).Error("record run history", "file", name, "error", err)
	}

	report.Summary(r.out, name, rep)
	if !r.opts.SummaryOnly {
		report.Detailed(r.out, name, rep)
	}

	return Result{
		File:         name,
		Status:       report.StatusOf(rep),
		TotalRows:    rep.TotalRows,
		ErrorCount:   len(rep.Errors),
		WarningCount: len(rep.Warnings),
	}
}

// writeReports writes the JSON export and HTML dashboard for every file,
// plus the text error report when there is anything to report.
func (r *Runner) writeReports(name string, rep *validate.Report, at time.Time) error {
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	jsonPath := filepath.Join(r.opts.OutputDir, stem+"_validation.json")
	jf, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", jsonPath, err)
	}
	defer jf.Close()
	if err := report.WriteJSON(jf, report.NewExport(name, rep, at)); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}

	htmlPath := filepath.Join(r.opts.OutputDir, stem+"_dashboard.html")
	hf, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer hf.Close()
	if err := report.WriteDashboard(hf, name, rep, at); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}

	if report.StatusOf(rep) != report.StatusPassed {
		txtPath := filepath.Join(r.opts.OutputDir, stem+"_report.txt")
		if err := os.WriteFile(txtPath, []byte(report.ErrorReport(name, rep, at)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", txtPath, err)
		}
	}

	return nil
}

// writeSummary writes the run-level summary JSON next to the reports.
func (r *Runner) writeSummary(results []Result) error {
	path := filepath.Join(r.opts.OutputDir, "validation_summary.json")

	summary := struct {
		Timestamp string   `json:"timestamp"`
		Files     []Result `json:"files"`
	}{
		Timestamp: time.Now().Format(time.RFC3339),
		Files:     results,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// printSummary prints the run-level outcome table.
func (r *Runner) printSummary(results []Result) {
	var passed, warned, failed int
	for _, res := range results {
		switch res.Status {
		case report.StatusPassed:
			passed++
		case report.StatusWarning:
			warned++
		default:
			failed++
		}
	}

	fmt.Fprintf(r.out, "\nProcessed %d file(s): %d passed, %d with warnings, %d failed\n",
		len(results), passed, warned, failed)
	fmt.Fprintf(r.out, "Reports written to %s\n", r.opts.OutputDir)
}
