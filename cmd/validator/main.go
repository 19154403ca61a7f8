// Command validator runs the auto mode: validate every CSV in the input
// folder against the submission template and write the reports to the
// output folder.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/config"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/history"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/logging"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/report"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/runner"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
)

func main() {
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override the environment for one-off runs.
	templatePath := flag.String("template", cfg.Validator.TemplatePath, "path to the JSON template")
	inputDir := flag.String("input", cfg.Validator.InputDir, "folder scanned for CSV files")
	outputDir := flag.String("output", cfg.Validator.OutputDir, "folder reports are written to")
	summaryOnly := flag.Bool("summary-only", false, "print per-file summaries without finding detail")
	flag.Parse()

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	tmpl, err := schema.LoadTemplate(*templatePath)
	if err != nil {
		slog.Error("failed to load template", "path", *templatePath, "error", err)
		os.Exit(1)
	}
	slog.Info("template loaded",
		"path", *templatePath,
		"columns", tmpl.ColumnCount(),
		"rules", tmpl.RuleCount(),
	)

	// SIGINT stops between files, leaving finished reports in place.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *history.Store
	if cfg.HistoryEnabled() {
		store, err = history.Connect(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to history database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	r := runner.New(tmpl, runner.Options{
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		SummaryOnly: *summaryOnly,
	}, os.Stdout, store)

	results, err := r.ProcessFolder(ctx)
	if err != nil {
		slog.Error("folder run aborted", "error", err)
		os.Exit(1)
	}

	// Non-zero exit when any file failed, so CI jobs can gate on it.
	for _, res := range results {
		if res.Status == report.StatusFailed {
			os.Exit(2)
		}
	}
}
