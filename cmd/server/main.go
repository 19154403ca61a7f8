// Command server runs the WADEPS Header Tool web mode: an upload page and
// validation API backed by the configured submission template.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/config"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/history"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/logging"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"template", cfg.Validator.TemplatePath,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"history_enabled", cfg.HistoryEnabled(),
	)

	tmpl, err := schema.LoadTemplate(cfg.Validator.TemplatePath)
	if err != nil {
		slog.Error("failed to load template", "path", cfg.Validator.TemplatePath, "error", err)
		os.Exit(1)
	}
	slog.Info("template loaded",
		"columns", tmpl.ColumnCount(),
		"rules", tmpl.RuleCount(),
	)

	ctx := context.Background()

	var store *history.Store
	if cfg.HistoryEnabled() {
		store, err = history.Connect(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to history database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("run history enabled")
	} else {
		slog.Info("run history disabled, set DATABASE_URL to enable")
	}

	server := web.NewServer(cfg, tmpl, store)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
