package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/estflow/internal/config"
	"github.com/rpggio/estflow/internal/domain/dashboard"
	"github.com/rpggio/estflow/internal/sqlite"
)

const usage = `usage: estflow <command>

commands:
  init       create the database schema
  kpis       print dashboard KPIs as JSON
  projects   print project summaries as JSON
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "init":
		if err := db.RunMigrations(); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database initialized", "path", cfg.DB.Path)

	case "kpis":
		svc := newDashboardService(db, logger)
		kpis, err := svc.KPIs(ctx)
		if err != nil {
			logger.Error("failed to compute kpis", "error", err)
			os.Exit(1)
		}
		printJSON(kpis)

	case "projects":
		svc := newDashboardService(db, logger)
		summaries, err := svc.ProjectSummaries(ctx)
		if err != nil {
			logger.Error("failed to build summaries", "error", err)
			os.Exit(1)
		}
		printJSON(summaries)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func newDashboardService(db *sqlite.DB, logger *slog.Logger) *dashboard.Service {
	return dashboard.NewService(
		sqlite.NewProjectRepository(db),
		sqlite.NewRecordRepository(db),
		sqlite.NewUserRepository(db),
		logger,
	)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode error: %v\n", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
