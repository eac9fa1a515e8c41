package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/okian/rplcs-tools/internal/config"
	"github.com/okian/rplcs-tools/internal/report"
	"github.com/okian/rplcs-tools/pkg/logger"
	"github.com/okian/rplcs-tools/pkg/metrics"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr directly since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatal(ctx, "report generation failed", logger.Error(err))
	}
}

// run loads configuration and writes the report. Any failure is returned
// unhandled; there is no partial report.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	log := logger.Get().With(logger.String("run_id", uuid.NewString()))

	gen := report.New(
		report.WithStorePath(cfg.ResultsDB),
		report.WithOutputDir(cfg.ReportDir),
		report.WithWorkbook(cfg.ReportXLSX),
		report.WithLogger(log.Named("report")),
	)
	if _, err := gen.Generate(ctx); err != nil {
		return err
	}

	return metrics.WriteTextfile(cfg.MetricsFile)
}
