package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/okian/rplcs-tools/internal/builder"
	"github.com/okian/rplcs-tools/internal/config"
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

	// Root context with cancel on SIGINT/SIGTERM; the running build tool is
	// killed with it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		logger.Get().Fatal(ctx, "image build failed", logger.Error(err))
	}
}

// run loads configuration, builds every submission and prints the summary
// to out. Per-submission failures are part of the summary, not an error.
func run(ctx context.Context, out io.Writer) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := runLogger(ctx, cfg)

	b := builder.New(
		builder.WithSubmissionsDir(cfg.SubmissionsDir),
		builder.WithDescriptor(cfg.DescriptorFile),
		builder.WithImageNamespace(cfg.ImageNamespace),
		builder.WithRunner(builder.NewExecRunner(cfg.BuildTool)),
		builder.WithStager(builder.NewStager(cfg.SupportDir, cfg.SupportName, cfg.StagingExcludes)),
		builder.WithLogger(log.Named("builder")),
	)

	summary, err := b.Run(ctx)
	switch {
	case errors.Is(err, builder.ErrSubmissionsDirMissing):
		log.Error(ctx, "submissions directory not found",
			logger.String("dir", cfg.SubmissionsDir), logger.Error(err))
		return writeMetrics(ctx, log, cfg.MetricsFile)
	case err != nil:
		return err
	}

	if total := len(summary.Succeeded) + len(summary.Failed) + len(summary.Skipped); total > 0 {
		if err := summary.Print(out); err != nil {
			return err
		}
	}
	return writeMetrics(ctx, log, cfg.MetricsFile)
}

// runLogger applies the configured level and tags every record of this run.
func runLogger(ctx context.Context, cfg *config.Config) logger.Logger {
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return logger.Get().With(logger.String("run_id", uuid.NewString()))
}

func writeMetrics(ctx context.Context, log logger.Logger, path string) error {
	if err := metrics.WriteTextfile(path); err != nil {
		return err
	}
	if path != "" {
		log.Debug(ctx, "metrics written", logger.String("path", path))
	}
	return nil
}
