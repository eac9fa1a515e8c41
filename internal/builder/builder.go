package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/rplcs-tools/pkg/logger"
	"github.com/okian/rplcs-tools/pkg/metrics"
)

// Default builder configuration constants.
const (
	defaultSubmissionsDir = "submissions"
	defaultDescriptor     = "Dockerfile"
	defaultNamespace      = "rplcs-tournament-1"
	defaultBuildTool      = "podman"
	defaultSupportDir     = "../rplcs_events"
	defaultSupportName    = "rplcs_events"
)

// Builder builds every discovered submission, one at a time.
type Builder struct {
	submissionsDir string
	descriptor     string
	namespace      string

	runner Runner
	stager *Stager
	logger logger.Logger
}

// New constructs a Builder. Without options it builds ./submissions with
// podman, staging ../rplcs_events into each submission.
func New(opts ...Option) *Builder {
	b := &Builder{
		submissionsDir: defaultSubmissionsDir,
		descriptor:     defaultDescriptor,
		namespace:      defaultNamespace,
		runner:         NewExecRunner(defaultBuildTool),
		stager:         NewStager(defaultSupportDir, defaultSupportName, []string{".git", "__pycache__", "*.pyc"}),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Run discovers the submissions and builds each of them. A failed build is
// recorded in the summary and never stops the batch. The returned error is
// non-nil only when discovery fails or ctx is canceled; the summary then
// covers the submissions processed so far.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	if b.logger == nil {
		b.logger = logger.Get().Named("builder")
	}

	subs, err := Discover(b.submissionsDir, b.descriptor)
	if err != nil {
		metrics.RecordError("builder", "discover")
		return nil, err
	}
	metrics.UpdateSubmissionsDiscovered(len(subs))

	summary := &Summary{}
	if len(subs) == 0 {
		b.logger.Warn(ctx, "no submissions found",
			logger.String("dir", b.submissionsDir),
			logger.String("descriptor", b.descriptor),
		)
		return summary, nil
	}

	b.logger.Info(ctx, "found submissions to build", logger.Int("count", len(subs)))

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("build batch interrupted: %w", err)
		}

		err := b.buildOne(ctx, sub)
		switch {
		case err == nil:
			summary.Succeeded = append(summary.Succeeded, sub.Name)
			metrics.RecordBuild(metrics.ResultSucceeded)
		case errors.Is(err, ErrBuildFailed):
			summary.Failed = append(summary.Failed, sub.Name)
			metrics.RecordBuild(metrics.ResultFailed)
		default:
			summary.Skipped = append(summary.Skipped, sub.Name)
			metrics.RecordBuild(metrics.ResultSkipped)
		}
	}

	b.logger.Info(ctx, "build batch finished",
		logger.Int("succeeded", len(summary.Succeeded)),
		logger.Int("failed", len(summary.Failed)),
		logger.Int("skipped", len(summary.Skipped)),
	)
	return summary, nil
}

// buildOne stages the support directory, runs the build and always removes
// the staged copy again.
func (b *Builder) buildOne(ctx context.Context, sub Submission) error {
	log := b.logger.With(logger.String("submission", sub.Name))

	defer func() {
		if err := b.stager.Unstage(sub); err != nil {
			metrics.RecordError("builder", "cleanup")
			log.Error(ctx, "failed to remove staged support directory", logger.Error(err))
		}
	}()

	stageStart := time.Now()
	if _, err := b.stager.Stage(sub); err != nil {
		metrics.RecordError("builder", "staging")
		log.Error(ctx, "skipping submission, staging failed", logger.Error(err))
		return err
	}
	metrics.RecordStagingDuration(time.Since(stageStart).Seconds())

	tag := sub.ImageTag(b.namespace)
	log.Info(ctx, "building submission", logger.String("image", tag))

	buildStart := time.Now()
	out, err := b.runner.Build(ctx, sub.Path, tag)
	metrics.RecordBuildDuration(time.Since(buildStart).Seconds())
	if err != nil {
		log.Error(ctx, "failed to build submission",
			logger.String("image", tag),
			logger.Error(err),
			logger.String("stderr", out.Stderr),
			logger.String("stdout", out.Stdout),
		)
		return fmt.Errorf("%w: %s: %w", ErrBuildFailed, sub.Name, err)
	}

	log.Info(ctx, "successfully built submission", logger.String("image", tag))
	log.Debug(ctx, "build output", logger.String("stdout", out.Stdout))
	return nil
}
