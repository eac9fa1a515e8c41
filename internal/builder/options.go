package builder

import (
	"github.com/okian/rplcs-tools/pkg/logger"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithSubmissionsDir sets the directory scanned for submissions.
func WithSubmissionsDir(dir string) Option {
	return func(b *Builder) {
		if dir != "" {
			b.submissionsDir = dir
		}
	}
}

// WithDescriptor sets the file that marks a submission as buildable.
func WithDescriptor(name string) Option {
	return func(b *Builder) {
		if name != "" {
			b.descriptor = name
		}
	}
}

// WithImageNamespace sets the namespace part of every image tag.
func WithImageNamespace(namespace string) Option {
	return func(b *Builder) {
		if namespace != "" {
			b.namespace = namespace
		}
	}
}

// WithRunner sets the build tool runner.
func WithRunner(r Runner) Option {
	return func(b *Builder) {
		if r != nil {
			b.runner = r
		}
	}
}

// WithStager sets how the support directory is staged.
func WithStager(s *Stager) Option {
	return func(b *Builder) {
		if s != nil {
			b.stager = s
		}
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}
