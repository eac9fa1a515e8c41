package report

import (
	"time"

	"github.com/okian/rplcs-tools/pkg/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithStorePath sets the results database path.
func WithStorePath(path string) Option {
	return func(g *Generator) {
		g.storePath = path
	}
}

// WithOutputDir sets the directory report.html and plots/ are written to.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithWorkbook toggles the report.xlsx export.
func WithWorkbook(enabled bool) Option {
	return func(g *Generator) {
		g.workbook = enabled
	}
}

// WithSections replaces the default section table.
func WithSections(sections []Section) Option {
	return func(g *Generator) {
		g.sections = sections
	}
}

// WithClock sets the time source used for the report title.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) {
		g.logger = log
	}
}
