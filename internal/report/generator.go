// Package report renders the tournament results database into an HTML
// report with bar charts and an optional Excel workbook.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/rplcs-tools/pkg/logger"
	"github.com/okian/rplcs-tools/pkg/metrics"
)

const (
	htmlFile     = "report.html"
	workbookFile = "report.xlsx"
	plotsDir     = "plots"
)

// SectionResult is one evaluated section.
type SectionResult struct {
	Key   string
	Title string
	Table *Table
	// Image is the chart path relative to the output directory, empty when
	// the section has no chart.
	Image string
}

// Report lists the files written by Generate.
type Report struct {
	HTMLPath     string
	WorkbookPath string
	Charts       []string
	Sections     []SectionResult
}

// Generator evaluates every section against the results store.
type Generator struct {
	storePath string
	outputDir string
	workbook  bool
	sections  []Section
	now       func() time.Time
	logger    logger.Logger
}

// New creates a Generator with default paths and the full section table.
func New(opts ...Option) *Generator {
	g := &Generator{
		storePath: filepath.Join("results", "results.sqlite"),
		outputDir: "report",
		workbook:  true,
		sections:  Sections(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs every section in order and writes the report, overwriting
// the previous run's files. The first failure aborts generation.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	log := g.logger
	if log == nil {
		log = logger.Get().Named("report")
	}

	store, err := OpenStore(ctx, g.storePath)
	if err != nil {
		metrics.RecordError("report", "open")
		return nil, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn(ctx, "failed to close results store", logger.Error(cerr))
		}
	}()

	plots := filepath.Join(g.outputDir, plotsDir)
	if err := os.MkdirAll(plots, 0o755); err != nil {
		metrics.RecordError("report", "output")
		return nil, fmt.Errorf("%w: create %s: %w", ErrRender, plots, err)
	}

	rep := &Report{HTMLPath: filepath.Join(g.outputDir, htmlFile)}
	for _, sec := range g.sections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report generation interrupted: %w", err)
		}

		res, err := g.evaluate(ctx, store, sec, plots)
		if err != nil {
			return nil, err
		}
		if res.Image != "" {
			rep.Charts = append(rep.Charts, filepath.Join(g.outputDir, res.Image))
		}
		rep.Sections = append(rep.Sections, res)
		log.Debug(ctx, "section rendered",
			logger.String("section", sec.Key),
			logger.Int("rows", res.Table.Len()),
		)
	}

	title := "Tournament Report - " + g.now().Format(time.DateOnly)
	if err := writeHTML(rep.HTMLPath, page{Title: title, Sections: rep.Sections}); err != nil {
		metrics.RecordError("report", "html")
		return nil, err
	}

	if g.workbook {
		rep.WorkbookPath = filepath.Join(g.outputDir, workbookFile)
		if err := writeWorkbook(rep.WorkbookPath, rep.Sections); err != nil {
			metrics.RecordError("report", "workbook")
			return nil, err
		}
	}

	metrics.UpdateLastReportTime(g.now().Unix())
	log.Info(ctx, "report generated",
		logger.String("html", rep.HTMLPath),
		logger.String("workbook", rep.WorkbookPath),
		logger.Int("sections", len(rep.Sections)),
		logger.Int("charts", len(rep.Charts)),
	)
	return rep, nil
}

func (g *Generator) evaluate(ctx context.Context, store *Store, sec Section, plots string) (SectionResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSectionDuration(sec.Key, time.Since(start).Seconds())
	}()

	table, err := store.Query(ctx, sec.Query)
	if err != nil {
		metrics.RecordError("report", "query")
		return SectionResult{}, fmt.Errorf("section %s: %w", sec.Key, err)
	}
	metrics.UpdateSectionRows(sec.Key, table.Len())

	res := SectionResult{Key: sec.Key, Title: sec.Title, Table: table}
	if sec.Chart != nil {
		name := sec.Key + ".png"
		if err := renderChart(sec.Chart, table, filepath.Join(plots, name)); err != nil {
			metrics.RecordError("report", "chart")
			return SectionResult{}, fmt.Errorf("section %s: %w", sec.Key, err)
		}
		metrics.RecordChartRendered()
		res.Image = plotsDir + "/" + name
	}
	return res, nil
}
