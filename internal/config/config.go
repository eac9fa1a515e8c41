// Package config defines the configuration shared by the image builder and
// the report generator.
//
// Conventions:
// - Defaults reproduce the fixed layout of the tournament repository, so both
//   tools run unconfigured from the repository root.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// SubmissionsDir holds one directory per submission.
	SubmissionsDir string `koanf:"submissions_dir"`

	// DescriptorFile marks a submission directory as buildable.
	DescriptorFile string `koanf:"descriptor_file"`

	// SupportDir is staged into every submission before its build.
	SupportDir string `koanf:"support_dir"`

	// SupportName is the directory name the support copy gets inside a submission.
	SupportName string `koanf:"support_name"`

	// StagingExcludes are glob patterns matched against base names; matches are not copied.
	StagingExcludes []string `koanf:"staging_excludes"`

	// BuildTool is the container build executable, invoked as "<tool> build -t <tag> .".
	BuildTool string `koanf:"build_tool"`

	// ImageNamespace prefixes every image tag: <namespace>/<submission>.
	ImageNamespace string `koanf:"image_namespace"`

	// ResultsDB is the SQLite results store read by the report generator.
	ResultsDB string `koanf:"results_db"`

	// ReportDir receives report.html and the plots directory.
	ReportDir string `koanf:"report_dir"`

	// ReportXLSX also writes the section tables to report.xlsx.
	ReportXLSX bool `koanf:"report_xlsx"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		SubmissionsDir:  "submissions",
		DescriptorFile:  "Dockerfile",
		SupportDir:      filepath.Join("..", "rplcs_events"),
		SupportName:     "rplcs_events",
		StagingExcludes: []string{".git", "__pycache__", "*.pyc"},
		BuildTool:       "podman",
		ImageNamespace:  "rplcs-tournament-1",
		ResultsDB:       filepath.Join("results", "results.sqlite"),
		ReportDir:       "report",
		ReportXLSX:      true,
	}
}

// Validate checks the fields both tools depend on.
func (c *Config) Validate(_ context.Context) error {
	required := []struct {
		key, val string
	}{
		{"submissions_dir", c.SubmissionsDir},
		{"descriptor_file", c.DescriptorFile},
		{"support_name", c.SupportName},
		{"build_tool", c.BuildTool},
		{"image_namespace", c.ImageNamespace},
		{"results_db", c.ResultsDB},
		{"report_dir", c.ReportDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, r.key)
		}
	}

	if c.SupportName != filepath.Base(c.SupportName) || c.SupportName == "." || c.SupportName == ".." {
		return fmt.Errorf("%w: support_name %q must be a single path element", ErrInvalidConfig, c.SupportName)
	}

	for _, pattern := range c.StagingExcludes {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: staging_excludes pattern %q: %w", ErrInvalidConfig, pattern, err)
		}
	}
	return nil
}
