package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/okian/rplcs-tools/internal/config"
	"github.com/okian/rplcs-tools/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// setupWorkspace lays out submissions/alpha with a descriptor and a support
// directory, and points the configuration at them.
func setupWorkspace(t *testing.T, tool string) string {
	t.Helper()
	root := t.TempDir()
	write := func(path, content string) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(root, "submissions", "alpha", "Dockerfile"), "FROM scratch\n")
	write(filepath.Join(root, "submissions", "notes", "README.md"), "draft\n")
	write(filepath.Join(root, "rplcs_events", "events.py"), "EVENTS = []\n")

	t.Setenv(config.EnvConfigFile, "")
	t.Setenv("RPLCS_SUBMISSIONS_DIR", filepath.Join(root, "submissions"))
	t.Setenv("RPLCS_SUPPORT_DIR", filepath.Join(root, "rplcs_events"))
	t.Setenv("RPLCS_BUILD_TOOL", tool)
	t.Setenv("RPLCS_METRICS_FILE", filepath.Join(root, "build.prom"))
	return root
}

func requireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestRun(t *testing.T) {
	convey.Convey("Given a build tool that always succeeds", t, func() {
		root := setupWorkspace(t, requireTool(t, "true"))
		var out bytes.Buffer

		convey.Convey("When the batch runs", func() {
			err := run(context.Background(), &out)

			convey.Convey("Then the summary lists the built submission only", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "The following submissions were built:\n- alpha\n")
				convey.So(out.String(), convey.ShouldContainSubstring, "All submissions built successfully!")
				convey.So(out.String(), convey.ShouldNotContainSubstring, "notes")
			})

			convey.Convey("And the staged support directory is gone", func() {
				_, statErr := os.Stat(filepath.Join(root, "submissions", "alpha", "rplcs_events"))
				convey.So(errors.Is(statErr, os.ErrNotExist), convey.ShouldBeTrue)
			})

			convey.Convey("And the metrics textfile is written", func() {
				data, readErr := os.ReadFile(filepath.Join(root, "build.prom"))
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "rplcs_tournament_builds_total")
			})
		})
	})

	convey.Convey("Given a build tool that always fails", t, func() {
		setupWorkspace(t, requireTool(t, "false"))
		var out bytes.Buffer

		convey.Convey("When the batch runs", func() {
			err := run(context.Background(), &out)

			convey.Convey("Then the failure is reported in the summary, not as an error", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "The following submissions failed to build:\n- alpha\n")
				convey.So(out.String(), convey.ShouldNotContainSubstring, "All submissions built successfully!")
			})
		})
	})

	convey.Convey("Given a missing submissions directory", t, func() {
		root := setupWorkspace(t, "podman")
		t.Setenv("RPLCS_SUBMISSIONS_DIR", filepath.Join(root, "nowhere"))
		var out bytes.Buffer

		convey.Convey("Then the run ends normally without a summary", func() {
			convey.So(run(context.Background(), &out), convey.ShouldBeNil)
			convey.So(out.String(), convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given an invalid configuration", t, func() {
		setupWorkspace(t, "podman")
		t.Setenv("RPLCS_IMAGE_NAMESPACE", "")
		var out bytes.Buffer

		convey.Convey("Then run returns the validation error", func() {
			err := run(context.Background(), &out)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
