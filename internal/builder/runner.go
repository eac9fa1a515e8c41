package builder

import (
	"bytes"
	"context"
	"os/exec"
)

// Output is what the build tool wrote while building one image.
type Output struct {
	Stdout string
	Stderr string
}

// Runner builds a container image from a build context directory.
type Runner interface {
	// Build builds contextDir and tags the result with tag. A non-nil error
	// means the image was not produced; out holds whatever the tool printed.
	Build(ctx context.Context, contextDir, tag string) (Output, error)
}

// ExecRunner invokes a docker-compatible CLI: "<tool> build -t <tag> .".
type ExecRunner struct {
	Tool string
}

// NewExecRunner returns a Runner shelling out to tool (podman, docker, ...).
func NewExecRunner(tool string) *ExecRunner {
	return &ExecRunner{Tool: tool}
}

// Build runs the tool with contextDir as working directory.
func (r *ExecRunner) Build(ctx context.Context, contextDir, tag string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Tool, "build", "-t", tag, ".")
	cmd.Dir = contextDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
