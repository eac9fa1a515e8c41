// Package builder builds one container image per tournament submission.
//
// A submission is an immediate subdirectory of the submissions directory that
// contains the build descriptor. Before each build the shared support
// directory is staged into the submission and it is removed again afterwards,
// whatever the build outcome.
package builder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Submission is a buildable directory discovered under the submissions root.
type Submission struct {
	Name string
	Path string
}

// ImageTag returns the tag for the submission's image: <namespace>/<name>.
func (s Submission) ImageTag(namespace string) string {
	return namespace + "/" + s.Name
}

// Discover lists the immediate subdirectories of root that contain the
// descriptor file, ordered by name. Directories without it are skipped.
func Discover(root, descriptor string) ([]Submission, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionsDirMissing, root)
		}
		return nil, fmt.Errorf("read submissions dir %s: %w", root, err)
	}

	var out []Submission
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if !isDir(path) {
			continue
		}
		info, err := os.Stat(filepath.Join(path, descriptor))
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, Submission{Name: e.Name(), Path: path})
	}
	return out, nil
}

// isDir follows symlinks, so a linked submission directory still counts.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
