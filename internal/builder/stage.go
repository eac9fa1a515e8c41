package builder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

const (
	ownerWrite = 0o200
	ownerRWX   = 0o700
)

// Stager copies the support directory into submissions.
type Stager struct {
	source   string
	name     string
	excludes []string
}

// NewStager returns a Stager that copies source into <submission>/<name>,
// skipping entries whose base name matches one of the exclude globs.
func NewStager(source, name string, excludes []string) *Stager {
	return &Stager{source: source, name: name, excludes: excludes}
}

// Target returns where the support directory is staged inside sub.
func (s *Stager) Target(sub Submission) string {
	return filepath.Join(sub.Path, s.name)
}

// Stage replaces any stale staged copy in sub with a fresh copy of the
// support directory and returns the staged path.
func (s *Stager) Stage(sub Submission) (string, error) {
	dst := s.Target(sub)
	if err := RemoveTree(dst); err != nil {
		return "", fmt.Errorf("%w: remove stale copy: %w", ErrStaging, err)
	}

	info, err := os.Stat(s.source)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSupportDirMissing, s.source)
	}

	err = copy.Copy(s.source, dst, copy.Options{
		Skip: func(_ os.FileInfo, src, _ string) (bool, error) {
			return s.excluded(filepath.Base(src)), nil
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStaging, err)
	}
	return dst, nil
}

// Unstage removes the staged copy from sub.
func (s *Stager) Unstage(sub Submission) error {
	if err := RemoveTree(s.Target(sub)); err != nil {
		return fmt.Errorf("%w: %w", ErrCleanup, err)
	}
	return nil
}

func (s *Stager) excluded(name string) bool {
	for _, pattern := range s.excludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// RemoveTree deletes path and everything below it. When the first attempt
// fails, write permission is restored on every entry and removal retried, so
// read-only trees (e.g. git object files) can be deleted. A missing path is
// not an error.
func RemoveTree(path string) error {
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(path); err == nil {
		return nil
	}

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		mode := info.Mode().Perm() | ownerWrite
		if d.IsDir() {
			mode |= ownerRWX
		}
		_ = os.Chmod(p, mode)
		return nil
	})
	return os.RemoveAll(path)
}
