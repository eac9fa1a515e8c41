package builder

import (
	"fmt"
	"io"
)

// Summary records the outcome of a build batch by submission name.
// Skipped submissions could not be staged and were never built.
type Summary struct {
	Succeeded []string
	Failed    []string
	Skipped   []string
}

// OK reports whether every attempted build succeeded.
func (s *Summary) OK() bool {
	return len(s.Failed) == 0 && len(s.Skipped) == 0
}

// Print writes the end-of-batch summary to w.
func (s *Summary) Print(w io.Writer) error {
	if len(s.Succeeded) > 0 {
		if _, err := fmt.Fprintln(w, "\nThe following submissions were built:"); err != nil {
			return err
		}
		if err := printList(w, s.Succeeded); err != nil {
			return err
		}
	}
	if len(s.Skipped) > 0 {
		if _, err := fmt.Fprintln(w, "\nThe following submissions were skipped:"); err != nil {
			return err
		}
		if err := printList(w, s.Skipped); err != nil {
			return err
		}
	}
	if len(s.Failed) > 0 {
		if _, err := fmt.Fprintln(w, "\nThe following submissions failed to build:"); err != nil {
			return err
		}
		return printList(w, s.Failed)
	}

	if len(s.Skipped) == 0 {
		_, err := fmt.Fprintln(w, "\nAll submissions built successfully!")
		return err
	}
	return nil
}

func printList(w io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "- %s\n", name); err != nil {
			return err
		}
	}
	return nil
}
