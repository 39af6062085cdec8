package summarizer

import (
	"fmt"

	"github.com/user/gifclip/pkg/ports"
)

// Writer stores formatted summaries through a FileSystem.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a Writer that formats with formatter and writes to fs.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{formatter: formatter, fs: fs}
}

// Write renders summary and replaces path with the result.
// The content is staged next to path and renamed into place, so an
// existing report is never left half written.
func (w *Writer) Write(path string, summary *Summary) error {
	if path == "" {
		return fmt.Errorf("summary: empty path")
	}
	tmp := path + ".tmp"
	if err := w.fs.WriteFile(tmp, []byte(w.formatter.Format(summary))); err != nil {
		return fmt.Errorf("summary: write %s: %w", path, err)
	}
	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("summary: write %s: %w", path, err)
	}
	return nil
}
