package orchestrator

import (
	"path/filepath"
	"strings"
)

// OutputExt is the extension given to outputs chosen without one.
const OutputExt = ".gif"

// DefaultOutputPath returns the video path with its extension replaced by .gif.
func DefaultOutputPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + OutputExt
}

// WithOutputExt appends .gif when path has no extension.
func WithOutputExt(path string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + OutputExt
}
