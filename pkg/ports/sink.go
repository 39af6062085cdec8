package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate export results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveExportJSON saves the export record as JSON.
	SaveExportJSON(data []byte) error

	// SaveSampledFrame saves a captioned, resized frame before encoding.
	SaveSampledFrame(index int, img image.Image) error
}
