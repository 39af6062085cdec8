package pipeline

import (
	"image"
	"math"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/source"
)

// =============================================================================
// Export Parameters
// =============================================================================

const (
	// MaxDuration is the longest exportable selection in seconds.
	MaxDuration = 10.0

	// ExportFPS is the sampling rate of exported animations.
	ExportFPS = 12

	// ExportWidth is the output width in pixels; height keeps the aspect ratio.
	ExportWidth = 480

	// MinDuration is the shortest exportable selection: two export frames.
	MinDuration = 2.0 / ExportFPS

	// PreviewWidth and PreviewHeight bound preview and playback thumbnails.
	PreviewWidth  = 400
	PreviewHeight = 300
)

// ExportDelayMs returns the per-frame delay of exported animations.
func ExportDelayMs() int {
	return int(math.Round(1000.0 / ExportFPS))
}

// ExportFrameCount returns floor(duration*fps), the number of samples
// taken for a selection. The product is nudged by 1e-9 so durations such
// as 2/12 s are not lost to float rounding.
func ExportFrameCount(durationSeconds float64, fps int) int {
	if durationSeconds <= 0 || fps <= 0 {
		return 0
	}
	return int(math.Floor(durationSeconds*float64(fps) + 1e-9))
}

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// DimensionOf returns the size of img.
func DimensionOf(img image.Image) Dimension {
	b := img.Bounds()
	return Dimension{Width: b.Dx(), Height: b.Dy()}
}

// ScaleToWidth scales d to the given width, keeping the aspect ratio.
// The height is truncated and never below 1.
func (d Dimension) ScaleToWidth(width int) Dimension {
	if d.Width <= 0 || d.Height <= 0 {
		return Dimension{Width: width, Height: 1}
	}
	h := d.Height * width / d.Width
	if h < 1 {
		h = 1
	}
	return Dimension{Width: width, Height: h}
}

// FitWithin shrinks d to fit inside maxW x maxH, keeping the aspect ratio.
// Dimensions that already fit are returned unchanged.
func (d Dimension) FitWithin(maxW, maxH int) Dimension {
	if d.Width <= maxW && d.Height <= maxH {
		return d
	}
	scale := math.Min(float64(maxW)/float64(d.Width), float64(maxH)/float64(d.Height))
	w := int(math.Round(float64(d.Width) * scale))
	h := int(math.Round(float64(d.Height) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Dimension{Width: w, Height: h}
}

// =============================================================================
// Sample Stage Types
// =============================================================================

// FrameSource provides decoded frames by time.
type FrameSource interface {
	FrameAt(t float64) (source.Frame, error)
}

// SampleInput describes the range to sample for export.
type SampleInput struct {
	Source  FrameSource
	Start   float64 // Selection start in seconds
	End     float64 // Selection end in seconds
	Caption caption.Style
	Width   int          // Output width (default: ExportWidth)
	FPS     int          // Sampling rate (default: ExportFPS)
	OnFrame ProgressFunc // Optional; called once per sample index
}

// SampleResult contains the captioned, resized frames in order.
type SampleResult struct {
	Frames    []SampledFrame
	Requested int   // Number of sample timestamps
	Skipped   []int // Sample indices that produced no frame
	Size      Dimension
}

// SampledFrame represents one export frame.
type SampledFrame struct {
	Index       int     // Sample index
	SourceIndex int     // Decoded source frame index
	TimeSeconds float64 // Sample timestamp
	TimestampMs int     // Offset from the selection start
	Image       image.Image
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for animation encoding.
type EncodeInput struct {
	Frames    []SampledFrame
	FPS       float64
	DelayMs   int
	LoopCount int
}

// DefaultEncodeInput returns EncodeInput with the export parameters.
func DefaultEncodeInput() EncodeInput {
	return EncodeInput{
		FPS:       ExportFPS,
		DelayMs:   ExportDelayMs(),
		LoopCount: 0,
	}
}

// EncodeResult contains the encoded animation.
type EncodeResult struct {
	Data       []byte
	FrameCount int
	DurationMs int
	FileSize   int64
}
