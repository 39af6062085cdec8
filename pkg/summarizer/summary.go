// Package summarizer provides summary generation for export results.
package summarizer

import (
	"time"

	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/ports"
)

// Summary contains all data collected during an export.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input video
	Source SourceInfo

	// Trimmed range, in seconds
	Selection SelectionInfo

	// Caption burned into every frame
	Caption CaptionInfo

	// Animation output details
	Output OutputInfo
}

// SourceInfo contains information about the input video.
type SourceInfo struct {
	Path       string
	Container  string
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// DurationSeconds returns the source length.
func (s SourceInfo) DurationSeconds() float64 {
	if s.FPS <= 0 {
		return 0
	}
	return float64(s.FrameCount) / s.FPS
}

// SelectionInfo contains the exported range.
type SelectionInfo struct {
	Start float64
	End   float64
}

// CaptionInfo contains the caption settings.
type CaptionInfo struct {
	Text             string
	FontSize         int
	VerticalFraction float64
}

// OutputInfo contains information about the written animation.
type OutputInfo struct {
	Path            string
	RequestedFrames int
	EncodedFrames   int
	SkippedFrames   int
	DelayMs         int
	DurationMs      int
	Width           int
	Height          int
	FileSize        int64
	ElapsedMs       int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets input video information.
func (b *Builder) WithSource(info ports.VideoInfo) *Builder {
	b.summary.Source = SourceInfo{
		Path:       info.Path,
		Container:  info.Container,
		Width:      info.Width,
		Height:     info.Height,
		FPS:        info.FPS,
		FrameCount: info.FrameCount,
	}
	return b
}

// WithCaption sets caption settings.
func (b *Builder) WithCaption(text string, fontSize int, verticalFraction float64) *Builder {
	b.summary.Caption = CaptionInfo{
		Text:             text,
		FontSize:         fontSize,
		VerticalFraction: verticalFraction,
	}
	return b
}

// WithExport sets the selection and output details from an export result.
func (b *Builder) WithExport(result orchestrator.ExportResult) *Builder {
	b.summary.Selection = SelectionInfo{Start: result.Start, End: result.End}
	b.summary.Output = OutputInfo{
		Path:            result.OutputPath,
		RequestedFrames: result.RequestedFrames,
		EncodedFrames:   result.EncodedFrames,
		SkippedFrames:   result.SkippedFrames,
		DelayMs:         result.DelayMs,
		DurationMs:      result.DurationMs,
		Width:           result.Width,
		Height:          result.Height,
		FileSize:        result.FileSize,
		ElapsedMs:       int(result.Elapsed.Milliseconds()),
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
