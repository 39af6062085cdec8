// Package sample implements the export sampling stage: it reads the
// selected range at the export rate, captions and resizes every frame.
package sample

import (
	"context"
	"errors"
	"image"
	"math"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/pipeline"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/source"
)

// Captioner draws a caption onto a frame.
type Captioner interface {
	Apply(img image.Image, style caption.Style) image.Image
}

// Stage samples a range of a source.
type Stage struct {
	overlay  Captioner
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new sample stage.
func NewStage(overlay Captioner, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		overlay:  overlay,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("sample"),
	}
}

// Execute samples floor(duration*fps) timestamps starting at input.Start.
// Frames the source cannot produce are skipped; a closed source or a
// cancelled context aborts the run.
func (s *Stage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.SampleResult, error) {
	if input.Source == nil {
		return pipeline.SampleResult{}, errors.New("sample: no source")
	}

	fps := input.FPS
	if fps <= 0 {
		fps = pipeline.ExportFPS
	}
	width := input.Width
	if width <= 0 {
		width = pipeline.ExportWidth
	}

	count := pipeline.ExportFrameCount(input.End-input.Start, fps)
	result := pipeline.SampleResult{
		Frames:    make([]pipeline.SampledFrame, 0, count),
		Requested: count,
	}

	s.logger.Debug("Sampling %d frames from %.3fs at %d fps", count, input.Start, fps)

	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := input.Start + float64(i)/float64(fps)
		frame, err := input.Source.FrameAt(t)
		switch {
		case errors.Is(err, source.ErrClosed):
			return result, err
		case errors.Is(err, ports.ErrEndOfStream):
			s.logger.Warn("Frame at %.3fs unavailable, skipping", t)
			result.Skipped = append(result.Skipped, i)
		case err != nil:
			s.logger.Warn("Decode failed at %.3fs, skipping: %v", t, err)
			result.Skipped = append(result.Skipped, i)
		default:
			img := s.overlay.Apply(frame.Image, input.Caption)
			if result.Size == (pipeline.Dimension{}) {
				result.Size = pipeline.DimensionOf(img).ScaleToWidth(width)
			}
			resized := s.renderer.ResizeImage(img, result.Size.Width, result.Size.Height)

			if s.sink.Enabled() {
				if err := s.sink.SaveSampledFrame(i, resized); err != nil {
					s.logger.Debug("Failed to save sampled frame %d: %v", i, err)
				}
			}

			result.Frames = append(result.Frames, pipeline.SampledFrame{
				Index:       i,
				SourceIndex: frame.Index,
				TimeSeconds: t,
				TimestampMs: int(math.Round(float64(i) * 1000 / float64(fps))),
				Image:       resized,
			})
		}

		if input.OnFrame != nil {
			input.OnFrame(i+1, count)
		}
	}

	s.logger.Debug("Sampled %d of %d frames", len(result.Frames), count)
	return result, nil
}
