// Package encode implements the animation encoding stage.
package encode

import (
	"context"
	"fmt"

	"github.com/user/gifclip/pkg/pipeline"
	"github.com/user/gifclip/pkg/ports"
)

// Stage encodes sampled frames into a looping animation.
type Stage struct {
	encoder ports.AnimationEncoder
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.AnimationEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute encodes all frames. Every frame clears to the background before
// the next one is drawn.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if len(input.Frames) == 0 {
		return result, pipeline.ErrEmptyFrameSequence
	}

	bounds := input.Frames[0].Image.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	opts := ports.EncoderOptions{
		DelayMs:   input.DelayMs,
		LoopCount: input.LoopCount,
		Disposal:  ports.DisposalBackground,
	}

	s.logger.Debug("Encoding %d frames at %dx%d, %d ms per frame", len(input.Frames), width, height, input.DelayMs)
	if err := s.encoder.Begin(width, height, input.FPS, opts); err != nil {
		return result, fmt.Errorf("begin encoding: %w", err)
	}

	for _, frame := range input.Frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.encoder.EncodeFrame(frame.Image, frame.TimestampMs); err != nil {
			return result, fmt.Errorf("encode frame %d: %w", frame.Index, err)
		}
	}

	data, err := s.encoder.End()
	if err != nil {
		return result, fmt.Errorf("end encoding: %w", err)
	}

	result.Data = data
	result.FrameCount = len(input.Frames)
	result.DurationMs = len(input.Frames) * input.DelayMs
	result.FileSize = int64(len(data))

	return result, nil
}
