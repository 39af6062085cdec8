package encode

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/gifclip/pkg/adapters/logger"
	"github.com/user/gifclip/pkg/mocks"
	"github.com/user/gifclip/pkg/pipeline"
	"github.com/user/gifclip/pkg/ports"
)

func testFrames(n int) []pipeline.SampledFrame {
	frames := make([]pipeline.SampledFrame, n)
	for i := range frames {
		frames[i] = pipeline.SampledFrame{
			Index:       i,
			TimestampMs: i * 83,
			Image:       image.NewRGBA(image.Rect(0, 0, 480, 270)),
		}
	}
	return frames
}

func TestStage_Execute(t *testing.T) {
	mockEncoder := &mocks.AnimationEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultEncodeInput()
	input.Frames = testFrames(36)

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mockEncoder.BeginCalled {
		t.Error("expected Begin to be called")
	}
	if mockEncoder.BeginWidth != 480 || mockEncoder.BeginHeight != 270 {
		t.Errorf("expected 480x270, got %dx%d", mockEncoder.BeginWidth, mockEncoder.BeginHeight)
	}
	opts := mockEncoder.BeginOpts
	if opts.DelayMs != 83 || opts.LoopCount != 0 || opts.Disposal != ports.DisposalBackground {
		t.Errorf("unexpected encoder options: %+v", opts)
	}
	if !mockEncoder.EndCalled {
		t.Error("expected End to be called")
	}
	if len(mockEncoder.EncodeFrameCalls) != 36 {
		t.Errorf("expected 36 EncodeFrame calls, got %d", len(mockEncoder.EncodeFrameCalls))
	}
	for i, c := range mockEncoder.EncodeFrameCalls {
		if c.TimestampMs != i*83 {
			t.Errorf("frame %d: timestamp %d, want %d", i, c.TimestampMs, i*83)
			break
		}
	}

	if result.FrameCount != 36 {
		t.Errorf("expected 36 frames, got %d", result.FrameCount)
	}
	if result.DurationMs != 36*83 {
		t.Errorf("expected duration %d, got %d", 36*83, result.DurationMs)
	}
	if len(result.Data) == 0 || result.FileSize != int64(len(result.Data)) {
		t.Error("expected encoded data and matching file size")
	}
}

func TestStage_Execute_EmptyFrames(t *testing.T) {
	mockEncoder := &mocks.AnimationEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.DefaultEncodeInput())
	if !errors.Is(err, pipeline.ErrEmptyFrameSequence) {
		t.Errorf("expected ErrEmptyFrameSequence, got %v", err)
	}
	if mockEncoder.BeginCalled {
		t.Error("encoder must not be started without frames")
	}
}

func TestStage_Execute_ContextCancelled(t *testing.T) {
	mockEncoder := &mocks.AnimationEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultEncodeInput()
	input.Frames = testFrames(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, input)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if mockEncoder.EndCalled {
		t.Error("End must not be called after cancellation")
	}
}

func TestStage_Execute_EncoderError(t *testing.T) {
	boom := errors.New("encoder exploded")
	mockEncoder := &mocks.AnimationEncoder{
		EndFunc: func() ([]byte, error) { return nil, boom },
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultEncodeInput()
	input.Frames = testFrames(2)

	if _, err := stage.Execute(context.Background(), input); !errors.Is(err, boom) {
		t.Errorf("expected wrapped encoder error, got %v", err)
	}
}
