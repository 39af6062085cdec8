// Package orchestrator runs the export pipeline: sample, encode and an
// atomic write of the result.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/pipeline"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/selection"
)

var (
	// ErrEmptyFrameSequence is returned when no frame of the range could be decoded.
	ErrEmptyFrameSequence = pipeline.ErrEmptyFrameSequence

	// ErrEncode is returned when encoding or writing the output fails.
	ErrEncode = errors.New("orchestrator: encode failed")
)

// PartialSuffix is appended to the output path while it is being written.
const PartialSuffix = ".partial"

// ExportRequest describes one export job.
type ExportRequest struct {
	Source     pipeline.FrameSource
	Selection  selection.Selection
	Caption    caption.Style
	OutputPath string

	// OnProgress receives (i+1)/frameCount after every sample. It must not block.
	OnProgress func(fraction float64)
}

// ExportResult contains the results of an export for summary generation.
type ExportResult struct {
	OutputPath string
	Start      float64
	End        float64
	Caption    string

	RequestedFrames int
	EncodedFrames   int
	SkippedFrames   int
	DelayMs         int
	DurationMs      int

	Width    int
	Height   int
	FileSize int64

	Elapsed time.Duration
}

// Orchestrator coordinates the execution of the export stages.
type Orchestrator struct {
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult]
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	fs          ports.FileSystem
	sink        ports.DebugSink
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sampleStage: sampleStage,
		encodeStage: encodeStage,
		fs:          fs,
		sink:        sink,
		logger:      logger.WithComponent("export"),
	}
}

// Export runs one export job. Nothing is left at req.OutputPath unless the
// whole animation was written.
func (o *Orchestrator) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	started := time.Now()
	sel := req.Selection

	if err := sel.Eligibility(); err != nil {
		return ExportResult{}, err
	}
	if req.OutputPath == "" {
		return ExportResult{}, errors.New("orchestrator: no output path")
	}

	o.logger.Info("Exporting %.2fs-%.2fs to %s", sel.Start, sel.End, req.OutputPath)

	// 1. Sample frames
	sampled, err := o.sampleStage.Execute(ctx, pipeline.SampleInput{
		Source:  req.Source,
		Start:   sel.Start,
		End:     sel.End,
		Caption: req.Caption,
		Width:   pipeline.ExportWidth,
		FPS:     pipeline.ExportFPS,
		OnFrame: func(done, total int) {
			if req.OnProgress != nil && total > 0 {
				req.OnProgress(float64(done) / float64(total))
			}
		},
	})
	if err != nil {
		return ExportResult{}, fmt.Errorf("sample stage: %w", err)
	}
	if len(sampled.Skipped) > 0 {
		o.logger.Warn("Skipped %d of %d frames", len(sampled.Skipped), sampled.Requested)
	}
	if len(sampled.Frames) == 0 {
		o.logger.Error("No frames could be decoded in the selected range")
		return ExportResult{}, fmt.Errorf("%w: %d samples requested", ErrEmptyFrameSequence, sampled.Requested)
	}

	// 2. Encode animation
	encodeInput := pipeline.DefaultEncodeInput()
	encodeInput.Frames = sampled.Frames
	encoded, err := o.encodeStage.Execute(ctx, encodeInput)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ExportResult{}, ctxErr
		}
		o.logger.Error("Failed to encode animation: %v", err)
		return ExportResult{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	o.logger.Debug("Animation encoded: %d bytes", len(encoded.Data))

	if err := ctx.Err(); err != nil {
		return ExportResult{}, err
	}

	// 3. Write atomically
	if err := o.writeAtomic(req.OutputPath, encoded.Data); err != nil {
		o.logger.Error("Failed to write output: %v", err)
		return ExportResult{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	result := ExportResult{
		OutputPath:      req.OutputPath,
		Start:           sel.Start,
		End:             sel.End,
		Caption:         req.Caption.Text,
		RequestedFrames: sampled.Requested,
		EncodedFrames:   encoded.FrameCount,
		SkippedFrames:   len(sampled.Skipped),
		DelayMs:         encodeInput.DelayMs,
		DurationMs:      encoded.DurationMs,
		Width:           sampled.Size.Width,
		Height:          sampled.Size.Height,
		FileSize:        encoded.FileSize,
		Elapsed:         time.Since(started),
	}

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			if err := o.sink.SaveExportJSON(data); err != nil {
				o.logger.Debug("Failed to save export record: %v", err)
			}
		}
	}

	o.logger.Info("Output saved to %s", req.OutputPath)
	return result, nil
}

// writeAtomic writes data next to path and renames it into place.
// The temporary file is removed on failure.
func (o *Orchestrator) writeAtomic(path string, data []byte) error {
	partial := path + PartialSuffix
	if err := o.fs.WriteFile(partial, data); err != nil {
		o.fs.Remove(partial)
		return fmt.Errorf("write %s: %w", partial, err)
	}
	if err := o.fs.Rename(partial, path); err != nil {
		o.fs.Remove(partial)
		return fmt.Errorf("rename %s: %w", partial, err)
	}
	return nil
}
