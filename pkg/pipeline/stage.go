// Package pipeline provides the export pipeline infrastructure and the
// fixed export parameters shared by every stage.
package pipeline

import (
	"context"
	"errors"
)

// Stage represents a processing stage in the pipeline.
// Each stage takes an input and produces an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// ProgressFunc receives the number of processed items out of total.
type ProgressFunc func(done, total int)

// ErrEmptyFrameSequence is returned when sampling produced no frames.
var ErrEmptyFrameSequence = errors.New("pipeline: no frames sampled")
