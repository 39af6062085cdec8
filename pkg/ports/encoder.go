package ports

import (
	"image"
)

// AnimationEncoder abstracts animated image encoding operations.
type AnimationEncoder interface {
	// Begin initializes the encoder with the specified dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame appends a single frame at the specified timestamp.
	EncodeFrame(img image.Image, timestampMs int) error

	// End finalizes encoding and returns the encoded data.
	End() ([]byte, error)
}

// EncoderOptions configures animation encoding parameters.
type EncoderOptions struct {
	DelayMs   int      // Per-frame delay in milliseconds
	LoopCount int      // 0 loops forever, -1 plays once, n repeats n times
	Disposal  Disposal // How the canvas is cleared between frames
}

// Disposal specifies how a decoder treats the canvas before drawing the next frame.
type Disposal int

const (
	DisposalNone Disposal = iota
	// DisposalBackground clears the frame area before the next frame is drawn.
	DisposalBackground
	DisposalPrevious
)
