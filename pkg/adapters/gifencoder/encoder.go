// Package gifencoder provides a looping animated GIF encoder.
package gifencoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"math"
	"sync"

	"github.com/user/gifclip/pkg/ports"
)

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("gifencoder: encoder not initialized")

	// ErrNoFrames is returned by End when no frame was encoded.
	ErrNoFrames = errors.New("gifencoder: no frames to encode")

	// ErrFrameSize is returned for frames that do not match the Begin dimensions.
	ErrFrameSize = errors.New("gifencoder: frame size mismatch")
)

// Encoder implements ports.AnimationEncoder producing GIF89a data.
// Frames are quantised to the Plan 9 palette with Floyd-Steinberg dithering.
type Encoder struct {
	mu sync.Mutex

	width    int
	height   int
	delay    int // centiseconds
	disposal byte
	loop     int
	started  bool

	frames []*image.Paletted
}

// New creates a new GIF encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin initializes the encoder. A zero DelayMs derives the delay from fps.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("gifencoder: invalid size %dx%d", width, height)
	}

	delayMs := opts.DelayMs
	if delayMs <= 0 {
		if fps <= 0 {
			return fmt.Errorf("gifencoder: invalid frame rate %f", fps)
		}
		delayMs = int(math.Round(1000 / fps))
	}

	e.width = width
	e.height = height
	e.delay = DelayCentiseconds(delayMs)
	e.disposal = disposalMethod(opts.Disposal)
	e.loop = opts.LoopCount
	e.frames = nil
	e.started = true
	return nil
}

// DelayCentiseconds converts a millisecond delay to GIF delay units.
// GIF stores delays in 1/100 s, so the conversion rounds to the nearest
// centisecond and is lossy: 83 ms becomes 8 (80 ms). The result is at
// least 1 because many viewers treat 0 as "as fast as possible".
func DelayCentiseconds(ms int) int {
	cs := int(math.Round(float64(ms) / 10))
	if cs < 1 {
		cs = 1
	}
	return cs
}

func disposalMethod(d ports.Disposal) byte {
	switch d {
	case ports.DisposalBackground:
		return gif.DisposalBackground
	case ports.DisposalPrevious:
		return gif.DisposalPrevious
	default:
		return gif.DisposalNone
	}
}

// EncodeFrame quantises img and appends it to the animation.
// GIF frames share one delay, so timestampMs only orders frames.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return ErrNotInitialized
	}
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), e.width, e.height)
	}

	e.frames = append(e.frames, quantize(img))
	return nil
}

// End encodes the collected frames and resets the encoder.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return nil, ErrNotInitialized
	}
	defer func() {
		e.frames = nil
		e.started = false
	}()

	if len(e.frames) == 0 {
		return nil, ErrNoFrames
	}

	anim := &gif.GIF{
		Image:     e.frames,
		Delay:     make([]int, len(e.frames)),
		Disposal:  make([]byte, len(e.frames)),
		LoopCount: e.loop,
		Config: image.Config{
			ColorModel: plan9,
			Width:      e.width,
			Height:     e.height,
		},
	}
	for i := range e.frames {
		anim.Delay[i] = e.delay
		anim.Disposal[i] = e.disposal
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("gifencoder: encode: %w", err)
	}
	return buf.Bytes(), nil
}

var _ ports.AnimationEncoder = (*Encoder)(nil)
