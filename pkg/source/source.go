// Package source owns an opened video and maps clip time to decoded frames.
package source

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/user/gifclip/pkg/ports"
)

var (
	// ErrOpen is returned when a video cannot be opened or has no frames.
	ErrOpen = errors.New("source: cannot open video")

	// ErrClosed is returned by FrameAt after Close.
	ErrClosed = errors.New("source: closed")
)

// Frame is a decoded frame. Frames are not cached.
type Frame struct {
	Index       int
	TimeSeconds float64
	Image       image.Image
}

// Source owns a decoder for one video. Decoder access is serialized and
// refused after Close.
type Source struct {
	mu      sync.Mutex
	decoder ports.FrameDecoder
	info    ports.VideoInfo
	closed  bool
}

// Open opens path with decoder. The source takes ownership of the decoder
// and closes it on failure.
func Open(decoder ports.FrameDecoder, path string) (*Source, error) {
	info, err := decoder.Open(path)
	if err != nil {
		decoder.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	if info.FrameCount <= 0 || info.FPS <= 0 {
		decoder.Close()
		return nil, fmt.Errorf("%w: %s: no frames", ErrOpen, path)
	}
	if info.Path == "" {
		info.Path = path
	}
	return &Source{decoder: decoder, info: info}, nil
}

// Info returns the video metadata.
func (s *Source) Info() ports.VideoInfo {
	return s.info
}

// Path returns the opened file path.
func (s *Source) Path() string {
	return s.info.Path
}

// FPS returns the source frame rate.
func (s *Source) FPS() float64 {
	return s.info.FPS
}

// Duration returns the total duration in seconds.
func (s *Source) Duration() float64 {
	return s.info.DurationSeconds()
}

// indexEpsilon is the tolerance, in frames, applied before flooring.
const indexEpsilon = 1e-9

// IndexAt maps a time offset to min(floor(t*fps), FrameCount-1), with
// negative times mapping to 0. The product t*fps is rounded up to the next
// frame when it falls within indexEpsilon of it, so a time computed as
// k/fps (or start+i/12) lands on frame k even when the division leaves it
// a few ulps short. Times further than that below a boundary floor exactly.
func (s *Source) IndexAt(t float64) int {
	if t <= 0 || math.IsNaN(t) {
		return 0
	}
	idx := int(math.Floor(t*s.info.FPS + indexEpsilon))
	if last := s.info.FrameCount - 1; idx > last {
		idx = last
	}
	return idx
}

// FrameAt decodes the frame shown at time t.
func (s *Source) FrameAt(t float64) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Frame{}, ErrClosed
	}
	idx := s.IndexAt(t)
	img, err := s.decoder.DecodeFrame(idx)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Index: idx, TimeSeconds: t, Image: img}, nil
}

// Close releases the decoder. It waits for an in-flight FrameAt and is
// safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.decoder.Close()
}

// Closed reports whether Close has been called.
func (s *Source) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
