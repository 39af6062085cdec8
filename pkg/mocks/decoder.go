package mocks

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/gifclip/pkg/ports"
)

// FrameDecoder is a fake ports.FrameDecoder producing synthetic frames.
// Every frame is a solid image whose color encodes its index (see FrameColor).
type FrameDecoder struct {
	mu sync.Mutex

	Info        ports.VideoInfo
	OpenErr     error
	GapIndices  map[int]bool  // Indices that report ports.ErrEndOfStream
	FailIndices map[int]error // Indices that fail with a specific error
	DecodeDelay time.Duration // Simulated decode latency

	DecodeFrameFunc func(index int) (image.Image, error)

	// Recorded calls for verification
	OpenCalls   []string
	DecodeCalls []int
	CloseCalls  int

	closed            bool
	useAfterClose     bool
	inFlight          int32
	concurrentDecodes int32
}

// NewFrameDecoder creates a fake decoder for a video of frameCount frames.
func NewFrameDecoder(frameCount int, fps float64, width, height int) *FrameDecoder {
	return &FrameDecoder{
		Info: ports.VideoInfo{
			FrameCount: frameCount,
			FPS:        fps,
			Width:      width,
			Height:     height,
			Container:  "synthetic",
		},
		GapIndices:  make(map[int]bool),
		FailIndices: make(map[int]error),
	}
}

// FrameColor returns the color used for the frame at index.
func FrameColor(index int) color.RGBA {
	return color.RGBA{R: uint8(index % 256), G: uint8(index / 256 % 256), B: 77, A: 255}
}

// FrameIndex recovers the frame index from an unmodified synthetic frame.
func FrameIndex(img image.Image) int {
	c := color.RGBAModel.Convert(img.At(img.Bounds().Min.X, img.Bounds().Min.Y)).(color.RGBA)
	return int(c.R) + int(c.G)*256
}

func (m *FrameDecoder) Open(path string) (ports.VideoInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenErr != nil {
		return ports.VideoInfo{}, m.OpenErr
	}
	m.closed = false
	info := m.Info
	info.Path = path
	return info, nil
}

func (m *FrameDecoder) DecodeFrame(index int) (image.Image, error) {
	if atomic.AddInt32(&m.inFlight, 1) > 1 {
		atomic.StoreInt32(&m.concurrentDecodes, 1)
	}
	defer atomic.AddInt32(&m.inFlight, -1)

	m.mu.Lock()
	m.DecodeCalls = append(m.DecodeCalls, index)
	if m.closed {
		m.useAfterClose = true
	}
	delay := m.DecodeDelay
	gap := m.GapIndices[index]
	failErr := m.FailIndices[index]
	info := m.Info
	fn := m.DecodeFrameFunc
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fn != nil {
		return fn(index)
	}
	if failErr != nil {
		return nil, failErr
	}
	if gap || index < 0 || index >= info.FrameCount {
		return nil, ports.ErrEndOfStream
	}

	img := image.NewRGBA(image.Rect(0, 0, info.Width, info.Height))
	c := FrameColor(index)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img, nil
}

func (m *FrameDecoder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	m.closed = true
	return nil
}

// Closed reports whether Close was called after the last Open.
func (m *FrameDecoder) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// UsedAfterClose reports whether DecodeFrame ran on a closed decoder.
func (m *FrameDecoder) UsedAfterClose() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.useAfterClose
}

// ConcurrentDecodes reports whether two DecodeFrame calls ever overlapped.
func (m *FrameDecoder) ConcurrentDecodes() bool {
	return atomic.LoadInt32(&m.concurrentDecodes) == 1
}

// Decoded returns a copy of the recorded DecodeFrame indices.
func (m *FrameDecoder) Decoded() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.DecodeCalls...)
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)
