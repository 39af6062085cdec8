package mocks

import (
	"image"

	"github.com/user/gifclip/pkg/ports"
)

// AnimationEncoder is a mock implementation of ports.AnimationEncoder.
type AnimationEncoder struct {
	BeginFunc       func(width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image, timestampMs int) error
	EndFunc         func() ([]byte, error)

	// Recorded calls for verification
	BeginCalled      bool
	BeginWidth       int
	BeginHeight      int
	BeginFPS         float64
	BeginOpts        ports.EncoderOptions
	EncodeFrameCalls []EncodeFrameCall
	EndCalled        bool
}

// EncodeFrameCall records a call to EncodeFrame.
type EncodeFrameCall struct {
	TimestampMs int
	Width       int
	Height      int
}

func (m *AnimationEncoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.BeginWidth, m.BeginHeight, m.BeginFPS, m.BeginOpts = width, height, fps, opts
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, fps, opts)
	}
	return nil
}

func (m *AnimationEncoder) EncodeFrame(img image.Image, timestampMs int) error {
	b := img.Bounds()
	m.EncodeFrameCalls = append(m.EncodeFrameCalls, EncodeFrameCall{
		TimestampMs: timestampMs,
		Width:       b.Dx(),
		Height:      b.Dy(),
	})
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img, timestampMs)
	}
	return nil
}

func (m *AnimationEncoder) End() ([]byte, error) {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	// GIF89a header
	return []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, nil
}

var _ ports.AnimationEncoder = (*AnimationEncoder)(nil)
