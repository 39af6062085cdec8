package mocks

import (
	"image"
	"sync"

	"github.com/user/gifclip/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	ExportJSON    []byte
	SampledFrames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		SampledFrames: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveExportJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExportJSON = data
	return nil
}

func (m *DebugSink) SaveSampledFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SampledFrames[index] = img
	return nil
}

// SampledCount returns the number of saved frames.
func (m *DebugSink) SampledCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.SampledFrames)
}

var _ ports.DebugSink = (*DebugSink)(nil)
