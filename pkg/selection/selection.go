// Package selection tracks the trimmed range of the open video.
package selection

import (
	"errors"
	"fmt"
	"math"

	"github.com/user/gifclip/pkg/pipeline"
)

var (
	// ErrSelectionTooShort is returned for ranges shorter than two export frames.
	ErrSelectionTooShort = errors.New("selection: too short")

	// ErrSelectionTooLong is returned for ranges longer than the export limit.
	ErrSelectionTooLong = errors.New("selection: too long")
)

// DefaultEnd is the initial end of the range for a freshly opened video.
const DefaultEnd = 5.0

// eligibilityEpsilon absorbs float noise at the inclusive bounds.
const eligibilityEpsilon = 1e-9

// Endpoint identifies one end of the range.
type Endpoint int

const (
	EndpointStart Endpoint = iota
	EndpointEnd
)

func (e Endpoint) String() string {
	if e == EndpointStart {
		return "start"
	}
	return "end"
}

// Selection is an immutable [Start, End] range in seconds. Start may
// exceed End while the user drags; the range is then empty.
type Selection struct {
	Start float64
	End   float64
}

// Duration returns max(0, End-Start).
func (s Selection) Duration() float64 {
	return math.Max(0, s.End-s.Start)
}

// IsExportEligible reports whether the range can be exported.
func (s Selection) IsExportEligible() bool {
	return s.Eligibility() == nil
}

// Eligibility explains why a range cannot be exported.
func (s Selection) Eligibility() error {
	d := s.Duration()
	if d < pipeline.MinDuration-eligibilityEpsilon {
		return fmt.Errorf("%w: %.2fs (minimum %.2fs)", ErrSelectionTooShort, d, pipeline.MinDuration)
	}
	if d > pipeline.MaxDuration+eligibilityEpsilon {
		return fmt.Errorf("%w: %.2fs (maximum %.0fs)", ErrSelectionTooLong, d, pipeline.MaxDuration)
	}
	return nil
}

// Selector owns the mutable range for one video. It is not safe for
// concurrent use.
type Selector struct {
	total     float64
	sel       Selection
	lastMoved Endpoint
}

// New creates a Selector for a video of totalDuration seconds.
func New(totalDuration float64) *Selector {
	s := &Selector{}
	s.Reset(totalDuration)
	return s
}

// Reset selects [0, min(totalDuration, DefaultEnd)].
func (s *Selector) Reset(totalDuration float64) {
	if totalDuration < 0 || math.IsNaN(totalDuration) {
		totalDuration = 0
	}
	s.total = totalDuration
	s.sel = Selection{Start: 0, End: math.Min(totalDuration, DefaultEnd)}
	s.lastMoved = EndpointStart
}

// SetStart moves the start, clamped to [0, total]. End is not adjusted.
func (s *Selector) SetStart(t float64) Selection {
	s.sel.Start = s.clamp(t)
	s.lastMoved = EndpointStart
	return s.sel
}

// SetEnd moves the end, clamped to [0, total]. Start is not adjusted.
func (s *Selector) SetEnd(t float64) Selection {
	s.sel.End = s.clamp(t)
	s.lastMoved = EndpointEnd
	return s.sel
}

func (s *Selector) clamp(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > s.total {
		return s.total
	}
	return t
}

// Selection returns the current range.
func (s *Selector) Selection() Selection {
	return s.sel
}

// LastMoved returns the endpoint changed most recently.
func (s *Selector) LastMoved() Endpoint {
	return s.lastMoved
}

// PreviewTime returns the time of the most recently moved endpoint.
func (s *Selector) PreviewTime() float64 {
	if s.lastMoved == EndpointStart {
		return s.sel.Start
	}
	return s.sel.End
}
