// Package playback plays the selected range as a stream of captioned
// thumbnails at the source frame rate.
package playback

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/pipeline"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/source"
)

// StopReason tells why a playback run ended.
type StopReason int

const (
	// StopFinished means the loop passed the end of the range.
	StopFinished StopReason = iota
	// StopCancelled means the context was cancelled.
	StopCancelled
	// StopEndOfStream means the source had no more frames.
	StopEndOfStream
	// StopSourceClosed means the source was closed underneath the loop.
	StopSourceClosed
	// StopError means a frame failed to decode.
	StopError
)

var stopReasonNames = map[StopReason]string{
	StopFinished:     "finished",
	StopCancelled:    "cancelled",
	StopEndOfStream:  "end of stream",
	StopSourceClosed: "source closed",
	StopError:        "error",
}

func (r StopReason) String() string {
	if name, ok := stopReasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// Captioner draws a caption onto a frame.
type Captioner interface {
	Apply(img image.Image, style caption.Style) image.Image
}

// SleepFunc waits for d or until ctx is done. It reports whether the full
// duration elapsed.
type SleepFunc func(ctx context.Context, d time.Duration) bool

// Request describes one playback run.
type Request struct {
	Source  pipeline.FrameSource
	Start   float64
	End     float64
	FPS     float64 // Source frame rate
	Caption caption.Style
}

// Result summarizes a finished run.
type Result struct {
	Reason       StopReason
	FramesShown  int
	LastPosition float64
}

// Player renders preview frames.
type Player struct {
	overlay  Captioner
	renderer ports.Renderer
	logger   ports.Logger
	sleep    SleepFunc
}

// NewPlayer creates a player that sleeps in real time between frames.
func NewPlayer(overlay Captioner, renderer ports.Renderer, logger ports.Logger) *Player {
	return &Player{
		overlay:  overlay,
		renderer: renderer,
		logger:   logger.WithComponent("playback"),
		sleep:    sleepContext,
	}
}

// WithSleep replaces the wait between frames.
func (p *Player) WithSleep(fn SleepFunc) *Player {
	p.sleep = fn
	return p
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Thumbnail captions img and shrinks it to the preview box.
func (p *Player) Thumbnail(img image.Image, style caption.Style) image.Image {
	captioned := p.overlay.Apply(img, style)
	size := pipeline.DimensionOf(captioned)
	fit := size.FitWithin(pipeline.PreviewWidth, pipeline.PreviewHeight)
	if fit == size {
		return captioned
	}
	return p.renderer.ResizeImage(captioned, fit.Width, fit.Height)
}

// Run shows frame i at start + i/fps until the range ends, the source runs
// out of frames, or ctx is cancelled. Cancellation is checked once per
// frame; a decode in flight is not interrupted.
func (p *Player) Run(ctx context.Context, req Request, display ports.DisplayFunc) (Result, error) {
	result := Result{LastPosition: req.Start}
	if req.FPS <= 0 {
		return result, errors.New("playback: invalid frame rate")
	}
	step := 1 / req.FPS
	wait := time.Duration(step * float64(time.Second))

	p.logger.Debug("Playing %.3fs-%.3fs at %.3f fps", req.Start, req.End, req.FPS)

	for i := 0; ; i++ {
		if ctx.Err() != nil {
			result.Reason = StopCancelled
			return result, nil
		}

		t := req.Start + float64(i)*step
		if t > req.End+1e-9 {
			result.Reason = StopFinished
			return result, nil
		}

		frame, err := req.Source.FrameAt(t)
		switch {
		case errors.Is(err, ports.ErrEndOfStream):
			result.Reason = StopEndOfStream
			return result, nil
		case errors.Is(err, source.ErrClosed):
			result.Reason = StopSourceClosed
			return result, nil
		case err != nil:
			p.logger.Warn("Playback stopped at %.3fs: %v", t, err)
			result.Reason = StopError
			return result, err
		}

		display(p.Thumbnail(frame.Image, req.Caption), t)
		result.FramesShown++
		result.LastPosition = t

		if !p.sleep(ctx, wait) {
			result.Reason = StopCancelled
			return result, nil
		}
	}
}
