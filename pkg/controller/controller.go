// Package controller owns the editing session: the open source, the
// selection, the caption and the playback and export tasks. All state
// changes go through it; background work reports back as Events.
package controller

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/playback"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/selection"
	"github.com/user/gifclip/pkg/source"
)

var (
	// ErrExportInProgress is returned for operations not allowed during an export.
	ErrExportInProgress = errors.New("controller: export in progress")

	// ErrNoSource is returned when no video is open.
	ErrNoSource = errors.New("controller: no video open")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("controller: closed")
)

// DefaultEventBuffer is the capacity of the events channel.
const DefaultEventBuffer = 64

// Exporter runs export jobs.
type Exporter interface {
	Export(ctx context.Context, req orchestrator.ExportRequest) (orchestrator.ExportResult, error)
}

// Player runs playback and renders preview thumbnails.
type Player interface {
	Run(ctx context.Context, req playback.Request, display ports.DisplayFunc) (playback.Result, error)
	Thumbnail(img image.Image, style caption.Style) image.Image
}

// Options configures a Controller.
type Options struct {
	NewDecoder  func() ports.FrameDecoder
	Exporter    Exporter
	Player      Player
	Logger      ports.Logger
	Caption     caption.Style // Initial caption
	EventBuffer int
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Controller is safe for concurrent use.
type Controller struct {
	newDecoder func() ports.FrameDecoder
	exporter   Exporter
	player     Player
	logger     ports.Logger

	mu       sync.Mutex
	src      *source.Source
	selector *selection.Selector
	style    caption.Style
	state    State
	play     *task
	export   *task
	closed   bool

	events  chan Event
	closing chan struct{}
	wg      sync.WaitGroup
}

// New creates a Controller with no video open.
func New(opts Options) *Controller {
	buf := opts.EventBuffer
	if buf <= 0 {
		buf = DefaultEventBuffer
	}
	style := opts.Caption
	if style == (caption.Style{}) {
		style = caption.DefaultStyle()
	}
	return &Controller{
		newDecoder: opts.NewDecoder,
		exporter:   opts.Exporter,
		player:     opts.Player,
		logger:     opts.Logger.WithComponent("controller"),
		selector:   selection.New(0),
		style:      style,
		events:     make(chan Event, buf),
		closing:    make(chan struct{}),
	}
}

// Events returns the event stream. It is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Open replaces the current video. On failure no video is open.
func (c *Controller) Open(path string) (ports.VideoInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ports.VideoInfo{}, ErrClosed
	}
	if c.state == StateExporting {
		return ports.VideoInfo{}, ErrExportInProgress
	}

	c.stopPlaybackLocked()
	if c.src != nil {
		c.src.Close()
		c.src = nil
	}
	c.selector.Reset(0)

	src, err := source.Open(c.newDecoder(), path)
	if err != nil {
		c.logger.Error("Failed to open %s: %v", path, err)
		return ports.VideoInfo{}, err
	}

	c.src = src
	c.selector.Reset(src.Duration())
	info := src.Info()
	c.logger.Info("Opened %s (%d frames, %.2f fps, %.2fs)", path, info.FrameCount, info.FPS, src.Duration())
	return info, nil
}

// Info returns the open video's metadata.
func (c *Controller) Info() (ports.VideoInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.src == nil {
		return ports.VideoInfo{}, false
	}
	return c.src.Info(), true
}

// State returns the current activity.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetStart moves the start of the selection.
func (c *Controller) SetStart(t float64) (selection.Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkSourceLocked(); err != nil {
		return selection.Selection{}, err
	}
	return c.selector.SetStart(t), nil
}

// SetEnd moves the end of the selection.
func (c *Controller) SetEnd(t float64) (selection.Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkSourceLocked(); err != nil {
		return selection.Selection{}, err
	}
	return c.selector.SetEnd(t), nil
}

// Selection returns the current selection.
func (c *Controller) Selection() selection.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.Selection()
}

// LastMoved returns the endpoint moved most recently.
func (c *Controller) LastMoved() selection.Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.LastMoved()
}

// ExportEligible reports whether the selection can be exported.
func (c *Controller) ExportEligible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src != nil && c.selector.Selection().IsExportEligible()
}

// SetCaption replaces the caption used by preview, playback and export.
// A running playback or export keeps the caption it started with.
func (c *Controller) SetCaption(style caption.Style) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.style = caption.NewStyle(style.Text, style.FontSize, style.VerticalFraction)
}

// Caption returns the current caption.
func (c *Controller) Caption() caption.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

// Preview returns the captioned thumbnail of the frame at the most
// recently moved endpoint, and that endpoint's time.
func (c *Controller) Preview() (image.Image, float64, error) {
	c.mu.Lock()
	if err := c.checkSourceLocked(); err != nil {
		c.mu.Unlock()
		return nil, 0, err
	}
	src := c.src
	t := c.selector.PreviewTime()
	style := c.style
	c.mu.Unlock()

	frame, err := src.FrameAt(t)
	if err != nil {
		return nil, t, err
	}
	return c.player.Thumbnail(frame.Image, style), t, nil
}

// TogglePlay starts playback of the selection, or stops it.
func (c *Controller) TogglePlay() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.state, ErrClosed
	}
	if c.state == StateExporting {
		return c.state, ErrExportInProgress
	}
	if c.state == StatePlaying {
		c.stopPlaybackLocked()
		return c.state, nil
	}
	if c.src == nil {
		return c.state, ErrNoSource
	}

	sel := c.selector.Selection()
	req := playback.Request{
		Source:  c.src,
		Start:   sel.Start,
		End:     sel.End,
		FPS:     c.src.FPS(),
		Caption: c.style,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}
	c.play = t
	c.setStateLocked(StatePlaying)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := c.player.Run(ctx, req, func(img image.Image, ts float64) {
			c.notify(Event{Kind: EventPlaybackFrame, Frame: img, Time: ts})
		})
		cancel()
		close(t.done)

		c.mu.Lock()
		if c.play == t {
			c.play = nil
			c.setStateLocked(StateIdle)
		}
		c.mu.Unlock()

		c.deliver(Event{Kind: EventPlaybackFinished, Stop: result.Reason, Err: err})
	}()

	return c.state, nil
}

// StartExport exports the selection to path in the background. While an
// export is running the call does nothing and returns false. Playback is
// stopped first.
func (c *Controller) StartExport(path string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrClosed
	}
	if c.state == StateExporting {
		c.logger.Debug("Export already running, ignoring request")
		return false, nil
	}
	if c.src == nil {
		return false, ErrNoSource
	}
	sel := c.selector.Selection()
	if err := sel.Eligibility(); err != nil {
		return false, err
	}
	if path == "" {
		return false, fmt.Errorf("controller: no output path")
	}

	c.stopPlaybackLocked()

	req := orchestrator.ExportRequest{
		Source:     c.src,
		Selection:  sel,
		Caption:    c.style,
		OutputPath: path,
		OnProgress: func(f float64) {
			c.notify(Event{Kind: EventProgress, Progress: f})
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}
	c.export = t
	c.setStateLocked(StateExporting)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := c.exporter.Export(ctx, req)
		cancel()
		close(t.done)

		c.mu.Lock()
		if c.export == t {
			c.export = nil
			c.setStateLocked(StateIdle)
		}
		c.mu.Unlock()

		if err != nil {
			c.logger.Warn("Export failed: %v", err)
			c.deliver(Event{Kind: EventExportFailed, Err: err})
			return
		}
		c.deliver(Event{Kind: EventExportDone, Result: result})
	}()

	return true, nil
}

// CancelExport asks a running export to stop. It reports whether an
// export was running.
func (c *Controller) CancelExport() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.export == nil {
		return false
	}
	c.export.cancel()
	return true
}

// Close stops background work, waits for it and closes the video.
// It is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.play != nil {
		c.play.cancel()
	}
	if c.export != nil {
		c.export.cancel()
	}
	close(c.closing)
	src := c.src
	c.src = nil
	c.mu.Unlock()

	c.wg.Wait()

	var err error
	if src != nil {
		err = src.Close()
	}
	close(c.events)
	return err
}

func (c *Controller) checkSourceLocked() error {
	if c.closed {
		return ErrClosed
	}
	if c.src == nil {
		return ErrNoSource
	}
	return nil
}

// stopPlaybackLocked cancels playback and waits for the loop to exit.
// The loop closes done before taking c.mu, so waiting here cannot deadlock.
func (c *Controller) stopPlaybackLocked() {
	if c.play == nil {
		return
	}
	t := c.play
	t.cancel()
	<-t.done
	c.play = nil
	c.setStateLocked(StateIdle)
}

func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.state = s
	c.notify(Event{Kind: EventStateChanged, State: s})
}

// notify sends ev unless the buffer is full.
func (c *Controller) notify(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

// deliver sends ev, giving up only when the controller is closing.
func (c *Controller) deliver(ev Event) {
	select {
	case c.events <- ev:
	case <-c.closing:
	}
}
