package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ideamans/go-l10n"
	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/config"
	"github.com/user/gifclip/pkg/controller"
	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/selection"
)

// fakeSession records calls made by the model.
type fakeSession struct {
	info     ports.VideoInfo
	selector *selection.Selector
	style    caption.Style
	state    controller.State
	events   chan controller.Event

	previewImg image.Image
	previewErr error

	StartExportErr error
	ExportPaths    []string
	CancelCalls    int
	ToggleCalls    int
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		info:       ports.VideoInfo{Path: "clip.mp4", FrameCount: 300, FPS: 30, Width: 64, Height: 48},
		selector:   selection.New(10),
		style:      caption.DefaultStyle(),
		events:     make(chan controller.Event, 8),
		previewImg: image.NewRGBA(image.Rect(0, 0, 64, 48)),
	}
}

func (f *fakeSession) Info() (ports.VideoInfo, bool)   { return f.info, true }
func (f *fakeSession) State() controller.State         { return f.state }
func (f *fakeSession) Selection() selection.Selection  { return f.selector.Selection() }
func (f *fakeSession) LastMoved() selection.Endpoint   { return f.selector.LastMoved() }
func (f *fakeSession) Caption() caption.Style          { return f.style }
func (f *fakeSession) SetCaption(style caption.Style)  { f.style = style }
func (f *fakeSession) Events() <-chan controller.Event { return f.events }

func (f *fakeSession) SetStart(t float64) (selection.Selection, error) {
	return f.selector.SetStart(t), nil
}

func (f *fakeSession) SetEnd(t float64) (selection.Selection, error) {
	return f.selector.SetEnd(t), nil
}

func (f *fakeSession) ExportEligible() bool {
	return f.selector.Selection().IsExportEligible()
}

func (f *fakeSession) Preview() (image.Image, float64, error) {
	return f.previewImg, f.selector.PreviewTime(), f.previewErr
}

func (f *fakeSession) TogglePlay() (controller.State, error) {
	f.ToggleCalls++
	if f.state == controller.StatePlaying {
		f.state = controller.StateIdle
	} else {
		f.state = controller.StatePlaying
	}
	return f.state, nil
}

func (f *fakeSession) StartExport(path string) (bool, error) {
	if f.StartExportErr != nil {
		return false, f.StartExportErr
	}
	f.ExportPaths = append(f.ExportPaths, path)
	f.state = controller.StateExporting
	return true, nil
}

func (f *fakeSession) CancelExport() bool {
	f.CancelCalls++
	return f.state == controller.StateExporting
}

func newTestModel(s *fakeSession) *Model {
	return NewModel(s, "/videos/clip.mp4", NewStyles(config.Defaults().Theme))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "shift+right":
		return tea.KeyMsg{Type: tea.KeyShiftRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_NudgeEndpoints(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	_, cmd := m.Update(key("right"))
	if got := s.Selection().Start; got != 1 {
		t.Errorf("start = %v, want 1", got)
	}
	if cmd == nil {
		t.Error("expected a preview refresh after moving start")
	}

	m.Update(key("<"))
	m.Update(key("shift+right"))
	if got := s.Selection().End; got != 5.5 {
		t.Errorf("end = %v, want 5.5", got)
	}
	if s.LastMoved() != selection.EndpointEnd {
		t.Errorf("last moved = %v, want end", s.LastMoved())
	}
}

func TestModel_NoPreviewRefreshWhilePlaying(t *testing.T) {
	s := newFakeSession()
	s.state = controller.StatePlaying
	m := newTestModel(s)

	if _, cmd := m.Update(key("+")); cmd != nil {
		t.Error("expected no preview command while playing")
	}
	if s.style.FontSize != caption.DefaultFontSize+fontSizeStep {
		t.Errorf("font size = %d, want %d", s.style.FontSize, caption.DefaultFontSize+fontSizeStep)
	}
}

func TestModel_TogglePlay(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	m.Update(key(" "))
	if s.ToggleCalls != 1 || s.state != controller.StatePlaying {
		t.Errorf("toggle calls = %d, state = %v", s.ToggleCalls, s.state)
	}
}

func TestModel_ExportFlow(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	m.Update(key("x"))
	if m.mode != modeExportPath {
		t.Fatalf("mode = %v, want export path prompt", m.mode)
	}
	if got := m.input.Value(); got != "/videos/clip.gif" {
		t.Errorf("default path = %q, want /videos/clip.gif", got)
	}

	m.input.SetValue("/tmp/loop")
	m.Update(key("enter"))

	if len(s.ExportPaths) != 1 || s.ExportPaths[0] != "/tmp/loop.gif" {
		t.Fatalf("export paths = %v, want [/tmp/loop.gif]", s.ExportPaths)
	}
	if !m.exporting || m.mode != modeNormal {
		t.Errorf("exporting = %v, mode = %v", m.exporting, m.mode)
	}

	m.Update(eventMsg{Kind: controller.EventProgress, Progress: 0.5})
	if m.exportPct != 0.5 {
		t.Errorf("progress = %v, want 0.5", m.exportPct)
	}
	if !strings.Contains(m.View(), "loop.gif") {
		t.Error("expected export target in view")
	}

	m.Update(eventMsg{Kind: controller.EventExportDone, Result: orchestrator.ExportResult{
		OutputPath: "/tmp/loop.gif", EncodedFrames: 36, FileSize: 2048,
	}})
	if m.exporting {
		t.Error("still exporting after done event")
	}
	if !strings.Contains(m.status, "/tmp/loop.gif") || m.statusErr {
		t.Errorf("status = %q (err=%v)", m.status, m.statusErr)
	}
}

func TestModel_ExportRejectedForIneligibleRange(t *testing.T) {
	s := newFakeSession()
	s.selector.SetEnd(0.1)
	m := newTestModel(s)

	m.Update(key("x"))
	if m.mode != modeNormal {
		t.Error("export prompt opened for an ineligible range")
	}
	if !m.statusErr || m.status != l10n.T("Selection is too short to export") {
		t.Errorf("status = %q (err=%v)", m.status, m.statusErr)
	}
	if !strings.Contains(m.View(), l10n.F("Duration: %.2fs", 0.1)) {
		t.Error("expected duration label in view")
	}
}

func TestModel_ExportCancelled(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)
	m.exporting = true
	s.state = controller.StateExporting

	m.Update(key("c"))
	if s.CancelCalls != 1 {
		t.Errorf("cancel calls = %d, want 1", s.CancelCalls)
	}

	m.Update(eventMsg{Kind: controller.EventExportFailed, Err: context.Canceled})
	if m.exporting || m.statusErr {
		t.Errorf("exporting = %v, statusErr = %v", m.exporting, m.statusErr)
	}
	if m.status != l10n.T("Export cancelled") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_ExportFailedShowsError(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)
	m.exporting = true

	m.Update(eventMsg{Kind: controller.EventExportFailed, Err: orchestrator.ErrEmptyFrameSequence})
	if !m.statusErr || !strings.Contains(m.status, "no frames") {
		t.Errorf("status = %q (err=%v)", m.status, m.statusErr)
	}
}

func TestModel_CaptionText(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	m.Update(key("t"))
	if m.mode != modeCaptionText || m.input.Value() != caption.DefaultText {
		t.Fatalf("mode = %v, value = %q", m.mode, m.input.Value())
	}
	m.input.SetValue("HELLO")
	m.Update(key("enter"))

	if s.style.Text != "HELLO" {
		t.Errorf("caption = %q, want HELLO", s.style.Text)
	}
}

func TestModel_EscDiscardsInput(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	m.Update(key("t"))
	m.input.SetValue("discarded")
	m.Update(key("esc"))

	if m.mode != modeNormal || s.style.Text != caption.DefaultText {
		t.Errorf("mode = %v, caption = %q", m.mode, s.style.Text)
	}
}

func TestModel_TypedTimes(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	m.Update(key("s"))
	m.input.SetValue("0:01.5")
	m.Update(key("enter"))
	if got := s.Selection().Start; got != 1.5 {
		t.Errorf("start = %v, want 1.5", got)
	}

	m.Update(key("e"))
	m.input.SetValue("nonsense")
	m.Update(key("enter"))
	if !m.statusErr {
		t.Error("expected an error status for an invalid time")
	}
	if got := s.Selection().End; got != selection.DefaultEnd {
		t.Errorf("end = %v, want unchanged", got)
	}
}

func TestModel_PreviewMessages(t *testing.T) {
	s := newFakeSession()
	m := newTestModel(s)

	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	m.Update(previewMsg{img: img, time: 2})
	if m.frame != img || m.frameTime != 2 {
		t.Error("preview frame not stored")
	}

	s.state = controller.StatePlaying
	m.Update(previewMsg{img: image.NewRGBA(image.Rect(0, 0, 8, 6)), time: 3})
	if m.frame != img {
		t.Error("still preview replaced a playback frame")
	}

	m.Update(eventMsg{Kind: controller.EventPlaybackFrame, Frame: img, Time: 4})
	if m.frameTime != 4 {
		t.Errorf("frame time = %v, want 4", m.frameTime)
	}

	m.Update(previewMsg{err: errors.New("decode failed")})
	if !m.statusErr {
		t.Error("expected error status for failed preview")
	}
}

func TestModel_StatusClears(t *testing.T) {
	m := newTestModel(newFakeSession())
	m.setStatus("first", false)
	m.setStatus("second", false)

	m.Update(clearStatusMsg{seq: 1})
	if m.status != "second" {
		t.Errorf("stale clear removed the current status: %q", m.status)
	}
	m.Update(clearStatusMsg{seq: 2})
	if m.status != "" {
		t.Errorf("status = %q, want cleared", m.status)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(newFakeSession())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModel_WaitForEvent(t *testing.T) {
	ch := make(chan controller.Event, 1)
	ch <- controller.Event{Kind: controller.EventProgress, Progress: 0.25}

	msg := waitForEvent(ch)()
	ev, ok := msg.(eventMsg)
	if !ok || ev.Progress != 0.25 {
		t.Errorf("msg = %#v", msg)
	}

	close(ch)
	if _, ok := waitForEvent(ch)().(eventsClosedMsg); !ok {
		t.Error("expected eventsClosedMsg on closed stream")
	}
}

func TestErrorLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{selection.ErrSelectionTooShort, "Selection is too short to export"},
		{selection.ErrSelectionTooLong, "Selection is longer than 10 seconds"},
		{controller.ErrExportInProgress, "An export is in progress"},
		{controller.ErrNoSource, "No video open"},
		{errors.New("other"), "other"},
	}
	for _, tt := range tests {
		if got := errorLabel(tt.err); got != l10n.T(tt.want) {
			t.Errorf("errorLabel(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRenderHalfBlock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 0, A: 255})
		}
	}

	out := RenderHalfBlock(img, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, want 4", i, w)
		}
		if strings.Count(line, "▀") != 4 {
			t.Errorf("line %d has %d half blocks, want 4", i, strings.Count(line, "▀"))
		}
	}

	if RenderHalfBlock(nil, 4) != "" {
		t.Error("expected empty output for nil image")
	}
	if RenderHalfBlock(img, 0) != "" {
		t.Error("expected empty output for zero width")
	}
}

func TestRenderTimeline(t *testing.T) {
	st := NewStyles(config.Defaults().Theme)
	bar, marker := renderTimeline(st, 2, 4, 3, 10, 21)

	if w := lipgloss.Width(bar); w != 21 {
		t.Errorf("bar width = %d, want 21", w)
	}
	if !strings.Contains(bar, "[") || !strings.Contains(bar, "]") {
		t.Errorf("bar missing range brackets: %q", bar)
	}
	if strings.Index(bar, "[") > strings.Index(bar, "]") {
		t.Error("start bracket after end bracket")
	}
	if got := lipgloss.Width(marker); got != 7 {
		t.Errorf("marker width = %d, want 7 (playhead at cell 6)", got)
	}
}
