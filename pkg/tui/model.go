// Package tui is the interactive terminal editor: pick a range, caption
// it, watch it loop and export it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ideamans/go-l10n"
	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/controller"
	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/selection"
	"github.com/user/gifclip/pkg/timecode"
)

const (
	// statusDuration is how long transient status messages stay visible.
	statusDuration = 4 * time.Second
	// fontSizeStep is the caption size change per key press.
	fontSizeStep = 2
	// positionStep is the caption position change per key press.
	positionStep = 0.05
	// maxPreviewCols caps the preview width in terminal cells.
	maxPreviewCols = 80
)

// stepSizes are the seek steps cycled with < and >.
var stepSizes = []float64{0.1, 0.5, 1, 5, 10}

// Session is the editing session the model drives.
// *controller.Controller implements it.
type Session interface {
	Info() (ports.VideoInfo, bool)
	State() controller.State
	Selection() selection.Selection
	LastMoved() selection.Endpoint
	SetStart(t float64) (selection.Selection, error)
	SetEnd(t float64) (selection.Selection, error)
	Caption() caption.Style
	SetCaption(style caption.Style)
	ExportEligible() bool
	Preview() (image.Image, float64, error)
	TogglePlay() (controller.State, error)
	StartExport(path string) (bool, error)
	CancelExport() bool
	Events() <-chan controller.Event
}

type mode int

const (
	modeNormal mode = iota
	modeCaptionText
	modeStartTime
	modeEndTime
	modeExportPath
)

// eventMsg wraps a controller event.
type eventMsg controller.Event

// eventsClosedMsg is sent once the event stream ends.
type eventsClosedMsg struct{}

// previewMsg carries a freshly rendered preview frame.
type previewMsg struct {
	img  image.Image
	time float64
	err  error
}

// clearStatusMsg clears the status line if it is still the one identified by seq.
type clearStatusMsg struct{ seq int }

// Model is the Bubbletea model for the editor.
type Model struct {
	session   Session
	videoPath string
	styles    Styles

	width  int
	height int

	mode     mode
	input    textinput.Model
	progress progress.Model
	stepIdx  int
	showHelp bool
	quitting bool

	frame       image.Image
	frameTime   float64
	frameCols   int
	frameRender string

	exporting    bool
	exportPct    float64
	exportTarget string

	status    string
	statusErr bool
	statusSeq int
}

// NewModel creates the editor model for an opened session.
func NewModel(session Session, videoPath string, styles Styles) *Model {
	input := textinput.New()
	input.CharLimit = 256

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return &Model{
		session:   session,
		videoPath: videoPath,
		styles:    styles,
		input:     input,
		progress:  bar,
		stepIdx:   2,
		width:     maxPreviewCols + 4,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.session.Events()), m.previewCmd())
}

// waitForEvent returns a tea.Cmd that waits for the next controller event.
func waitForEvent(ch <-chan controller.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) previewCmd() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		img, t, err := s.Preview()
		return previewMsg{img: img, time: t, err: err}
	}
}

// setStatus shows msg and schedules its removal.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case previewMsg:
		if msg.err != nil {
			return m, m.setStatus(l10n.F("Preview failed: %v", msg.err), true)
		}
		if m.session.State() != controller.StatePlaying {
			m.setFrame(msg.img, msg.time)
		}
		return m, nil

	case eventMsg:
		cmd := m.handleEvent(controller.Event(msg))
		return m, tea.Batch(cmd, waitForEvent(m.session.Events()))

	case eventsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.mode != modeNormal {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) setFrame(img image.Image, t float64) {
	m.frame = img
	m.frameTime = t
	m.frameRender = ""
}

func (m *Model) handleEvent(ev controller.Event) tea.Cmd {
	switch ev.Kind {
	case controller.EventPlaybackFrame:
		m.setFrame(ev.Frame, ev.Time)
		return nil

	case controller.EventPlaybackFinished:
		cmd := m.previewCmd()
		if ev.Err != nil {
			return tea.Batch(cmd, m.setStatus(l10n.F("Playback stopped: %v", ev.Err), true))
		}
		return cmd

	case controller.EventProgress:
		m.exportPct = ev.Progress
		return nil

	case controller.EventExportDone:
		m.exporting = false
		m.exportPct = 0
		return m.setStatus(l10n.F("Saved %s (%d frames, %s)",
			ev.Result.OutputPath, ev.Result.EncodedFrames, sizeLabel(ev.Result.FileSize)), false)

	case controller.EventExportFailed:
		m.exporting = false
		m.exportPct = 0
		if errors.Is(ev.Err, context.Canceled) {
			return m.setStatus(l10n.T("Export cancelled"), false)
		}
		return m.setStatus(l10n.F("Export failed: %v", ev.Err), true)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case " ":
		if _, err := m.session.TogglePlay(); err != nil {
			return m, m.setStatus(errorLabel(err), true)
		}
		return m, nil

	case "left", "h":
		return m.nudge(selection.EndpointStart, -1)
	case "right", "l":
		return m.nudge(selection.EndpointStart, 1)
	case "shift+left", "H":
		return m.nudge(selection.EndpointEnd, -1)
	case "shift+right", "L":
		return m.nudge(selection.EndpointEnd, 1)

	case "<":
		m.stepIdx = max(0, m.stepIdx-1)
		return m, nil
	case ">":
		m.stepIdx = min(len(stepSizes)-1, m.stepIdx+1)
		return m, nil

	case "s":
		return m.openInput(modeStartTime, timecode.Format(m.session.Selection().Start))
	case "e":
		return m.openInput(modeEndTime, timecode.Format(m.session.Selection().End))
	case "t":
		return m.openInput(modeCaptionText, m.session.Caption().Text)

	case "+", "=":
		return m.updateCaption(func(s caption.Style) caption.Style {
			return s.WithFontSize(s.FontSize + fontSizeStep)
		})
	case "-":
		return m.updateCaption(func(s caption.Style) caption.Style {
			return s.WithFontSize(s.FontSize - fontSizeStep)
		})
	case "up", "k":
		return m.updateCaption(func(s caption.Style) caption.Style {
			return s.WithVerticalFraction(s.VerticalFraction - positionStep)
		})
	case "down", "j":
		return m.updateCaption(func(s caption.Style) caption.Style {
			return s.WithVerticalFraction(s.VerticalFraction + positionStep)
		})

	case "x":
		if m.exporting {
			return m, nil
		}
		if err := m.session.Selection().Eligibility(); err != nil {
			return m, m.setStatus(errorLabel(err), true)
		}
		return m.openInput(modeExportPath, orchestrator.DefaultOutputPath(m.videoPath))

	case "c", "esc":
		if m.session.CancelExport() {
			return m, m.setStatus(l10n.T("Cancelling export..."), false)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) nudge(endpoint selection.Endpoint, dir float64) (tea.Model, tea.Cmd) {
	step := stepSizes[m.stepIdx] * dir
	sel := m.session.Selection()
	var err error
	if endpoint == selection.EndpointStart {
		_, err = m.session.SetStart(sel.Start + step)
	} else {
		_, err = m.session.SetEnd(sel.End + step)
	}
	if err != nil {
		return m, m.setStatus(errorLabel(err), true)
	}
	return m, m.refreshPreview()
}

func (m *Model) updateCaption(fn func(caption.Style) caption.Style) (tea.Model, tea.Cmd) {
	m.session.SetCaption(fn(m.session.Caption()))
	return m, m.refreshPreview()
}

// refreshPreview re-renders the still frame unless playback is driving it.
func (m *Model) refreshPreview() tea.Cmd {
	if m.session.State() == controller.StatePlaying {
		return nil
	}
	return m.previewCmd()
}

func (m *Model) openInput(md mode, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch md {
	case modeCaptionText:
		m.input.Prompt = l10n.T("Caption: ")
	case modeStartTime:
		m.input.Prompt = l10n.T("Start: ")
	case modeEndTime:
		m.input.Prompt = l10n.T("End: ")
	case modeExportPath:
		m.input.Prompt = l10n.T("Save as: ")
	}
	return m, m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		value := m.input.Value()
		md := m.mode
		m.closeInput()
		return m.submitInput(md, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitInput(md mode, value string) (tea.Model, tea.Cmd) {
	switch md {
	case modeCaptionText:
		return m.updateCaption(func(s caption.Style) caption.Style {
			return s.WithText(value)
		})

	case modeStartTime, modeEndTime:
		t, err := timecode.Parse(value)
		if err != nil {
			return m, m.setStatus(l10n.F("Invalid time: %v", err), true)
		}
		if md == modeStartTime {
			_, err = m.session.SetStart(t)
		} else {
			_, err = m.session.SetEnd(t)
		}
		if err != nil {
			return m, m.setStatus(errorLabel(err), true)
		}
		return m, m.refreshPreview()

	case modeExportPath:
		path := orchestrator.WithOutputExt(strings.TrimSpace(value))
		if path == "" {
			return m, nil
		}
		started, err := m.session.StartExport(path)
		if err != nil {
			return m, m.setStatus(errorLabel(err), true)
		}
		if started {
			m.exporting = true
			m.exportPct = 0
			m.exportTarget = path
		}
		return m, nil
	}
	return m, nil
}

// errorLabel turns controller and selection errors into user-facing text.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, selection.ErrSelectionTooShort):
		return l10n.T("Selection is too short to export")
	case errors.Is(err, selection.ErrSelectionTooLong):
		return l10n.T("Selection is longer than 10 seconds")
	case errors.Is(err, controller.ErrExportInProgress):
		return l10n.T("An export is in progress")
	case errors.Is(err, controller.ErrNoSource):
		return l10n.T("No video open")
	default:
		return err.Error()
	}
}

func sizeLabel(n int64) string {
	if n < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}

// Run starts the Bubbletea program on the alternate screen.
func Run(session Session, videoPath string, styles Styles) error {
	p := tea.NewProgram(NewModel(session, videoPath, styles), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
