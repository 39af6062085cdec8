package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ideamans/go-l10n"
	"github.com/user/gifclip/pkg/controller"
	"github.com/user/gifclip/pkg/selection"
	"github.com/user/gifclip/pkg/timecode"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	st := m.styles
	var sections []string

	header := st.Title.Render("gifclip") + "  " + st.Label.Render(filepath.Base(m.videoPath))
	if info, ok := m.session.Info(); ok {
		header += st.Dim.Render(fmt.Sprintf("  %dx%d  %.2f fps  %s",
			info.Width, info.Height, info.FPS, timecode.Format(info.DurationSeconds())))
	}
	sections = append(sections, header)

	if preview := m.renderPreview(); preview != "" {
		sections = append(sections, st.Border.Render(preview))
	}

	sections = append(sections, m.renderRange(), m.renderCaption())

	if m.exporting {
		label := l10n.F("Exporting to %s", filepath.Base(m.exportTarget))
		sections = append(sections, st.Label.Render(label)+"  "+m.progress.ViewAs(m.exportPct))
	}

	if m.mode != modeNormal {
		sections = append(sections, m.input.View())
	} else if m.status != "" {
		if m.statusErr {
			sections = append(sections, st.Error.Render(m.status))
		} else {
			sections = append(sections, st.Success.Render(m.status))
		}
	}

	sections = append(sections, st.Dim.Render(m.shortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// previewCols returns the preview width for the current terminal size.
func (m *Model) previewCols() int {
	cols := min(maxPreviewCols, m.width-4)
	if m.frame == nil || cols <= 0 {
		return cols
	}
	if m.height > 0 {
		// Leave room for the rest of the screen.
		b := m.frame.Bounds()
		rows := max(4, m.height-14)
		if limit := rows * 2 * b.Dx() / max(1, b.Dy()); limit < cols {
			cols = limit
		}
	}
	return cols
}

func (m *Model) renderPreview() string {
	if m.frame == nil {
		return ""
	}
	cols := m.previewCols()
	if cols <= 0 {
		return ""
	}
	if m.frameRender == "" || m.frameCols != cols {
		m.frameRender = RenderHalfBlock(m.frame, cols)
		m.frameCols = cols
	}
	return m.frameRender
}

func (m *Model) renderRange() string {
	st := m.styles
	sel := m.session.Selection()
	total := 0.0
	if info, ok := m.session.Info(); ok {
		total = info.DurationSeconds()
	}

	width := max(10, min(maxPreviewCols, m.width-4))
	bar, marker := renderTimeline(st, sel.Start, sel.End, m.frameTime, total, width)

	duration := l10n.F("Duration: %.2fs", sel.Duration())
	var durationLine string
	if sel.IsExportEligible() {
		durationLine = st.Value.Render(duration)
	} else {
		durationLine = st.Error.Render(duration) + "  " + st.Dim.Render(l10n.T("(export disabled)"))
	}

	state := ""
	switch m.session.State() {
	case controller.StatePlaying:
		state = st.Key.Render("  ▶ " + l10n.T("playing"))
	case controller.StateExporting:
		state = st.Key.Render("  ● " + l10n.T("exporting"))
	}

	startLabel, endLabel := st.Label, st.Label
	if m.session.LastMoved() == selection.EndpointStart {
		startLabel = st.Key
	} else {
		endLabel = st.Key
	}

	info := fmt.Sprintf("%s %s   %s %s   %s %s",
		startLabel.Render(l10n.T("Start")), st.Value.Render(timecode.Format(sel.Start)),
		endLabel.Render(l10n.T("End")), st.Value.Render(timecode.Format(sel.End)),
		st.Label.Render(l10n.T("Step")), st.Value.Render(fmt.Sprintf("%gs", stepSizes[m.stepIdx])))

	return strings.Join([]string{bar, marker, info + state, durationLine}, "\n")
}

func (m *Model) renderCaption() string {
	st := m.styles
	style := m.session.Caption()
	text := style.Text
	if strings.TrimSpace(text) == "" {
		text = l10n.T("(none)")
	}
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		st.Label.Render(l10n.T("Caption")), st.Value.Render(text),
		st.Label.Render(l10n.T("Size")), st.Value.Render(fmt.Sprintf("%d", style.FontSize)),
		st.Label.Render(l10n.T("Position")), st.Value.Render(fmt.Sprintf("%.0f%%", style.VerticalFraction*100)))
}

func (m *Model) shortHelp() string {
	if m.exporting {
		return l10n.T("c cancel export · q quit · ? help")
	}
	return l10n.T("space play · ←/→ start · shift+←/→ end · t text · x export · q quit · ? help")
}

// helpRows lists the key bindings shown by the help overlay.
var helpRows = [][2]string{
	{"space", "Play or stop the selection"},
	{"← → / h l", "Move start by one step"},
	{"shift+← → / H L", "Move end by one step"},
	{"< >", "Change step size"},
	{"s / e", "Type start / end time"},
	{"t", "Edit caption text"},
	{"+ / -", "Caption size"},
	{"↑ ↓ / k j", "Caption position"},
	{"x", "Export GIF"},
	{"c / esc", "Cancel export"},
	{"q", "Quit"},
}

func (m *Model) renderHelp() string {
	st := m.styles
	lines := []string{st.Title.Render(l10n.T("Keys")), ""}
	for _, row := range helpRows {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			st.Key.Render(fmt.Sprintf("%-16s", row[0])), l10n.T(row[1])))
	}
	lines = append(lines, "", st.Dim.Render(l10n.T("Press any key to close")))
	return st.Border.Render(strings.Join(lines, "\n"))
}
