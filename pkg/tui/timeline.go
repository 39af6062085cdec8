package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTimeline draws the selected range over the video length.
// Returns the bar and a marker row with the playhead (or preview) position.
func renderTimeline(st Styles, start, end, pos, total float64, width int) (string, string) {
	if width < 10 {
		width = 10
	}
	cell := func(t float64) int {
		if total <= 0 {
			return 0
		}
		i := int(math.Round(float64(width-1) * t / total))
		return max(0, min(width-1, i))
	}

	s, e, p := cell(start), cell(end), cell(pos)
	lo, hi := min(s, e), max(s, e)

	inRange := lipgloss.NewStyle().Foreground(st.Accent)
	outRange := lipgloss.NewStyle().Foreground(st.Muted)

	var bar strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == s:
			bar.WriteString(inRange.Bold(true).Render("["))
		case i == e:
			bar.WriteString(inRange.Bold(true).Render("]"))
		case i > lo && i < hi:
			bar.WriteString(inRange.Render("━"))
		default:
			bar.WriteString(outRange.Render("─"))
		}
	}

	marker := strings.Repeat(" ", p) + inRange.Render("▲")
	return bar.String(), marker
}
