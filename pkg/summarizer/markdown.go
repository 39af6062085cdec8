package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/gifclip/pkg/timecode"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the report footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Export Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	f.header(&b)
	f.row(&b, t("File"), valueOr(s.Source.Path, "-"))
	if s.Source.Container != "" {
		f.row(&b, t("Container"), s.Source.Container)
	}
	if s.Source.Width > 0 && s.Source.Height > 0 {
		f.row(&b, t("Resolution"), fmt.Sprintf("%dx%d", s.Source.Width, s.Source.Height))
	}
	if s.Source.FPS > 0 {
		f.row(&b, t("Frame Rate"), fmt.Sprintf("%.3f fps", s.Source.FPS))
		f.row(&b, t("Length"), fmt.Sprintf("%s (%d %s)",
			timecode.Format(s.Source.DurationSeconds()), s.Source.FrameCount, t("frames")))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Selection"))
	f.header(&b)
	f.row(&b, t("Start"), timecode.Format(s.Selection.Start))
	f.row(&b, t("End"), timecode.Format(s.Selection.End))
	f.row(&b, t("Duration"), fmt.Sprintf("%.2f s", s.Selection.End-s.Selection.Start))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Caption"))
	f.header(&b)
	if strings.TrimSpace(s.Caption.Text) == "" {
		f.row(&b, t("Text"), t("(none)"))
	} else {
		f.row(&b, t("Text"), escapeCell(s.Caption.Text))
		f.row(&b, t("Font Size"), fmt.Sprintf("%d px", s.Caption.FontSize))
		f.row(&b, t("Position"), fmt.Sprintf("%.0f%%", s.Caption.VerticalFraction*100))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	f.header(&b)
	f.row(&b, t("File"), valueOr(s.Output.Path, "-"))
	f.row(&b, t("Frames"), fmt.Sprintf("%d", s.Output.EncodedFrames))
	if s.Output.SkippedFrames > 0 {
		f.row(&b, t("Skipped Frames"), fmt.Sprintf("%d / %d", s.Output.SkippedFrames, s.Output.RequestedFrames))
	}
	if s.Output.Width > 0 && s.Output.Height > 0 {
		f.row(&b, t("Size"), fmt.Sprintf("%dx%d", s.Output.Width, s.Output.Height))
	}
	f.row(&b, t("Frame Delay"), fmt.Sprintf("%d ms", s.Output.DelayMs))
	if s.Output.DurationMs > 0 {
		f.row(&b, t("Loop Length"), fmt.Sprintf("%d ms", s.Output.DurationMs))
	}
	f.row(&b, t("File Size"), formatBytes(s.Output.FileSize))
	if s.Output.ElapsedMs > 0 {
		f.row(&b, t("Export Time"), fmt.Sprintf("%d ms", s.Output.ElapsedMs))
	}
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" (gifclip %s)", f.version)
	}
	b.WriteString(footer)
	b.WriteString("\n")

	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|---|---|\n")
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
