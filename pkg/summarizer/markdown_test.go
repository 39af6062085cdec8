package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			Path:       "holiday.mp4",
			Container:  "mp4",
			Width:      1280,
			Height:     720,
			FPS:        30,
			FrameCount: 1800,
		},
		Selection: SelectionInfo{Start: 61.5, End: 64.5},
		Caption: CaptionInfo{
			Text:             "TEXT HERE",
			FontSize:         28,
			VerticalFraction: 0.85,
		},
		Output: OutputInfo{
			Path:            "holiday.gif",
			RequestedFrames: 36,
			EncodedFrames:   36,
			DelayMs:         83,
			DurationMs:      2988,
			Width:           480,
			Height:          270,
			FileSize:        1024 * 1024,
			ElapsedMs:       1200,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Export Summary",
		"holiday.mp4",
		"1280x720",
		"30.000 fps",
		"1:00.00 (1800 frames)",
		"1:01.50", // Start
		"1:04.50", // End
		"3.00 s",  // Duration
		"TEXT HERE",
		"28 px",
		"85%",
		"holiday.gif",
		"480x270",
		"83 ms",
		"1.00 MB",
		"2026-01-15T10:30:00Z",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Contains(result, "Skipped Frames") {
		t.Error("skipped frames row shown for a complete export")
	}
}

func TestMarkdownFormatter_SkippedFrames(t *testing.T) {
	s := sampleSummary()
	s.Output.EncodedFrames = 34
	s.Output.SkippedFrames = 2

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, "| Skipped Frames | 2 / 36 |") {
		t.Errorf("expected skipped frames row, got:\n%s", result)
	}
}

func TestMarkdownFormatter_EmptyCaption(t *testing.T) {
	s := sampleSummary()
	s.Caption.Text = "   "

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, "(none)") {
		t.Error("expected '(none)' for an empty caption")
	}
	if strings.Contains(result, "28 px") {
		t.Error("font size shown for an empty caption")
	}
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	s := sampleSummary()
	s.Caption.Text = "A|B"

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, `A\|B`) {
		t.Error("expected pipe in caption to be escaped")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Export Summary": "エクスポートサマリー",
			"Caption":        "キャプション",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	if !strings.Contains(result, "# エクスポートサマリー") {
		t.Error("expected translated 'Export Summary'")
	}
	if !strings.Contains(result, "## キャプション") {
		t.Error("expected translated 'Caption'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
