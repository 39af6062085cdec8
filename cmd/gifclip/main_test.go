package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/gifclip/pkg/ports"
)

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		start     string
		end       string
		endSet    bool
		wantStart float64
		wantEnd   float64
		eligible  bool
		wantErr   bool
	}{
		{"defaults", 60, "0", "", false, 0, 5, true, false},
		{"short video", 3, "0", "", false, 0, 3, true, false},
		{"start moves default end", 60, "30", "", false, 30, 35, true, false},
		{"default end clamped", 32, "30", "", false, 30, 32, true, false},
		{"explicit range", 120, "1:00", "1:04.5", true, 60, 64.5, true, false},
		{"range past the end clamps", 60, "1:00", "1:04.5", true, 60, 60, false, false},
		{"end beyond video", 60, "55", "90", true, 55, 60, true, false},
		{"bad start", 60, "abc", "", false, 0, 0, false, true},
		{"bad end", 60, "0", "1:99", true, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := resolveSelection(tt.total, tt.start, tt.end, tt.endSet)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sel.Start != tt.wantStart || sel.End != tt.wantEnd {
				t.Errorf("selection = %v-%v, want %v-%v", sel.Start, sel.End, tt.wantStart, tt.wantEnd)
			}
			if got := sel.IsExportEligible(); got != tt.eligible {
				t.Errorf("IsExportEligible() = %v, want %v", got, tt.eligible)
			}
		})
	}
}

func TestImageFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want ports.ImageFormat
	}{
		{"frame.png", ports.FormatPNG},
		{"frame.JPG", ports.FormatJPEG},
		{"out/frame.jpeg", ports.FormatJPEG},
		{"frame", ports.FormatPNG},
		{"frame.webp", ports.FormatPNG},
	}
	for _, tt := range tests {
		if got := imageFormatFor(tt.path); got != tt.want {
			t.Errorf("imageFormatFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	report := progressPrinter(&buf, "Exporting")

	report(0.5)
	report(0.501) // same percentage, no redraw
	report(1)

	out := buf.String()
	if n := strings.Count(out, "\r"); n != 2 {
		t.Errorf("redraws = %d, want 2", n)
	}
	if !strings.Contains(out, " 50%") || !strings.Contains(out, "100%") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewCLI_Commands(t *testing.T) {
	app := newCLI()
	want := []string{"edit", "export", "info", "preview", "version"}
	for _, name := range want {
		if app.Command(name) == nil {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestExport_RequiresVideo(t *testing.T) {
	app := newCLI()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out

	if err := app.Run([]string{"gifclip", "export"}); err == nil {
		t.Error("expected error without a video argument")
	}
}
