package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/gifclip/pkg/ports"
)

func TestWriterLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelWarn, &buf)

	log.Debug("debug line %d", 1)
	log.Info("info line %d", 2)
	log.Warn("warn line %d", 3)
	log.Error("error line %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn line 3") {
		t.Errorf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "error line 4") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestWriterLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelDebug, &buf).WithComponent("sample")

	log.Debug("frame %d skipped", 7)

	if got := strings.TrimSpace(buf.String()); got != "[sample] frame 7 skipped" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestWriterLogger_QuietSuppressesEverything(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelQuiet, &buf)

	log.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    ports.LogLevel
		wantErr bool
	}{
		{"debug", ports.LevelDebug, false},
		{"INFO", ports.LevelInfo, false},
		{"warning", ports.LevelWarn, false},
		{"error", ports.LevelError, false},
		{"quiet", ports.LevelQuiet, false},
		{"verbose", ports.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ports.ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
