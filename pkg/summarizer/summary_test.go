package summarizer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/gifclip/pkg/adapters/osfilesystem"
	"github.com/user/gifclip/pkg/mocks"
	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/ports"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithSource(t *testing.T) {
	summary := NewBuilder().
		WithSource(ports.VideoInfo{
			Path:       "clip.mp4",
			Container:  "mp4",
			FrameCount: 300,
			FPS:        30,
			Width:      1280,
			Height:     720,
		}).
		Build()

	if summary.Source.Path != "clip.mp4" {
		t.Errorf("expected path 'clip.mp4', got '%s'", summary.Source.Path)
	}
	if got := summary.Source.DurationSeconds(); got != 10 {
		t.Errorf("expected duration 10, got %v", got)
	}
}

func TestBuilder_WithExport(t *testing.T) {
	summary := NewBuilder().
		WithCaption("HELLO", 28, 0.85).
		WithExport(orchestrator.ExportResult{
			OutputPath:      "out.gif",
			Start:           1,
			End:             4,
			RequestedFrames: 36,
			EncodedFrames:   35,
			SkippedFrames:   1,
			DelayMs:         83,
			DurationMs:      2905,
			Width:           480,
			Height:          270,
			FileSize:        2048,
			Elapsed:         1500 * time.Millisecond,
		}).
		Build()

	if summary.Selection.Start != 1 || summary.Selection.End != 4 {
		t.Errorf("selection = %+v, want 1-4", summary.Selection)
	}
	if summary.Output.EncodedFrames != 35 || summary.Output.SkippedFrames != 1 {
		t.Errorf("output frames = %+v", summary.Output)
	}
	if summary.Output.ElapsedMs != 1500 {
		t.Errorf("expected ElapsedMs 1500, got %d", summary.Output.ElapsedMs)
	}
	if summary.Caption.Text != "HELLO" {
		t.Errorf("expected caption 'HELLO', got '%s'", summary.Caption.Text)
	}
}

func TestWriter_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "summary.md")
	writer := NewWriter(FormatFunc(func(s *Summary) string {
		return "output: " + s.Output.Path
	}), osfilesystem.New())

	summary := NewBuilder().WithExport(orchestrator.ExportResult{OutputPath: "out.gif"}).Build()
	if err := writer.Write(path, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(data), "output: out.gif") {
		t.Errorf("unexpected content %q", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file should be gone, stat err = %v", err)
	}
}

func TestWriter_RenamesIntoPlace(t *testing.T) {
	fs := mocks.NewFileSystem()
	writer := NewWriter(FormatFunc(func(*Summary) string { return "report" }), fs)

	if err := writer.Write("out/summary.md", NewSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := fs.GetFile("out/summary.md")
	if !ok || string(data) != "report" {
		t.Errorf("summary content = %q (exists %v)", data, ok)
	}
	if len(fs.Renames) != 1 || fs.Renames[0] != [2]string{"out/summary.md.tmp", "out/summary.md"} {
		t.Errorf("unexpected renames %v", fs.Renames)
	}
}

func TestWriter_RenameFailureRemovesTemp(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.RenameFunc = func(oldPath, newPath string) error {
		return errors.New("rename refused")
	}
	writer := NewWriter(FormatFunc(func(*Summary) string { return "report" }), fs)

	if err := writer.Write("summary.md", NewSummary()); err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := fs.GetFile("summary.md.tmp"); ok {
		t.Error("temporary file should be removed after a failed rename")
	}
	if _, ok := fs.GetFile("summary.md"); ok {
		t.Error("summary should not exist after a failed rename")
	}
}
