package source

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/user/gifclip/pkg/mocks"
	"github.com/user/gifclip/pkg/ports"
)

func openFake(t *testing.T, frames int, fps float64) (*Source, *mocks.FrameDecoder) {
	t.Helper()
	dec := mocks.NewFrameDecoder(frames, fps, 32, 24)
	src, err := Open(dec, "clip.mp4")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return src, dec
}

func TestOpen(t *testing.T) {
	src, dec := openFake(t, 90, 30)

	if src.Duration() != 3 {
		t.Errorf("Duration = %f, want 3", src.Duration())
	}
	if src.Path() != "clip.mp4" {
		t.Errorf("Path = %q", src.Path())
	}
	if len(dec.OpenCalls) != 1 || dec.OpenCalls[0] != "clip.mp4" {
		t.Errorf("unexpected open calls: %v", dec.OpenCalls)
	}
}

func TestOpen_Failure(t *testing.T) {
	dec := mocks.NewFrameDecoder(10, 10, 8, 8)
	dec.OpenErr = errors.New("moov atom not found")

	_, err := Open(dec, "broken.mp4")
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if !errors.Is(err, dec.OpenErr) {
		t.Error("expected the decoder error to be wrapped")
	}
	if !dec.Closed() {
		t.Error("expected decoder to be closed after a failed open")
	}
}

func TestOpen_NoFrames(t *testing.T) {
	dec := mocks.NewFrameDecoder(0, 25, 8, 8)

	if _, err := Open(dec, "empty.mp4"); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if !dec.Closed() {
		t.Error("expected decoder to be closed")
	}
}

func TestFrameAt_IndexMapping(t *testing.T) {
	src, _ := openFake(t, 90, 30)

	tests := []struct {
		t    float64
		want int
	}{
		{0, 0},
		{-1, 0},
		{0.0333, 0},
		{0.034, 1},
		{1.5, 45},
		{2.999, 89},
		{3, 89},
		{100, 89},
	}
	for _, tt := range tests {
		f, err := src.FrameAt(tt.t)
		if err != nil {
			t.Fatalf("FrameAt(%f) failed: %v", tt.t, err)
		}
		if f.Index != tt.want {
			t.Errorf("FrameAt(%f).Index = %d, want %d", tt.t, f.Index, tt.want)
		}
		if got := mocks.FrameIndex(f.Image); got != tt.want {
			t.Errorf("FrameAt(%f) decoded frame %d, want %d", tt.t, got, tt.want)
		}
		if f.TimeSeconds != tt.t {
			t.Errorf("FrameAt(%f).TimeSeconds = %f", tt.t, f.TimeSeconds)
		}
	}
}

func TestIndexAt_BoundaryTolerance(t *testing.T) {
	for _, fps := range []float64{12, 24, 29.97, 30} {
		src, _ := openFake(t, 600, fps)
		for k := 1; k < 120; k++ {
			exact := float64(k) / fps
			if got := src.IndexAt(exact); got != k {
				t.Errorf("fps %v: IndexAt(%d/fps) = %d, want %d", fps, k, got, k)
			}
			// Computed the way the sampler does it, with accumulated error.
			computed := float64(k) * (1 / fps)
			if got := src.IndexAt(computed); got != k {
				t.Errorf("fps %v: IndexAt(%d*(1/fps)) = %d, want %d", fps, k, got, k)
			}
			// A millionth of a frame early is still the previous frame.
			if got := src.IndexAt(exact - 1e-6/fps); got != k-1 {
				t.Errorf("fps %v: IndexAt just before frame %d = %d, want %d", fps, k, got, k-1)
			}
		}
	}
}

func TestFrameAt_NeverEndOfStreamWithinDuration(t *testing.T) {
	for _, fps := range []float64{12, 24, 29.97, 30, 60} {
		frames := int(math.Round(fps * 4))
		src, _ := openFake(t, frames, fps)
		dur := src.Duration()

		for _, eps := range []float64{1e-9, 1e-6, 1e-3, 0.5} {
			ts := dur - eps
			f, err := src.FrameAt(ts)
			if err != nil {
				t.Fatalf("fps %f: FrameAt(%f) failed: %v", fps, ts, err)
			}
			want := int(math.Floor(ts * fps))
			if want > frames-1 {
				want = frames - 1
			}
			if f.Index != want {
				t.Errorf("fps %f: FrameAt(%f).Index = %d, want %d", fps, ts, f.Index, want)
			}
		}
	}
}

func TestFrameAt_DecoderGap(t *testing.T) {
	src, dec := openFake(t, 30, 10)
	dec.GapIndices[5] = true

	if _, err := src.FrameAt(0.5); !errors.Is(err, ports.ErrEndOfStream) {
		t.Errorf("expected ErrEndOfStream, got %v", err)
	}
	if _, err := src.FrameAt(0.6); err != nil {
		t.Errorf("expected frame 6 to decode, got %v", err)
	}
}

func TestClose(t *testing.T) {
	src, dec := openFake(t, 30, 10)

	if err := src.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if dec.CloseCalls != 1 {
		t.Errorf("expected 1 decoder close, got %d", dec.CloseCalls)
	}
	if !src.Closed() {
		t.Error("expected Closed() to be true")
	}

	if _, err := src.FrameAt(0); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if len(dec.Decoded()) != 0 {
		t.Error("decoder must not be touched after close")
	}
}

func TestFrameAt_SerializesDecoderAccess(t *testing.T) {
	src, dec := openFake(t, 100, 25)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				src.FrameAt(float64(g*25+i) / 25)
			}
		}(g)
	}
	wg.Wait()

	if dec.ConcurrentDecodes() {
		t.Error("decoder was accessed concurrently")
	}
	if len(dec.Decoded()) != 100 {
		t.Errorf("expected 100 decodes, got %d", len(dec.Decoded()))
	}
}

func TestClose_RacingFrameAt(t *testing.T) {
	src, dec := openFake(t, 1000, 100)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ; i++ {
			if _, err := src.FrameAt(float64(i%1000) / 100); errors.Is(err, ErrClosed) {
				return
			}
		}
	}()

	src.Close()
	<-done

	if dec.UsedAfterClose() {
		t.Error("decoder used after close")
	}
}
