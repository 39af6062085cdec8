// Package ffmpegdecoder decodes individual video frames with an external
// ffmpeg process. Metadata comes from mp4ff for MP4/MOV files and from
// ffprobe for everything else.
package ffmpegdecoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/user/gifclip/pkg/adapters/logger"
	"github.com/user/gifclip/pkg/ports"
)

var (
	// ErrFFmpegNotFound is matched by every *DependencyError.
	ErrFFmpegNotFound = errors.New("ffmpegdecoder: ffmpeg not found")

	// ErrNotOpen is returned when DecodeFrame is called without an open video.
	ErrNotOpen = errors.New("ffmpegdecoder: no video open")

	// ErrNoFrames is returned by Open for videos without decodable frames.
	ErrNoFrames = errors.New("ffmpegdecoder: video has no frames")
)

// Options configures executable lookup.
type Options struct {
	FFmpegPath  string
	FFprobePath string
	Logger      ports.Logger
}

// Decoder implements ports.FrameDecoder.
// It is safe for concurrent use, but calls are serialized.
type Decoder struct {
	opts   Options
	logger ports.Logger

	mu         sync.Mutex
	ffmpegPath string
	info       ports.VideoInfo
	open       bool
}

// New creates a decoder. Executables are resolved on Open.
func New(opts Options) *Decoder {
	l := opts.Logger
	if l == nil {
		l = logger.NewNoop()
	}
	return &Decoder{opts: opts, logger: l.WithComponent("decoder")}
}

// Open reads the metadata of path and prepares frame extraction.
func (d *Decoder) Open(path string) (ports.VideoInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ffmpegPath, err := FindFFmpeg(d.opts.FFmpegPath)
	if err != nil {
		return ports.VideoInfo{}, err
	}

	info, err := d.inspect(path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	if info.FrameCount <= 0 || info.FPS <= 0 {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s", ErrNoFrames, path)
	}

	d.ffmpegPath = ffmpegPath
	d.info = info
	d.open = true
	d.logger.Debug("Opened %s: %d frames at %.3f fps (%dx%d, %s)",
		path, info.FrameCount, info.FPS, info.Width, info.Height, info.Container)
	return info, nil
}

func (d *Decoder) inspect(path string) (ports.VideoInfo, error) {
	if isMP4Family(path) {
		info, err := readMP4Info(path)
		if err == nil && info.Width > 0 && info.Height > 0 {
			return info, nil
		}
		if err != nil {
			d.logger.Debug("MP4 probe failed, falling back to ffprobe: %v", err)
		}
	}

	ffprobePath, err := FindFFprobe(d.opts.FFprobePath)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	return probeFFprobe(ffprobePath, path)
}

// DecodeFrame decodes the frame at index. Indices outside the video and
// frames ffmpeg cannot produce report ports.ErrEndOfStream.
func (d *Decoder) DecodeFrame(index int) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return nil, ErrNotOpen
	}
	if index < 0 || index >= d.info.FrameCount {
		return nil, ports.ErrEndOfStream
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(d.ffmpegPath,
		"-nostdin",
		"-v", "error",
		"-ss", seekArg(index, d.info.FPS),
		"-i", d.info.Path,
		"-frames:v", "1",
		"-an",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode frame %d failed: %w\nstderr: %s",
			index, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, ports.ErrEndOfStream
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

// seekArg returns the input seek position for a frame index. It lands a
// quarter frame before the frame's timestamp so the frame itself is the
// first one ffmpeg keeps.
func seekArg(index int, fps float64) string {
	t := (float64(index) - 0.25) / fps
	if t < 0 {
		t = 0
	}
	return strconv.FormatFloat(t, 'f', 6, 64)
}

// Close releases the open video. It is idempotent.
func (d *Decoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.info = ports.VideoInfo{}
	return nil
}

var _ ports.FrameDecoder = (*Decoder)(nil)
