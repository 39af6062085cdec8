package ports

import (
	"errors"
	"image"
)

// ErrEndOfStream is returned by DecodeFrame when the requested frame lies
// past the last decodable frame of the video.
var ErrEndOfStream = errors.New("decoder: end of stream")

// VideoInfo describes an opened video.
type VideoInfo struct {
	Path       string
	FrameCount int     // Number of video frames (>= 0)
	FPS        float64 // Frames per second (> 0 whenever FrameCount > 0)
	Width      int
	Height     int
	Container  string // Container format as reported by ffprobe (e.g. "mp4", "matroska")
}

// DurationSeconds returns FrameCount/FPS, or 0 for an empty video.
func (i VideoInfo) DurationSeconds() float64 {
	if i.FrameCount <= 0 || i.FPS <= 0 {
		return 0
	}
	return float64(i.FrameCount) / i.FPS
}

// FrameDecoder abstracts random-access video frame decoding.
// Implementations are not required to be safe for concurrent use.
type FrameDecoder interface {
	// Open prepares the decoder for the video at path and returns its metadata.
	Open(path string) (VideoInfo, error)

	// DecodeFrame seeks to the zero-based frame index and decodes one frame.
	// Returns ErrEndOfStream when no frame exists at index.
	DecodeFrame(index int) (image.Image, error)

	// Close releases decoder resources.
	Close() error
}
