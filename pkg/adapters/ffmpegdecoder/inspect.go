package ffmpegdecoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/gifclip/pkg/ports"
)

var errNoVideoTrack = errors.New("ffmpegdecoder: no video track")

// isMP4Family reports whether the container can be read by mp4ff.
func isMP4Family(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// readMP4Info reads frame count, rate and dimensions from a progressive MP4/MOV
// without touching sample data. Fragmented files are rejected so the caller
// falls back to ffprobe.
func readMP4Info(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	if mp4File.IsFragmented() {
		return ports.VideoInfo{}, errors.New("fragmented mp4")
	}
	if mp4File.Moov == nil {
		return ports.VideoInfo{}, errors.New("no moov box found")
	}

	var videoTrack *mp4.TrakBox
	for _, trak := range mp4File.Moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			videoTrack = trak
			break
		}
	}
	if videoTrack == nil || videoTrack.Mdia.Mdhd == nil || videoTrack.Mdia.Minf == nil ||
		videoTrack.Mdia.Minf.Stbl == nil || videoTrack.Mdia.Minf.Stbl.Stsz == nil {
		return ports.VideoInfo{}, errNoVideoTrack
	}

	mdhd := videoTrack.Mdia.Mdhd
	stbl := videoTrack.Mdia.Minf.Stbl
	if mdhd.Timescale == 0 || mdhd.Duration == 0 {
		return ports.VideoInfo{}, errors.New("video track has no duration")
	}

	info := ports.VideoInfo{
		Path:       path,
		FrameCount: int(stbl.Stsz.SampleNumber),
		Container:  "mp4",
	}
	seconds := float64(mdhd.Duration) / float64(mdhd.Timescale)
	info.FPS = float64(info.FrameCount) / seconds

	if stbl.Stsd != nil {
		for _, child := range stbl.Stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
				info.Width = int(vse.Width)
				info.Height = int(vse.Height)
				break
			}
		}
	}
	return info, nil
}

// ffprobeOutput is the subset of `ffprobe -of json` output we read.
type ffprobeOutput struct {
	Streams []struct {
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		RFrameRate    string `json:"r_frame_rate"`
		AvgFrameRate  string `json:"avg_frame_rate"`
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
		Duration      string `json:"duration"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

// probeFFprobe runs ffprobe on the first video stream.
func probeFFprobe(ffprobePath, path string) (ports.VideoInfo, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames,nb_read_packets,duration:format=format_name,duration",
		"-of", "json",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseFFprobeJSON(stdout.Bytes(), path)
}

func parseFFprobeJSON(data []byte, path string) (ports.VideoInfo, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return ports.VideoInfo{}, errNoVideoTrack
	}
	s := out.Streams[0]

	fps := parseRational(s.AvgFrameRate)
	if fps <= 0 {
		fps = parseRational(s.RFrameRate)
	}
	if fps <= 0 {
		return ports.VideoInfo{}, fmt.Errorf("unknown frame rate %q", s.RFrameRate)
	}

	info := ports.VideoInfo{
		Path:      path,
		FPS:       fps,
		Width:     s.Width,
		Height:    s.Height,
		Container: out.Format.FormatName,
	}

	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.FrameCount = n
	} else if n, err := strconv.Atoi(s.NbReadPackets); err == nil && n > 0 {
		info.FrameCount = n
	} else {
		dur := parseFloat(s.Duration)
		if dur <= 0 {
			dur = parseFloat(out.Format.Duration)
		}
		info.FrameCount = int(math.Floor(dur*fps + 1e-9))
	}
	return info, nil
}

// parseRational parses "30000/1001" or "25". Returns 0 when invalid.
func parseRational(s string) float64 {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	n := parseFloat(num)
	if !found {
		return n
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
