package controller

import (
	"image"

	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/playback"
)

// State is the activity of the controller.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateExporting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateExporting:
		return "exporting"
	default:
		return "unknown"
	}
}

// EventKind identifies an Event.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventProgress
	EventPlaybackFrame
	EventPlaybackFinished
	EventExportDone
	EventExportFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state-changed"
	case EventProgress:
		return "progress"
	case EventPlaybackFrame:
		return "playback-frame"
	case EventPlaybackFinished:
		return "playback-finished"
	case EventExportDone:
		return "export-done"
	case EventExportFailed:
		return "export-failed"
	default:
		return "unknown"
	}
}

// Event carries background results to the user-facing layer.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	State    State   // EventStateChanged
	Progress float64 // EventProgress, in (0, 1]

	Frame image.Image // EventPlaybackFrame
	Time  float64     // EventPlaybackFrame

	Stop playback.StopReason // EventPlaybackFinished

	Result orchestrator.ExportResult // EventExportDone
	Err    error                     // EventExportFailed, EventPlaybackFinished
}
