package main

import (
	"fmt"

	"github.com/user/gifclip/pkg/adapters/ffmpegdecoder"
	"github.com/user/gifclip/pkg/adapters/filesink"
	"github.com/user/gifclip/pkg/adapters/ggrenderer"
	"github.com/user/gifclip/pkg/adapters/gifencoder"
	"github.com/user/gifclip/pkg/adapters/nullsink"
	"github.com/user/gifclip/pkg/adapters/osfilesystem"
	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/config"
	"github.com/user/gifclip/pkg/controller"
	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/playback"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/stages/encode"
	"github.com/user/gifclip/pkg/stages/sample"
)

// app holds the adapters shared by all commands.
type app struct {
	cfg      config.Config
	log      ports.Logger
	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer
	overlay  *caption.Overlay
}

func newApp(cfg config.Config, log ports.Logger) *app {
	renderer := ggrenderer.New()
	return &app{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		renderer: renderer,
		overlay:  caption.NewOverlay(renderer, cfg.FontPath),
	}
}

func (a *app) newDecoder() ports.FrameDecoder {
	return ffmpegdecoder.New(ffmpegdecoder.Options{
		FFmpegPath:  a.cfg.FFmpegPath,
		FFprobePath: a.cfg.FFprobePath,
		Logger:      a.log,
	})
}

// debugSink returns a file sink under dir when enabled, else a null sink.
func (a *app) debugSink(enabled bool, dir string) (ports.DebugSink, error) {
	if !enabled {
		return nullsink.New(), nil
	}
	if err := a.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(dir, a.fs, a.renderer), nil
}

func (a *app) orchestrator(sink ports.DebugSink) *orchestrator.Orchestrator {
	return orchestrator.New(
		sample.NewStage(a.overlay, a.renderer, sink, a.log),
		encode.NewStage(gifencoder.New(), a.log),
		a.fs,
		sink,
		a.log,
	)
}

func (a *app) player() *playback.Player {
	return playback.NewPlayer(a.overlay, a.renderer, a.log)
}

func (a *app) controller(sink ports.DebugSink) *controller.Controller {
	return controller.New(controller.Options{
		NewDecoder: a.newDecoder,
		Exporter:   a.orchestrator(sink),
		Player:     a.player(),
		Logger:     a.log,
		Caption:    a.cfg.CaptionStyle(),
	})
}
