package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/gifclip/pkg/adapters/logger"
	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/tui"
)

// videoExtensions are the files offered by the picker.
var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     l10n.T("Open the interactive editor"),
		ArgsUsage: "[video]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "log-file",
				Usage:    l10n.T("Write logs to file while the editor runs"),
				Category: l10n.T(catLogging),
			},
			&cli.BoolFlag{
				Name:     "debug",
				Aliases:  []string{"d"},
				Usage:    l10n.T("Save sampled frames and an export record"),
				Category: l10n.T(catDebug),
			},
		},
		Action: runEdit,
	}
}

func runEdit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	videoPath := c.Args().First()
	if videoPath == "" {
		if videoPath, err = pickVideo(); err != nil {
			return err
		}
	}

	// The terminal belongs to the editor: log to a file or not at all.
	var log ports.Logger = logger.NewNoop()
	logFile := cfg.LogFile
	if c.IsSet("log-file") {
		logFile = c.String("log-file")
	}
	if logFile != "" && !c.Bool("quiet") {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		level, err := cfg.Level()
		if err != nil {
			return err
		}
		log = logger.NewWriter(level, f)
	}

	a := newApp(cfg, log)
	sink, err := a.debugSink(c.Bool("debug") || cfg.Debug, cfg.DebugDir)
	if err != nil {
		return err
	}

	ctrl := a.controller(sink)
	defer ctrl.Close()

	if _, err := ctrl.Open(videoPath); err != nil {
		return err
	}

	return tui.Run(ctrl, videoPath, tui.NewStyles(cfg.Theme))
}

// pickVideo asks for a video file with a file picker.
func pickVideo() (string, error) {
	var path string
	picker := huh.NewFilePicker().
		Title(l10n.T("Choose a video")).
		Description(l10n.T("MP4, AVI, MOV or MKV")).
		CurrentDirectory(".").
		AllowedTypes(videoExtensions).
		Picking(true).
		Value(&path)

	if err := huh.NewForm(huh.NewGroup(picker)).Run(); err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New(l10n.T("No video selected"))
	}
	return path, nil
}
