// Package main provides the CLI entry point for gifclip.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/gifclip/pkg/adapters/logger"
	"github.com/user/gifclip/pkg/config"
	"github.com/user/gifclip/pkg/ports"
)

var version = "dev"

// Flag categories
const (
	catOutput  = "Output"
	catRange   = "Range"
	catCaption = "Caption"
	catDebug   = "Debug"
	catLogging = "Logging"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "gifclip",
		Usage:   l10n.T("Trim a video and export a captioned looping GIF"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file"),
				EnvVars: []string{"GIFCLIP_CONFIG"},
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T(catLogging),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T(catLogging),
			},
		},
		Commands: []*cli.Command{
			editCommand(),
			exportCommand(),
			previewCommand(),
			infoCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Println(l10n.F("gifclip version %s", version))
					return nil
				},
			},
		},
	}
}

// loadConfig reads --config and applies global flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

// newLogger builds the console logger for headless commands.
func newLogger(c *cli.Context, cfg config.Config) (ports.Logger, error) {
	if c.Bool("quiet") {
		return logger.NewNoop(), nil
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return logger.NewConsole(level), nil
}

// setup loads configuration and creates the shared adapters.
func setup(c *cli.Context) (*app, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(c, cfg)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, log), nil
}

// videoArg returns the single video argument.
func videoArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New(l10n.T("A video file argument is required"))
	}
	return c.Args().First(), nil
}
