package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/orchestrator"
	"github.com/user/gifclip/pkg/selection"
	"github.com/user/gifclip/pkg/source"
	"github.com/user/gifclip/pkg/summarizer"
	"github.com/user/gifclip/pkg/timecode"
)

// captionFlags are shared by export and preview.
func captionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "text",
			Aliases:  []string{"t"},
			Usage:    l10n.T("Caption text (empty for no caption)"),
			Category: l10n.T(catCaption),
		},
		&cli.IntFlag{
			Name:     "size",
			Usage:    l10n.T("Caption font size in pixels (12-72)"),
			Category: l10n.T(catCaption),
		},
		&cli.Float64Flag{
			Name:     "position",
			Usage:    l10n.T("Caption vertical position as a fraction of the height (0.05-0.95)"),
			Category: l10n.T(catCaption),
		},
		&cli.StringFlag{
			Name:     "font",
			Usage:    l10n.T("Path to a TrueType font"),
			Category: l10n.T(catCaption),
		},
	}
}

// applyCaptionFlags overrides the configured caption with explicit flags.
func applyCaptionFlags(c *cli.Context, a *app) caption.Style {
	if c.IsSet("font") {
		a.overlay = caption.NewOverlay(a.renderer, c.String("font"))
	}
	style := a.cfg.CaptionStyle()
	if c.IsSet("text") {
		style = style.WithText(c.String("text"))
	}
	if c.IsSet("size") {
		style = style.WithFontSize(c.Int("size"))
	}
	if c.IsSet("position") {
		style = style.WithVerticalFraction(c.Float64("position"))
	}
	return style
}

func exportCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output GIF path (default: video name with .gif)"),
			Category: l10n.T(catOutput),
		},
		&cli.StringFlag{
			Name:     "start",
			Aliases:  []string{"s"},
			Value:    "0",
			Usage:    l10n.T("Range start (H:MM:SS, MM:SS or seconds)"),
			Category: l10n.T(catRange),
		},
		&cli.StringFlag{
			Name:     "end",
			Aliases:  []string{"e"},
			Usage:    l10n.T("Range end (default: 5 seconds or the video length)"),
			Category: l10n.T(catRange),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write an export summary to file (Markdown format)"),
			Category: l10n.T(catOutput),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save sampled frames and an export record"),
			Category: l10n.T(catDebug),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T(catDebug),
		},
	}

	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Export a range of a video as a captioned GIF"),
		ArgsUsage: "<video>",
		Flags:     append(flags, captionFlags()...),
		Action:    runExport,
	}
}

func runExport(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	a, err := setup(c)
	if err != nil {
		return err
	}
	style := applyCaptionFlags(c, a)

	output := orchestrator.WithOutputExt(c.String("output"))
	if output == "" {
		output = orchestrator.DefaultOutputPath(videoPath)
	}

	debugDir := a.cfg.DebugDir
	if c.IsSet("debug-dir") {
		debugDir = c.String("debug-dir")
	}
	sink, err := a.debugSink(c.Bool("debug") || a.cfg.Debug, debugDir)
	if err != nil {
		return err
	}

	src, err := source.Open(a.newDecoder(), videoPath)
	if err != nil {
		return err
	}
	defer src.Close()

	sel, err := resolveSelection(src.Duration(), c.String("start"), c.String("end"), c.IsSet("end"))
	if err != nil {
		return err
	}
	if err := sel.Eligibility(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := orchestrator.ExportRequest{
		Source:     src,
		Selection:  sel,
		Caption:    style,
		OutputPath: output,
	}
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if tty && !c.Bool("quiet") {
		req.OnProgress = progressPrinter(os.Stdout, l10n.T("Exporting"))
	}

	result, err := a.orchestrator(sink).Export(ctx, req)
	if req.OnProgress != nil {
		fmt.Fprintln(os.Stdout)
	}
	if err != nil {
		if ctx.Err() != nil {
			a.log.Warn("Interrupted, export cancelled")
		}
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := summarizer.NewBuilder().
			WithSource(src.Info()).
			WithCaption(style.Text, style.FontSize, style.VerticalFraction).
			WithExport(result).
			Build()
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), a.fs)
		if err := writer.Write(path, summary); err != nil {
			a.log.Error("Failed to write summary: %v", err)
		} else {
			a.log.Info("Summary saved to %s", path)
		}
	}

	return nil
}

// resolveSelection parses the range flags against a video of total seconds.
// Without an explicit end the default range is kept.
func resolveSelection(total float64, startArg, endArg string, endSet bool) (selection.Selection, error) {
	sel := selection.New(total)
	if strings.TrimSpace(startArg) != "" {
		start, err := timecode.Parse(startArg)
		if err != nil {
			return selection.Selection{}, fmt.Errorf("--start: %w", err)
		}
		if !endSet {
			// The default end follows the start so "-s 30" exports 30s-35s.
			sel.SetEnd(start + selection.DefaultEnd)
		}
		sel.SetStart(start)
	}
	if endSet {
		end, err := timecode.Parse(endArg)
		if err != nil {
			return selection.Selection{}, fmt.Errorf("--end: %w", err)
		}
		sel.SetEnd(end)
	}
	return sel.Selection(), nil
}

// progressPrinter returns an OnProgress callback that redraws one line.
func progressPrinter(w io.Writer, label string) func(float64) {
	const width = 30
	last := -1
	return func(f float64) {
		pct := int(f * 100)
		if pct == last {
			return
		}
		last = pct
		filled := min(width, int(f*width))
		fmt.Fprintf(w, "\r%s [%s%s] %3d%%", label,
			strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
	}
}
