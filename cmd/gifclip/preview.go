package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/gifclip/pkg/ports"
	"github.com/user/gifclip/pkg/source"
	"github.com/user/gifclip/pkg/timecode"
)

func previewCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output image path, PNG or JPEG by extension (default: video name with .png)"),
			Category: l10n.T(catOutput),
		},
		&cli.StringFlag{
			Name:     "at",
			Value:    "0",
			Usage:    l10n.T("Frame time (H:MM:SS, MM:SS or seconds)"),
			Category: l10n.T(catRange),
		},
		&cli.BoolFlag{
			Name:     "full",
			Usage:    l10n.T("Keep the source resolution instead of the preview size"),
			Category: l10n.T(catOutput),
		},
	}

	return &cli.Command{
		Name:      "preview",
		Usage:     l10n.T("Write the captioned frame at a given time as an image"),
		ArgsUsage: "<video>",
		Flags:     append(flags, captionFlags()...),
		Action:    runPreview,
	}
}

func runPreview(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	a, err := setup(c)
	if err != nil {
		return err
	}
	style := applyCaptionFlags(c, a)

	at, err := timecode.Parse(c.String("at"))
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}

	output := c.String("output")
	if output == "" {
		output = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".png"
	}

	src, err := source.Open(a.newDecoder(), videoPath)
	if err != nil {
		return err
	}
	defer src.Close()

	frame, err := src.FrameAt(min(at, src.Duration()))
	if err != nil {
		return err
	}

	var img image.Image
	if c.Bool("full") {
		img = a.overlay.Apply(frame.Image, style)
	} else {
		img = a.player().Thumbnail(frame.Image, style)
	}

	data, err := a.renderer.EncodeImage(img, imageFormatFor(output), jpegQuality)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := a.fs.WriteFile(output, data); err != nil {
		return err
	}

	a.log.Info("Preview of frame %d saved to %s", frame.Index, output)
	return nil
}

// jpegQuality is used when the preview is written as JPEG.
const jpegQuality = 90

// imageFormatFor picks JPEG for .jpg/.jpeg outputs and PNG otherwise.
func imageFormatFor(path string) ports.ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return ports.FormatJPEG
	}
	return ports.FormatPNG
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Print video metadata"),
		ArgsUsage: "<video>",
		Action:    runInfo,
	}
}

func runInfo(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	a, err := setup(c)
	if err != nil {
		return err
	}

	src, err := source.Open(a.newDecoder(), videoPath)
	if err != nil {
		return err
	}
	defer src.Close()

	info := src.Info()
	w := c.App.Writer
	fmt.Fprintf(w, "%-12s %s\n", l10n.T("File")+":", videoPath)
	fmt.Fprintf(w, "%-12s %s\n", l10n.T("Container")+":", info.Container)
	fmt.Fprintf(w, "%-12s %dx%d\n", l10n.T("Resolution")+":", info.Width, info.Height)
	fmt.Fprintf(w, "%-12s %.3f\n", l10n.T("Frame Rate")+":", info.FPS)
	fmt.Fprintf(w, "%-12s %d\n", l10n.T("Frames")+":", info.FrameCount)
	fmt.Fprintf(w, "%-12s %s (%.3fs)\n", l10n.T("Length")+":", timecode.Format(src.Duration()), src.Duration())
	return nil
}
