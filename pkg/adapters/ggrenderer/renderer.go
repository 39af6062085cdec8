// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/gifclip/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	fonts *fontCache
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{fonts: newFontCache()}
}

// CanvasFromImage creates a canvas initialised with a copy of img.
func (r *Renderer) CanvasFromImage(img image.Image) ports.Canvas {
	return &Canvas{dc: gg.NewContextForImage(img), fonts: r.fonts}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image with Catmull-Rom resampling.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc    *gg.Context
	fonts *fontCache
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawText draws text whose bounding box top is at y.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.fonts.mu.Lock()
	defer c.fonts.mu.Unlock()

	face := c.fonts.face(style.FontPath, style.FontSize)
	c.dc.SetFontFace(face)
	c.dc.SetColor(style.Color)

	w, _ := c.dc.MeasureString(text)
	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	ascent := float64(face.Metrics().Ascent) / 64
	c.dc.DrawString(text, float64(x)-ax*w, float64(y)+ascent)
}

// MeasureText returns the advance width and the ascent+descent height of text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (width, height float64) {
	c.fonts.mu.Lock()
	defer c.fonts.mu.Unlock()

	face := c.fonts.face(style.FontPath, style.FontSize)
	c.dc.SetFontFace(face)
	w, _ := c.dc.MeasureString(text)
	m := face.Metrics()
	return w, float64(m.Ascent+m.Descent) / 64
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
