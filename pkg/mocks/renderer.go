package mocks

import (
	"image"
	"image/draw"
	"sync"

	"github.com/user/gifclip/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Canvases it creates report fixed text metrics and record DrawText calls.
type Renderer struct {
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image

	TextWidth  float64
	TextHeight float64

	mu       sync.Mutex
	canvases []*Canvas
}

func (m *Renderer) CanvasFromImage(src image.Image) ports.Canvas {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return m.track(&Canvas{img: img, textWidth: m.TextWidth, textHeight: m.TextHeight})
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Canvases returns every canvas created so far.
func (m *Renderer) Canvases() []*Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Canvas(nil), m.canvases...)
}

func (m *Renderer) track(c *Canvas) *Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvases = append(m.canvases, c)
	return c
}

var _ ports.Renderer = (*Renderer)(nil)

// DrawTextCall records a call to Canvas.DrawText.
type DrawTextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas.
type Canvas struct {
	img        *image.RGBA
	textWidth  float64
	textHeight float64

	DrawTextCalls []DrawTextCall
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	r := img.Bounds().Sub(img.Bounds().Min).Add(image.Pt(x, y))
	draw.Draw(m.img, r, img, img.Bounds().Min, draw.Over)
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.DrawTextCalls = append(m.DrawTextCalls, DrawTextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (width, height float64) {
	return m.textWidth, m.textHeight
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
