package caption

import (
	"image"
	"image/color"

	"github.com/user/gifclip/pkg/ports"
)

var (
	outlineColor = color.Black
	fillColor    = color.White
)

// outlineOffsets are the eight neighbours drawn in the outline colour
// before the fill pass.
var outlineOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Overlay draws captions with a renderer.
type Overlay struct {
	renderer ports.Renderer
	fontPath string
}

// NewOverlay creates an Overlay. An empty fontPath uses the renderer's fallback font.
func NewOverlay(renderer ports.Renderer, fontPath string) *Overlay {
	return &Overlay{renderer: renderer, fontPath: fontPath}
}

// Apply returns img with the caption drawn on a copy. Whitespace-only
// captions return img itself.
func (o *Overlay) Apply(img image.Image, style Style) image.Image {
	if style.IsEmpty() {
		return img
	}

	canvas := o.renderer.CanvasFromImage(img)
	ts := ports.TextStyle{
		FontSize: float64(style.FontSize),
		FontPath: o.fontPath,
		Color:    outlineColor,
		Align:    ports.AlignLeft,
	}

	b := img.Bounds()
	tw, th := canvas.MeasureText(style.Text, ts)
	x, y := Position(b.Dx(), b.Dy(), tw, th, style.VerticalFraction)

	for _, off := range outlineOffsets {
		canvas.DrawText(style.Text, x+off[0], y+off[1], ts)
	}
	ts.Color = fillColor
	canvas.DrawText(style.Text, x, y, ts)

	return canvas.ToImage()
}

// Position returns the top-left corner of a tw x th caption box centered
// horizontally and vertically at fraction of a w x h frame, kept on screen.
func Position(w, h int, tw, th, fraction float64) (x, y int) {
	x = int((float64(w) - tw) / 2)
	if x < 0 {
		x = 0
	}
	y = int(float64(h)*fraction - th/2)
	if maxY := h - int(th); y > maxY {
		y = maxY
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
