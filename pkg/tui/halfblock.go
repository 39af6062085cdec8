package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// RenderHalfBlock draws img as terminal art, cols characters wide. Each
// cell shows two vertically stacked pixels with the upper half block: the
// foreground is the top pixel, the background the bottom one.
func RenderHalfBlock(img image.Image, cols int) string {
	if img == nil || cols <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	pixelRows := cols * b.Dy() / b.Dx()
	if pixelRows < 2 {
		pixelRows = 2
	}
	if pixelRows%2 == 1 {
		pixelRows++
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, pixelRows))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < pixelRows; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := scaled.RGBAAt(x, y)
			bottom := scaled.RGBAAt(x, y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render("▀"))
		}
	}
	return sb.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
