package gifencoder

import (
	"image"
	"image/color"
	"image/color/palette"
	"sync"

	"golang.org/x/image/draw"
)

// lutBits is the per-channel precision of the colour lookup table.
const lutBits = 5

const lutSize = 1 << lutBits

// plan9 is the fixed output palette.
var plan9 = color.Palette(palette.Plan9)

var (
	lutOnce    sync.Once
	lut        [lutSize * lutSize * lutSize]uint8
	paletteRGB [][3]int32
)

// buildLUT maps every 5-bit RGB cell to the nearest palette entry, measured
// from the cell centre.
func buildLUT() {
	paletteRGB = make([][3]int32, len(plan9))
	for i, c := range plan9 {
		r, g, b, _ := c.RGBA()
		paletteRGB[i] = [3]int32{int32(r >> 8), int32(g >> 8), int32(b >> 8)}
	}

	const shift = 8 - lutBits
	const half = 1 << (shift - 1)
	for r := 0; r < lutSize; r++ {
		for g := 0; g < lutSize; g++ {
			for b := 0; b < lutSize; b++ {
				lut[lutIndex(r, g, b)] = nearest(
					int32(r<<shift+half), int32(g<<shift+half), int32(b<<shift+half))
			}
		}
	}
}

func lutIndex(r, g, b int) int {
	return r<<(2*lutBits) | g<<lutBits | b
}

// nearest returns the palette index closest to (r, g, b) in squared RGB distance.
func nearest(r, g, b int32) uint8 {
	best, bestDist := 0, int32(1<<30)
	for i, p := range paletteRGB {
		dr, dg, db := r-p[0], g-p[1], b-p[2]
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return uint8(best)
}

// lookup returns the palette index for an 8-bit colour.
func lookup(r, g, b int32) uint8 {
	const shift = 8 - lutBits
	return lut[lutIndex(int(r>>shift), int(g>>shift), int(b>>shift))]
}

// quantize converts img to a Plan 9 paletted image with Floyd-Steinberg
// error diffusion. Palette lookups go through a table shared by all frames,
// so a frame costs a constant amount of work per pixel. Alpha is ignored.
func quantize(img image.Image) *image.Paletted {
	lutOnce.Do(buildLUT)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	dst := image.NewPaletted(image.Rect(0, 0, w, h), plan9)

	// Error rows padded by one pixel on each side, in 1/16 units.
	cur := make([][3]int32, w+2)
	next := make([][3]int32, w+2)

	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			var c [3]int32
			for k := 0; k < 3; k++ {
				c[k] = clamp8(int32(src[4*x+k]) + cur[x+1][k]/16)
			}
			idx := lookup(c[0], c[1], c[2])
			out[x] = idx

			p := paletteRGB[idx]
			for k := 0; k < 3; k++ {
				e := c[k] - p[k]
				cur[x+2][k] += e * 7
				next[x][k] += e * 3
				next[x+1][k] += e * 5
				next[x+2][k] += e
			}
		}
		cur, next = next, cur
		clear(next)
	}
	return dst
}

func clamp8(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
