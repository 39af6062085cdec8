package ggrenderer

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// systemFontCandidates are tried in order when no font path is configured.
var systemFontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"C:/Windows/Fonts/arialbd.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
}

// embeddedFontKey identifies the built-in Go Bold face in the cache.
const embeddedFontKey = "<embedded:gobold>"

type faceKey struct {
	path string
	size float64
}

// fontCache parses each font file once and keeps one face per size.
// Faces are not safe for concurrent use, so callers hold mu while drawing.
type fontCache struct {
	mu       sync.Mutex
	fonts    map[string]*opentype.Font
	faces    map[faceKey]font.Face
	resolved map[string]string
}

func newFontCache() *fontCache {
	return &fontCache{
		fonts:    make(map[string]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
		resolved: make(map[string]string),
	}
}

// face returns a face for path at size. Must be called with mu held.
func (c *fontCache) face(path string, size float64) font.Face {
	key := faceKey{path: c.resolve(path), size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}

	otf := c.fonts[key.path]
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Only reachable with a corrupt cached font; the embedded face always works.
		otf = c.fonts[embeddedFontKey]
		face, _ = opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	c.faces[key] = face
	return face
}

// resolve maps a requested path to a loaded font key: the path itself when
// it parses, else the first system candidate that parses, else the embedded font.
func (c *fontCache) resolve(path string) string {
	if key, ok := c.resolved[path]; ok {
		return key
	}

	candidates := systemFontCandidates
	if path != "" {
		candidates = append([]string{path}, systemFontCandidates...)
	}

	key := embeddedFontKey
	for _, p := range candidates {
		if _, ok := c.fonts[p]; ok {
			key = p
			break
		}
		f, err := loadFontFile(p)
		if err != nil {
			continue
		}
		c.fonts[p] = f
		key = p
		break
	}

	if key == embeddedFontKey {
		if _, ok := c.fonts[embeddedFontKey]; !ok {
			f, err := opentype.Parse(gobold.TTF)
			if err != nil {
				panic(fmt.Sprintf("ggrenderer: parse embedded font: %v", err))
			}
			c.fonts[embeddedFontKey] = f
		}
	}

	c.resolved[path] = key
	return key
}

// loadFontFile parses a TrueType/OpenType file or the first font of a collection.
func loadFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f, err := opentype.Parse(data); err == nil {
		return f, nil
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return coll.Font(0)
}
