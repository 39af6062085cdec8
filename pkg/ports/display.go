package ports

import "image"

// DisplayFunc receives a preview frame ready to be shown.
// It is called from background goroutines and must not block for long.
type DisplayFunc func(img image.Image, timeSeconds float64)
