package render

import "image/color"

// Global render configuration for raster output.
var (
	// Letterbox fills the framebuffer area around the square cover.
	Letterbox = color.RGBA{R: 0x05, G: 0x06, B: 0x0d, A: 0xFF} // #05060d

	// DefaultSize is the PNG edge length when none is requested.
	DefaultSize = 1024
	// MaxSize bounds requested PNG sizes.
	MaxSize = 4096
)

// ClampSize maps a requested edge length into [1, MaxSize], using
// DefaultSize for non-positive values.
func ClampSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}
