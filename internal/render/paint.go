package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/cover/internal/scene"
)

// ErrBadPaint is returned for a fill or stroke the raster backend cannot
// resolve: an unparseable color or a reference to a missing def.
var ErrBadPaint = errors.New("unresolvable paint")

// parseColor reads a CSS hex color.
func parseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: color %q", ErrBadPaint, s)
	}
	return c, nil
}

// withAlpha converts c to a straight-alpha color at opacity a.
func withAlpha(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// gradientStop is a parsed scene.Stop.
type gradientStop struct {
	offset  float64
	color   colorful.Color
	opacity float64
}

func parseStops(stops []scene.Stop) ([]gradientStop, error) {
	out := make([]gradientStop, 0, len(stops))
	for _, st := range stops {
		c, err := parseColor(st.Color)
		if err != nil {
			return nil, err
		}
		out = append(out, gradientStop{offset: st.Offset, color: c, opacity: st.Opacity})
	}
	return out, nil
}

// sample returns the straight-alpha color at t along the stops.
func sample(stops []gradientStop, t float64, opacity float64) color.NRGBA {
	switch {
	case len(stops) == 0:
		return color.NRGBA{}
	case t <= stops[0].offset:
		return withAlpha(stops[0].color, stops[0].opacity*opacity)
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.offset {
			continue
		}
		span := b.offset - a.offset
		if span <= 0 {
			return withAlpha(b.color, b.opacity*opacity)
		}
		f := (t - a.offset) / span
		c := a.color.BlendRgb(b.color, f)
		return withAlpha(c, (a.opacity+(b.opacity-a.opacity)*f)*opacity)
	}
	last := stops[len(stops)-1]
	return withAlpha(last.color, last.opacity*opacity)
}

// linearImage paints a linear gradient across the pixel box bb onto a
// canvas-sized image.
func linearImage(canvas image.Rectangle, bb rectF, g scene.LinearGradient, opacity float64) (*image.NRGBA, error) {
	stops, err := parseStops(g.Stops)
	if err != nil {
		return nil, err
	}
	x1, y1 := bb.x+g.X1*bb.w, bb.y+g.Y1*bb.h
	x2, y2 := bb.x+g.X2*bb.w, bb.y+g.Y2*bb.h
	dx, dy := x2-x1, y2-y1
	den := dx*dx + dy*dy

	img := image.NewNRGBA(canvas)
	for y := canvas.Min.Y; y < canvas.Max.Y; y++ {
		for x := canvas.Min.X; x < canvas.Max.X; x++ {
			t := 0.0
			if den > 0 {
				px, py := float64(x)+0.5, float64(y)+0.5
				t = clamp01(((px-x1)*dx + (py-y1)*dy) / den)
			}
			img.SetNRGBA(x, y, sample(stops, t, opacity))
		}
	}
	return img, nil
}

// radialImage paints a radial gradient centered in bb. The radius is
// relative to each axis of bb, as with SVG bounding box units.
func radialImage(canvas image.Rectangle, bb rectF, cx, cy, r float64, raw []gradientStop, opacity float64) *image.NRGBA {
	ox, oy := bb.x+cx*bb.w, bb.y+cy*bb.h
	rx, ry := r*bb.w, r*bb.h

	img := image.NewNRGBA(canvas)
	for y := canvas.Min.Y; y < canvas.Max.Y; y++ {
		for x := canvas.Min.X; x < canvas.Max.X; x++ {
			t := 1.0
			if rx > 0 && ry > 0 {
				px, py := (float64(x)+0.5-ox)/rx, (float64(y)+0.5-oy)/ry
				t = math.Min(1, math.Hypot(px, py))
			}
			img.SetNRGBA(x, y, sample(raw, t, opacity))
		}
	}
	return img
}

// glowStops approximate a gaussian halo with a soft radial falloff.
func glowStops(c colorful.Color) []gradientStop {
	return []gradientStop{
		{offset: 0, color: c, opacity: 1},
		{offset: 0.4, color: c, opacity: 0.55},
		{offset: 1, color: c, opacity: 0},
	}
}

// rectF is a float pixel box.
type rectF struct{ x, y, w, h float64 }
