package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/geometry"
)

const testSize = 200

func TestRaster_PNGSizeAndDeterminism(t *testing.T) {
	r := NewRasterRenderer(testSize)
	assert.Equal(t, "image/png", r.ContentType())

	var a, b bytes.Buffer
	require.NoError(t, r.Render(&a, composeDefault(nil, config.Overrides{})))
	require.NoError(t, r.Render(&b, composeDefault(nil, config.Overrides{})))
	assert.Equal(t, a.Bytes(), b.Bytes())

	img, err := png.Decode(bytes.NewReader(a.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, testSize, testSize), img.Bounds())
}

// lensProbe returns a pixel inside the green lens face, away from the
// check mark and highlight.
func lensProbe() image.Point {
	tl := config.Default().TrafficLight
	c := geometry.Point{X: tl.X + 1.0*tl.Scale, Y: tl.Y + (15.4+0.9)*tl.Scale}
	k := float64(testSize) / 100
	return image.Pt(int(c.X*k), int(c.Y*k))
}

func TestRaster_LitLens(t *testing.T) {
	r := NewRasterRenderer(testSize)
	pt := lensProbe()

	lit, err := r.Rasterize(composeDefault(nil, config.Overrides{}))
	require.NoError(t, err)
	px := lit.RGBAAt(pt.X, pt.Y)
	assert.Greater(t, px.G, uint8(150))
	assert.Greater(t, px.G, px.R)
	assert.Greater(t, px.G, px.B)

	patch := &config.Patch{TrafficLight: &config.TrafficLightPatch{Active: config.Ptr(config.LensAmber)}}
	dim, err := r.Rasterize(composeDefault(patch, config.Overrides{}))
	require.NoError(t, err)
	assert.Less(t, dim.RGBAAt(pt.X, pt.Y).G, uint8(100))
}

func TestRaster_OpaqueCanvas(t *testing.T) {
	img, err := NewRasterRenderer(64).Rasterize(composeDefault(nil, config.Overrides{}))
	require.NoError(t, err)
	for _, pt := range []image.Point{{0, 0}, {63, 0}, {0, 63}, {63, 63}, {32, 32}} {
		assert.Equal(t, uint8(0xFF), img.RGBAAt(pt.X, pt.Y).A, "pixel %v", pt)
	}
}

func TestRaster_TextIsDrawn(t *testing.T) {
	r := NewRasterRenderer(testSize)
	with, err := r.Rasterize(composeDefault(nil, config.Overrides{}))
	require.NoError(t, err)

	patch := &config.Patch{Text: &config.TextPatch{Title: config.Ptr(""), Subtitle: config.Ptr("")}}
	without, err := r.Rasterize(composeDefault(patch, config.Overrides{}))
	require.NoError(t, err)

	assert.NotEqual(t, with.Pix, without.Pix)
}

func TestRaster_BadColor(t *testing.T) {
	patch := &config.Patch{Palette: &config.PalettePatch{Ground: config.Ptr("chartreuse")}}
	s := composeDefault(patch, config.Overrides{})

	_, err := NewRasterRenderer(32).Rasterize(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadPaint))

	// The vector backend passes colors through untouched.
	var buf bytes.Buffer
	assert.NoError(t, NewSVGRenderer().Render(&buf, s))
}

func TestDashRuns(t *testing.T) {
	line := geometry.Polyline{Points: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}}

	runs := dashRuns(line, []float64{2, 3})
	assert.Equal(t, [][]geometry.Point{
		{{X: 0, Y: 0}, {X: 2, Y: 0}},
		{{X: 5, Y: 0}, {X: 7, Y: 0}},
	}, runs)

	assert.Len(t, dashRuns(line, []float64{1}), 5)
	assert.Equal(t, [][]geometry.Point{line.Points}, dashRuns(line, nil))
	assert.Equal(t, [][]geometry.Point{line.Points}, dashRuns(line, []float64{0, 0}))

	// Sub-pixel and overly dense patterns collapse to a solid stroke.
	assert.Equal(t, [][]geometry.Point{line.Points}, dashRuns(line, []float64{1e-300, 1e-300}))
	assert.Equal(t, [][]geometry.Point{line.Points}, dashRuns(line, []float64{0.04, 0.04}))
	long := geometry.Polyline{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1e6, Y: 0}}}
	assert.Equal(t, [][]geometry.Point{long.Points}, dashRuns(long, []float64{1, 1}))
}

func TestRaster_DegeneratePatchValues(t *testing.T) {
	for name, patch := range map[string]*config.Patch{
		"tiny dash":  {Connection: &config.ConnectionPatch{Dash: []float64{1e-300, 1e-300}}},
		"micro dash": {Connection: &config.ConnectionPatch{Dash: []float64{1e-6, 1e-6}}},
		"huge title": {Text: &config.TextPatch{TitleSize: config.Ptr(1e9)}},
	} {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			img, err := NewRasterRenderer(64).Rasterize(composeDefault(patch, config.Overrides{}))
			require.NoError(t, err)
			assert.Equal(t, 64, img.Bounds().Dx())
			assert.Less(t, time.Since(start), 5*time.Second)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": FormatSVG, "PNG": FormatPNG, ".png": FormatPNG, "": FormatSVG} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNew(t *testing.T) {
	r, err := New(FormatPNG, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, r.(*RasterRenderer).Size)

	r, err = New(FormatPNG, MaxSize*2)
	require.NoError(t, err)
	assert.Equal(t, MaxSize, r.(*RasterRenderer).Size)

	r, err = New(FormatSVG, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", r.ContentType())

	_, err = New("bmp", 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestIsBold(t *testing.T) {
	assert.True(t, isBold("700"))
	assert.True(t, isBold("bold"))
	assert.False(t, isBold("400"))
	assert.False(t, isBold(""))
}
