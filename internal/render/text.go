package render

import (
	"image"
	"image/draw"
	"strconv"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/cover/internal/assets"
	"github.com/rook-computer/cover/internal/scene"
)

// fontSet holds the parsed fonts. A nil font means the parse failed and
// basicfont is used instead.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// faceCache keeps the faces of one render. Faces carry glyph caches and
// must not be shared between goroutines.
type faceCache struct {
	fonts *fontSet
	maxPx float64
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

var (
	fontsOnce sync.Once
	fonts     *fontSet
	fontsErr  error
)

func loadFonts() (*fontSet, error) {
	fontsOnce.Do(func() {
		fonts = &fontSet{}
		regular, err := truetype.Parse(assets.FontTTF)
		if err != nil {
			fontsErr = err
			return
		}
		fonts.regular = regular
		bold, err := truetype.Parse(assets.FontBoldTTF)
		if err != nil {
			fontsErr = err
			fonts.bold = regular
			return
		}
		fonts.bold = bold
	})
	return fonts, fontsErr
}

func newFaceCache(fs *fontSet, maxPx float64) *faceCache {
	return &faceCache{fonts: fs, maxPx: maxPx, faces: make(map[faceKey]font.Face)}
}

// face returns a face for the given pixel size, clamped to maxPx.
func (c *faceCache) face(bold bool, px float64) font.Face {
	f := c.fonts.regular
	if bold {
		f = c.fonts.bold
	}
	if f == nil || px <= 0 {
		return basicfont.Face7x13
	}
	if c.maxPx > 0 && px > c.maxPx {
		px = c.maxPx
	}
	key := faceKey{bold: bold, size: px}
	if face, ok := c.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(f, &truetype.Options{Size: px, DPI: 72, Hinting: font.HintingNone})
	c.faces[key] = face
	return face
}

func isBold(weight string) bool {
	if weight == "bold" || weight == "bolder" {
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// drawText renders t with k pixels per poster unit.
func drawText(dst draw.Image, faces *faceCache, t scene.Text, src image.Image, k float64) {
	if t.Content == "" {
		return
	}
	face := faces.face(isBold(t.Weight), t.Size*k)
	spacing := fixed.Int26_6(t.LetterSpacing * k * 64)

	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	runes := []rune(t.Content)
	width := d.MeasureString(t.Content) + spacing*fixed.Int26_6(len(runes))

	x := fixed.Int26_6(t.At.X * k * 64)
	switch t.Anchor {
	case "middle":
		x -= width / 2
	case "end":
		x -= width
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(t.At.Y * k * 64)}
	for _, r := range runes {
		d.DrawString(string(r))
		d.Dot.X += spacing
	}
}
