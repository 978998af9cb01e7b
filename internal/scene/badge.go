package scene

import (
	"github.com/skip2/go-qrcode"

	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/geometry"
)

// badgeQuiet is the light margin around the code, in modules.
const badgeQuiet = 1

// QRModules returns the dark/light module grid for payload without the
// standard quiet zone. An empty payload yields (nil, nil).
func QRModules(payload string) ([][]bool, error) {
	if payload == "" {
		return nil, nil
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	return code.Bitmap(), nil
}

// badge builds the QR group with (X, Y) as its center. A disabled badge,
// an empty payload or one too long to encode leaves the badge out.
func badge(b config.BadgeConfig, p config.Palette) (Element, bool) {
	if !b.Enabled {
		return nil, false
	}
	modules, err := QRModules(b.Payload)
	if err != nil || len(modules) == 0 {
		return nil, false
	}

	n := len(modules)
	cell := b.Size / float64(n+2*badgeQuiet)
	x0 := b.X - b.Size/2
	y0 := b.Y - b.Size/2

	var dark geometry.Path
	for row, line := range modules {
		for col, on := range line {
			if !on {
				continue
			}
			x := x0 + float64(col+badgeQuiet)*cell
			y := y0 + float64(row+badgeQuiet)*cell
			dark.MoveTo(geometry.Point{X: x, Y: y}).
				LineTo(geometry.Point{X: x + cell, Y: y}).
				LineTo(geometry.Point{X: x + cell, Y: y + cell}).
				LineTo(geometry.Point{X: x, Y: y + cell}).
				Close()
		}
	}

	return Group{
		Name:  NameBadge,
		Style: Style{Opacity: 1},
		Children: []Element{
			Rect{
				Name:  NameBadge + "-plate",
				Box:   geometry.Rect{X: x0, Y: y0, W: b.Size, H: b.Size, R: cell},
				Style: Style{Fill: b.Color, Opacity: 0.92},
			},
			Path{
				Name:  NameBadge + "-modules",
				D:     dark,
				Style: Style{Fill: p.Ground, Opacity: 1},
			},
		},
	}, true
}
