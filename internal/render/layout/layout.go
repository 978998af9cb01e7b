// Package layout places pixel rectangles on the display.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// AnchorTopLeft returns a rectangle of size (widthPx,heightPx) placed in the top-left of rect.
func AnchorTopLeft(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	if widthPx < 0 {
		widthPx = 0
	}
	if heightPx < 0 {
		heightPx = 0
	}
	maxW := rect.Dx()
	maxH := rect.Dy()
	if widthPx > maxW {
		widthPx = maxW
	}
	if heightPx > maxH {
		heightPx = maxH
	}
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+widthPx, rect.Min.Y+heightPx)
}

// FitSquare returns the largest square that fits into rect, anchored at the top-left.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	if size < 0 {
		size = 0
	}
	return AnchorTopLeft(rect, size, size)
}

// Center places a rectangle of size (widthPx,heightPx) in the middle of rect.
// The size is clamped to rect; odd leftovers go to the bottom-right.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	inner := AnchorTopLeft(rect, widthPx, heightPx)
	rect = Normalize(rect)
	dx := (rect.Dx() - inner.Dx()) / 2
	dy := (rect.Dy() - inner.Dy()) / 2
	return inner.Add(image.Pt(dx, dy))
}

// Letterbox returns the largest square centered in rect after removing
// marginPx on every side.
func Letterbox(rect image.Rectangle, marginPx int) image.Rectangle {
	area := Inset(rect, marginPx)
	sq := FitSquare(area)
	return Center(area, sq.Dx(), sq.Dy())
}
