package hebitmap

import (
	"image"

	"github.com/risolvipro/HEBitmap/utilities/bitpack"
)

// Bounds is a rectangle in canvas coordinates, relative to the top left corner
// of the source image.
type Bounds struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Rect converts the bounds to an [image.Rectangle].
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
}

// RowBytes is the aligned row size for a bitmap with these bounds.
func (b Bounds) RowBytes() uint32 {
	return uint32(bitpack.RowBytes(int(b.Width)))
}

// ReduceBounds finds the smallest rectangle containing every pixel of img
// with a non-zero alpha. If there are none, the whole canvas is returned.
func ReduceBounds(img image.Image) Bounds {
	bounds, _ := scanAlpha(img)
	return bounds
}

// scanAlpha computes the content bounds of img and also reports whether any
// of its pixels has an alpha of 127 or less.
func scanAlpha(img image.Image) (Bounds, bool) {
	canvas := img.Bounds()
	full := Bounds{Width: uint32(canvas.Dx()), Height: uint32(canvas.Dy())}

	minX, minY := canvas.Max.X, canvas.Max.Y
	maxX, maxY := canvas.Min.X, canvas.Min.Y
	found := false
	translucent := false

	for y := canvas.Min.Y; y < canvas.Max.Y; y++ {
		for x := canvas.Min.X; x < canvas.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a>>8 <= 127 {
				translucent = true
			}
			if a == 0 {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if x+1 > maxX {
				maxX = x + 1
			}
			if y < minY {
				minY = y
			}
			if y+1 > maxY {
				maxY = y + 1
			}
		}
	}

	if !found {
		return full, translucent
	}
	return Bounds{
		X:      uint32(minX - canvas.Min.X),
		Y:      uint32(minY - canvas.Min.Y),
		Width:  uint32(maxX - minX),
		Height: uint32(maxY - minY),
	}, translucent
}
