package hebitmap

import (
	"image/color"
	"math"
)

// Color is the value of a single rendered bitmap pixel.
type Color int

const (
	// Black is an opaque pixel whose bit is 0.
	Black Color = iota
	// White is an opaque pixel whose bit is 1.
	White
	// Clear is a pixel masked out or outside the content rectangle.
	Clear
)

// RGBA implements [color.Color].
func (c Color) RGBA() (r, g, b, a uint32) {
	switch c {
	case Black:
		return 0, 0, 0, 0xffff
	case White:
		return 0xffff, 0xffff, 0xffff, 0xffff
	default:
		return 0, 0, 0, 0
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "clear"
	}
}

// Model converts any color with the same thresholds the encoder uses.
var Model = color.ModelFunc(toColor)

func toColor(c color.Color) color.Color {
	if mono, ok := c.(Color); ok {
		return mono
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	if alphaBit(nrgba) == 0 {
		return Clear
	}
	if luminanceBit(nrgba) == 1 {
		return White
	}
	return Black
}

// luminanceBit weights the channels with the Rec. 709 luma coefficients. Ties
// round to even.
func luminanceBit(c color.NRGBA) byte {
	luminance := math.RoundToEven(
		0.2125*float64(c.R) + 0.7154*float64(c.G) + 0.0721*float64(c.B))
	if luminance < 127 {
		return 0
	}
	return 1
}

func alphaBit(c color.NRGBA) byte {
	if c.A < 127 {
		return 0
	}
	return 1
}
