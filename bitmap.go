package hebitmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/risolvipro/HEBitmap/utilities/bitpack"
)

// Bitmap is a 1-bit image with an optional 1-bit transparency mask. Only the
// rectangle holding visible content is stored; everything else in the
// FullWidth x FullHeight canvas is transparent.
//
// Bitmaps are built once, either by [FromImage] or by a decoder, and must not
// be modified afterwards.
type Bitmap struct {
	FullWidth  uint32
	FullHeight uint32

	BoundsX      uint32
	BoundsY      uint32
	BoundsWidth  uint32
	BoundsHeight uint32

	// RowBytes is the size of one packed row, always a multiple of 4.
	RowBytes uint32

	HasMask bool
	// PixelData holds RowBytes*BoundsHeight bytes, one bit per pixel, most
	// significant bit first. 1 is white, 0 is black.
	PixelData []byte
	// MaskData has the same layout as PixelData and is nil unless HasMask is
	// set. 1 is opaque, 0 is transparent.
	MaskData []byte
}

// Bounds returns the content rectangle of the bitmap.
func (b *Bitmap) Bounds() Bounds {
	return Bounds{X: b.BoundsX, Y: b.BoundsY, Width: b.BoundsWidth, Height: b.BoundsHeight}
}

// BodySize is the size in bytes of one uncompressed plane (pixels or mask).
func (b *Bitmap) BodySize() int {
	return int(b.RowBytes) * int(b.BoundsHeight)
}

// UncompressedSize is the number of bytes needed to hold the expanded pixel
// data and, if present, the mask.
func (b *Bitmap) UncompressedSize() int {
	if b.HasMask {
		return 2 * b.BodySize()
	}
	return b.BodySize()
}

// planes returns the bodies in the order they're serialized.
func (b *Bitmap) planes() [][]byte {
	if b.HasMask {
		return [][]byte{b.PixelData, b.MaskData}
	}
	return [][]byte{b.PixelData}
}

// geometryError describes the first inconsistency in the bitmap's header
// fields, or returns an empty string if there's none.
func (b *Bitmap) geometryError() string {
	if uint64(b.BoundsX)+uint64(b.BoundsWidth) > uint64(b.FullWidth) {
		return fmt.Sprintf(
			"bounds x=%d width=%d exceed canvas width %d", b.BoundsX, b.BoundsWidth, b.FullWidth)
	}
	if uint64(b.BoundsY)+uint64(b.BoundsHeight) > uint64(b.FullHeight) {
		return fmt.Sprintf(
			"bounds y=%d height=%d exceed canvas height %d", b.BoundsY, b.BoundsHeight, b.FullHeight)
	}
	if uint64(b.RowBytes)*8 < uint64(b.BoundsWidth) {
		return fmt.Sprintf(
			"row size of %d bytes can't hold %d pixels", b.RowBytes, b.BoundsWidth)
	}
	if b.RowBytes%4 != 0 {
		return fmt.Sprintf("row size %d isn't a multiple of 4", b.RowBytes)
	}
	return ""
}

func (b *Bitmap) validate() error {
	if msg := b.geometryError(); msg != "" {
		return ErrInvalidInput.WithMessage(msg)
	}
	if len(b.PixelData) != b.BodySize() {
		return ErrInvalidInput.WithMessage(
			fmt.Sprintf("pixel data is %d bytes, expected %d", len(b.PixelData), b.BodySize()))
	}
	if b.HasMask && len(b.MaskData) != b.BodySize() {
		return ErrInvalidInput.WithMessage(
			fmt.Sprintf("mask data is %d bytes, expected %d", len(b.MaskData), b.BodySize()))
	}
	return nil
}

// FromImage converts an image to a bitmap, trimming fully transparent borders.
//
// A pixel is white if its luminance rounds to 127 or more, and opaque in the
// mask if its alpha is at least 127. The mask is kept if any pixel of the
// source, trimmed or not, has an alpha of 127 or less, so a bitmap whose
// content rectangle is entirely opaque still carries a mask when the source
// had a transparent border.
func FromImage(img image.Image) *Bitmap {
	canvas := img.Bounds()
	bounds, hasMask := scanAlpha(img)
	width := int(bounds.Width)
	height := int(bounds.Height)
	rowBytes := bitpack.RowBytes(width)

	pixelBits := make([]byte, width*height)
	maskBits := make([]byte, width*height)

	origin := canvas.Min.Add(image.Pt(int(bounds.X), int(bounds.Y)))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(origin.X+x, origin.Y+y)).(color.NRGBA)
			pixelBits[y*width+x] = luminanceBit(c)
			maskBits[y*width+x] = alphaBit(c)
		}
	}

	b := &Bitmap{
		FullWidth:    uint32(canvas.Dx()),
		FullHeight:   uint32(canvas.Dy()),
		BoundsX:      bounds.X,
		BoundsY:      bounds.Y,
		BoundsWidth:  bounds.Width,
		BoundsHeight: bounds.Height,
		RowBytes:     uint32(rowBytes),
		HasMask:      hasMask,
		PixelData:    bitpack.Pack(pixelBits, width, rowBytes),
	}
	if hasMask {
		b.MaskData = bitpack.Pack(maskBits, width, rowBytes)
	}
	return b
}

// ColorAt returns the color of the pixel at (x, y) in canvas coordinates.
// Anything outside the content rectangle is [Clear].
func (b *Bitmap) ColorAt(x, y int) Color {
	if x < int(b.BoundsX) || y < int(b.BoundsY) ||
		x >= int(b.BoundsX+b.BoundsWidth) || y >= int(b.BoundsY+b.BoundsHeight) {
		return Clear
	}

	srcX := x - int(b.BoundsX)
	srcY := y - int(b.BoundsY)
	if b.HasMask && !bitpack.Get(b.MaskData, int(b.RowBytes), srcX, srcY) {
		return Clear
	}
	if bitpack.Get(b.PixelData, int(b.RowBytes), srcX, srcY) {
		return White
	}
	return Black
}

// MaxImagePixels is the largest canvas, in pixels, that [Bitmap.Image] will
// allocate. At four bytes per pixel that's 256 MiB.
const MaxImagePixels = 1 << 26

// Image renders the bitmap onto a transparent canvas of its full size. Masked
// pixels keep their black or white value with an alpha of zero.
//
// Canvases larger than [MaxImagePixels] fail with [ErrInvalidInput]; decoded
// headers can declare up to 2^32-1 pixels on each side.
func (b *Bitmap) Image() (*image.NRGBA, error) {
	pixels := uint64(b.FullWidth) * uint64(b.FullHeight)
	if pixels > MaxImagePixels {
		return nil, ErrInvalidInput.WithMessage(
			fmt.Sprintf(
				"canvas of %dx%d is larger than %d pixels",
				b.FullWidth,
				b.FullHeight,
				MaxImagePixels,
			),
		)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(b.FullWidth), int(b.FullHeight)))
	rowBytes := int(b.RowBytes)

	for y := 0; y < int(b.BoundsHeight); y++ {
		for x := 0; x < int(b.BoundsWidth); x++ {
			c := color.NRGBA{A: 0xff}
			if bitpack.Get(b.PixelData, rowBytes, x, y) {
				c.R, c.G, c.B = 0xff, 0xff, 0xff
			}
			if b.HasMask && !bitpack.Get(b.MaskData, rowBytes, x, y) {
				c.A = 0
			}
			img.SetNRGBA(int(b.BoundsX)+x, int(b.BoundsY)+y, c)
		}
	}
	return img, nil
}

// DrawInto draws the bitmap onto dst with its canvas origin at `at`. Pixels
// that are transparent in the mask leave dst untouched; everything else is
// clipped to dst's bounds.
func (b *Bitmap) DrawInto(dst draw.Image, at image.Point) {
	content := b.Bounds().Rect().Add(at).Intersect(dst.Bounds())
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			c := b.ColorAt(x-at.X, y-at.Y)
			if c != Clear {
				dst.Set(x, y, c)
			}
		}
	}
}
