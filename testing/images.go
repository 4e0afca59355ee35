package testing

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/utilities/bitpack"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

var (
	OpaqueBlack = color.NRGBA{A: 0xff}
	OpaqueWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// SolidImage returns a width x height image filled with a single color.
func SolidImage(width, height int, fill color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}

// SquareImage returns a fully transparent width x height image with the
// rectangle `square` filled with `fill`.
func SquareImage(width, height int, square image.Rectangle, fill color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, square, image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}

// RandomBitmap builds a bitmap with random pixel (and optionally mask) data.
// Padding bits past the content width are left clear, as an encoder would.
func RandomBitmap(rng *rand.Rand, bounds hebitmap.Bounds, fullWidth, fullHeight uint32, withMask bool) *hebitmap.Bitmap {
	width := int(bounds.Width)
	height := int(bounds.Height)
	rowBytes := bitpack.RowBytes(width)

	randomPlane := func() []byte {
		bits := make([]byte, width*height)
		for i := range bits {
			bits[i] = byte(rng.Intn(2))
		}
		return bitpack.Pack(bits, width, rowBytes)
	}

	b := &hebitmap.Bitmap{
		FullWidth:    fullWidth,
		FullHeight:   fullHeight,
		BoundsX:      bounds.X,
		BoundsY:      bounds.Y,
		BoundsWidth:  bounds.Width,
		BoundsHeight: bounds.Height,
		RowBytes:     uint32(rowBytes),
		HasMask:      withMask,
		PixelData:    randomPlane(),
	}
	if withMask {
		b.MaskData = randomPlane()
	}
	return b
}

// OpenRecord returns a stream over a copy of an encoded record.
//
//   - Writes to the stream do not affect `record`.
//   - The stream's size is fixed to len(record); writing past the end fails.
func OpenRecord(t *testing.T, record []byte) io.ReadWriteSeeker {
	require.Greater(t, len(record), 0, "record is empty")
	recordCopy := make([]byte, len(record))
	copy(recordCopy, record)
	return bytesextra.NewReadWriteSeeker(recordCopy)
}

// WritePNG saves img as a PNG in dir and returns its path. It is guaranteed
// to either succeed or fail the test and abort.
func WritePNG(t *testing.T, dir, name string, img image.Image) string {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, png.Encode(file, img), "failed to encode %s", name)
	return path
}

// ReadPNG loads a PNG written by the decoder. It is guaranteed to either
// return a valid image or fail the test and abort.
func ReadPNG(t *testing.T, path string) image.Image {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err, "failed to decode %s", path)
	return img
}
