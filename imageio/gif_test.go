package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/imageio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gifPalette = color.Palette{
	color.RGBA{},
	color.RGBA{A: 0xff},
	color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

const (
	gifClear = 0
	gifBlack = 1
	gifWhite = 2
)

func filledFrame(rect image.Rectangle, index uint8) *image.Paletted {
	frame := image.NewPaletted(rect, gifPalette)
	for i := range frame.Pix {
		frame.Pix[i] = index
	}
	return frame
}

// encodeAnimation builds a 4x4 GIF and decodes it again, so the frames go
// through the same path as a file read from disk.
func encodeAnimation(t *testing.T, frames []*image.Paletted, disposal []byte) *imageio.Source {
	// The first frame covers the left half of the screen in black.
	animation := &gif.GIF{
		Image:    frames,
		Delay:    make([]int, len(frames)),
		Disposal: disposal,
		Config:   image.Config{Width: 4, Height: 4},
	}

	var buffer bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buffer, animation))

	source, err := imageio.Decode(&buffer)
	require.NoError(t, err)
	assert.Equal(t, "gif", source.Format)
	return source
}

func leftHalfBlack() *image.Paletted {
	frame := filledFrame(image.Rect(0, 0, 4, 4), gifClear)
	for y := 0; y < 4; y++ {
		frame.SetColorIndex(0, y, gifBlack)
		frame.SetColorIndex(1, y, gifBlack)
	}
	return frame
}

func colorsAt(img image.Image, points ...image.Point) []hebitmap.Color {
	result := make([]hebitmap.Color, len(points))
	for i, p := range points {
		result[i] = hebitmap.Model.Convert(img.At(p.X, p.Y)).(hebitmap.Color)
	}
	return result
}

func TestCompositeFrames__DisposalBackground(t *testing.T) {
	source := encodeAnimation(
		t,
		[]*image.Paletted{
			leftHalfBlack(),
			filledFrame(image.Rect(2, 0, 4, 2), gifWhite),
			filledFrame(image.Rect(0, 3, 1, 4), gifWhite),
		},
		[]byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
	)
	require.True(t, source.Animated())
	require.Len(t, source.Frames, 3)

	points := []image.Point{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	assert.Equal(
		t,
		[]hebitmap.Color{hebitmap.Black, hebitmap.Clear, hebitmap.Black, hebitmap.Clear},
		colorsAt(source.Frames[0], points...))
	assert.Equal(
		t,
		[]hebitmap.Color{hebitmap.Black, hebitmap.White, hebitmap.Black, hebitmap.Clear},
		colorsAt(source.Frames[1], points...))
	// The second frame's rectangle was cleared before the third was drawn.
	assert.Equal(
		t,
		[]hebitmap.Color{hebitmap.Black, hebitmap.Clear, hebitmap.White, hebitmap.Clear},
		colorsAt(source.Frames[2], points...))

	for _, frame := range source.Frames {
		assert.Equal(t, image.Rect(0, 0, 4, 4), frame.Bounds())
	}
}

func TestCompositeFrames__DisposalPrevious(t *testing.T) {
	source := encodeAnimation(
		t,
		[]*image.Paletted{
			leftHalfBlack(),
			filledFrame(image.Rect(0, 0, 4, 4), gifWhite),
			filledFrame(image.Rect(3, 3, 4, 4), gifWhite),
		},
		[]byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone},
	)
	require.Len(t, source.Frames, 3)

	points := []image.Point{{0, 0}, {3, 0}, {3, 3}}
	assert.Equal(
		t,
		[]hebitmap.Color{hebitmap.White, hebitmap.White, hebitmap.White},
		colorsAt(source.Frames[1], points...))
	assert.Equal(
		t,
		[]hebitmap.Color{hebitmap.Black, hebitmap.Clear, hebitmap.White},
		colorsAt(source.Frames[2], points...))
}

func TestCompositeFrames__SnapshotsAreIndependent(t *testing.T) {
	animation := &gif.GIF{
		Image: []*image.Paletted{
			filledFrame(image.Rect(0, 0, 2, 2), gifBlack),
			filledFrame(image.Rect(0, 0, 2, 2), gifWhite),
		},
	}

	frames := imageio.CompositeFrames(animation)
	require.Len(t, frames, 2)
	// No logical screen size, so the canvas is the union of the frames.
	assert.Equal(t, image.Rect(0, 0, 2, 2), frames[0].Bounds())
	assert.Equal(t, []hebitmap.Color{hebitmap.Black}, colorsAt(frames[0], image.Pt(1, 1)))
	assert.Equal(t, []hebitmap.Color{hebitmap.White}, colorsAt(frames[1], image.Pt(1, 1)))
}

func TestDecode__SingleFrameGIFIsStill(t *testing.T) {
	source := encodeAnimation(
		t, []*image.Paletted{leftHalfBlack()}, []byte{gif.DisposalNone})
	assert.False(t, source.Animated())
	require.Len(t, source.Frames, 1)
}
