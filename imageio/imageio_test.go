package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/imageio"
	hebtesting "github.com/risolvipro/HEBitmap/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestLoad__PNG(t *testing.T) {
	dir := t.TempDir()
	img := hebtesting.SquareImage(10, 10, image.Rect(3, 3, 7, 7), hebtesting.OpaqueWhite)
	path := hebtesting.WritePNG(t, dir, "square.png", img)

	source, err := imageio.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", source.Format)
	assert.False(t, source.Animated())
	require.Len(t, source.Frames, 1)
	assert.Equal(t, image.Rect(0, 0, 10, 10), source.Frames[0].Bounds())

	_, _, _, a := source.Frames[0].At(0, 0).RGBA()
	assert.Zero(t, a)
	assert.Equal(t, hebitmap.White, hebitmap.Model.Convert(source.Frames[0].At(4, 4)))
}

func TestDecode__BMP(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, bmp.Encode(&buffer, hebtesting.SolidImage(5, 2, hebtesting.OpaqueBlack)))

	source, err := imageio.Decode(&buffer)
	require.NoError(t, err)
	assert.Equal(t, "bmp", source.Format)
	require.Len(t, source.Frames, 1)
	assert.Equal(t, image.Rect(0, 0, 5, 2), source.Frames[0].Bounds())
}

func TestDecode__NotAnImage(t *testing.T) {
	_, err := imageio.Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.ErrorIs(t, err, hebitmap.ErrInvalidInput)
}

func TestLoad__Missing(t *testing.T) {
	_, err := imageio.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, hebitmap.ErrInvalidInput)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := hebtesting.SquareImage(6, 4, image.Rect(1, 1, 3, 2), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	require.NoError(t, imageio.SavePNG(path, img))
	loaded := hebtesting.ReadPNG(t, path)
	assert.Equal(t, img.Bounds(), loaded.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(
				t,
				color.NRGBAModel.Convert(img.At(x, y)),
				color.NRGBAModel.Convert(loaded.At(x, y)),
				"pixel (%d, %d)", x, y)
		}
	}
}
