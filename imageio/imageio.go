// Package imageio loads raster images in the formats accepted by the encoder
// and writes decoded bitmaps back out as PNGs.
//
// PNG, GIF and JPEG come from the standard library; BMP, TIFF and WebP are
// provided by golang.org/x/image.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/utilities/atomicfile"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is a decoded raster file.
type Source struct {
	// Format is the name the format was registered under, e.g. "png" or "gif".
	Format string
	// Frames holds one fully composited image per animation frame. Still
	// images have exactly one frame.
	Frames []image.Image
}

// Animated returns true if the source is a GIF with more than one frame.
func (s *Source) Animated() bool {
	return s.Format == "gif" && len(s.Frames) > 1
}

// Decode reads an entire raster file from r. Files that aren't in a
// supported format fail with [hebitmap.ErrInvalidInput].
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, hebitmap.ErrInvalidInput.Wrap(err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, hebitmap.ErrInvalidInput.Wrap(err)
	}

	if format == "gif" {
		animation, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, hebitmap.ErrInvalidInput.Wrap(err)
		}
		return &Source{Format: format, Frames: CompositeFrames(animation)}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, hebitmap.ErrInvalidInput.Wrap(err)
	}
	return &Source{Format: format, Frames: []image.Image{img}}, nil
}

// Load decodes the raster file at `path`.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, hebitmap.ErrInvalidInput.Wrap(err)
	}
	defer file.Close()

	source, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return source, nil
}

// EncodePNG writes img to w as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img as a PNG to `path`, replacing any existing file only
// once encoding has fully succeeded.
func SavePNG(path string, img image.Image) error {
	var buffer bytes.Buffer
	if err := EncodePNG(&buffer, img); err != nil {
		return err
	}
	return atomicfile.WriteFile(path, buffer.Bytes(), 0o644)
}
