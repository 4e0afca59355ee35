// Package display sends decoded bitmaps to display drivers implementing
// periph.io's [display.Drawer], such as small OLED and e-paper panels.
package display

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/risolvipro/HEBitmap"
	"periph.io/x/conn/v3/display"
)

// frame exposes a bitmap as an [image.Image] covering its full canvas.
type frame struct {
	bitmap *hebitmap.Bitmap
}

func (f frame) ColorModel() color.Model {
	return hebitmap.Model
}

func (f frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(f.bitmap.FullWidth), int(f.bitmap.FullHeight))
}

func (f frame) At(x, y int) color.Color {
	return f.bitmap.ColorAt(x, y)
}

// Image returns a read-only view of b as an image. Pixels outside the content
// rectangle or cleared in the mask are [hebitmap.Clear].
func Image(b *hebitmap.Bitmap) image.Image {
	return frame{bitmap: b}
}

// Show draws the content rectangle of b onto d, with the bitmap's canvas origin
// placed at `at`. Only the part that falls inside the display is sent; if
// nothing does, the driver isn't called at all.
//
// Transparent pixels are sent as [hebitmap.Clear]. How they end up on the
// panel depends on the driver's color model; monochrome drivers turn them off.
func Show(d display.Drawer, b *hebitmap.Bitmap, at image.Point) error {
	visible := b.Bounds().Rect().Add(at).Intersect(d.Bounds())
	if visible.Empty() {
		return nil
	}
	return d.Draw(visible, Image(b), visible.Min.Sub(at))
}

// Play shows every bitmap of a table in order, waiting frameDelay after each
// one. If `loop` is set it starts over after the last frame and only returns
// once ctx is done.
func Play(
	ctx context.Context,
	d display.Drawer,
	t *hebitmap.Table,
	at image.Point,
	frameDelay time.Duration,
	loop bool,
) error {
	if t.Len() == 0 {
		return nil
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		for i := 0; i < t.Len(); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Show(d, t.At(i), at); err != nil {
				return err
			}

			timer.Reset(frameDelay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		if !loop {
			return nil
		}
	}
}
