package imageio

import (
	"image"
	"image/draw"
	"image/gif"
)

// CompositeFrames renders every frame of a GIF onto a full-size canvas,
// honoring each frame's disposal method, and returns a snapshot of the canvas
// after each one. The logical screen starts out fully transparent.
func CompositeFrames(animation *gif.GIF) []image.Image {
	screen := image.Rect(0, 0, animation.Config.Width, animation.Config.Height)
	if screen.Empty() {
		for _, frame := range animation.Image {
			screen = screen.Union(frame.Bounds())
		}
	}

	canvas := image.NewNRGBA(screen)
	frames := make([]image.Image, 0, len(animation.Image))

	for i, frame := range animation.Image {
		disposal := byte(0)
		if i < len(animation.Disposal) {
			disposal = animation.Disposal[i]
		}

		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames = append(frames, cloneNRGBA(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames
}

func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	clone := image.NewNRGBA(img.Rect)
	copy(clone.Pix, img.Pix)
	return clone
}
