package converter

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/imageio"
	"github.com/risolvipro/HEBitmap/utilities/atomicfile"
)

// DecodePath converts a `.heb` or `.hebt` file back into PNGs.
//
//   - `name.heb` is written to `name.png` in the output directory.
//   - `name.hebt` is written to a new directory `name` (or `name-2`,
//     `name-3`... if that's taken), holding `name-table-1.png`,
//     `name-table-2.png` and so on. The directory only appears once every
//     frame has been written.
func DecodePath(input string, opts Options) (Result, error) {
	resolved, outputDir, err := opts.resolve(input)
	if err != nil {
		return Result{}, err
	}
	result := Result{Input: resolved}

	extension := strings.ToLower(filepath.Ext(resolved))
	if extension != BitmapExtension && extension != TableExtension {
		return result, hebitmap.ErrInvalidInput.WithMessage(
			fmt.Sprintf("%s: expected a %s or %s file", resolved, BitmapExtension, TableExtension))
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return result, hebitmap.ErrInvalidInput.Wrap(err)
	}
	name := stem(resolved)

	if extension == BitmapExtension {
		b, err := hebitmap.DecodeBitmap(data)
		if err != nil {
			return result, fmt.Errorf("%s: %w", resolved, err)
		}

		img, err := b.Image()
		if err != nil {
			return result, fmt.Errorf("%s: %w", resolved, err)
		}
		outputPath := filepath.Join(outputDir, name+".png")
		if err := imageio.SavePNG(outputPath, img); err != nil {
			return result, err
		}
		result.Frames = 1
		result.Outputs = append(result.Outputs, outputPath)
		return result, nil
	}

	table, err := hebitmap.DecodeTable(data)
	if err != nil {
		return result, fmt.Errorf("%s: %w", resolved, err)
	}
	return writeTableDirectory(result, table, outputDir, name)
}

func writeTableDirectory(result Result, table *hebitmap.Table, outputDir, name string) (Result, error) {
	// Checked up front so an oversized entry doesn't leave a half-written
	// staging directory behind.
	images := make([]*image.NRGBA, 0, table.Len())
	for i, b := range table.Bitmaps {
		img, err := b.Image()
		if err != nil {
			return result, fmt.Errorf("table entry %d: %w", i, err)
		}
		images = append(images, img)
	}

	finalDir, err := availableDirectory(outputDir, name)
	if err != nil {
		return result, err
	}

	staged, err := atomicfile.NewDirectory(finalDir)
	if err != nil {
		return result, err
	}

	fail := func(err error) (Result, error) {
		if abortErr := staged.Abort(); abortErr != nil {
			err = multierror.Append(err, abortErr)
		}
		return result, err
	}

	fileNames := make([]string, 0, table.Len())
	for i, img := range images {
		fileName := imageio.TableFileName(name, i+1, ".png")
		if err := imageio.SavePNG(staged.Path(fileName), img); err != nil {
			return fail(err)
		}
		fileNames = append(fileNames, fileName)
	}

	if err := staged.Commit(); err != nil {
		return fail(err)
	}

	result.Frames = table.Len()
	for _, fileName := range fileNames {
		result.Outputs = append(result.Outputs, filepath.Join(finalDir, fileName))
	}
	return result, nil
}
