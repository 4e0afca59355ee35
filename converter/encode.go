package converter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/imageio"
	"github.com/risolvipro/HEBitmap/utilities/atomicfile"
)

// EncodePath converts `input` and writes the result to the output directory.
//
//   - A directory is read as an image table: every file named
//     `<name>-table-<index>.<ext>` becomes one entry, in index order, and the
//     table is written to `<name>.hebt`.
//   - An animated GIF is written as a table named after the file.
//   - Any other image is written as a single bitmap, `<stem>.heb`.
func EncodePath(input string, opts Options) (Result, error) {
	if err := opts.Encode.Validate(); err != nil {
		return Result{}, err
	}

	resolved, outputDir, err := opts.resolve(input)
	if err != nil {
		return Result{}, err
	}
	result := Result{Input: resolved}

	stat, err := os.Stat(resolved)
	if err != nil {
		return result, hebitmap.ErrInvalidInput.Wrap(err)
	}

	if stat.IsDir() {
		return encodeDirectory(result, outputDir, opts.Encode)
	}

	source, err := imageio.Load(resolved)
	if err != nil {
		return result, err
	}
	result.Frames = len(source.Frames)

	var record []byte
	var outputPath string
	if source.Animated() {
		table := hebitmap.NewTable(opts.Encode)
		for _, frame := range source.Frames {
			table.Append(hebitmap.FromImage(frame))
		}
		record, err = hebitmap.EncodeTable(table)
		outputPath = filepath.Join(outputDir, stem(resolved)+TableExtension)
	} else {
		record, err = hebitmap.EncodeBitmap(hebitmap.FromImage(source.Frames[0]), opts.Encode)
		outputPath = filepath.Join(outputDir, stem(resolved)+BitmapExtension)
	}
	if err != nil {
		return result, err
	}

	if err := atomicfile.WriteFile(outputPath, record, 0o644); err != nil {
		return result, err
	}
	result.Outputs = append(result.Outputs, outputPath)
	return result, nil
}

func encodeDirectory(result Result, outputDir string, encodeOpts hebitmap.EncodeOptions) (Result, error) {
	name, files, err := imageio.ScanTableDirectory(result.Input)
	if err != nil {
		return result, err
	}

	table := hebitmap.NewTable(encodeOpts)
	for _, file := range files {
		source, err := imageio.Load(file.Path)
		if err != nil {
			return result, err
		}
		// Each file is one entry, even if it happens to be animated.
		table.Append(hebitmap.FromImage(source.Frames[0]))
	}
	result.Frames = table.Len()

	record, err := hebitmap.EncodeTable(table)
	if err != nil {
		return result, fmt.Errorf("table %q: %w", name, err)
	}

	outputPath := filepath.Join(outputDir, name+TableExtension)
	if err := atomicfile.WriteFile(outputPath, record, 0o644); err != nil {
		return result, err
	}
	result.Outputs = append(result.Outputs, outputPath)
	return result, nil
}
