// Package converter turns image files into HEBitmap files and back, following
// the same naming rules for inputs and outputs as the command line tool.
package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/risolvipro/HEBitmap"
)

const (
	// BitmapExtension is used for files holding a single bitmap record.
	BitmapExtension = ".heb"
	// TableExtension is used for files holding a table record.
	TableExtension = ".hebt"
)

// Options controls where output goes and how it's encoded.
type Options struct {
	// Encode is used for every record written by [EncodePath]. It's ignored
	// when decoding since records carry their own version.
	Encode hebitmap.EncodeOptions

	// OutputDir overrides the output directory. If empty, output goes to the
	// input's directory for absolute input paths, and to WorkingDir for
	// relative ones.
	OutputDir string

	// WorkingDir is used to resolve relative input paths. If empty, the
	// process's current directory is used.
	WorkingDir string
}

// DefaultOptions writes the latest format version with compression.
var DefaultOptions = Options{Encode: hebitmap.DefaultEncodeOptions}

// Result lists what a conversion produced.
type Result struct {
	// Input is the resolved input path.
	Input string
	// Outputs holds every file written, in order.
	Outputs []string
	// Frames is the number of images converted.
	Frames int
}

// resolve returns the absolute input path and the directory output should go
// into.
func (opts Options) resolve(input string) (string, string, error) {
	workingDir := opts.WorkingDir
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return "", "", err
		}
	}

	resolved := filepath.Clean(input)
	outputDir := workingDir
	if filepath.IsAbs(input) {
		outputDir = filepath.Dir(resolved)
	} else {
		resolved = filepath.Join(workingDir, resolved)
	}

	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	return resolved, outputDir, nil
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// availableDirectory returns the first of `dir/name`, `dir/name-2`,
// `dir/name-3`... that doesn't exist yet.
func availableDirectory(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	for i := 2; ; i++ {
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d", name, i))
	}
}
