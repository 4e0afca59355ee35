package imageio

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/risolvipro/HEBitmap"
)

var tableFilePattern = regexp.MustCompile(`^(.+)-table-([0-9]+)$`)

// TableFile is one frame of an image table stored as a directory of files.
type TableFile struct {
	Name  string
	Index uint64
	Path  string
}

// TableFileName returns the file name used for frame `index` of table `name`.
func TableFileName(name string, index int, extension string) string {
	return fmt.Sprintf("%s-table-%d%s", name, index, extension)
}

// ParseTableFileName splits a file name of the form `<name>-table-<index>.<ext>`.
// The last return value is false if the name doesn't match.
func ParseTableFileName(fileName string) (string, uint64, bool) {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	match := tableFilePattern.FindStringSubmatch(stem)
	if match == nil {
		return "", 0, false
	}

	index, err := strconv.ParseUint(match[2], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return match[1], index, true
}

// ScanTableDirectory finds the frames of an image table in `dir`, sorted by
// index. The table is named after the frame with the lowest index. Files that
// don't follow the naming scheme are ignored; if none do, this fails with
// [hebitmap.ErrInvalidInput].
func ScanTableDirectory(dir string) (string, []TableFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, hebitmap.ErrInvalidInput.Wrap(err)
	}

	files := make([]TableFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, index, ok := ParseTableFileName(entry.Name())
		if !ok {
			continue
		}
		files = append(
			files,
			TableFile{Name: name, Index: index, Path: filepath.Join(dir, entry.Name())},
		)
	}

	if len(files) == 0 {
		return "", nil, hebitmap.ErrInvalidInput.WithMessage(
			fmt.Sprintf("no files named like <name>-table-<index> found in %s", dir))
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Index < files[j].Index
	})
	return files[0].Name, files, nil
}
