// Package atomicfile commits output files all at once. Readers of the
// destination path either see the previous contents or the complete new
// contents, never a partially written file.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// WriteFile writes data to a temporary file in the same directory as `path`
// and renames it into place once everything has been flushed to disk.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tempFile, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := tempFile.Name()

	// Everything past this point must remove the temporary file on failure.
	fail := func(err error) error {
		var result *multierror.Error
		result = multierror.Append(result, err)
		if closeErr := tempFile.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			result = multierror.Append(result, closeErr)
		}
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			result = multierror.Append(result, removeErr)
		}
		return fmt.Errorf("failed to write %s: %w", path, result.ErrorOrNil())
	}

	if _, err := tempFile.Write(data); err != nil {
		return fail(err)
	}
	if err := tempFile.Sync(); err != nil {
		return fail(err)
	}
	if err := tempFile.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := tempFile.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fail(err)
	}
	return nil
}

// Directory collects files in a hidden staging directory next to `path` and
// moves the whole directory into place on [Directory.Commit]. If anything
// fails before then, [Directory.Abort] removes the staging directory.
type Directory struct {
	path      string
	staging   string
	committed bool
}

// NewDirectory creates the staging directory for `path`. The final directory
// must not exist yet.
func NewDirectory(path string) (*Directory, error) {
	parent, name := filepath.Split(filepath.Clean(path))
	if parent == "" {
		parent = "."
	}

	staging, err := os.MkdirTemp(parent, "."+name+".*.tmp")
	if err != nil {
		return nil, err
	}
	// MkdirTemp only grants access to the owner.
	if err := os.Chmod(staging, 0o755); err != nil {
		return nil, multierror.Append(err, os.Remove(staging)).ErrorOrNil()
	}
	return &Directory{path: path, staging: staging}, nil
}

// Path returns where a file called `name` should be written before the
// directory is committed.
func (d *Directory) Path(name string) string {
	return filepath.Join(d.staging, name)
}

// Commit renames the staging directory to its final path.
func (d *Directory) Commit() error {
	if err := os.Rename(d.staging, d.path); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.path, err)
	}
	d.committed = true
	return nil
}

// Abort removes the staging directory and everything in it. It's a no-op after
// a successful commit, so it's safe to defer.
func (d *Directory) Abort() error {
	if d.committed {
		return nil
	}
	return os.RemoveAll(d.staging)
}
