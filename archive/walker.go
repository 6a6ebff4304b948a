// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/multierr"
)

// MaxEntrySize limits amount of data read from a single archive entry.
const MaxEntrySize = 256 << 20

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The name argument is entry path inside the archive. If an
// error is returned, processing stops.
type WalkFunc func(name string, file *zip.File) error

// Walk opens archive and calls walkFn for every regular entry with name
// starting with prefix.
func Walk(archive, prefix string, walkFn WalkFunc) (err error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()
	return WalkReader(&r.Reader, prefix, walkFn)
}

// WalkReader is Walk for already opened archive. Entries with path traversal
// components ("..") or absolute paths fail the walk.
func WalkReader(r *zip.Reader, prefix string, walkFn WalkFunc) error {
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) {
			if err := walkFn(name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadEntry returns content of archive entry refusing entries larger than
// MaxEntrySize.
func ReadEntry(f *zip.File) (data []byte, err error) {
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("zip entry %q is too large: %d bytes", f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open zip entry %q: %w", f.Name, err)
	}
	defer func() {
		err = multierr.Append(err, rc.Close())
	}()

	data, err = io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read zip entry %q: %w", f.Name, err)
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("zip entry %q is too large", f.Name)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
