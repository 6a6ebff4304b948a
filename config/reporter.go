package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"

	"htmlcoder/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either a reference to file system path read when report is
// finalized or a snapshot of data taken at the time of the call.
type entry struct {
	path  string
	data  []byte
	stamp time.Time
}

func (e entry) snapshot() bool {
	return e.data != nil
}

// Report accumulates information necessary to prepare full debug report.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close finalizes debug report.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		// no report has been requested
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file or directory to be put in the final archive. Content
// is read when report is closed, so files still being written (logs) end up
// complete.
func (r *Report) Store(name, where string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(where); err == nil {
		where = abs
	}
	if old, exists := r.entries[name]; exists && old.path != where {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.path, where))
	}
	r.entries[name] = entry{path: where}
}

// StoreData puts binary data into the final archive under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	if data == nil {
		data = []byte{}
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// StoreCopy takes snapshot of the file or every regular file under directory
// right now. Repeated names are versioned with timestamps so the same
// content may be stored multiple times.
func (r *Report) StoreCopy(name, where string) error {
	if r == nil {
		return nil
	}

	now := time.Now()
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, now.UnixNano())
	}

	info, err := os.Stat(where)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(where)
		if err != nil {
			return err
		}
		r.entries[name] = entry{path: where, data: data, stamp: info.ModTime()}
		return nil
	}

	return filepath.WalkDir(where, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			// ignore links, sockets, etc.
			return err
		}
		rel, err := filepath.Rel(where, p)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		r.entries[path.Join(name, filepath.ToSlash(rel))] = entry{path: p, data: data, stamp: fi.ModTime()}
		return nil
	})
}

// finalize writes MANIFEST followed by all stored entries in name order.
// Referenced paths which do not exist any longer are skipped.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	now := time.Now()
	names := slices.Sorted(maps.Keys(r.entries))

	manifest := new(bytes.Buffer)
	for _, name := range names {
		e := r.entries[name]
		stamp, origin := e.stamp, e.path
		if stamp.IsZero() {
			stamp = now
		}
		switch {
		case origin == "":
			origin = "<data>"
		case e.snapshot():
			origin += " (copy)"
		}
		fmt.Fprintf(manifest, "%s\t%s\t%s\n", stamp.UTC().Format(time.UnixDate), name, origin)
	}
	if err := addFile(arc, "MANIFEST", now, manifest); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.snapshot() {
			if err := addFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		if err := addPath(arc, name, e.path); err != nil {
			return err
		}
	}
	return arc.Close()
}

func addPath(arc *zip.Writer, name, root string) error {
	if _, err := os.Stat(root); err != nil {
		return nil
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		return addFile(arc, path.Join(name, filepath.ToSlash(rel)), fi.ModTime(), f)
	})
}

func addFile(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
