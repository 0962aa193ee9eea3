package rst

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/mvp-joe/xml2rst/internal/doxygen"
)

// Output paths, relative to the renderer's root.
const (
	IndexPage     = "index.rst"
	ReferencePage = "reference/c_ref.rst"
)

// Options controls how pages reach the disk.
type Options struct {
	// Atomic writes each page to a temp file and renames it into place.
	Atomic bool
	// CreateDirs creates missing parent directories instead of failing.
	CreateDirs bool
}

// Renderer writes the generated pages below a root directory.
type Renderer struct {
	root string
	opts Options
}

// NewRenderer creates a renderer writing below root.
func NewRenderer(root string, opts Options) *Renderer {
	return &Renderer{root: root, opts: opts}
}

// IndexPath returns where the index page is written.
func (r *Renderer) IndexPath() string {
	return filepath.Join(r.root, filepath.FromSlash(IndexPage))
}

// ReferencePath returns where the C reference page is written.
func (r *Renderer) ReferencePath() string {
	return filepath.Join(r.root, filepath.FromSlash(ReferencePage))
}

// WriteIndexPage overwrites the index page with one titled for version.
func (r *Renderer) WriteIndexPage(version string) error {
	return r.writePage(r.IndexPath(), func(w io.Writer) error {
		return RenderIndexPage(w, version)
	})
}

// WriteReferencePage overwrites the C reference page.
func (r *Renderer) WriteReferencePage(symbols doxygen.Symbols, excluded doxygen.NameSet) error {
	return r.writePage(r.ReferencePath(), func(w io.Writer) error {
		return RenderReferencePage(w, symbols, excluded)
	})
}

// Render writes both pages for result, index page first.
func (r *Renderer) Render(result *doxygen.Result, excluded doxygen.NameSet) error {
	if err := r.WriteIndexPage(result.Version); err != nil {
		return err
	}
	return r.WriteReferencePage(result.Symbols, excluded)
}

func (r *Renderer) writePage(path string, render func(io.Writer) error) error {
	if r.opts.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	var err error
	if r.opts.Atomic {
		err = writeAtomic(path, render)
	} else {
		err = writeInPlace(path, render)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Debug().Str("path", path).Bool("atomic", r.opts.Atomic).Msg("wrote page")
	return nil
}

// writeInPlace truncates path and renders into it. A failure part way
// through leaves a partial file behind.
func writeInPlace(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// writeAtomic renders into a temp file next to path and renames it over
// path once fully written. The temp file is removed on any failure. The
// page keeps the mode of the file it replaces; a new page gets the same
// umask-derived mode os.Create would give it.
func writeAtomic(path string, render func(io.Writer) error) error {
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp-"+uuid.New().String())
	tmp, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(tmp)
	err = render(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err == nil {
		if fi, statErr := os.Stat(path); statErr == nil {
			err = tmp.Chmod(fi.Mode().Perm())
		}
	}
	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
