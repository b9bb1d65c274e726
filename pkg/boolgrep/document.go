package boolgrep

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Document is a named source of text to search.
type Document interface {
	// Name identifies the document in results and logs.
	Name() string
	// Open returns a reader over the document text.
	Open() (io.ReadCloser, error)
}

type textDocument struct {
	name string
	text string
}

// TextDocument returns a Document over an in-memory string.
func TextDocument(name, text string) Document {
	return textDocument{name: name, text: text}
}

func (d textDocument) Name() string { return d.name }

func (d textDocument) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(d.text)), nil
}

type fileDocument struct {
	path string
}

// FileDocument returns a Document backed by a file. Files ending in .gz
// or .zst are decompressed while reading.
func FileDocument(path string) Document {
	return fileDocument{path: path}
}

func (d fileDocument) Name() string { return d.path }

func (d fileDocument) Open() (io.ReadCloser, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(d.path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		dec := zr.IOReadCloser()
		return &stackedReader{Reader: dec, closers: []io.Closer{dec, f}}, nil
	}
	return f, nil
}

// stackedReader closes a decompressor and the file underneath it.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (r *stackedReader) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CollectFiles walks roots and returns a FileDocument for every regular
// file whose base name matches one of include (all files when empty) and
// none of exclude. Roots that are files are returned as-is.
func CollectFiles(roots, include, exclude []string) ([]Document, error) {
	for _, p := range slices.Concat(include, exclude) {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
	}

	var docs []Document
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if path != root && !selected(d.Name(), include, exclude) {
				return nil
			}
			docs = append(docs, FileDocument(path))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return docs, nil
}

func selected(name string, include, exclude []string) bool {
	for _, p := range exclude {
		if ok, _ := filepath.Match(p, name); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, p := range include {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
