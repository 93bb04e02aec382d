package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// gzipReadCloser closes both the gzip stream and its underlying file.
type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if ferr := g.file.Close(); err == nil {
		err = ferr
	}
	return err
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !gzipped {
		return file, nil
	}
	zr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &gzipReadCloser{Reader: zr, file: file}, nil
}

// Load returns the entire content of the given file, decompressing it first
// if gzipped is true. Errors wrap ErrIO.
func Load(filename string, gzipped bool) ([]byte, error) {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrIO, filename, err)
	}
	defer rc.Close()

	src, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrIO, filename, err)
	}
	return src, nil
}
