package rawstore

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

// StreamWriter writes rows of a large dataset as gzip-compressed NDJSON
// (one JSON object per line) to raw/<asset>.ndjson.gz.
type StreamWriter struct {
	file   *os.File
	gz     *gzip.Writer
	buf    *bufio.Writer
	rows   int
	closed bool
}

// NewStreamWriter opens a stream writer for the given asset.
func (s *Store) NewStreamWriter(asset string) (*StreamWriter, error) {
	path := s.RawPath(asset, "ndjson.gz")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, newError(errlvl.ERROR, errWriteFile, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, newError(errlvl.ERROR, errWriteFile, err)
	}

	gz := gzip.NewWriter(file)

	return &StreamWriter{
		file: file,
		gz:   gz,
		buf:  bufio.NewWriter(gz),
	}, nil
}

// Write appends a single row to the stream.
func (w *StreamWriter) Write(row any) error {
	line, err := json.Marshal(row)
	if err != nil {
		return newError(errlvl.ERROR, errMarshal, err)
	}

	if _, err := w.buf.Write(append(line, '\n')); err != nil {
		return newError(errlvl.ERROR, errWriteFile, err)
	}

	w.rows++
	return nil
}

// Rows returns the number of rows written so far.
func (w *StreamWriter) Rows() int {
	return w.rows
}

// Close flushes and closes the stream. Safe to call more than once.
func (w *StreamWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := errors.Join(w.buf.Flush(), w.gz.Close(), w.file.Close())
	if err != nil {
		return newError(errlvl.ERROR, errWriteFile, err)
	}

	return nil
}
