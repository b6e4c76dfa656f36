// Package fileio opens plain or gzip-compressed text streams keyed off the
// file name suffix.
package fileio

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Stdio is the path that selects stdin for reading and stdout for writing.
const Stdio = "-"

// IsCompressed reports whether path names a gzip stream. Any name ending in
// "gz" qualifies (".gz", ".tgz", "_gz").
func IsCompressed(path string) bool {
	return path != Stdio && strings.HasSuffix(path, "gz")
}

// reader closes the gzip stream before the file underneath it.
type reader struct {
	io.Reader
	gz   *gzip.Reader
	file *os.File
}

func (r *reader) Close() error {
	var gzErr error
	if r.gz != nil {
		gzErr = r.gz.Close()
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			return err
		}
	}
	return gzErr
}

// Open opens path for reading, decompressing when the name ends in "gz".
// The path "-" reads stdin, which is never decompressed.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if !IsCompressed(path) {
		return &reader{Reader: file, file: file}, nil
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create gzip reader for %s: %w", path, err)
	}
	return &reader{Reader: gz, gz: gz, file: file}, nil
}

// writer closes the gzip stream before the file underneath it. Writes are
// unbuffered; callers wrap the writer in their own bufio.Writer.
type writer struct {
	io.Writer
	gz   *gzip.Writer
	file *os.File
}

func (w *writer) Close() error {
	var err error
	if w.gz != nil {
		if cerr := w.gz.Close(); err == nil {
			err = cerr
		}
	}
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Create creates or truncates path for writing, compressing when the name
// ends in "gz". The path "-" writes stdout, which is not closed.
func Create(path string) (io.WriteCloser, error) {
	if path == Stdio {
		return &writer{Writer: os.Stdout}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	if !IsCompressed(path) {
		return &writer{Writer: file, file: file}, nil
	}

	gz := gzip.NewWriter(file)
	return &writer{Writer: gz, gz: gz, file: file}, nil
}

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
