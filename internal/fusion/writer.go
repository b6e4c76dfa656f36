package fusion

import (
	"bufio"
	"io"
	"strings"
)

// Writer writes fusion rows as tab-separated lines.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new fusions writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line unchanged.
func (fw *Writer) WriteHeader(headerLine string) error {
	_, err := fw.w.WriteString(headerLine + "\n")
	return err
}

// WriteRow writes a single row.
func (fw *Writer) WriteRow(fields []string) error {
	_, err := fw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (fw *Writer) Flush() error {
	return fw.w.Flush()
}
