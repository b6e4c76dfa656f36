package fusion

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reader reads rows from a tab-separated fusions table.
type Reader struct {
	reader     *bufio.Reader
	lineNumber int
	headerLine string
	header     []string
}

// NewReader reads the header line from r.
func NewReader(r io.Reader) (*Reader, error) {
	fr := &Reader{reader: bufio.NewReader(r)}

	line, err := fr.readLine()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Message: "no header line found"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	fr.headerLine = line
	fr.header = strings.Split(line, "\t")
	return fr, nil
}

// Next reads the next row. Blank lines yield an empty row.
// Returns nil, nil when there are no more rows.
func (fr *Reader) Next() ([]string, error) {
	line, err := fr.readLine()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fusion line %d: %w", fr.lineNumber+1, err)
	}

	if line == "" {
		return []string{}, nil
	}
	return strings.Split(line, "\t"), nil
}

func (fr *Reader) readLine() (string, error) {
	line, err := fr.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	fr.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// Header returns the column names.
func (fr *Reader) Header() []string {
	return fr.header
}

// HeaderLine returns the header line as read, without its terminator.
func (fr *Reader) HeaderLine() string {
	return fr.headerLine
}

// LineNumber returns the line number of the last line read.
func (fr *Reader) LineNumber() int {
	return fr.lineNumber
}
