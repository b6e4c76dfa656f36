// Package hgnc builds a deprecated-to-current gene symbol lookup from the HGNC
// complete set TSV (hgnc_complete_set.txt).
package hgnc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inodb/fusion-symbols/internal/fileio"
)

// Default HGNC column names.
const (
	DefaultPrevColumn   = "prev_symbol"
	DefaultSymbolColumn = "symbol"
)

// AliasSeparator separates multiple previous symbols within one cell.
const AliasSeparator = "|"

// SymbolMap maps a previous (deprecated) symbol to every current symbol that
// claims it, in the order the claims appear in the HGNC table.
type SymbolMap map[string][]string

// Add appends symbol as a candidate for prev.
func (m SymbolMap) Add(prev, symbol string) {
	m[prev] = append(m[prev], symbol)
}

// Pairs returns the number of (previous symbol, current symbol) claims.
func (m SymbolMap) Pairs() int {
	n := 0
	for _, candidates := range m {
		n += len(candidates)
	}
	return n
}

// Resolve returns the current symbol for name. Names that are not previous
// symbols pass through unchanged. A previous symbol with more than one
// candidate returns an *AmbiguousSymbolError.
func (m SymbolMap) Resolve(name string) (string, error) {
	candidates, ok := m[name]
	if !ok {
		return name, nil
	}
	if len(candidates) > 1 {
		return "", &AmbiguousSymbolError{
			Symbol:     name,
			Candidates: append([]string(nil), candidates...),
		}
	}
	return candidates[0], nil
}

// Conflict is a previous symbol claimed more than once.
type Conflict struct {
	Symbol     string
	Candidates []string
}

// Ambiguous returns every previous symbol that Resolve would reject, sorted by symbol.
func (m SymbolMap) Ambiguous() []Conflict {
	var conflicts []Conflict
	for prev, candidates := range m {
		if len(candidates) > 1 {
			conflicts = append(conflicts, Conflict{Symbol: prev, Candidates: candidates})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Symbol < conflicts[j].Symbol
	})
	return conflicts
}

// LoadSymbolMap loads a SymbolMap from an HGNC TSV file, which may be gzipped.
func LoadSymbolMap(path, prevColumn, symbolColumn string) (SymbolMap, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hgnc table: %w", err)
	}
	defer f.Close()

	return ParseSymbolMap(f, prevColumn, symbolColumn)
}

// ParseSymbolMap reads an HGNC TSV whose first line is a header naming
// prevColumn and symbolColumn. Quotes around multi-valued previous symbol
// cells are stripped before splitting on "|". Rows without previous symbols
// contribute nothing.
func ParseSymbolMap(r io.Reader, prevColumn, symbolColumn string) (SymbolMap, error) {
	reader := bufio.NewReader(r)

	headerLine, err := readLine(reader)
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Message: "no header line found"}
	}
	if err != nil {
		return nil, fmt.Errorf("read hgnc header: %w", err)
	}

	header := strings.Split(headerLine, "\t")
	prevIdx := indexOf(header, prevColumn)
	if prevIdx < 0 {
		return nil, &ColumnError{Column: prevColumn}
	}
	symbolIdx := indexOf(header, symbolColumn)
	if symbolIdx < 0 {
		return nil, &ColumnError{Column: symbolColumn}
	}

	symbols := make(SymbolMap)
	lineNumber := 1
	for {
		line, err := readLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read hgnc line %d: %w", lineNumber+1, err)
		}
		lineNumber++

		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		var prev string
		if prevIdx < len(fields) {
			prev = strings.ReplaceAll(fields[prevIdx], `"`, "")
		}
		if prev == "" {
			continue
		}
		if symbolIdx >= len(fields) {
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("expected at least %d columns, found %d", symbolIdx+1, len(fields)),
			}
		}
		symbol := fields[symbolIdx]

		for _, alias := range strings.Split(prev, AliasSeparator) {
			if alias == "" {
				continue
			}
			symbols.Add(alias, symbol)
		}
	}

	return symbols, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func indexOf(header []string, column string) int {
	for i, col := range header {
		if col == column {
			return i
		}
	}
	return -1
}
