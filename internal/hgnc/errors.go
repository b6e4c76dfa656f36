package hgnc

import (
	"fmt"
	"strings"
)

// AmbiguousSymbolError reports a previous symbol that HGNC assigns to more
// than one current symbol. There is no policy for choosing between them.
type AmbiguousSymbolError struct {
	Symbol     string
	Candidates []string
}

func (e *AmbiguousSymbolError) Error() string {
	return fmt.Sprintf("cannot update gene %s: HGNC has multiple options: [%s]",
		e.Symbol, strings.Join(e.Candidates, ", "))
}

// ColumnError reports a configured column missing from the HGNC header.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("hgnc table: missing %q column", e.Column)
}

// ParseError represents an error during HGNC parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hgnc parse error at line %d: %s", e.Line, e.Message)
}
