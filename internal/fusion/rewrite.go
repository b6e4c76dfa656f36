// Package fusion rewrites gene symbols in fusion TSV records.
package fusion

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter joins the two partner genes of a fusion, e.g. "BCR--ABL1".
const Delimiter = "--"

// Default columns holding gene symbols in a fusion table.
var DefaultUpdateColumns = []string{"FusionName", "Gene1A", "Gene1B"}

// ErrShortRow is returned when a row ends before an update column.
var ErrShortRow = errors.New("row has too few fields")

// Resolver maps a single gene symbol to its current name.
type Resolver interface {
	Resolve(name string) (string, error)
}

// SplitFusion splits a cell on the first fusion delimiter.
func SplitFusion(cell string) (geneA, geneB string, ok bool) {
	return strings.Cut(cell, Delimiter)
}

// RewriteCell resolves a single symbol, or each partner of a fusion
// independently before rejoining them.
func RewriteCell(cell string, r Resolver) (string, error) {
	geneA, geneB, ok := SplitFusion(cell)
	if !ok {
		return r.Resolve(cell)
	}

	newA, err := r.Resolve(geneA)
	if err != nil {
		return "", err
	}
	newB, err := r.Resolve(geneB)
	if err != nil {
		return "", err
	}
	return newA + Delimiter + newB, nil
}

// Stats counts rows passed through a Rewriter.
type Stats struct {
	Rows         int
	CellsUpdated int
}

// Rewriter updates the configured columns of fusion rows.
type Rewriter struct {
	resolver Resolver
	columns  []string
	indices  []int
	stats    Stats
}

// NewRewriter resolves columns against header. Every column must be present.
func NewRewriter(header, columns []string, r Resolver) (*Rewriter, error) {
	indices := make([]int, len(columns))
	for i, col := range columns {
		indices[i] = -1
		for j, name := range header {
			if name == col {
				indices[i] = j
				break
			}
		}
		if indices[i] < 0 {
			return nil, &ColumnError{Column: col}
		}
	}

	return &Rewriter{
		resolver: r,
		columns:  append([]string(nil), columns...),
		indices:  indices,
	}, nil
}

// Rewrite returns a copy of fields with each update column resolved, in
// column order. Other fields are left untouched.
func (rw *Rewriter) Rewrite(fields []string) ([]string, error) {
	row := make([]string, len(fields))
	copy(row, fields)

	for i, idx := range rw.indices {
		if idx >= len(row) {
			return nil, fmt.Errorf("column %s (field %d of %d): %w",
				rw.columns[i], idx+1, len(row), ErrShortRow)
		}
		updated, err := RewriteCell(row[idx], rw.resolver)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", rw.columns[i], err)
		}
		if updated != row[idx] {
			rw.stats.CellsUpdated++
		}
		row[idx] = updated
	}

	rw.stats.Rows++
	return row, nil
}

// Stats returns counts accumulated by Rewrite.
func (rw *Rewriter) Stats() Stats {
	return rw.stats
}
