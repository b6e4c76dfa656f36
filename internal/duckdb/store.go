// Package duckdb loads HGNC previous-symbol data into DuckDB for inspection.
// The store is in-memory; read_csv reads plain and gzipped TSV alike.
package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/fusion-symbols/internal/fileio"
	"github.com/inodb/fusion-symbols/internal/hgnc"
)

// ErrStdin is returned when the HGNC table path is "-".
var ErrStdin = errors.New("duckdb engine cannot read the HGNC table from stdin")

// Store manages an in-memory DuckDB connection holding the prev_symbols table.
type Store struct {
	db *sql.DB
}

// Open opens an in-memory DuckDB database.
func Open() (*Store, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS prev_symbols (
		row_num BIGINT,
		prev_symbol VARCHAR,
		symbol VARCHAR
	)`)
	return err
}

// LoadHGNC replaces the prev_symbols table with one row per previous symbol
// alias in the HGNC TSV at tsvPath. row_num keeps the table's row order.
// Rows shorter than the header are padded with NULLs. Paths ending in "gz"
// are read as gzip; stdin is not supported.
func (s *Store) LoadHGNC(tsvPath, prevColumn, symbolColumn string) error {
	if tsvPath == fileio.Stdio {
		return ErrStdin
	}

	options := `delim='\t', header=true, all_varchar=true, null_padding=true`
	if fileio.IsCompressed(tsvPath) {
		options += `, compression='gzip'`
	}
	source := fmt.Sprintf(`read_csv(%s, %s)`, quoteLiteral(tsvPath), options)

	if err := s.checkColumns(source, prevColumn, symbolColumn); err != nil {
		return err
	}

	if _, err := s.db.Exec(`DELETE FROM prev_symbols`); err != nil {
		return fmt.Errorf("clear prev_symbols: %w", err)
	}

	// Rows with no previous symbols produce no aliases and drop out.
	query := fmt.Sprintf(`INSERT INTO prev_symbols
		SELECT row_num, alias, symbol FROM (
			SELECT row_num, symbol, unnest(string_split(prev, '|')) AS alias
			FROM (
				SELECT row_number() OVER () AS row_num,
					replace(coalesce(%s, ''), '"', '') AS prev,
					coalesce(%s, '') AS symbol
				FROM %s
			)
			WHERE prev <> ''
		)
		WHERE alias <> ''`,
		quoteIdent(prevColumn), quoteIdent(symbolColumn), source)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading HGNC data: %w", err)
	}
	return nil
}

func (s *Store) checkColumns(source string, columns ...string) error {
	rows, err := s.db.Query(`SELECT * FROM ` + source + ` LIMIT 0`)
	if err != nil {
		return fmt.Errorf("read HGNC header: %w", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("read HGNC header: %w", err)
	}
	for _, col := range columns {
		found := false
		for _, name := range header {
			if name == col {
				found = true
				break
			}
		}
		if !found {
			return &hgnc.ColumnError{Column: col}
		}
	}
	return nil
}

// Count returns the number of (previous symbol, current symbol) rows loaded.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM prev_symbols`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count prev_symbols rows: %w", err)
	}
	return count, nil
}

// SymbolMap reads the loaded table back as an hgnc.SymbolMap.
func (s *Store) SymbolMap() (hgnc.SymbolMap, error) {
	rows, err := s.db.Query(`SELECT prev_symbol, symbol FROM prev_symbols ORDER BY row_num`)
	if err != nil {
		return nil, fmt.Errorf("query prev_symbols: %w", err)
	}
	defer rows.Close()

	symbols := make(hgnc.SymbolMap)
	for rows.Next() {
		var prev, symbol string
		if err := rows.Scan(&prev, &symbol); err != nil {
			return nil, fmt.Errorf("scan prev_symbols row: %w", err)
		}
		symbols.Add(prev, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("prev_symbols rows: %w", err)
	}
	return symbols, nil
}

// Conflicts returns previous symbols claimed by more than one row, sorted by
// symbol, with candidates in table order.
func (s *Store) Conflicts() ([]hgnc.Conflict, error) {
	rows, err := s.db.Query(`
		SELECT prev_symbol, string_agg(symbol, '|' ORDER BY row_num)
		FROM prev_symbols
		GROUP BY prev_symbol
		HAVING COUNT(*) > 1
		ORDER BY prev_symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("conflicts query: %w", err)
	}
	defer rows.Close()

	var conflicts []hgnc.Conflict
	for rows.Next() {
		var prev, candidates string
		if err := rows.Scan(&prev, &candidates); err != nil {
			return nil, fmt.Errorf("scan conflict: %w", err)
		}
		conflicts = append(conflicts, hgnc.Conflict{
			Symbol:     prev,
			Candidates: strings.Split(candidates, "|"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("conflict rows: %w", err)
	}
	return conflicts, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
