package fusion

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/inodb/fusion-symbols/internal/duckdb"
	"github.com/inodb/fusion-symbols/internal/fileio"
	"github.com/inodb/fusion-symbols/internal/hgnc"
)

// Symbol loading engines.
const (
	EngineScan   = "scan"   // line scanner over the HGNC table
	EngineDuckDB = "duckdb" // DuckDB read_csv into an in-memory table
)

// Options configures an Updater run.
type Options struct {
	Engine        string
	HGNCPath      string
	PrevColumn    string
	SymbolColumn  string
	FusionsPath   string
	UpdateColumns []string
	OutputPath    string
}

// Updater rewrites a fusions table using symbols from an HGNC table.
type Updater struct {
	opts   Options
	logger *zap.Logger
}

// NewUpdater creates an Updater. Empty column options fall back to the defaults.
func NewUpdater(opts Options) *Updater {
	if opts.Engine == "" {
		opts.Engine = EngineScan
	}
	if opts.PrevColumn == "" {
		opts.PrevColumn = hgnc.DefaultPrevColumn
	}
	if opts.SymbolColumn == "" {
		opts.SymbolColumn = hgnc.DefaultSymbolColumn
	}
	if len(opts.UpdateColumns) == 0 {
		opts.UpdateColumns = DefaultUpdateColumns
	}
	return &Updater{
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for info and debug messages.
func (u *Updater) SetLogger(l *zap.Logger) {
	u.logger = l
}

// Run loads the HGNC table, then streams the fusions table to the output.
// On error the output file is left as written so far.
func (u *Updater) Run() (Stats, error) {
	symbols, err := u.loadSymbols()
	if err != nil {
		return Stats{}, err
	}

	in, err := fileio.Open(u.opts.FusionsPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open fusions table: %w", err)
	}
	defer in.Close()

	reader, err := NewReader(in)
	if err != nil {
		return Stats{}, err
	}
	rewriter, err := NewRewriter(reader.Header(), u.opts.UpdateColumns, symbols)
	if err != nil {
		return Stats{}, err
	}

	out, err := fileio.Create(u.opts.OutputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}

	stats, err := Stream(reader, rewriter, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return stats, err
	}

	u.logger.Info("updated fusions table",
		zap.String("output", u.opts.OutputPath),
		zap.Int("rows", stats.Rows),
		zap.Int("cells_updated", stats.CellsUpdated))
	return stats, nil
}

func (u *Updater) loadSymbols() (hgnc.SymbolMap, error) {
	if fp, err := fileio.StatFile(u.opts.HGNCPath); err == nil {
		u.logger.Info("loading HGNC table",
			zap.String("path", fp.Path),
			zap.Int64("size", fp.Size),
			zap.Time("mtime", fp.ModTime))
	}

	var symbols hgnc.SymbolMap
	var err error
	switch u.opts.Engine {
	case EngineScan:
		symbols, err = hgnc.LoadSymbolMap(u.opts.HGNCPath, u.opts.PrevColumn, u.opts.SymbolColumn)
	case EngineDuckDB:
		symbols, err = LoadSymbolMapDuckDB(u.opts.HGNCPath, u.opts.PrevColumn, u.opts.SymbolColumn, u.logger)
	default:
		return nil, fmt.Errorf("unknown engine %q", u.opts.Engine)
	}
	if err != nil {
		return nil, err
	}

	u.logger.Info("loaded HGNC previous symbols",
		zap.Int("symbols", len(symbols)),
		zap.Int("pairs", symbols.Pairs()))
	if conflicts := symbols.Ambiguous(); len(conflicts) > 0 {
		u.logger.Debug("HGNC previous symbols with multiple current symbols",
			zap.Int("count", len(conflicts)))
	}
	return symbols, nil
}

// LoadSymbolMapDuckDB loads the HGNC table through an in-memory DuckDB store.
func LoadSymbolMapDuckDB(path, prevColumn, symbolColumn string, logger *zap.Logger) (hgnc.SymbolMap, error) {
	store, err := duckdb.Open()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.LoadHGNC(path, prevColumn, symbolColumn); err != nil {
		return nil, err
	}

	count, err := store.Count()
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded HGNC table into DuckDB", zap.Int64("pairs", count))

	return store.SymbolMap()
}

// Stream copies the header from reader to out, then each row rewritten.
// Blank lines are copied through. The first error stops the stream.
func Stream(reader *Reader, rewriter *Rewriter, out io.Writer) (Stats, error) {
	writer := NewWriter(out)
	if err := writer.WriteHeader(reader.HeaderLine()); err != nil {
		return Stats{}, fmt.Errorf("write header: %w", err)
	}

	for {
		fields, err := reader.Next()
		if err != nil {
			// Best effort: keep the rows written so far.
			writer.Flush()
			return rewriter.Stats(), err
		}
		if fields == nil {
			break
		}

		if len(fields) > 0 {
			fields, err = rewriter.Rewrite(fields)
			if err != nil {
				// Best effort: keep the rows written so far.
				writer.Flush()
				return rewriter.Stats(), fmt.Errorf("fusions line %d: %w", reader.LineNumber(), err)
			}
		}

		if err := writer.WriteRow(fields); err != nil {
			return rewriter.Stats(), fmt.Errorf("write row: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return rewriter.Stats(), fmt.Errorf("flush output: %w", err)
	}
	return rewriter.Stats(), nil
}
