package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/fusion-symbols/internal/duckdb"
	"github.com/inodb/fusion-symbols/internal/fileio"
	"github.com/inodb/fusion-symbols/internal/fusion"
	"github.com/inodb/fusion-symbols/internal/hgnc"
)

func newConflictsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List previous symbols with more than one current symbol",
		Long: `List every previous symbol that HGNC assigns to more than one current
symbol. "update" stops on these symbols, so fix the HGNC table (or drop
the affected fusions) first.

Output is a TSV with columns prev_symbol and candidates (pipe-separated,
in HGNC table order).`,
		Example: `  fusion-symbols conflicts -g hgnc_complete_set.txt
  fusion-symbols conflicts -g hgnc_complete_set.txt --engine duckdb -o conflicts.tsv`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindHGNCFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConflicts(output)
		},
	}

	addHGNCFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", fileio.Stdio, "Output TSV file")

	return cmd
}

func runConflicts(output string) error {
	path := viper.GetString("hgnc.path")
	if path == "" {
		return usageErrorf("--hgnc is required")
	}
	prevColumn := viper.GetString("hgnc.prev-column")
	symbolColumn := viper.GetString("hgnc.symbol-column")

	var conflicts []hgnc.Conflict
	switch engine := viper.GetString("hgnc.engine"); engine {
	case fusion.EngineScan, "":
		symbols, err := hgnc.LoadSymbolMap(path, prevColumn, symbolColumn)
		if err != nil {
			return err
		}
		conflicts = symbols.Ambiguous()
	case fusion.EngineDuckDB:
		store, err := duckdb.Open()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.LoadHGNC(path, prevColumn, symbolColumn); err != nil {
			return err
		}
		count, err := store.Count()
		if err != nil {
			return err
		}
		logger.Debug("loaded HGNC table into DuckDB", zap.Int64("pairs", count))
		if conflicts, err = store.Conflicts(); err != nil {
			return err
		}
	default:
		return usageErrorf("unknown engine %q", engine)
	}

	out, err := fileio.Create(output)
	if err != nil {
		return err
	}
	if err := writeConflicts(out, conflicts); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logger.Info("found conflicting previous symbols", zap.Int("count", len(conflicts)))
	return nil
}

func writeConflicts(out io.Writer, conflicts []hgnc.Conflict) error {
	w := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(w, "%s\tcandidates\n", hgnc.DefaultPrevColumn); err != nil {
		return err
	}
	for _, c := range conflicts {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.Symbol, strings.Join(c.Candidates, hgnc.AliasSeparator)); err != nil {
			return err
		}
	}
	return w.Flush()
}
