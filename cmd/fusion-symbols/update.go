package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/fusion-symbols/internal/fusion"
	"github.com/inodb/fusion-symbols/internal/hgnc"
)

// addHGNCFlags registers the HGNC table flags shared by update and conflicts.
func addHGNCFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("hgnc", "g", "", "Gene name database TSV file from HGNC: hgnc_complete_set.txt")
	flags.StringP("prev-column", "p", hgnc.DefaultPrevColumn, "Column name for the previous gene symbol(s) in the HGNC TSV")
	flags.StringP("symbol-column", "n", hgnc.DefaultSymbolColumn, "Column name for the current gene symbol in the HGNC TSV")
	flags.String("engine", fusion.EngineScan, "HGNC loading engine: scan, duckdb")
}

// bindHGNCFlags binds the HGNC flags of the running command. Binding happens
// at run time because update and conflicts share flag names.
func bindHGNCFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	viper.BindPFlag("hgnc.path", flags.Lookup("hgnc"))
	viper.BindPFlag("hgnc.prev-column", flags.Lookup("prev-column"))
	viper.BindPFlag("hgnc.symbol-column", flags.Lookup("symbol-column"))
	viper.BindPFlag("hgnc.engine", flags.Lookup("engine"))
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update previous gene symbols in a fusions TSV",
		Long: `Update previous gene symbols in the requested columns of a fusions TSV.

Files ending in "gz" are read and written gzip-compressed. Use '-' for
stdin or stdout. The run stops if a previous symbol has more than one
current symbol in HGNC; use "fusion-symbols conflicts" to list them.`,
		Example: `  fusion-symbols update -g hgnc_complete_set.txt -f fusion-dgd.tsv.gz -o updated.tsv.gz
  fusion-symbols update -g hgnc_complete_set.txt -f fusions.tsv -u FusionName,Gene1A -o -`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindHGNCFlags(cmd)
			flags := cmd.Flags()
			viper.BindPFlag("fusions.path", flags.Lookup("fusions"))
			viper.BindPFlag("fusions.update-columns", flags.Lookup("update-columns"))
			viper.BindPFlag("output", flags.Lookup("output"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate()
		},
	}

	addHGNCFlags(cmd)
	flags := cmd.Flags()
	flags.StringP("fusions", "f", "", "Custom fusions TSV file: fusion-dgd.tsv.gz")
	flags.StringSliceP("update-columns", "u", fusion.DefaultUpdateColumns, "Column names in the fusions TSV whose gene symbols are updated")
	flags.StringP("output", "o", "", "Output TSV file (compressed if the name ends in gz)")

	return cmd
}

func runUpdate() error {
	opts := fusion.Options{
		Engine:        viper.GetString("hgnc.engine"),
		HGNCPath:      viper.GetString("hgnc.path"),
		PrevColumn:    viper.GetString("hgnc.prev-column"),
		SymbolColumn:  viper.GetString("hgnc.symbol-column"),
		FusionsPath:   viper.GetString("fusions.path"),
		UpdateColumns: viper.GetStringSlice("fusions.update-columns"),
		OutputPath:    viper.GetString("output"),
	}

	if opts.HGNCPath == "" {
		return usageErrorf("--hgnc is required")
	}
	if opts.FusionsPath == "" {
		return usageErrorf("--fusions is required")
	}
	if opts.OutputPath == "" {
		return usageErrorf("--output is required")
	}

	u := fusion.NewUpdater(opts)
	u.SetLogger(logger)
	_, err := u.Run()
	return err
}
