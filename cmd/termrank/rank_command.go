package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deidaraiorek/termrank/internal/pipeline"
	"github.com/deidaraiorek/termrank/internal/source"
	"github.com/deidaraiorek/termrank/internal/storage"
)

func newRankCommand(ctx *commandContext) *cobra.Command {
	var (
		column     string
		table      string
		jsonOutput bool
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "rank <file>",
		Short: "Rank the terms of a CSV file or SQLite table",
		Long: `Read one document per row from a CSV file (.csv) or a SQLite database
(.db, .sqlite, .sqlite3) and print the most frequent terms.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			texts, err := source.Load(cmd.Context(), args[0], source.Options{Column: column, Table: table})
			if err != nil {
				return err
			}
			logger.Debug("documents loaded", "path", args[0], "documents", len(texts))

			opts, err := cfg.PipelineOptions()
			if err != nil {
				return err
			}
			p, err := pipeline.New(opts, logger)
			if err != nil {
				return err
			}

			result, err := p.Run(cmd.Context(), texts)
			if err != nil {
				return err
			}

			if exportPath != "" {
				runID := uuid.NewString()
				db, err := storage.NewReportDB(exportPath)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.SaveRun(cmd.Context(), runID, p.SparseThreshold(), result); err != nil {
					return fmt.Errorf("export run: %w", err)
				}
				logger.Info("run exported", "path", exportPath, "run_id", runID)
			}

			ranking := result.Top(cfg.TopK)
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, rankOutput{
					Documents:       len(result.Documents),
					Terms:           len(result.Ranking),
					SparseThreshold: p.SparseThreshold(),
					Ranking:         ranking,
				})
			}
			if result.Empty() {
				fmt.Fprintln(out, "No terms left after normalization and pruning.")
				return nil
			}
			writeRanking(out, ranking)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&column, "column", source.DefaultColumn, "Column holding the document text")
	flags.StringVar(&table, "table", source.DefaultTable, "Table to read from SQLite sources")
	flags.Float64("sparse", pipeline.DefaultSparseThreshold, "Drop terms absent from more than this fraction of documents")
	flags.IntP("top", "n", 20, "Number of terms to print (0 = all)")
	flags.BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
	flags.StringVar(&exportPath, "export", "", "Also save the run to this SQLite database")
	_ = ctx.viper.BindPFlag("sparse_threshold", flags.Lookup("sparse"))
	_ = ctx.viper.BindPFlag("top_k", flags.Lookup("top"))

	return cmd
}
