package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "termrank",
		Short: "Rank the most frequent meaningful terms of a review corpus",
		Long: `termrank normalizes short free-text documents, builds a document-term
matrix, prunes sparse terms and ranks what is left by total occurrence count.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TERMRANK_*, also read from .env)
3. Config file (./termrank.yaml or ~/.termrank/termrank.yaml)
4. Defaults`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			_, err := ctx.ensureLogger()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.Int("workers", 0, "Worker goroutines for document processing (0 = one per CPU)")
	_ = ctx.viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = ctx.viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = ctx.viper.BindPFlag("workers", flags.Lookup("workers"))

	rootCmd.AddCommand(newRankCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "termrank %s\n", version)
		},
	}
}
