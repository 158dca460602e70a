package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/voyager/internal/cli"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <document> [output]",
	Short: "Rewrite a document in normalized form",
	Long: `Reads a document and writes it back: default values are elided, indices are
renumbered in hierarchy order and nodes outside the active scene are dropped. Without an
output path the document is rewritten in place.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		stack, err := cli.NewStack(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer stack.Close()
		eng, err := cli.NewEngine(cfg, stack, logger, cli.EngineOptions{Debug: debugEnabled(cmd)})
		if err != nil {
			return err
		}
		defer eng.Close()

		out := ""
		if len(args) > 1 {
			out = args[1]
		}
		include, _ := cmd.Flags().GetStringSlice("include")
		if err := cli.Normalize(cmd.Context(), eng, args[0], out, include); err != nil {
			return err
		}
		if out == "" {
			out = args[0]
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringSlice("include", nil, "Component kinds to write (default: all), e.g. Model,Meta")
}
