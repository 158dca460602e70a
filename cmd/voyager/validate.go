package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/voyager/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>...",
	Short: "Check documents against the schema",
	Long:  `Opens each document, which validates it against the document schema and checks that every index reference is in range and the node hierarchy is a tree.`,
	Args:  cobra.MinimumNArgs(1),
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

		var failed []error
		for _, path := range args {
			if err := cli.Validate(cmd.Context(), eng, path); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", path, err)
				failed = append(failed, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d documents invalid: %w", len(failed), len(args), errors.Join(failed...))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
