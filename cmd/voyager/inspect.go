package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/voyager/internal/cli"
	"github.com/aretw0/voyager/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Describe a document and its node tree",
	Long: `Prints a summary of the document: title, units, component counts and the node tree.
The summary is rendered as styled markdown when stdout is a terminal. --mermaid prints a
Mermaid flowchart of the node tree instead.`,
	Args: cobra.ExactArgs(1),
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

		var opts cli.InspectOptions
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		tree, _ := cmd.Flags().GetBool("tree")
		switch {
		case mermaid:
			opts.Format = cli.InspectMermaid
		case tree:
			opts.Format = cli.InspectTree
		default:
			if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
				width, _, _ := term.GetSize(fd)
				if opts.Render, err = tui.NewRenderer(width); err != nil {
					return err
				}
			}
		}
		return cli.Inspect(cmd.Context(), eng, args[0], cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart of the node tree")
	inspectCmd.Flags().Bool("tree", false, "Print the plain node tree")
}
