package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/voyager/internal/cli"
	"github.com/aretw0/voyager/pkg/adapters/file"
)

var exportCmd = &cobra.Command{
	Use:   "export <document>",
	Short: "Download a document to a local directory",
	Long:  `Opens a document from the asset store and downloads its normalized form into --out, named after the last segment of its path.`,
	Args:  cobra.ExactArgs(1),
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

		outDir, _ := cmd.Flags().GetString("out")
		downloader := &cli.CaptureDownloader{Downloader: file.NewDownloader(outDir)}
		eng, err := cli.NewEngine(cfg, stack, logger, cli.EngineOptions{Debug: debugEnabled(cmd), Downloader: downloader})
		if err != nil {
			return err
		}
		defer eng.Close()

		name, err := cli.Export(cmd.Context(), eng, downloader, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "downloaded %s\n", filepath.Join(outDir, name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", ".", "Download directory")
}
