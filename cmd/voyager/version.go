package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/voyager"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of voyager",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "voyager version %s\n", strings.TrimSpace(voyager.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
