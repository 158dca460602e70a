package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/voyager/internal/config"
	"github.com/aretw0/voyager/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "voyager",
	Short: "Voyager reads, checks and serves 3D scene documents",
	Long: `Voyager works with scene documents (.svx.json): it validates them against the
document schema, inspects their node tree, rewrites them in normalized form and serves
asset stores over HTTP.

Document paths are relative to the asset store: --dir for the file store.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("dir", ".", "Directory of the file asset store")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every component and document event")
}

// setup loads the configuration with flag overrides and builds the logger.
func setup(cmd *cobra.Command, extra map[string]any) (config.Config, *slog.Logger, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	overrides := map[string]any{}
	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides["store.dir"] = dir
	}
	if debug, _ := flags.GetBool("debug"); debug {
		overrides["log_level"] = "debug"
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(path, flags.Changed("config"), overrides)
	if err != nil {
		return config.Config{}, nil, err
	}
	level, _ := cfg.Level()
	return cfg, logging.New(level), nil
}

func debugEnabled(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}
