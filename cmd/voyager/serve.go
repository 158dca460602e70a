package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/voyager/internal/cli"
	"github.com/aretw0/voyager/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the asset store over HTTP",
	Long: `Exposes the configured asset store as a JSON API: GET, PUT and DELETE on /assets/*,
listing with GET /assets?prefix=, change events on /events and Prometheus metrics on
/metrics. Uploaded scene documents are validated against the document schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra := map[string]any{}
		if cmd.Flags().Changed("listen") {
			listen, _ := cmd.Flags().GetString("listen")
			extra["listen"] = listen
		}
		cfg, logger, err := setup(cmd, extra)
		if err != nil {
			return err
		}
		stack, err := cli.NewStack(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer stack.Close()

		handler, err := cli.NewServeHandler(stack, logger, prometheus.DefaultGatherer)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tui.PrintBanner(cmd.ErrOrStderr())
		logger.Info("serving asset store", "store", cfg.Store.Kind, "dir", cfg.Store.Dir)
		return cli.Serve(ctx, cfg.Listen, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
}
