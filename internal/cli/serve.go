package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpAdapter "github.com/aretw0/voyager/pkg/adapters/http"
	"github.com/aretw0/voyager/pkg/adapters/openapi"
)

// ShutdownTimeout bounds the graceful shutdown of Serve.
const ShutdownTimeout = 5 * time.Second

// NewServeHandler mounts the asset API on stack and the metrics of gatherer at
// /metrics.
func NewServeHandler(stack *Stack, logger *slog.Logger, gatherer prometheus.Gatherer) (http.Handler, error) {
	validator, err := openapi.New()
	if err != nil {
		return nil, err
	}
	opts := []httpAdapter.Option{
		httpAdapter.WithValidator(validator),
		httpAdapter.WithLogger(logger),
	}
	if stack.Locker != nil {
		opts = append(opts, httpAdapter.WithLocker(stack.Locker))
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Mount("/", httpAdapter.NewHandler(stack.Store, opts...))
	return r, nil
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting voyager server", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down", "timeout", ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		logger.Info("voyager server stopped")
		return nil
	}
}
