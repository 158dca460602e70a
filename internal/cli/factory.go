// Package cli holds the logic behind the voyager commands: building the store and
// engine from configuration, and the validate, inspect, normalize and serve actions.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/voyager"
	"github.com/aretw0/voyager/internal/config"
	httpAdapter "github.com/aretw0/voyager/pkg/adapters/http"
	"github.com/aretw0/voyager/pkg/adapters/file"
	"github.com/aretw0/voyager/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/voyager/pkg/adapters/redis"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/observability"
	"github.com/aretw0/voyager/pkg/ports"
)

// LockPrefix namespaces the Redis keys of upload locks.
const LockPrefix = "voyager:lock:"

// Stack is the storage side of a command: the asset store and, for Redis, a
// distributed locker sharing its client.
type Stack struct {
	Store  ports.AssetStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases the connections of the stack.
func (s *Stack) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewStack builds the asset store selected by cfg.
func NewStack(ctx context.Context, cfg config.Config) (*Stack, error) {
	switch cfg.Store.Kind {
	case config.StoreMemory:
		return &Stack{Store: memory.NewStore()}, nil
	case config.StoreFile:
		return &Stack{Store: file.New(cfg.Store.Dir)}, nil
	case config.StoreHTTP:
		return &Stack{Store: httpAdapter.NewClient(cfg.Store.HTTP.BaseURL, nil)}, nil
	case config.StoreRedis:
		var opts []redisAdapter.Option
		if cfg.Store.Redis.Prefix != "" {
			opts = append(opts, redisAdapter.WithPrefix(cfg.Store.Redis.Prefix))
		}
		if cfg.Store.Redis.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.Store.Redis.TTL))
		}
		store := redisAdapter.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, opts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Store.Redis.Addr, err)
		}
		return &Stack{
			Store:  store,
			Locker: redisAdapter.NewLocker(store.Client(), LockPrefix),
			close:  store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}

// EngineOptions tune NewEngine.
type EngineOptions struct {
	// Debug logs every lifecycle event.
	Debug bool
	// Registerer receives the engine metrics when non-nil.
	Registerer prometheus.Registerer
	Downloader ports.Downloader
}

// NewEngine creates an engine on stack with CLI conventions.
func NewEngine(cfg config.Config, stack *Stack, logger *slog.Logger, opts EngineOptions) (*voyager.Engine, error) {
	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if opts.Registerer != nil {
		hooks = append(hooks, observability.NewMetrics(opts.Registerer).Hooks())
	}

	engineOpts := []voyager.Option{
		voyager.WithLogger(logger),
		voyager.WithStore(stack.Store),
		voyager.WithLifecycleHooks(domain.MergeHooks(hooks...)),
	}
	if cfg.RootURL != "" {
		engineOpts = append(engineOpts, voyager.WithRootURL(cfg.RootURL))
	}
	if opts.Downloader != nil {
		engineOpts = append(engineOpts, voyager.WithDownloader(opts.Downloader))
	}

	eng, err := voyager.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return eng, nil
}
