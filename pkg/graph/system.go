package graph

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/voyager/pkg/domain"
)

// System is the root of a live object model: a port arena, a kind registry and the
// root graph. It is not safe for concurrent use; all mutation happens on the caller's
// goroutine between and during ticks.
type System struct {
	registry *Registry
	network  *Network
	graph    *Graph
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	ctx      context.Context
	nextID   uint64
	ticks    uint64
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the structured logger handed to components.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *System) {
		s.hooks = hooks
	}
}

// NewSystem creates a system with an empty root graph. A nil registry gets a fresh one.
func NewSystem(registry *Registry, opts ...Option) *System {
	if registry == nil {
		registry = NewRegistry()
	}
	s := &System{
		registry: registry,
		network:  NewNetwork(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.graph = newGraph(s, nil)
	return s
}

func (s *System) Graph() *Graph                { return s.graph }
func (s *System) Registry() *Registry          { return s.registry }
func (s *System) Network() *Network            { return s.network }
func (s *System) Logger() *slog.Logger         { return s.logger }
func (s *System) Hooks() domain.LifecycleHooks { return s.hooks }

// Ticks returns the number of completed ticks.
func (s *System) Ticks() uint64 { return s.ticks }

// Tick runs one update pass over every graph and returns the number of components
// updated.
func (s *System) Tick(ctx context.Context) int {
	s.ctx = ctx
	defer func() { s.ctx = context.Background() }()

	n := s.graph.tick(ctx)
	s.graph.resetOutputs()
	s.ticks++
	return n
}

func (s *System) newID() string {
	s.nextID++
	return strconv.FormatUint(s.nextID, 36)
}

func (s *System) fireComponent(typ domain.EventType, c Component) {
	var hook func(context.Context, *domain.ComponentEvent)
	switch typ {
	case domain.EventComponentCreate:
		hook = s.hooks.OnComponentCreate
	case domain.EventComponentUpdate:
		hook = s.hooks.OnComponentUpdate
	case domain.EventComponentDispose:
		hook = s.hooks.OnComponentDispose
	}
	if hook == nil {
		return
	}
	hook(s.ctx, domain.NewComponentEvent(typ, c.ID(), c.Kind(), c.Node().ID()))
}
