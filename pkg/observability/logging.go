package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/voyager/pkg/domain"
)

// LogHooks returns lifecycle hooks logging every event to logger. Component events
// are logged at debug level, document events at info, failures at error.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	component := func(ctx context.Context, e *domain.ComponentEvent) {
		logger.DebugContext(ctx, string(e.Type), "kind", e.Kind, "component", e.ComponentID, "node", e.NodeID)
	}
	document := func(ctx context.Context, e *domain.DocumentEvent) {
		if e.Err != nil {
			logger.ErrorContext(ctx, string(e.Type), "asset", e.AssetPath, "err", e.Err)
			return
		}
		logger.InfoContext(ctx, string(e.Type), "asset", e.AssetPath, "nodes", e.Nodes, "merged", e.Merged)
	}
	return domain.LifecycleHooks{
		OnComponentCreate:  component,
		OnComponentUpdate:  component,
		OnComponentDispose: component,
		OnDocumentOpen:     document,
		OnDocumentDeflate:  document,
	}
}
