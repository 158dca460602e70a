package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/voyager/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnComponentCreate(ctx, domain.NewComponentEvent(domain.EventComponentCreate, "c1", "Light", "n1"))
	hooks.OnComponentCreate(ctx, domain.NewComponentEvent(domain.EventComponentCreate, "c2", "Light", "n2"))
	hooks.OnComponentDispose(ctx, domain.NewComponentEvent(domain.EventComponentDispose, "c1", "Light", "n1"))
	hooks.OnDocumentOpen(ctx, domain.NewDocumentEvent(domain.EventDocumentOpen, "a.svx.json", 12, nil))
	hooks.OnDocumentOpen(ctx, domain.NewDocumentEvent(domain.EventDocumentOpen, "b.svx.json", 0, errors.New("boom")))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Components.WithLabelValues("component_create", "Light")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Components.WithLabelValues("component_dispose", "Light")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Documents.WithLabelValues("document_open", "ok", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Documents.WithLabelValues("document_open", "error", "false")))

	n, err := testutil.GatherAndCount(reg, "voyager_document_nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() { NewMetrics(nil).Hooks() })
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := LogHooks(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()

	hooks.OnComponentUpdate(ctx, domain.NewComponentEvent(domain.EventComponentUpdate, "c1", "Camera", "n1"))
	hooks.OnDocumentDeflate(ctx, domain.NewDocumentEvent(domain.EventDocumentDeflate, "a.svx.json", 3, nil))
	hooks.OnDocumentOpen(ctx, domain.NewDocumentEvent(domain.EventDocumentOpen, "b.svx.json", 0, errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "component_update")
	assert.Contains(t, out, "kind=Camera")
	assert.Contains(t, out, "nodes=3")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "err=boom")
}
