package graph

import (
	"context"
	"testing"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort_LinkPropagation(t *testing.T) {
	w := newWorld(t)
	g := w.sys.Graph()
	a := w.echo(t, g)
	b := w.echo(t, g)
	w.sys.Tick(context.Background())

	require.NoError(t, b.in.LinkFrom(a.in))
	w.sys.Tick(context.Background())
	assert.False(t, b.in.Changed())

	require.NoError(t, a.in.SetValue(5))
	assert.Equal(t, 5.0, b.in.Value())
	assert.True(t, b.in.Changed())
	// Reading does not consume the flag.
	_ = b.in.Value()
	assert.True(t, b.in.Changed())

	w.sys.Tick(context.Background())
	assert.False(t, b.in.Changed())
	assert.True(t, b.sawChange)
	assert.Equal(t, 5.0, b.out.Float())
}

func TestPort_FanOutAndOutputLinks(t *testing.T) {
	w := newWorld(t)
	g := w.sys.Graph()
	src := w.echo(t, g)
	b := w.echo(t, g)
	c := w.echo(t, g)

	require.NoError(t, b.in.LinkFrom(src.out))
	require.NoError(t, c.in.LinkFrom(src.out))
	assert.Len(t, src.out.Targets(), 2)

	require.NoError(t, src.in.SetValue(3))
	w.sys.Tick(context.Background())

	assert.Equal(t, 3.0, b.out.Float())
	assert.Equal(t, 3.0, c.out.Float())
}

func TestPort_LastLinkWins(t *testing.T) {
	w := newWorld(t)
	g := w.sys.Graph()
	a := w.echo(t, g)
	b := w.echo(t, g)
	dst := w.echo(t, g)

	require.NoError(t, dst.in.LinkFrom(a.out))
	require.NoError(t, dst.in.LinkFrom(b.out))
	assert.Same(t, b.out, dst.in.Source())
	assert.Empty(t, a.out.Targets())
	assert.Equal(t, 1, w.sys.Network().Links())

	require.NoError(t, a.out.SetValue(1))
	assert.Equal(t, 0.0, dst.in.Float())
	require.NoError(t, b.out.SetValue(2))
	assert.Equal(t, 2.0, dst.in.Float())
}

func TestPort_RejectsCycles(t *testing.T) {
	w := newWorld(t)
	g := w.sys.Graph()
	a := w.echo(t, g)
	b := w.echo(t, g)

	require.NoError(t, b.in.LinkFrom(a.in))
	err := a.in.LinkFrom(b.in)
	assert.ErrorIs(t, err, domain.ErrLinkCycle)
	assert.ErrorIs(t, a.in.LinkFrom(a.in), domain.ErrLinkCycle)
}

func TestPort_EqualValueIsNoOp(t *testing.T) {
	w := newWorld(t)
	p := w.echo(t, w.sys.Graph())
	w.sys.Tick(context.Background())

	require.NoError(t, p.in.SetValue(0))
	assert.False(t, p.in.Changed())
	assert.Equal(t, 0, w.sys.Tick(context.Background()))
}

func TestPort_EventIsMomentary(t *testing.T) {
	w := newWorld(t)
	p := w.echo(t, w.sys.Graph())
	w.sys.Tick(context.Background())

	p.fire.Set()
	assert.True(t, p.fire.Changed())
	assert.Equal(t, 1, w.sys.Tick(context.Background()))
	assert.False(t, p.fire.Changed())
	assert.Equal(t, 0, w.sys.Tick(context.Background()))
}

func TestPort_KindChecks(t *testing.T) {
	w := newWorld(t)
	p := w.echo(t, w.sys.Graph())

	err := p.in.SetValue("five")
	assert.ErrorIs(t, err, domain.ErrPortKind)

	n := w.node(t, w.sys.Graph(), "n")
	tr := n.Transform()
	assert.ErrorIs(t, tr.Position.SetValue([]float64{1, 2}), domain.ErrPortKind)
	require.NoError(t, tr.Position.SetValue([]any{1, 2.5, 3}))
	assert.Equal(t, []float64{1, 2.5, 3}, tr.Position.Vector())

	assert.ErrorIs(t, p.in.LinkFrom(tr.Position), domain.ErrPortKind)
}

func TestPort_ReleasedWithComponent(t *testing.T) {
	w := newWorld(t)
	g := w.sys.Graph()
	a := w.echo(t, g)
	b := w.echo(t, g)
	require.NoError(t, b.in.LinkFrom(a.out))
	before := w.sys.Network().Len()

	a.Node().Dispose()

	assert.Equal(t, before-3, w.sys.Network().Len())
	assert.Nil(t, b.in.Source())
	assert.Equal(t, 0, w.sys.Network().Links())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "AssetPath", KindAssetPath.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
