package annotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/voyager/pkg/domain"
)

func TestAnnotation_DefaultsDeflateToID(t *testing.T) {
	a := New()

	out, err := json.Marshal(a.Deflate())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+a.ID()+`"}`, string(out))
}

func TestAnnotation_InflateSubstitutesDefaults(t *testing.T) {
	a := FromJSON(domain.Annotation{ID: "a1", Position: []float64{1, 2, 3}, Direction: []float64{0, 1, 0}})
	d := a.Data()

	assert.Equal(t, "a1", a.ID())
	assert.Equal(t, Standard, d.Style)
	assert.True(t, d.Visible)
	assert.False(t, d.Expanded)
	assert.Equal(t, 1.0, d.Scale)
	assert.Equal(t, -1, d.ZoneIndex)
	assert.Equal(t, []float64{1, 1, 1}, d.Color)
	assert.Equal(t, []string{}, d.Tags)
	assert.Equal(t, []float64{1, 2, 3}, d.Position)
}

func TestAnnotation_MissingPositionStaysNil(t *testing.T) {
	a := FromJSON(domain.Annotation{ID: "a1"})

	assert.Nil(t, a.Data().Position)
	assert.Nil(t, a.Data().Direction)
	assert.Nil(t, a.Deflate().Position)
}

func TestAnnotation_DeflateEmitsNonDefaults(t *testing.T) {
	a := New()
	a.Set(func(d *Data) {
		d.Title = "Eye"
		d.Tags = []string{"head"}
		d.Style = Pin
		d.Visible = false
		d.Expanded = true
		d.Scale = 2
		d.Tilt = 0.5
		d.Color = []float64{0, 0.61, 0.87}
		d.ZoneIndex = 0
	})

	j := a.Deflate()
	assert.Equal(t, "Eye", j.Title)
	assert.Equal(t, []string{"head"}, j.Tags)
	assert.Equal(t, "Pin", j.Style)
	require.NotNil(t, j.Visible)
	assert.False(t, *j.Visible)
	assert.Nil(t, j.Expanded)
	require.NotNil(t, j.Scale)
	assert.Equal(t, 2.0, *j.Scale)
	assert.Equal(t, 0.5, j.Tilt)
	assert.Equal(t, []float64{0, 0.61, 0.87}, j.Color)
	require.NotNil(t, j.ZoneIndex)
	assert.Equal(t, 0, *j.ZoneIndex)
}

func TestAnnotation_RoundTripKeepsID(t *testing.T) {
	a := New()
	a.Set(func(d *Data) {
		d.Title = "Fin"
		d.Position = []float64{0, 0, 1}
		d.Direction = []float64{0, 1, 0}
	})
	first := a.Deflate()

	b := FromJSON(first)
	c := FromJSON(b.Deflate())

	assert.Equal(t, a.ID(), c.ID())
	assert.Equal(t, first, c.Deflate())
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, Balloon, ParseStyle("Balloon"))
	assert.Equal(t, Standard, ParseStyle("bogus"))
	assert.Equal(t, "Extended", Extended.String())
	assert.Equal(t, "Standard", Style(42).String())
}
