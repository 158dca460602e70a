package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type note struct {
	Text string
}

type noteJSON struct {
	ID   string
	Text string
}

type noteCodec struct{}

func (noteCodec) Init() note { return note{} }

func (noteCodec) Inflate(j noteJSON, d *note) string {
	d.Text = j.Text
	return j.ID
}

func (noteCodec) Deflate(id string, d note) noteJSON {
	return noteJSON{ID: id, Text: d.Text}
}

func TestRecord_IDStability(t *testing.T) {
	r := New[note, noteJSON](noteCodec{})
	id := r.ID()
	assert.NotEmpty(t, id)

	for i := 0; i < 3; i++ {
		r = FromJSON[note, noteJSON](noteCodec{}, r.Deflate())
	}
	assert.Equal(t, id, r.ID())

	// An absent id never triggers regeneration.
	r.Inflate(noteJSON{Text: "x"})
	assert.Equal(t, id, r.ID())
	assert.Equal(t, "x", r.Data().Text)
}

func TestRecord_Events(t *testing.T) {
	r := New[note, noteJSON](noteCodec{})
	var updates, disposals int
	off := r.OnUpdate(func(*Record[note, noteJSON]) { updates++ })
	r.OnDispose(func(*Record[note, noteJSON]) { disposals++ })

	r.Set(func(d *note) { d.Text = "hello" })
	off()
	r.Set(func(d *note) { d.Text = "again" })

	r.Dispose()
	r.Dispose()

	assert.Equal(t, 1, updates)
	assert.Equal(t, 1, disposals)
	assert.True(t, r.Disposed())
}

func TestGenerateID_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateID(), GenerateID())
}
