// Package record implements the lifecycle shared by small self-contained document
// entities: a typed payload with a permanent id, a codec converting it to and from its
// wire form, and update/dispose notifications.
package record

import (
	"slices"

	"github.com/google/uuid"
)

// Codec converts a record payload D to and from its wire form J.
type Codec[D any, J any] interface {
	// Init returns a payload with every field at its documented default.
	Init() D
	// Inflate overwrites every field of data from json, substituting defaults for
	// absent fields, and returns the id carried by json.
	Inflate(json J, data *D) (id string)
	// Deflate writes id unconditionally and every other field that differs from its
	// default.
	Deflate(id string, data D) J
}

// GenerateID returns a fresh record id.
func GenerateID() string {
	return uuid.New().String()
}

// Record is a document entity: a payload plus a permanent id.
type Record[D any, J any] struct {
	codec     Codec[D, J]
	id        string
	data      D
	seq       int
	onUpdate  []handler[D, J]
	onDispose []handler[D, J]
	disposed  bool
}

type handler[D any, J any] struct {
	id int
	fn func(*Record[D, J])
}

// New creates a record at its defaults with a freshly generated id.
func New[D any, J any](codec Codec[D, J]) *Record[D, J] {
	return &Record[D, J]{
		codec: codec,
		id:    GenerateID(),
		data:  codec.Init(),
	}
}

// FromJSON creates a record and inflates it from json.
func FromJSON[D any, J any](codec Codec[D, J], json J) *Record[D, J] {
	r := New(codec)
	r.Inflate(json)
	return r
}

// ID returns the permanent id.
func (r *Record[D, J]) ID() string { return r.id }

// Data returns the payload.
func (r *Record[D, J]) Data() D { return r.data }

// Disposed reports whether Dispose was called.
func (r *Record[D, J]) Disposed() bool { return r.disposed }

// Set mutates the payload through fn and notifies update subscribers.
func (r *Record[D, J]) Set(fn func(data *D)) {
	fn(&r.data)
	r.emit(r.onUpdate)
}

// Inflate overwrites the payload from json. The id adopts the persisted id carried by
// json; an absent id keeps the current one, it is never regenerated.
func (r *Record[D, J]) Inflate(json J) {
	if id := r.codec.Inflate(json, &r.data); id != "" {
		r.id = id
	}
	r.emit(r.onUpdate)
}

// Deflate returns the wire form of the record.
func (r *Record[D, J]) Deflate() J {
	return r.codec.Deflate(r.id, r.data)
}

// OnUpdate subscribes fn to payload changes. The returned function unsubscribes.
func (r *Record[D, J]) OnUpdate(fn func(*Record[D, J])) (off func()) {
	return r.subscribe(&r.onUpdate, fn)
}

// OnDispose subscribes fn to disposal. The returned function unsubscribes.
func (r *Record[D, J]) OnDispose(fn func(*Record[D, J])) (off func()) {
	return r.subscribe(&r.onDispose, fn)
}

// Dispose notifies dispose subscribers once and drops every subscription.
func (r *Record[D, J]) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.emit(r.onDispose)
	r.onUpdate = nil
	r.onDispose = nil
}

func (r *Record[D, J]) subscribe(list *[]handler[D, J], fn func(*Record[D, J])) func() {
	r.seq++
	id := r.seq
	*list = append(*list, handler[D, J]{id: id, fn: fn})
	return func() {
		*list = slices.DeleteFunc(*list, func(h handler[D, J]) bool { return h.id == id })
	}
}

func (r *Record[D, J]) emit(list []handler[D, J]) {
	for _, h := range slices.Clone(list) {
		h.fn(r)
	}
}
