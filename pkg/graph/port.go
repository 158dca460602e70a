package graph

import (
	"fmt"
	"reflect"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/schema"
)

// Kind identifies the value type carried by a port.
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindString
	KindBoolean
	KindEvent
	KindEnum
	KindAssetPath
	KindVector
	KindObject
)

var kindNames = [...]string{
	KindNumber:    "Number",
	KindInteger:   "Integer",
	KindString:    "String",
	KindBoolean:   "Boolean",
	KindEvent:     "Event",
	KindEnum:      "Enum",
	KindAssetPath: "AssetPath",
	KindVector:    "Vector",
	KindObject:    "Object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// PortSchema declares a port. Component types declare their schemas once; every
// component instance gets its own ports.
type PortSchema struct {
	Name    string // key within the component's port set
	Path    string // display label, e.g. "Writer.RootURL"
	Kind    Kind
	Default any
	Options []string // Enum labels
	Size    int      // Vector components
}

// Number declares a float port.
func Number(name, path string, def float64) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindNumber, Default: def}
}

// Integer declares an int port.
func Integer(name, path string, def int) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindInteger, Default: def}
}

// String declares a string port.
func String(name, path, def string) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindString, Default: def}
}

// Boolean declares a bool port.
func Boolean(name, path string, def bool) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindBoolean, Default: def}
}

// Event declares a momentary port. Its value is meaningless; only the change flag is.
func Event(name, path string) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindEvent}
}

// Enum declares a port holding an index into options.
func Enum(name, path string, options []string, def int) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindEnum, Default: def, Options: options}
}

// AssetPath declares a string port holding an asset location.
func AssetPath(name, path string) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindAssetPath, Default: ""}
}

// Vector declares a fixed-size numeric port; its size is len(def).
func Vector(name, path string, def ...float64) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindVector, Default: def, Size: len(def)}
}

// Object declares an untyped port.
func Object(name, path string) PortSchema {
	return PortSchema{Name: name, Path: path, Kind: KindObject}
}

func (s PortSchema) valueType() schema.Type {
	switch s.Kind {
	case KindNumber:
		return schema.Float()
	case KindInteger:
		return schema.Int()
	case KindString, KindAssetPath:
		return schema.String()
	case KindBoolean:
		return schema.Bool()
	case KindEnum:
		return schema.Enum(s.Options...)
	case KindVector:
		return schema.Vector(s.Size)
	default:
		return schema.Any()
	}
}

// normalize checks v against the port kind and converts it to the canonical Go type
// (float64, int, string, bool, []float64).
func (s PortSchema) normalize(v any) (any, error) {
	if s.Kind == KindEvent {
		return nil, nil
	}
	if err := s.valueType().Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPortKind, s.Path, err)
	}
	switch s.Kind {
	case KindNumber:
		return reflect.ValueOf(v).Convert(reflect.TypeOf(float64(0))).Float(), nil
	case KindInteger, KindEnum:
		return int(reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int()), nil
	case KindVector:
		rv := reflect.ValueOf(v)
		out := make([]float64, rv.Len())
		for i := range out {
			out[i] = reflect.ValueOf(rv.Index(i).Interface()).Convert(reflect.TypeOf(float64(0))).Float()
		}
		return out, nil
	}
	return v, nil
}

func (s PortSchema) defaultValue() any {
	if s.Kind == KindVector {
		def, _ := s.Default.([]float64)
		return append([]float64(nil), def...)
	}
	return s.Default
}

func stringLike(k Kind) bool { return k == KindString || k == KindAssetPath }

// linkable reports whether values of src may flow into dst.
func linkable(src, dst PortSchema) bool {
	switch {
	case dst.Kind == KindObject || dst.Kind == KindEvent:
		return true
	case src.Kind == dst.Kind:
		return src.Kind != KindVector || src.Size == dst.Size
	case stringLike(src.Kind) && stringLike(dst.Kind):
		return true
	case src.Kind == KindInteger && dst.Kind == KindNumber:
		return true
	}
	return false
}

// PortID indexes a port in its Network arena.
type PortID int

// Port is a typed, named value slot on a component.
type Port struct {
	id      PortID
	schema  PortSchema
	input   bool
	value   any
	changed bool
	owner   *ComponentBase
	net     *Network
}

func (p *Port) ID() PortID         { return p.id }
func (p *Port) Name() string       { return p.schema.Name }
func (p *Port) Path() string       { return p.schema.Path }
func (p *Port) Kind() Kind         { return p.schema.Kind }
func (p *Port) Schema() PortSchema { return p.schema }
func (p *Port) IsInput() bool      { return p.input }

// Changed reports whether the value changed since the owner last consumed it.
// Reading never clears the flag.
func (p *Port) Changed() bool { return p.changed }

// Owner returns the component the port belongs to.
func (p *Port) Owner() Component {
	if p.owner == nil {
		return nil
	}
	return p.owner.self
}

// Value returns the current value. Vector values are shared; use Vector for a copy.
func (p *Port) Value() any { return p.value }

func (p *Port) Float() float64 {
	switch v := p.value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (p *Port) Int() int {
	switch v := p.value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (p *Port) String() string {
	s, _ := p.value.(string)
	return s
}

func (p *Port) Bool() bool {
	b, _ := p.value.(bool)
	return b
}

// Vector returns a copy of a vector value.
func (p *Port) Vector() []float64 {
	v, _ := p.value.([]float64)
	return append([]float64(nil), v...)
}

// Option returns the label of an enum value.
func (p *Port) Option() string {
	i := p.Int()
	if i < 0 || i >= len(p.schema.Options) {
		return ""
	}
	return p.schema.Options[i]
}

// SetOption sets an enum port by label.
func (p *Port) SetOption(label string) error {
	for i, o := range p.schema.Options {
		if o == label {
			return p.SetValue(i)
		}
	}
	return fmt.Errorf("%w: %s: unknown option %q", domain.ErrPortKind, p.schema.Path, label)
}

// SetValue stores v and propagates it along outgoing links. Setting a port to its
// current value is a no-op, except for events, which always fire.
func (p *Port) SetValue(v any) error {
	nv, err := p.schema.normalize(v)
	if err != nil {
		return err
	}
	if p.schema.Kind != KindEvent && reflect.DeepEqual(p.value, nv) {
		return nil
	}
	p.push(nv)
	return nil
}

// Set marks the port changed and propagates its current value. On event ports this
// fires the event.
func (p *Port) Set() {
	p.push(p.value)
}

func (p *Port) push(v any) {
	p.value = v
	p.changed = true
	if p.net == nil {
		return
	}
	for _, t := range p.net.targetsOf(p.id) {
		t.push(t.receive(v))
	}
}

// receive converts a value arriving over a link.
func (p *Port) receive(v any) any {
	switch p.schema.Kind {
	case KindEvent:
		return nil
	case KindNumber:
		if i, ok := v.(int); ok {
			return float64(i)
		}
	case KindVector:
		if vec, ok := v.([]float64); ok {
			return append([]float64(nil), vec...)
		}
	}
	return v
}

// LinkFrom makes p follow src. An existing incoming link of p is replaced. The current
// value of src is pushed into p immediately.
func (p *Port) LinkFrom(src *Port) error {
	if src == nil {
		return fmt.Errorf("link %s: nil source", p.schema.Path)
	}
	if p.net == nil || p.net != src.net {
		return fmt.Errorf("link %s <- %s: ports belong to different systems", p.schema.Path, src.schema.Path)
	}
	if !linkable(src.schema, p.schema) {
		return fmt.Errorf("%w: cannot link %s (%s) to %s (%s)",
			domain.ErrPortKind, src.schema.Path, src.Kind(), p.schema.Path, p.Kind())
	}
	if err := p.net.link(src.id, p.id); err != nil {
		return fmt.Errorf("link %s <- %s: %w", p.schema.Path, src.schema.Path, err)
	}
	p.push(p.receive(src.value))
	return nil
}

// Unlink removes the incoming link, if any.
func (p *Port) Unlink() {
	if p.net != nil {
		p.net.unlink(p.id)
	}
}

// Source returns the port p is linked from, or nil.
func (p *Port) Source() *Port {
	if p.net == nil {
		return nil
	}
	return p.net.sourceOf(p.id)
}

// Targets returns the ports linked from p.
func (p *Port) Targets() []*Port {
	if p.net == nil {
		return nil
	}
	return p.net.targetsOf(p.id)
}

// PortSet is an ordered set of ports keyed by name.
type PortSet struct {
	ports []*Port
	index map[string]*Port
}

func newPortSet() *PortSet {
	return &PortSet{index: make(map[string]*Port)}
}

// Get returns the named port, or nil.
func (s *PortSet) Get(name string) *Port { return s.index[name] }

// All returns the ports in declaration order.
func (s *PortSet) All() []*Port { return append([]*Port(nil), s.ports...) }

func (s *PortSet) Len() int { return len(s.ports) }

// Changed reports whether any port in the set changed.
func (s *PortSet) Changed() bool {
	for _, p := range s.ports {
		if p.changed {
			return true
		}
	}
	return false
}

func (s *PortSet) add(p *Port) {
	s.ports = append(s.ports, p)
	s.index[p.schema.Name] = p
}

func (s *PortSet) reset() {
	for _, p := range s.ports {
		p.changed = false
	}
}
