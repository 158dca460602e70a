// Package annotation defines the annotation document record: a labeled marker placed on a
// model surface.
//
// The record follows the elision policy of the document format: Deflate writes the id
// and only those fields that differ from their defaults, and Inflate restores every
// absent field to its default. Position and Direction have no default; they are carried
// through as given and left nil when absent.
package annotation

import (
	"slices"

	"github.com/aretw0/voyager/pkg/domain"
	"github.com/aretw0/voyager/pkg/record"
)

// Style selects how an annotation is drawn.
type Style int

const (
	Standard Style = iota
	Extended
	Balloon
	Pin
)

var styleNames = []string{"Standard", "Extended", "Balloon", "Pin"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return styleNames[Standard]
	}
	return styleNames[s]
}

// ParseStyle maps a style name to its Style. Unknown names yield Standard.
func ParseStyle(name string) Style {
	if i := slices.Index(styleNames, name); i >= 0 {
		return Style(i)
	}
	return Standard
}

// Defaults.
const (
	DefaultScale     = 1.0
	DefaultZoneIndex = -1
)

// DefaultColor is the annotation color when none is stored.
var DefaultColor = []float64{1, 1, 1}

// Data is the in-memory annotation payload.
type Data struct {
	Title     string
	Lead      string
	Tags      []string
	ArticleID string
	ImageURI  string
	Style     Style
	Visible   bool
	Expanded  bool
	Position  []float64
	Direction []float64
	Scale     float64
	Offset    float64
	Tilt      float64
	Azimuth   float64
	Color     []float64
	ZoneIndex int
}

// Annotation is a document record carrying annotation data.
type Annotation = record.Record[Data, domain.Annotation]

// Codec converts annotation data to and from its wire form.
type Codec struct{}

// New returns an annotation at its defaults with a fresh id.
func New() *Annotation {
	return record.New[Data, domain.Annotation](Codec{})
}

// FromJSON returns an annotation inflated from its wire form.
func FromJSON(json domain.Annotation) *Annotation {
	return record.FromJSON[Data, domain.Annotation](Codec{}, json)
}

func (Codec) Init() Data {
	return Data{
		Tags:      []string{},
		Style:     Standard,
		Visible:   true,
		Scale:     DefaultScale,
		Color:     slices.Clone(DefaultColor),
		ZoneIndex: DefaultZoneIndex,
	}
}

func (Codec) Inflate(json domain.Annotation, data *Data) string {
	data.Title = json.Title
	data.Lead = json.Lead
	data.Tags = slices.Clone(json.Tags)
	if data.Tags == nil {
		data.Tags = []string{}
	}
	data.ArticleID = json.ArticleID
	data.ImageURI = json.ImageURI

	data.Style = ParseStyle(json.Style)
	data.Visible = json.Visible == nil || *json.Visible
	data.Expanded = json.Expanded != nil && *json.Expanded

	data.Position = slices.Clone(json.Position)
	data.Direction = slices.Clone(json.Direction)
	data.Scale = DefaultScale
	if json.Scale != nil {
		data.Scale = *json.Scale
	}
	data.Offset = json.Offset
	data.Tilt = json.Tilt
	data.Azimuth = json.Azimuth

	data.Color = slices.Clone(json.Color)
	if len(data.Color) == 0 {
		data.Color = slices.Clone(DefaultColor)
	}

	data.ZoneIndex = DefaultZoneIndex
	if json.ZoneIndex != nil {
		data.ZoneIndex = *json.ZoneIndex
	}
	return json.ID
}

// Deflate never emits Expanded; it is view state.
func (Codec) Deflate(id string, data Data) domain.Annotation {
	json := domain.Annotation{
		ID:        id,
		Title:     data.Title,
		Lead:      data.Lead,
		ArticleID: data.ArticleID,
		ImageURI:  data.ImageURI,
		Offset:    data.Offset,
		Tilt:      data.Tilt,
		Azimuth:   data.Azimuth,
	}
	if len(data.Tags) > 0 {
		json.Tags = slices.Clone(data.Tags)
	}
	if data.Style != Standard {
		json.Style = data.Style.String()
	}
	if !data.Visible {
		json.Visible = new(bool)
	}
	if data.Position != nil {
		json.Position = slices.Clone(data.Position)
	}
	if data.Direction != nil {
		json.Direction = slices.Clone(data.Direction)
	}
	if data.Scale != DefaultScale {
		scale := data.Scale
		json.Scale = &scale
	}
	if c := data.Color; len(c) >= 3 && (c[0] != 1 || c[1] != 1 || c[2] != 1) {
		json.Color = slices.Clone(c)
	}
	if data.ZoneIndex > DefaultZoneIndex {
		zone := data.ZoneIndex
		json.ZoneIndex = &zone
	}
	return json
}
