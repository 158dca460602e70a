package domain

// Annotation is the serialized form of an annotation record.
// Position and Direction are required by the document schema.
type Annotation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Lead      string    `json:"lead,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	ArticleID string    `json:"articleId,omitempty"`
	ImageURI  string    `json:"imageUri,omitempty"`
	Style     string    `json:"style,omitempty"`
	Visible   *bool     `json:"visible,omitempty"`
	Expanded  *bool     `json:"expanded,omitempty"`
	Position  []float64 `json:"position,omitempty"`
	Direction []float64 `json:"direction,omitempty"`
	Scale     *float64  `json:"scale,omitempty"`
	Offset    float64   `json:"offset,omitempty"`
	Tilt      float64   `json:"tilt,omitempty"`
	Azimuth   float64   `json:"azimuth,omitempty"`
	Color     []float64 `json:"color,omitempty"`
	ZoneIndex *int      `json:"zoneIndex,omitempty"`
}
