package domain

// Document is the serialized form of a scene document.
// It mirrors the glTF layout: flat arrays of entries cross-referenced by index.
type Document struct {
	Asset   Asset    `json:"asset"`
	Scene   int      `json:"scene"`
	Scenes  []Scene  `json:"scenes"`
	Nodes   []Node   `json:"nodes,omitempty"`
	Cameras []Camera `json:"cameras,omitempty"`
	Lights  []Light  `json:"lights,omitempty"`
	Models  []Model  `json:"models,omitempty"`
	Metas   []Meta   `json:"metas,omitempty"`
	Setups  []Setup  `json:"setups,omitempty"`
}

// Asset stamps a document with its format and origin.
type Asset struct {
	Type      string `json:"type"`
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
	Copyright string `json:"copyright,omitempty"`
}

// Scene is a root entry listing top-level nodes.
type Scene struct {
	Name  string `json:"name,omitempty"`
	Units string `json:"units,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
	Meta  *int   `json:"meta,omitempty"`
	Setup *int   `json:"setup,omitempty"`
}

// Node is a transform hierarchy entry with optional attachments.
type Node struct {
	Name        string    `json:"name,omitempty"`
	Translation []float64 `json:"translation,omitempty"`
	Rotation    []float64 `json:"rotation,omitempty"`
	Scale       []float64 `json:"scale,omitempty"`
	Children    []int     `json:"children,omitempty"`
	Camera      *int      `json:"camera,omitempty"`
	Light       *int      `json:"light,omitempty"`
	Model       *int      `json:"model,omitempty"`
	Meta        *int      `json:"meta,omitempty"`
}

// Camera projection types.
const (
	CameraPerspective  = "perspective"
	CameraOrthographic = "orthographic"
)

// Camera describes a viewpoint projection.
type Camera struct {
	Type         string        `json:"type"`
	Perspective  *Perspective  `json:"perspective,omitempty"`
	Orthographic *Orthographic `json:"orthographic,omitempty"`
}

// Perspective holds perspective projection parameters. YFov is in radians.
type Perspective struct {
	YFov  float64 `json:"yfov"`
	ZNear float64 `json:"znear"`
	ZFar  float64 `json:"zfar,omitempty"`
}

// Orthographic holds orthographic projection parameters.
type Orthographic struct {
	XMag  float64 `json:"xmag"`
	YMag  float64 `json:"ymag"`
	ZNear float64 `json:"znear"`
	ZFar  float64 `json:"zfar"`
}

// Light describes a light source. Target is a node index.
type Light struct {
	Type      string    `json:"type"`
	Color     []float64 `json:"color,omitempty"`
	Intensity *float64  `json:"intensity,omitempty"`
	Target    *int      `json:"target,omitempty"`
}

// Model describes a renderable model via its derivatives.
type Model struct {
	Units       string       `json:"units"`
	Derivatives []Derivative `json:"derivatives,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Derivative is one rendition of a model at a given usage and quality.
type Derivative struct {
	Usage   string            `json:"usage"`
	Quality string            `json:"quality"`
	Assets  []DerivativeAsset `json:"assets"`
}

// DerivativeAsset is a file belonging to a derivative.
type DerivativeAsset struct {
	URI     string `json:"uri"`
	Type    string `json:"type"`
	MapType string `json:"mapType,omitempty"`
}

// Meta carries descriptive key/value data.
type Meta struct {
	Collection map[string]any `json:"collection,omitempty"`
}

// Setup carries scene-wide viewer settings. Navigation.Target is a node index.
type Setup struct {
	Units      string      `json:"units,omitempty"`
	Navigation *Navigation `json:"navigation,omitempty"`
	Background *Background `json:"background,omitempty"`
}

// Navigation holds the orbit target of the scene.
type Navigation struct {
	Target *int `json:"target,omitempty"`
}

// Background holds the scene background color.
type Background struct {
	Color []float64 `json:"color,omitempty"`
}

// NewDocument returns an empty document stamped with the current format.
func NewDocument() *Document {
	return &Document{
		Asset: Asset{
			Type:      MimeType,
			Version:   Version,
			Generator: Generator,
			Copyright: Copyright,
		},
		Scene:  0,
		Scenes: []Scene{},
	}
}

// Index returns a pointer to i, for optional index fields.
func Index(i int) *int {
	return &i
}
