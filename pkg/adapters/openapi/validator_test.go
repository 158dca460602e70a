package openapi_test

import (
	"testing"

	"github.com/aretw0/voyager/pkg/adapters/openapi"
	"github.com/aretw0/voyager/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valid = `{
  "asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"},
  "scene": 0,
  "scenes": [{"units": "cm", "nodes": [0]}],
  "nodes": [{"name": "Bust", "model": 0}],
  "models": [{"units": "cm",
    "derivatives": [{"usage": "Web3D", "quality": "High", "assets": [{"uri": "bust.glb", "type": "Model"}]}],
    "annotations": [{"id": "x1", "position": [0, 1, 0], "direction": [0, 0, 1]}]}]
}`

func TestValidator(t *testing.T) {
	v, err := openapi.New()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateJSON([]byte(valid)))

	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing scene", `{"asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"}, "scenes": [{}]}`},
		{"missing scenes", `{"asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"}, "scene": 0}`},
		{"wrong mime type", `{"asset": {"type": "model/gltf+json", "version": "1.0"}, "scene": 0, "scenes": [{}]}`},
		{"negative index", `{"asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"}, "scene": -1, "scenes": [{}]}`},
		{"short vector", `{"asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"}, "scene": 0, "scenes": [{}],
			"nodes": [{"translation": [1, 2]}]}`},
		{"annotation without position", `{"asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"}, "scene": 0, "scenes": [{}],
			"models": [{"units": "cm", "annotations": [{"id": "a", "direction": [0, 0, 1]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, v.ValidateJSON([]byte(tt.doc)), domain.ErrSchemaInvalid)
		})
	}
}

func TestValidator_Document(t *testing.T) {
	v := openapi.MustNew()

	doc := domain.NewDocument()
	assert.ErrorIs(t, v.Validate(doc), domain.ErrSchemaInvalid, "a document needs a scene")

	doc.Scenes = append(doc.Scenes, domain.Scene{Units: "cm"})
	assert.NoError(t, v.Validate(doc))
}
