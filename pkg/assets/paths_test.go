package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRootURL(t *testing.T) {
	tests := []struct {
		raw, base, want string
	}{
		{"scenes", "", "file:///scenes/"},
		{"scenes/", "http://host/app/index.html?doc=1", "http://host/app/scenes/"},
		{"/data?token=x", "http://host/app/", "http://host/data/"},
		{"http://cdn/a/b", "http://host/", "http://cdn/a/b/"},
		{"", "http://host/app/page", "http://host/"},
	}
	for _, tt := range tests {
		got, err := NormalizeRootURL(tt.raw, tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestResolveAndLocate(t *testing.T) {
	root := "http://host/data/"

	abs, err := Resolve("models/bust.glb", root)
	require.NoError(t, err)
	assert.Equal(t, "http://host/data/models/bust.glb", abs)

	loc, err := Locate("models/bust%20v2.glb", root)
	require.NoError(t, err)
	assert.Equal(t, "models/bust v2.glb", loc)

	_, err = Locate("../secret.json", root)
	assert.Error(t, err)
	_, err = Locate("http://other/x.json", root)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "bust.svx.json", FileName("scenes/bust.svx.json"))
	assert.Equal(t, "bust.svx.json", FileName("bust.svx.json"))
	assert.Equal(t, "", FileName("scenes/"))
	assert.Equal(t, "/", FileName("/"))
}
