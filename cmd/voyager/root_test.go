package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "voyager version ")
}

func TestValidateAndNormalize(t *testing.T) {
	dir := t.TempDir()
	doc := `{"asset": {"type": "application/si-dpo-3d.document+json", "version": "1.0"},
		"scene": 0, "scenes": [{"nodes": [0]}], "nodes": [{"name": "Only"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.svx.json"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.svx.json"), []byte(`{"scene": 0}`), 0o644))

	out, err := run(t, "validate", "--dir", dir, "ok.svx.json")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ ok.svx.json")

	out, err = run(t, "validate", "--dir", dir, "ok.svx.json", "bad.svx.json")
	assert.Error(t, err)
	assert.Contains(t, out, "✗ bad.svx.json")

	_, err = run(t, "normalize", "--dir", dir, "ok.svx.json", "norm.svx.json")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "norm.svx.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"units": "cm"`)

	out, err = run(t, "inspect", "--dir", dir, "--tree", "norm.svx.json")
	require.NoError(t, err)
	assert.Contains(t, out, `Node "Only" [Transform]`)
}
