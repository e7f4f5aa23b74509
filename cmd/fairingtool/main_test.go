package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procfairings/internal/logger"
	"github.com/Faultbox/procfairings/pkg/fairing"
)

const scene = `
items:
  - name: probe
    box: {center: [0, 1, 0], size: [1.6, 2, 1.6]}
candidates:
  - id: probe
    box: {center: [0, 1, 0], size: [1.6, 2, 1.6]}
  - id: tower
    box: {center: [4, 1, 0], size: [1, 1, 1]}
`

// sandbox isolates a test from any user config and returns a scene path.
func sandbox(t *testing.T) (dir, scenePath string) {
	t.Helper()
	t.Cleanup(logger.Nop)
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)

	scenePath = filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(scene), 0644))
	return dir, scenePath
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestUsage(t *testing.T) {
	out, err := runCmd(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "fairingtool <command>")

	_, err = runCmd(t)
	assert.True(t, errors.Is(err, errUsage))

	_, err = runCmd(t, "launch")
	assert.True(t, errors.Is(err, errUsage))
}

func TestFit(t *testing.T) {
	dir, scenePath := sandbox(t)
	statePath := filepath.Join(dir, "state.yaml")

	out, err := runCmd(t, "fit", "-state", statePath, scenePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Shape:      auto")
	assert.Contains(t, out, "Max size:")
	assert.Contains(t, out, "Panels:     2 x 12 segments")
	assert.Contains(t, out, "Mass:")

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	s, err := fairing.UnmarshalState(data)
	require.NoError(t, err)
	assert.True(t, s.AutoShape)
	assert.Greater(t, s.Manual.MaxSize, float32(1.25))
}

func TestFitManualFlags(t *testing.T) {
	sandbox(t)
	out, err := runCmd(t, "fit", "-sides", "3", "-manual", "2,0.5,3")
	require.NoError(t, err)
	assert.Contains(t, out, "Shape:      manual")
	assert.Contains(t, out, "Max size:   2.000m")
	assert.Contains(t, out, "Cylinder:   0.500m .. 3.000m")
	assert.Contains(t, out, "Panels:     3 x 8 segments")
}

func TestProfileNeedsScene(t *testing.T) {
	sandbox(t)
	_, err := runCmd(t, "profile")
	assert.True(t, errors.Is(err, errUsage))
}

func TestProfile(t *testing.T) {
	_, scenePath := sandbox(t)
	out, err := runCmd(t, "profile", scenePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Buckets: ")
	assert.Contains(t, out, "#")
}

func TestMeshJSON(t *testing.T) {
	dir, scenePath := sandbox(t)
	path := filepath.Join(dir, "out", "fairing.json")

	out, err := runCmd(t, "mesh", "-format", "json", "-o", path, scenePath)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal(data, &recs))
	assert.Len(t, recs, 2)
}

func TestMeshDefaultsFromConfig(t *testing.T) {
	dir, scenePath := sandbox(t)
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("export:\n  format: stl\n  dir: "+dir+"\n"), 0644))

	_, err := runCmd(t, "mesh", "-config", cfgPath, scenePath)
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(dir, "fairing.stl"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(84))

	_, err = runCmd(t, "mesh", "-format", "fbx", scenePath)
	assert.True(t, errors.Is(err, errUsage))
}

func TestShield(t *testing.T) {
	_, scenePath := sandbox(t)
	out, err := runCmd(t, "shield", scenePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Shielded: 1")
	assert.Contains(t, out, "probe")
	assert.NotContains(t, out, "tower")
}

func TestShieldOpenInlineTop(t *testing.T) {
	dir, _ := sandbox(t)
	path := filepath.Join(dir, "inline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scene+"inline: {y: 3, radius: 0.5}\n"), 0644))

	out, err := runCmd(t, "shield", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Shielding disabled")
}

func TestSchema(t *testing.T) {
	out, err := runCmd(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "num_side_parts")
	assert.Contains(t, out, "circle_segments")
	assert.True(t, json.Valid([]byte(out)))

	dir := t.TempDir()
	path := filepath.Join(dir, "schemas", "payload.json")
	_, err = runCmd(t, "schema", "-kind", "payload", "-out", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "top_offset")

	_, err = runCmd(t, "schema", "-kind", "mesh")
	assert.True(t, errors.Is(err, errUsage))
}

func TestInit(t *testing.T) {
	dir, _ := sandbox(t)
	path := filepath.Join(dir, "cfg", "fairing.yaml")

	_, err := runCmd(t, "init", "-out", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = runCmd(t, "init", "-out", path)
	assert.ErrorContains(t, err, "exists")

	_, err = runCmd(t, "init", "-out", path, "-force")
	assert.NoError(t, err)
}
