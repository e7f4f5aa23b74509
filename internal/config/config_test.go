package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Faultbox/procfairings/pkg/envelope"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, float32(0.1), cfg.Fairing.VerticalStep)
	assert.Equal(t, float32(1.25), cfg.Fairing.BaseSize)
	assert.Equal(t, 24, cfg.Fairing.CircleSegments)
	assert.Equal(t, float32(0.05), cfg.Fairing.SideThickness)
	assert.True(t, cfg.Fairing.AutoShape)
	assert.Equal(t, 2, cfg.Fairing.NumSideParts)

	assert.Equal(t, float32(20), cfg.Side.MinBaseConeAngle)
	assert.Equal(t, float32(2), cfg.Side.Cones.NoseHeightRatio)
	assert.Equal(t, float32(0.2), cfg.Side.Density)

	assert.False(t, cfg.Adapter.Enabled)
	assert.Equal(t, float32(6050), cfg.Adapter.SpecificBreakingForce)

	assert.Equal(t, "obj", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
fairing:
  base_size: 2.5
  extra_radius: 0.2
  num_side_parts: 4
  auto_shape: false
  manual:
    max_size: 3
    cyl_start: 0.5
    cyl_end: 4
side:
  density: 0.1
  cones:
    nose_height_ratio: 1.5
adapter:
  enabled: true
  top_size: 0.625
  height: 2
export:
  format: stl
logging:
  level: debug
  log_file: fairing.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, LoadFile(cfg, path))

	assert.Equal(t, float32(2.5), cfg.Fairing.BaseSize)
	assert.Equal(t, float32(0.2), cfg.Fairing.ExtraRadius)
	assert.Equal(t, 4, cfg.Fairing.NumSideParts)
	assert.False(t, cfg.Fairing.AutoShape)
	assert.Equal(t, envelope.Manual{MaxSize: 3, CylStart: 0.5, CylEnd: 4}, cfg.Fairing.Manual)
	assert.Equal(t, float32(0.1), cfg.Side.Density)
	assert.Equal(t, float32(1.5), cfg.Side.Cones.NoseHeightRatio)
	assert.True(t, cfg.Adapter.Enabled)
	assert.Equal(t, float32(0.625), cfg.Adapter.TopSize)
	assert.Equal(t, "stl", cfg.Export.Format)
	assert.Equal(t, "fairing.log", cfg.Logging.LogFile)

	// Unset values keep their defaults.
	assert.Equal(t, 24, cfg.Fairing.CircleSegments)
	assert.Equal(t, 7, cfg.Side.Cones.NoseSegments)
	assert.Equal(t, float32(1.25), cfg.Adapter.BaseSize)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	err := LoadFile(Default(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("fairing:\n  num_side_parts: 3\n"), 0644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-config", path,
		"-debug",
		"-segments", "36",
		"-extra-radius", "0.3",
		"-manual", "2,0.5,3",
	}))

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Fairing.NumSideParts, "file value without a flag override")
	assert.Equal(t, 36, cfg.Fairing.CircleSegments)
	assert.Equal(t, float32(0.3), cfg.Fairing.ExtraRadius)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Fairing.AutoShape)
	assert.Equal(t, envelope.Manual{MaxSize: 2, CylStart: 0.5, CylEnd: 3}, cfg.Fairing.Manual)

	require.NoError(t, fs.Set("sides", "6"))
	cfg, err = Load(f)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Fairing.NumSideParts)
}

func TestLoadBadManualFlag(t *testing.T) {
	_, err := Load(&Flags{Config: writeEmpty(t), ExtraRadius: -1, Manual: "wide"})
	assert.ErrorContains(t, err, "-manual")
}

func writeEmpty(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, nil, 0644))
	return path
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)

	cfg := Default()
	cfg.Fairing.NumSideParts = 5
	cfg.Adapter.Enabled = true
	cfg.Export.Format = "json"
	require.NoError(t, cfg.SaveTo(path))

	loaded := Default()
	require.NoError(t, LoadFile(loaded, path))
	assert.Equal(t, cfg, loaded)
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/procfairings", ConfigDir())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Fairing.VerticalStep = 0
	cfg.Fairing.NumSideParts = 0
	cfg.Side.Cones.NoseHeightRatio = -1
	cfg.Export.Format = "fbx"
	cfg.Logging.Level = "loud"
	cfg.Adapter.Enabled = true
	cfg.Adapter.Height = 0.1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 6)

	cfg = Default()
	cfg.Fairing.AutoShape = false
	cfg.Fairing.Manual = envelope.Manual{MaxSize: 1, CylStart: 2, CylEnd: 1}
	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "fairing.manual")
}

func TestAssembly(t *testing.T) {
	cfg := Default()
	a := cfg.Assembly()
	assert.Nil(t, a.Adapter)
	assert.Equal(t, 2, a.NumSideParts)
	assert.Equal(t, cfg.Side, a.Side)

	cfg.Adapter.Enabled = true
	a = cfg.Assembly()
	require.NotNil(t, a.Adapter)
	assert.Equal(t, cfg.Adapter.Adapter, *a.Adapter)
}
