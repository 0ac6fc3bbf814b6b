package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

func TestLoadConfigPartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input: scans/erichem.las
voxel_size: 0.5
eight_bit_colors: true
viewer_command: feh
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	opts := voxelizer.DefaultVoxelizerOptions()
	cfg.ApplyTo(opts)

	assert.Equal(t, "scans/erichem.las", opts.Input)
	assert.Equal(t, 0.5, opts.VoxelSize)
	assert.True(t, opts.EightBitColors)
	assert.Equal(t, "feh", opts.ViewerCommand)

	// keys absent from the file keep their defaults
	assert.Equal(t, voxelizer.DefaultOutput, opts.Output)
	assert.Equal(t, voxelizer.DefaultFraction, opts.Fraction)
	assert.Equal(t, voxelizer.DefaultSrid, opts.Srid)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file not found")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fraction: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config YAML")
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	opts := voxelizer.DefaultVoxelizerOptions()
	opts.Fraction = 0.25
	opts.Seed = 42
	opts.Visualize = true
	require.NoError(t, SaveConfig(path, FromOptions(opts)))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	loaded := &voxelizer.VoxelizerOptions{Command: voxelizer.CommandVoxelize}
	cfg.ApplyTo(loaded)

	opts.InspectOptions = nil
	assert.Equal(t, opts, loaded)
}
