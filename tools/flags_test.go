package tools

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

func TestParseFlagsForCommandVoxelizeDefaults(t *testing.T) {
	flags, err := ParseFlagsForCommandVoxelize([]string{})
	require.NoError(t, err)

	assert.Equal(t, voxelizer.DefaultInput, *flags.Input)
	assert.Equal(t, voxelizer.DefaultOutput, *flags.Output)
	assert.Equal(t, 0.2, *flags.VoxelSize)
	assert.Equal(t, 1.0, *flags.Fraction)
	assert.Equal(t, 28992, *flags.Srid)
	assert.False(t, *flags.Visualize)
	assert.False(t, flags.IsSet("input"))
}

func TestParseFlagsForCommandVoxelizeShorthands(t *testing.T) {
	flags, err := ParseFlagsForCommandVoxelize([]string{"-i", "cloud.las", "-x", "0.5", "-f", "0.3", "-w", "-b"})
	require.NoError(t, err)

	assert.Equal(t, "cloud.las", *flags.Input)
	assert.Equal(t, 0.5, *flags.VoxelSize)
	assert.Equal(t, 0.3, *flags.Fraction)
	assert.True(t, *flags.Visualize)
	assert.True(t, *flags.EightBitColors)

	assert.True(t, flags.IsSet("input"))
	assert.True(t, flags.IsSet("voxel-size"))
	assert.True(t, flags.IsSet("8bit"))
	assert.False(t, flags.IsSet("output"))
}

func TestParseFlagsForCommandVoxelizeInvalid(t *testing.T) {
	_, err := ParseFlagsForCommandVoxelize([]string{"-voxel-size", "big"})
	assert.Error(t, err)
}

func TestApplyToOnlyOverridesSetFlags(t *testing.T) {
	flags, err := ParseFlagsForCommandVoxelize([]string{"-voxel-size", "0.4", "-seed", "7"})
	require.NoError(t, err)

	opts := voxelizer.DefaultVoxelizerOptions()
	opts.Input = "from_config.laz"
	opts.Fraction = 0.5
	flags.ApplyTo(opts)

	assert.Equal(t, 0.4, opts.VoxelSize)
	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, "from_config.laz", opts.Input)
	assert.Equal(t, 0.5, opts.Fraction)
}

func TestParseFlagsForCommandInspect(t *testing.T) {
	flags, err := ParseFlagsForCommandInspect([]string{"-i", "cloud.ply", "-index", "12", "-z", "0"})
	require.NoError(t, err)

	opts := flags.ToOptions()
	assert.Equal(t, "cloud.ply", opts.Input)
	assert.Equal(t, voxelizer.CommandInspect, opts.Command)
	assert.Equal(t, 12, opts.InspectOptions.Index)
	assert.Equal(t, 0.0, opts.InspectOptions.ZOffset)
	assert.Equal(t, 4326, opts.InspectOptions.TargetSrid)
}

func TestParseFlagsForCommandInspectByPosition(t *testing.T) {
	flags, err := ParseFlagsForCommandInspect([]string{"-i", "cloud.ply", "-x", "155000.5", "-y", "463000"})
	require.NoError(t, err)

	opts := flags.ToOptions()
	assert.Equal(t, -1, opts.InspectOptions.Index)
	assert.Equal(t, 155000.5, opts.InspectOptions.X)
	assert.Equal(t, 463000.0, opts.InspectOptions.Y)
	assert.Equal(t, voxelizer.DefaultInspectOffset, opts.InspectOptions.ZOffset)
}

func TestPrintDefaults(t *testing.T) {
	flags, err := ParseFlagsForCommandVoxelize(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	flags.PrintDefaults(&buf)
	assert.Contains(t, buf.String(), "voxel-size")
	assert.Contains(t, buf.String(), "shorthand for input")
}
