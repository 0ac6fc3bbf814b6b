package std_algorithm_manager

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/las_voxelizer/internal/data"
	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

func TestReducerUsesVoxelSize(t *testing.T) {
	opts := voxelizer.DefaultVoxelizerOptions()
	opts.VoxelSize = 1
	am := NewAlgorithmManager(opts)

	reducer, err := am.GetReducerAlgorithm()
	require.NoError(t, err)

	reducer.AddPoint(r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}, nil)
	reducer.AddPoint(r3.Vector{X: 0.9, Y: 0.9, Z: 0.9}, nil)
	require.NoError(t, reducer.Build())
	assert.Equal(t, 1, reducer.Cloud().Len())

	opts.VoxelSize = 0
	_, err = NewAlgorithmManager(opts).GetReducerAlgorithm()
	assert.Error(t, err)
}

func TestSamplerUsesFractionAndSeed(t *testing.T) {
	opts := voxelizer.DefaultVoxelizerOptions()
	opts.Fraction = 0.5
	opts.Seed = 11

	first := NewAlgorithmManager(opts).GetSamplerAlgorithm().SampleIndices(100)
	second := NewAlgorithmManager(opts).GetSamplerAlgorithm().SampleIndices(100)

	assert.Len(t, first, 50)
	assert.Equal(t, first, second)
}

func TestElevationCorrection(t *testing.T) {
	opts := voxelizer.DefaultVoxelizerOptions()
	assert.Equal(t, 3.0, NewAlgorithmManager(opts).GetElevationCorrectionAlgorithm().CorrectElevation(0, 0, 3))

	opts.InspectOptions = voxelizer.DefaultInspectOptions()
	assert.Equal(t, 5.5, NewAlgorithmManager(opts).GetElevationCorrectionAlgorithm().CorrectElevation(0, 0, 3))
}

func TestCoordinateConverterIsShared(t *testing.T) {
	am := NewAlgorithmManager(voxelizer.DefaultVoxelizerOptions())
	defer am.GetCoordinateConverterAlgorithm().Cleanup()

	assert.Same(t, am.GetCoordinateConverterAlgorithm(), am.GetCoordinateConverterAlgorithm())
}

func TestLoaderRejectsUnknownExtension(t *testing.T) {
	am := NewAlgorithmManager(voxelizer.DefaultVoxelizerOptions())

	_, err := am.GetLoaderAlgorithm().LoadLasFile("cloud.xyz")
	assert.ErrorContains(t, err, "do not know how to read file")
}

func TestViewerRendersPreview(t *testing.T) {
	opts := voxelizer.DefaultVoxelizerOptions()
	opts.PreviewPath = t.TempDir() + "/preview.png"

	cloud := data.NewCloud(0, false)
	cloud.Append(r3.Vector{X: 0, Y: 0, Z: 0}, data.Color{})
	cloud.Append(r3.Vector{X: 1, Y: 1, Z: 1}, data.Color{})

	require.NoError(t, NewAlgorithmManager(opts).GetViewerAlgorithm().Show(cloud, "preview"))
	assert.FileExists(t, opts.PreviewPath)
}
