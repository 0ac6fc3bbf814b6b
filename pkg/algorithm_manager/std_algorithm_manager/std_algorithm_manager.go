package std_algorithm_manager

import (
	"github.com/ecopia-map/las_voxelizer/internal/converters"
	"github.com/ecopia-map/las_voxelizer/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/las_voxelizer/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/las_voxelizer/internal/grid"
	"github.com/ecopia-map/las_voxelizer/internal/grid/voxel_grid"
	"github.com/ecopia-map/las_voxelizer/internal/lasread"
	"github.com/ecopia-map/las_voxelizer/internal/sampler"
	"github.com/ecopia-map/las_voxelizer/internal/viewer"
	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
	"github.com/ecopia-map/las_voxelizer/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *voxelizer.VoxelizerOptions
	coordinateConverter converters.CoordinateConverter
}

func NewAlgorithmManager(opts *voxelizer.VoxelizerOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: proj4_coordinate_converter.NewProj4CoordinateConverter(),
	}
}

func (am *StandardAlgorithmManager) GetLoaderAlgorithm() lasread.Loader {
	return lasread.NewLasFileLoader(lasread.NewLazDecompressor(am.options.LaszipPath))
}

func (am *StandardAlgorithmManager) GetSamplerAlgorithm() sampler.Sampler {
	return sampler.NewRandomSampler(am.options.Fraction, am.options.Seed)
}

func (am *StandardAlgorithmManager) GetReducerAlgorithm() (grid.Reducer, error) {
	return voxel_grid.NewVoxelGridReducer(am.options.VoxelSize)
}

func (am *StandardAlgorithmManager) GetViewerAlgorithm() viewer.Viewer {
	return viewer.NewPreviewViewer(am.options.PreviewPath, am.options.ViewerCommand)
}

// Heights are shifted by the inspect offset, voxelization keeps elevations as they are
func (am *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	if am.options.InspectOptions != nil {
		return offset_elevation_corrector.NewOffsetElevationCorrector(am.options.InspectOptions.ZOffset)
	}
	return offset_elevation_corrector.NewOffsetElevationCorrector(0)
}

// The converter is shared so that its projection cache survives across calls
func (am *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return am.coordinateConverter
}
