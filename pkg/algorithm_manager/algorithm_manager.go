package algorithm_manager

import (
	"github.com/ecopia-map/las_voxelizer/internal/converters"
	"github.com/ecopia-map/las_voxelizer/internal/grid"
	"github.com/ecopia-map/las_voxelizer/internal/lasread"
	"github.com/ecopia-map/las_voxelizer/internal/sampler"
	"github.com/ecopia-map/las_voxelizer/internal/viewer"
)

type AlgorithmManager interface {
	GetLoaderAlgorithm() lasread.Loader
	GetSamplerAlgorithm() sampler.Sampler
	GetReducerAlgorithm() (grid.Reducer, error)
	GetViewerAlgorithm() viewer.Viewer
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
}
