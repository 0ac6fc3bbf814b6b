package pkg

import (
	"github.com/pkg/errors"

	"github.com/ecopia-map/las_voxelizer/internal/converters"
	"github.com/ecopia-map/las_voxelizer/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/las_voxelizer/internal/data"
	"github.com/ecopia-map/las_voxelizer/internal/geometry"
	"github.com/ecopia-map/las_voxelizer/internal/grid"
	"github.com/ecopia-map/las_voxelizer/internal/grid/voxel_grid"
	"github.com/ecopia-map/las_voxelizer/internal/lasread"
	"github.com/ecopia-map/las_voxelizer/internal/sampler"
	"github.com/ecopia-map/las_voxelizer/internal/viewer"
	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

type fakeFileFinder struct {
	path string
}

func (f *fakeFileFinder) GetLasFileToProcess(opts *voxelizer.VoxelizerOptions) (string, error) {
	return f.path, nil
}

type fakeLoader struct {
	cloud *data.RawCloud
	err   error
}

func (l *fakeLoader) LoadLasFile(filePath string) (*data.RawCloud, error) {
	return l.cloud, l.err
}

type fakeViewer struct {
	shown  []*data.Cloud
	titles []string
}

func (v *fakeViewer) Show(cloud *data.Cloud, title string) error {
	v.shown = append(v.shown, cloud)
	v.titles = append(v.titles, title)
	return nil
}

// Shifts coordinates by a fixed amount, fails on srid 0
type fakeConverter struct {
	calls     int
	cleanedUp bool
}

func (c *fakeConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	c.calls++
	if sourceSrid == 0 || targetSrid == 0 {
		return coord, errors.New("unsupported srid")
	}
	return geometry.Coordinate{X: coord.X / 1000, Y: coord.Y / 1000, Z: coord.Z}, nil
}

func (c *fakeConverter) ConvertBoundingBoxSrid(sourceSrid int, targetSrid int, bbox *geometry.BoundingBox) (*geometry.BoundingBox, error) {
	c.calls++
	return geometry.NewBoundingBox(bbox.Xmin/1000, bbox.Xmax/1000, bbox.Ymin/1000, bbox.Ymax/1000, bbox.Zmin, bbox.Zmax), nil
}

func (c *fakeConverter) Cleanup() {
	c.cleanedUp = true
}

type fakeAlgorithmManager struct {
	opts      *voxelizer.VoxelizerOptions
	loader    *fakeLoader
	viewer    *fakeViewer
	converter *fakeConverter
}

func newFakeAlgorithmManager(opts *voxelizer.VoxelizerOptions, cloud *data.RawCloud) *fakeAlgorithmManager {
	return &fakeAlgorithmManager{
		opts:      opts,
		loader:    &fakeLoader{cloud: cloud},
		viewer:    &fakeViewer{},
		converter: &fakeConverter{},
	}
}

func (am *fakeAlgorithmManager) GetLoaderAlgorithm() lasread.Loader {
	return am.loader
}

func (am *fakeAlgorithmManager) GetSamplerAlgorithm() sampler.Sampler {
	return sampler.NewRandomSampler(am.opts.Fraction, am.opts.Seed)
}

func (am *fakeAlgorithmManager) GetReducerAlgorithm() (grid.Reducer, error) {
	return voxel_grid.NewVoxelGridReducer(am.opts.VoxelSize)
}

func (am *fakeAlgorithmManager) GetViewerAlgorithm() viewer.Viewer {
	return am.viewer
}

func (am *fakeAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	offset := 0.0
	if am.opts.InspectOptions != nil {
		offset = am.opts.InspectOptions.ZOffset
	}
	return offset_elevation_corrector.NewOffsetElevationCorrector(offset)
}

func (am *fakeAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return am.converter
}
