package pkg

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/las_voxelizer/internal/data"
	"github.com/ecopia-map/las_voxelizer/internal/geometry"
	"github.com/ecopia-map/las_voxelizer/internal/io"
	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
	"github.com/ecopia-map/las_voxelizer/pkg/algorithm_manager"
	"github.com/ecopia-map/las_voxelizer/tools"
)

// Description of a single point of a reduced cloud
type PointReport struct {
	Index       int         `json:"index"`
	Position    r3.Vector   `json:"position"`
	Color       *data.Color `json:"color,omitempty"`
	GroundLevel float64     `json:"ground_level"`
	// elevation above the lowest point of the cloud, offset included
	Height float64 `json:"height"`
	// position in the target reference system, nil when the conversion is not possible
	Geographic *geometry.Coordinate `json:"geographic,omitempty"`
	TargetSrid int                  `json:"target_srid,omitempty"`
}

type Inspector struct {
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewInspector(algorithmManager algorithm_manager.AlgorithmManager) *Inspector {
	return &Inspector{
		algorithmManager: algorithmManager,
	}
}

// Reads the PLY file given as input and reports on the selected point
func (i *Inspector) RunInspector(opts *voxelizer.VoxelizerOptions) (*PointReport, error) {
	defer i.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	if err := opts.ValidateInspect(); err != nil {
		return nil, err
	}

	tools.LogOutput("> reading", opts.Input)
	cloud, err := io.ReadPlyFile(opts.Input)
	if err != nil {
		return nil, err
	}

	report, err := i.Inspect(cloud, opts)
	if err != nil {
		return nil, err
	}
	tools.LogOutput("> point", tools.FmtJSONString(report))

	return report, nil
}

func (i *Inspector) Inspect(cloud *data.Cloud, opts *voxelizer.VoxelizerOptions) (*PointReport, error) {
	bbox := geometry.NewBoundingBoxFromPositions(cloud.Positions)
	if bbox == nil {
		return nil, errors.New("cannot inspect an empty point cloud")
	}

	index, err := selectPoint(cloud, opts.InspectOptions)
	if err != nil {
		return nil, err
	}

	position := cloud.Positions[index]
	corrector := i.algorithmManager.GetElevationCorrectionAlgorithm()
	report := &PointReport{
		Index:       index,
		Position:    position,
		GroundLevel: bbox.Zmin,
		Height:      corrector.CorrectElevation(position.X, position.Y, position.Z-bbox.Zmin),
	}
	if cloud.HasColor() {
		c := cloud.Colors[index]
		report.Color = &c
	}

	targetSrid := opts.InspectOptions.TargetSrid
	if opts.Srid != 0 && targetSrid != 0 {
		converted, err := i.algorithmManager.GetCoordinateConverterAlgorithm().ConvertCoordinateSrid(
			opts.Srid, targetSrid, geometry.Coordinate{X: position.X, Y: position.Y, Z: position.Z},
		)
		if err != nil {
			return nil, err
		}
		report.Geographic = &converted
		report.TargetSrid = targetSrid
	}

	return report, nil
}

// Returns the index of the point to inspect, either given explicitly or as the point nearest in XY
// to the requested position
func selectPoint(cloud *data.Cloud, opts *voxelizer.InspectOptions) (int, error) {
	if opts.Index >= 0 {
		if opts.Index >= cloud.Len() {
			return 0, errors.Errorf("index %d out of range, the cloud has %d points", opts.Index, cloud.Len())
		}
		return opts.Index, nil
	}

	nearest := 0
	minDistance := math.Inf(1)
	for i, p := range cloud.Positions {
		dx, dy := p.X-opts.X, p.Y-opts.Y
		if d := dx*dx + dy*dy; d < minDistance {
			minDistance = d
			nearest = i
		}
	}
	return nearest, nil
}
