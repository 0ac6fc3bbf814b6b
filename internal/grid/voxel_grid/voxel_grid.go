// Package voxel_grid reduces a point cloud to one point per occupied cell of a uniform grid.
package voxel_grid

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/ecopia-map/las_voxelizer/internal/data"
	"github.com/ecopia-map/las_voxelizer/internal/grid"
)

// Partitions the space in cubic cells of a fixed edge length. Each occupied cell
// is collapsed in a point placed at the centroid of its points, colored with their mean color.
type VoxelGrid struct {
	voxelSize   float64
	cells       map[VoxelCoords]*voxelCell
	order       []*voxelCell // cells in first-seen order
	hasColor    bool
	inputPoints int
	built       bool
	cloud       *data.Cloud
}

// Builds an empty VoxelGrid with the given cell edge length
func NewVoxelGrid(voxelSize float64) (*VoxelGrid, error) {
	if voxelSize <= 0 {
		return nil, errors.New("voxel size must be greater than 0")
	}
	return &VoxelGrid{
		voxelSize: voxelSize,
		cells:     make(map[VoxelCoords]*voxelCell),
	}, nil
}

// Builds an empty VoxelGrid as a Reducer
func NewVoxelGridReducer(voxelSize float64) (grid.Reducer, error) {
	vg, err := NewVoxelGrid(voxelSize)
	if err != nil {
		return nil, err
	}
	return vg, nil
}

func (vg *VoxelGrid) VoxelSize() float64 {
	return vg.voxelSize
}

// Colors must be given for all the points or for none of them
func (vg *VoxelGrid) AddPoint(position r3.Vector, color *data.Color) {
	coords := GetVoxelCoordinates(position, vg.voxelSize)
	cell := vg.cells[coords]
	if cell == nil {
		cell = &voxelCell{coords: coords}
		vg.cells[coords] = cell
		vg.order = append(vg.order, cell)
	}
	if color != nil {
		vg.hasColor = true
	}
	cell.pushPoint(position, color)
	vg.inputPoints++
}

func (vg *VoxelGrid) AddCloud(cloud *data.Cloud) {
	for i, p := range cloud.Positions {
		if cloud.HasColor() {
			vg.AddPoint(p, &cloud.Colors[i])
		} else {
			vg.AddPoint(p, nil)
		}
	}
}

// Collapses every occupied cell into its representative point
func (vg *VoxelGrid) Build() error {
	if vg.built {
		return errors.New("voxel grid already built")
	}

	cloud := data.NewCloud(len(vg.order), vg.hasColor)
	for _, cell := range vg.order {
		cloud.Append(cell.center(), cell.meanColor())
	}

	vg.cloud = cloud
	vg.built = true

	glog.V(2).Infof("voxel grid built: %d points in %d cells", vg.inputPoints, len(vg.order))
	return nil
}

func (vg *VoxelGrid) IsBuilt() bool {
	return vg.built
}

func (vg *VoxelGrid) Cloud() *data.Cloud {
	return vg.cloud
}

// Number of occupied cells
func (vg *VoxelGrid) NumberOfCells() int {
	return len(vg.order)
}

func (vg *VoxelGrid) Stats() grid.ReductionStats {
	stats := grid.ReductionStats{
		InputPoints:  vg.inputPoints,
		OutputPoints: len(vg.order),
	}
	if len(vg.order) == 0 {
		return stats
	}

	counts := make([]float64, len(vg.order))
	for i, cell := range vg.order {
		counts[i] = float64(cell.count)
		if cell.count > stats.MaxPointsPerCell {
			stats.MaxPointsPerCell = cell.count
		}
	}
	stats.MeanPointsPerCell, stats.StdDevPointsPerCell = stat.MeanStdDev(counts, nil)
	// sample std dev is undefined for a single cell
	if math.IsNaN(stats.StdDevPointsPerCell) {
		stats.StdDevPointsPerCell = 0
	}

	return stats
}

func (vg *VoxelGrid) Clear() {
	vg.cells = make(map[VoxelCoords]*voxelCell)
	vg.order = nil
	vg.hasColor = false
	vg.inputPoints = 0
	vg.built = false
	vg.cloud = nil
}

// Reduces the cloud on a grid of the given voxel size
func Reduce(cloud *data.Cloud, voxelSize float64) (*data.Cloud, error) {
	vg, err := NewVoxelGrid(voxelSize)
	if err != nil {
		return nil, err
	}
	vg.AddCloud(cloud)
	if err := vg.Build(); err != nil {
		return nil, err
	}
	return vg.Cloud(), nil
}
