package grid

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Collapses the points added to it into a spatially bounded density cloud
type Reducer interface {
	// Adds a Point to the Reducer. color is nil for clouds without colors.
	AddPoint(position r3.Vector, color *data.Color)
	// Adds all the points of a cloud
	AddCloud(cloud *data.Cloud)
	Build() error
	IsBuilt() bool
	// Returns the reduced cloud, nil until built
	Cloud() *data.Cloud
	Stats() ReductionStats
	Clear()
}

// Summary of a reduction pass
type ReductionStats struct {
	InputPoints         int
	OutputPoints        int
	MeanPointsPerCell   float64
	StdDevPointsPerCell float64
	MaxPointsPerCell    int
}
