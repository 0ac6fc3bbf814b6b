package converters

import (
	"github.com/ecopia-map/las_voxelizer/internal/geometry"
)

// Converts coordinates between reference systems identified by their EPSG code
type CoordinateConverter interface {
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error)
	// Converts the XY corners of the box, Z is carried over untouched
	ConvertBoundingBoxSrid(sourceSrid int, targetSrid int, bbox *geometry.BoundingBox) (*geometry.BoundingBox, error)
	Cleanup()
}
