package proj4_coordinate_converter

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	proj "github.com/xeonx/proj4"

	"github.com/ecopia-map/las_voxelizer/internal/converters"
	"github.com/ecopia-map/las_voxelizer/internal/geometry"
)

// CoordinateConverter backed by the proj.4 library. Projections are initialized lazily and cached
// until Cleanup is called.
type proj4CoordinateConverter struct {
	projections map[int]*proj.Proj
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj.Proj),
	}
}

// Converts the given coordinate from the given source Srid to the given target srid.
func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	src, err := cc.getProjection(sourceSrid)
	if err != nil {
		return coord, err
	}
	dst, err := cc.getProjection(targetSrid)
	if err != nil {
		return coord, err
	}

	x, y, z := []float64{coord.X}, []float64{coord.Y}, []float64{coord.Z}
	if epsgDatabase[sourceSrid].LatLong {
		x[0], y[0] = proj.DegToRad(x[0]), proj.DegToRad(y[0])
	}

	if err := proj.TransformRaw(src, dst, x, y, z); err != nil {
		return coord, errors.Wrapf(err, "cannot convert %v from EPSG:%d to EPSG:%d", coord, sourceSrid, targetSrid)
	}

	if epsgDatabase[targetSrid].LatLong {
		x[0], y[0] = proj.RadToDeg(x[0]), proj.RadToDeg(y[0])
	}

	return geometry.Coordinate{X: x[0], Y: y[0], Z: z[0]}, nil
}

func (cc *proj4CoordinateConverter) ConvertBoundingBoxSrid(sourceSrid int, targetSrid int, bbox *geometry.BoundingBox) (*geometry.BoundingBox, error) {
	lowerLeft, err := cc.ConvertCoordinateSrid(sourceSrid, targetSrid, geometry.Coordinate{X: bbox.Xmin, Y: bbox.Ymin, Z: bbox.Zmin})
	if err != nil {
		return nil, err
	}
	upperRight, err := cc.ConvertCoordinateSrid(sourceSrid, targetSrid, geometry.Coordinate{X: bbox.Xmax, Y: bbox.Ymax, Z: bbox.Zmax})
	if err != nil {
		return nil, err
	}

	return geometry.NewBoundingBox(lowerLeft.X, upperRight.X, lowerLeft.Y, upperRight.Y, bbox.Zmin, bbox.Zmax), nil
}

// Releases all projection objects from memory
func (cc *proj4CoordinateConverter) Cleanup() {
	for srid, projection := range cc.projections {
		projection.Close()
		delete(cc.projections, srid)
	}
}

// Returns the projection corresponding to the given EPSG code, storing it in the cache if not already present
func (cc *proj4CoordinateConverter) getProjection(srid int) (*proj.Proj, error) {
	if p, ok := cc.projections[srid]; ok {
		return p, nil
	}

	def, ok := epsgDatabase[srid]
	if !ok {
		return nil, errors.Errorf("unsupported EPSG code %d", srid)
	}

	p, err := proj.InitPlus(def.Definition)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot initialize projection for EPSG:%d", srid)
	}
	glog.V(2).Infof("initialized projection EPSG:%d", srid)

	cc.projections[srid] = p
	return p, nil
}
