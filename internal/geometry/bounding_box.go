package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Axis aligned bounding box with precomputed mid points
type BoundingBox struct {
	Xmin, Xmax, Xmid float64
	Ymin, Ymax, Ymid float64
	Zmin, Zmax, Zmid float64
}

// Builds a bounding box from its extremes
func NewBoundingBox(minX, maxX, minY, maxY, minZ, maxZ float64) *BoundingBox {
	return &BoundingBox{
		Xmin: minX,
		Xmax: maxX,
		Xmid: (minX + maxX) / 2,
		Ymin: minY,
		Ymax: maxY,
		Ymid: (minY + maxY) / 2,
		Zmin: minZ,
		Zmax: maxZ,
		Zmid: (minZ + maxZ) / 2,
	}
}

// Computes the bounding box of the given positions. Returns nil for an empty slice.
func NewBoundingBoxFromPositions(positions []r3.Vector) *BoundingBox {
	if len(positions) == 0 {
		return nil
	}

	minX, minY, minZ := math.MaxFloat64, math.MaxFloat64, math.MaxFloat64
	maxX, maxY, maxZ := -math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64
	for _, p := range positions {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		minZ = math.Min(minZ, p.Z)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
		maxZ = math.Max(maxZ, p.Z)
	}

	return NewBoundingBox(minX, maxX, minY, maxY, minZ, maxZ)
}

func (b *BoundingBox) Size() r3.Vector {
	return r3.Vector{X: b.Xmax - b.Xmin, Y: b.Ymax - b.Ymin, Z: b.Zmax - b.Zmin}
}

func (b *BoundingBox) Center() r3.Vector {
	return r3.Vector{X: b.Xmid, Y: b.Ymid, Z: b.Zmid}
}
