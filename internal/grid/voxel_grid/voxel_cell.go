package voxel_grid

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Integer coordinates of a voxel along the three axes
type VoxelCoords struct {
	I, J, K int64
}

// Returns the coordinates of the voxel containing the position, i.e. floor(position / size) per axis
func GetVoxelCoordinates(position r3.Vector, size float64) VoxelCoords {
	return VoxelCoords{
		I: getDimensionIndex(position.X, size),
		J: getDimensionIndex(position.Y, size),
		K: getDimensionIndex(position.Z, size),
	}
}

func getDimensionIndex(value float64, size float64) int64 {
	return int64(math.Floor(value / size))
}

// Accumulates the points falling into a voxel
type voxelCell struct {
	coords      VoxelCoords
	positionSum r3.Vector
	colorSum    data.Color
	count       int
}

func (c *voxelCell) pushPoint(position r3.Vector, color *data.Color) {
	c.positionSum = c.positionSum.Add(position)
	if color != nil {
		c.colorSum.R += color.R
		c.colorSum.G += color.G
		c.colorSum.B += color.B
	}
	c.count++
}

// centroid of the pushed positions
func (c *voxelCell) center() r3.Vector {
	return c.positionSum.Mul(1 / float64(c.count))
}

func (c *voxelCell) meanColor() data.Color {
	n := float64(c.count)
	return data.Color{
		R: c.colorSum.R / n,
		G: c.colorSum.G / n,
		B: c.colorSum.B / n,
	}
}
