package data

import "github.com/golang/geo/r3"

// Color of a point with each channel normalized in the [0,1] interval
type Color struct {
	R float64
	G float64
	B float64
}

// Color as stored in the source file, each channel in raw integer units
type RawColor struct {
	R uint16
	G uint16
	B uint16
}

// Contains the positions of a point cloud and, if available, their colors.
// When Colors is not nil it has exactly one entry per position.
type Cloud struct {
	Positions []r3.Vector
	Colors    []Color
}

// Contains a point cloud as read from a LAS file, with colors still in raw units
type RawCloud struct {
	Positions []r3.Vector
	RawColors []RawColor
}

// Builds an empty Cloud with room for the given number of points
func NewCloud(size int, hasColor bool) *Cloud {
	cloud := &Cloud{
		Positions: make([]r3.Vector, 0, size),
	}
	if hasColor {
		cloud.Colors = make([]Color, 0, size)
	}
	return cloud
}

func (c *Cloud) Len() int {
	return len(c.Positions)
}

func (c *Cloud) HasColor() bool {
	return c.Colors != nil
}

// Appends a point to the cloud. The color is ignored if the cloud is not colored.
func (c *Cloud) Append(position r3.Vector, color Color) {
	c.Positions = append(c.Positions, position)
	if c.Colors != nil {
		c.Colors = append(c.Colors, color)
	}
}

func (rc *RawCloud) Len() int {
	return len(rc.Positions)
}

func (rc *RawCloud) HasColor() bool {
	return rc.RawColors != nil
}
