package geometry

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundingBoxFromPositions(t *testing.T) {
	box := NewBoundingBoxFromPositions([]r3.Vector{
		{X: -1, Y: 2, Z: 0.5},
		{X: 3, Y: -4, Z: 1.5},
		{X: 0, Y: 0, Z: -2},
	})
	require.NotNil(t, box)

	assert.Equal(t, -1.0, box.Xmin)
	assert.Equal(t, 3.0, box.Xmax)
	assert.Equal(t, -4.0, box.Ymin)
	assert.Equal(t, 2.0, box.Ymax)
	assert.Equal(t, -2.0, box.Zmin)
	assert.Equal(t, 1.5, box.Zmax)
	assert.Equal(t, r3.Vector{X: 1, Y: -1, Z: -0.25}, box.Center())
	assert.Equal(t, r3.Vector{X: 4, Y: 6, Z: 3.5}, box.Size())
}

func TestNewBoundingBoxFromPositionsEmpty(t *testing.T) {
	assert.Nil(t, NewBoundingBoxFromPositions(nil))
}
