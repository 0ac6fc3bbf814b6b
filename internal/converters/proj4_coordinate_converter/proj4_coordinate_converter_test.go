package proj4_coordinate_converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/las_voxelizer/internal/geometry"
)

func TestConvertRDNewOriginToWGS84(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	// false origin of RD New lies on Amersfoort
	got, err := cc.ConvertCoordinateSrid(EpsgRDNew, EpsgWGS84, geometry.Coordinate{X: 155000, Y: 463000, Z: 0})
	require.NoError(t, err)
	assert.InDelta(t, 5.3876, got.X, 0.01)
	assert.InDelta(t, 52.1561, got.Y, 0.01)
}

func TestConvertWGS84RoundTrip(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	coord := geometry.Coordinate{X: 5.9, Y: 51.95, Z: 10}
	rd, err := cc.ConvertCoordinateSrid(EpsgWGS84, EpsgRDNew, coord)
	require.NoError(t, err)
	back, err := cc.ConvertCoordinateSrid(EpsgRDNew, EpsgWGS84, rd)
	require.NoError(t, err)

	assert.InDelta(t, coord.X, back.X, 1e-6)
	assert.InDelta(t, coord.Y, back.Y, 1e-6)
}

func TestConvertSameSridIsIdentity(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	coord := geometry.Coordinate{X: 1, Y: 2, Z: 3}
	got, err := cc.ConvertCoordinateSrid(12345, 12345, coord)
	require.NoError(t, err)
	assert.Equal(t, coord, got)
}

func TestConvertUnsupportedSrid(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	_, err := cc.ConvertCoordinateSrid(99999, EpsgWGS84, geometry.Coordinate{})
	assert.ErrorContains(t, err, "unsupported EPSG code 99999")
}

func TestConvertBoundingBoxKeepsZ(t *testing.T) {
	cc := NewProj4CoordinateConverter()
	defer cc.Cleanup()

	bbox := geometry.NewBoundingBox(154000, 156000, 462000, 464000, -5, 40)
	got, err := cc.ConvertBoundingBoxSrid(EpsgRDNew, EpsgWGS84, bbox)
	require.NoError(t, err)

	assert.Less(t, got.Xmin, got.Xmax)
	assert.Less(t, got.Ymin, got.Ymax)
	assert.Equal(t, -5.0, got.Zmin)
	assert.Equal(t, 40.0, got.Zmax)
}

func TestSupportedSrids(t *testing.T) {
	assert.True(t, IsSupported(EpsgRDNew))
	assert.True(t, IsSupported(EpsgWGS84))
	assert.False(t, IsSupported(1))
	assert.Len(t, SupportedSrids(), 5)
}
