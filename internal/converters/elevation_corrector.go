package converters

// Adjusts the elevation of a point given its position
type ElevationCorrector interface {
	CorrectElevation(x, y, z float64) float64
}
