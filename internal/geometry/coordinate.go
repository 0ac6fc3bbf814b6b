package geometry

// Generic 3D coordinate, expressed in the reference system of the context it is used in
type Coordinate struct {
	X float64
	Y float64
	Z float64
}
