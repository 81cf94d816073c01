package tracking

// Point is a 2D pitch position. Coordinates are in the units of the
// dataset's coordinate system.
type Point struct {
	X float64
	Y float64
}

// Mirror returns the point reflected through the pitch centre.
func (p Point) Mirror() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Point3D is a 3D ball position. Z is height above the pitch plane.
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// Mirror returns the point reflected through the pitch centre. Height is
// unaffected by the reflection.
func (p Point3D) Mirror() Point3D {
	return Point3D{X: -p.X, Y: -p.Y, Z: p.Z}
}
