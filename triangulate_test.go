package geom

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func triangleArea(tri [3]Coordinate) float64 {
	ring := CoordinateSequence{tri[0], tri[1], tri[2], tri[0]}
	return math.Abs(signedArea(ring))
}

func TestTriangulateSquare(t *testing.T) {
	poly := parseWKT(t, "POLYGON((0 0,2 0,2 2,0 2,0 0))").(*Polygon)
	tris, err := Triangulate(poly)
	test.Error(t, err)
	test.T(t, len(tris), 2)

	area := 0.0
	for _, tri := range tris {
		area += triangleArea(tri)
	}
	test.Float(t, area, 4.0)
}

func TestTriangulateWithHole(t *testing.T) {
	poly := parseWKT(t, "POLYGON((0 0,3 0,3 3,0 3,0 0),(1 1,2 1,2 2,1 2,1 1))").(*Polygon)
	tris, err := Triangulate(poly)
	test.Error(t, err)
	test.That(t, 4 <= len(tris))

	area := 0.0
	for _, tri := range tris {
		area += triangleArea(tri)
	}
	test.Float(t, area, Area(poly))
}

func TestTriangulateConcave(t *testing.T) {
	poly := parseWKT(t, "POLYGON((0 0,4 0,4 4,2 1,0 4,0 0))").(*Polygon)
	tris, err := Triangulate(poly)
	test.Error(t, err)

	area := 0.0
	for _, tri := range tris {
		area += triangleArea(tri)
	}
	test.Float(t, area, Area(poly))
}

func TestTriangulateErrors(t *testing.T) {
	_, err := Triangulate(nil)
	test.That(t, err == ErrNilOperand)

	tris, err := Triangulate(&Polygon{})
	test.Error(t, err)
	test.That(t, tris == nil)

	_, err = Triangulate(&Polygon{Shell: CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0)}})
	test.That(t, err == ErrInvalidRing)
}
