package geom

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestLocateInRing(t *testing.T) {
	ring := CoordinateSequence{Coord(0.0, 0.0), Coord(4.0, 0.0), Coord(4.0, 4.0), Coord(0.0, 4.0), Coord(0.0, 0.0)}
	var tts = []struct {
		p   Coordinate
		loc Location
	}{
		{Coord(2.0, 2.0), LocInterior},
		{Coord(5.0, 2.0), LocExterior},
		{Coord(-1.0, 2.0), LocExterior},
		{Coord(4.0, 2.0), LocBoundary},
		{Coord(2.0, 0.0), LocBoundary},
		{Coord(0.0, 0.0), LocBoundary},
		{Coord(2.0, 4.0), LocBoundary},
		{Coord(2.0, -0.000001), LocExterior},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, LocateInRing(tt.p, ring), tt.loc)
		})
	}

	// orientation must not matter
	test.T(t, LocateInRing(Coord(2.0, 2.0), ring.Reversed()), LocInterior)
}

func TestLocatePolygonWithHole(t *testing.T) {
	poly := parseWKT(t, "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,3 1,3 3,1 3,1 1))").(*Polygon)
	var l PointLocator
	test.T(t, l.Locate(Coord(0.5, 0.5), poly), LocInterior)
	test.T(t, l.Locate(Coord(2.0, 2.0), poly), LocExterior) // inside the hole
	test.T(t, l.Locate(Coord(1.0, 2.0), poly), LocBoundary) // on the hole ring
	test.T(t, l.Locate(Coord(4.0, 2.0), poly), LocBoundary)
	test.T(t, l.Locate(Coord(5.0, 5.0), poly), LocExterior)
}

func TestLocateLine(t *testing.T) {
	line := parseWKT(t, "LINESTRING(0 0,2 0,2 2)")
	var l PointLocator
	test.T(t, l.Locate(Coord(1.0, 0.0), line), LocInterior)
	test.T(t, l.Locate(Coord(2.0, 0.0), line), LocInterior) // interior vertex
	test.T(t, l.Locate(Coord(0.0, 0.0), line), LocBoundary) // endpoint
	test.T(t, l.Locate(Coord(2.0, 2.0), line), LocBoundary)
	test.T(t, l.Locate(Coord(1.0, 1.0), line), LocExterior)

	// a closed line has no boundary
	closed := parseWKT(t, "LINESTRING(0 0,2 0,2 2,0 0)")
	test.T(t, l.Locate(Coord(0.0, 0.0), closed), LocInterior)

	// mod-2 rule: a point shared by two line ends is interior
	two := parseWKT(t, "MULTILINESTRING((0 0,1 1),(1 1,2 0))")
	test.T(t, l.Locate(Coord(1.0, 1.0), two), LocInterior)
	test.T(t, l.Locate(Coord(0.0, 0.0), two), LocBoundary)
}

func TestLocatePoint(t *testing.T) {
	var l PointLocator
	pt := parseWKT(t, "POINT(1 2)")
	test.T(t, l.Locate(Coord(1.0, 2.0), pt), LocInterior)
	test.T(t, l.Locate(Coord(1.0, 2.1), pt), LocExterior)

	gc := parseWKT(t, "GEOMETRYCOLLECTION(POINT(9 9),POLYGON((0 0,4 0,4 4,0 4,0 0)))")
	test.T(t, l.Locate(Coord(9.0, 9.0), gc), LocInterior)
	test.T(t, l.Locate(Coord(2.0, 2.0), gc), LocInterior)
	test.T(t, l.Locate(Coord(4.0, 2.0), gc), LocBoundary)
	test.T(t, l.Locate(Coord(9.0, 2.0), gc), LocExterior)

	test.T(t, l.Locate(Coord(0.0, 0.0), (*Polygon)(nil)), LocExterior)
}
