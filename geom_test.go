package geom

import (
	"testing"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/tdewolff/test"
)

// parseWKT builds a geometry from well-known text.
func parseWKT(t *testing.T, s string) Geometry {
	t.Helper()
	g, err := wkt.Unmarshal(s)
	test.Error(t, err)
	return FromOrb(g)
}

// testGeom asserts that got and the geometry written as want are identical after normalization.
func testGeom(t *testing.T, got Geometry, want string) {
	t.Helper()
	test.T(t, Normalized(got), Normalized(parseWKT(t, want)))
}

func TestCoordinate(t *testing.T) {
	c := Coord(3.0, 4.0)
	test.T(t, c.Equals(Coord(3.0, 4.0)), true)
	test.T(t, c.Equals(Coord(3.0, 4.1)), false)
	test.T(t, c.EqualsTol(Coord(3.0, 4.0000001), 1e-6), true)
	test.Float(t, c.Distance(Coordinate{}), 5.0)
	test.T(t, c.Compare(Coord(3.0, 5.0)), -1)
	test.T(t, c.Compare(Coord(2.0, 9.0)), 1)
	test.T(t, c.Compare(Coord(3.0, 4.0)), 0)
	test.T(t, Coord(0.0, 0.0).midpoint(Coord(2.0, 4.0)), Coord(1.0, 2.0))
}

func TestCoordinateSequence(t *testing.T) {
	seq := CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(1.0, 0.0), Coord(1.0, 1.0)}
	test.T(t, seq.RemoveRepeated(), CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(1.0, 1.0)})
	test.T(t, seq.Closed(), false)

	ring := CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(1.0, 1.0), Coord(0.0, 0.0)}
	test.T(t, ring.Closed(), true)
	test.T(t, ring.Reversed(), CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 1.0), Coord(1.0, 0.0), Coord(0.0, 0.0)})

	env := ring.Envelope()
	test.T(t, env, Envelope{0.0, 0.0, 1.0, 1.0})
}

func TestEnvelope(t *testing.T) {
	env := NewEnvelope()
	test.T(t, env.Null(), true)

	env.ExpandToInclude(Coord(1.0, 2.0))
	env.ExpandToInclude(Coord(3.0, -1.0))
	test.T(t, env, Envelope{1.0, -1.0, 3.0, 2.0})
	test.T(t, env.Null(), false)
	test.Float(t, env.Width(), 2.0)
	test.Float(t, env.Height(), 3.0)
	test.Float(t, env.Area(), 6.0)
	test.T(t, env.Centre(), Coord(2.0, 0.5))

	test.T(t, env.Covers(Coord(2.0, 0.0)), true)
	test.T(t, env.Covers(Coord(0.0, 0.0)), false)
	test.T(t, env.Intersects(Envelope{3.0, 2.0, 4.0, 3.0}), true)
	test.T(t, env.Intersects(Envelope{3.1, 2.1, 4.0, 3.0}), false)
	test.T(t, env.CoversEnvelope(Envelope{1.0, 0.0, 2.0, 1.0}), true)
	test.T(t, env.CoversEnvelope(Envelope{0.0, 0.0, 2.0, 1.0}), false)

	test.Float(t, env.Distance(Envelope{5.0, -1.0, 6.0, 2.0}), 2.0)
	test.Float(t, env.Distance(Envelope{2.0, 0.0, 2.5, 0.5}), 0.0)

	env.ExpandBy(1.0)
	test.T(t, env, Envelope{0.0, -2.0, 4.0, 3.0})
}

func TestAreaLength(t *testing.T) {
	poly := parseWKT(t, "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,3 1,3 3,1 3,1 1))")
	test.Float(t, Area(poly), 12.0)
	test.Float(t, Area(parseWKT(t, "POINT(1 1)")), 0.0)

	line := parseWKT(t, "LINESTRING(0 0,3 4,3 5)")
	test.Float(t, Length(line), 6.0)
	test.Float(t, Length(poly), 0.0)
}

func TestNormalized(t *testing.T) {
	// same ring written from a different start point and in opposite orientation
	a := parseWKT(t, "POLYGON((4 4,0 4,0 0,4 0,4 4))")
	b := parseWKT(t, "POLYGON((0 0,4 0,4 4,0 4,0 0))")
	test.T(t, Normalized(a), Normalized(b))

	l1 := parseWKT(t, "LINESTRING(2 2,0 0)")
	l2 := parseWKT(t, "LINESTRING(0 0,2 2)")
	test.T(t, Normalized(l1), Normalized(l2))

	m1 := parseWKT(t, "MULTIPOINT((3 3),(1 1))")
	m2 := parseWKT(t, "MULTIPOINT((1 1),(3 3))")
	test.T(t, Normalized(m1), Normalized(m2))
}

func TestFactoryBuildGeometry(t *testing.T) {
	var f Factory
	p1 := f.Point(Coord(0.0, 0.0))
	p2 := f.Point(Coord(1.0, 1.0))
	l := f.LineString(CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0)})

	test.T(t, f.BuildGeometry(nil).Empty(), true)
	test.T(t, f.BuildGeometry([]Geometry{p1}), Geometry(p1))
	test.T(t, f.BuildGeometry([]Geometry{p1, p2}), Geometry(f.MultiPoint(p1, p2)))
	test.T(t, f.BuildGeometry([]Geometry{p1, l}), Geometry(f.Collection(p1, l)))
}
