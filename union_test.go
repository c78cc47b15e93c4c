package geom

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestUnionAll(t *testing.T) {
	// a 2x2 grid of unit squares dissolves into one square
	var squares []Geometry
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			squares = append(squares, parseWKT(t, fmt.Sprintf(
				"POLYGON((%d %d,%d %d,%d %d,%d %d,%d %d))",
				x, y, x+1, y, x+1, y+1, x, y+1, x, y)))
		}
	}
	res, err := UnionAll(squares...)
	test.Error(t, err)
	poly, ok := res.(*Polygon)
	test.That(t, ok)
	test.Float(t, Area(poly), 4.0)
	test.T(t, poly.Envelope(), Envelope{0.0, 0.0, 2.0, 2.0})
	test.T(t, len(poly.Holes), 0)
}

func TestUnionAllLarge(t *testing.T) {
	// a strip of 16 touching unit squares
	var squares []Geometry
	for x := 0; x < 16; x++ {
		squares = append(squares, parseWKT(t, fmt.Sprintf(
			"POLYGON((%d 0,%d 0,%d 1,%d 1,%d 0))", x, x+1, x+1, x, x)))
	}
	res, err := UnionAll(squares...)
	test.Error(t, err)
	test.Float(t, Area(res), 16.0)
	test.T(t, res.Envelope(), Envelope{0.0, 0.0, 16.0, 1.0})
}

func TestUnionAllDisjoint(t *testing.T) {
	res, err := UnionAll(
		parseWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"),
		parseWKT(t, "POLYGON((5 5,6 5,6 6,5 6,5 5))"),
	)
	test.Error(t, err)
	testGeom(t, res, "MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)),((5 5,6 5,6 6,5 6,5 5)))")

	res, err = UnionAll()
	test.Error(t, err)
	test.That(t, res.Empty())

	res, err = UnionAll(parseWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"))
	test.Error(t, err)
	testGeom(t, res, "POLYGON((0 0,1 0,1 1,0 1,0 0))")
}

func TestUnionProperties(t *testing.T) {
	a := parseWKT(t, "POLYGON((0 0,2 0,2 2,0 2,0 0))")
	b := parseWKT(t, "POLYGON((1 1,3 1,3 3,1 3,1 1))")

	// commutativity
	ab, err := Union(a, b)
	test.Error(t, err)
	ba, err := Union(b, a)
	test.Error(t, err)
	test.T(t, Normalized(ab), Normalized(ba))

	// idempotence
	aa, err := Union(a, a)
	test.Error(t, err)
	testGeom(t, aa, "POLYGON((0 0,2 0,2 2,0 2,0 0))")
}

func TestCascadedMatchesSequential(t *testing.T) {
	// overlapping squares along a diagonal; the union order must not matter
	var gs []Geometry
	for i := 0; i < 5; i++ {
		f := float64(i)
		gs = append(gs, parseWKT(t, fmt.Sprintf(
			"POLYGON((%v %v,%v %v,%v %v,%v %v,%v %v))",
			f, f, f+2.0, f, f+2.0, f+2.0, f, f+2.0, f, f)))
	}
	cascaded, err := UnionAll(gs...)
	test.Error(t, err)

	seq := gs[0]
	for _, g := range gs[1:] {
		seq, err = Union(seq, g)
		test.Error(t, err)
	}
	test.Float(t, Area(cascaded), Area(seq))
}

func TestCascadedUnionOneShot(t *testing.T) {
	u := NewCascadedUnion(nil)
	u.Add(parseWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))"))
	_, err := u.Union()
	test.Error(t, err)

	defer func() {
		test.That(t, recover() != nil)
	}()
	u.Add(parseWKT(t, "POLYGON((2 2,3 2,3 3,2 3,2 2))"))
}

func TestFixedUnion(t *testing.T) {
	// squares separated by less than half a grid cell merge on the grid
	a := parseWKT(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := parseWKT(t, "POLYGON((10.3 0,20 0,20 10,10.3 10,10.3 0))")

	res, err := FixedUnion{Scale: 1.0}.Union(a, b)
	test.Error(t, err)
	testGeom(t, res, "POLYGON((0 0,10 0,20 0,20 10,10 10,0 10,0 0))")

	u := NewCascadedUnion(FixedUnion{Scale: 1.0})
	u.Add(a)
	u.Add(b)
	res, err = u.Union()
	test.Error(t, err)
	test.Float(t, Area(res), 200.0)
}

func TestSafeScale(t *testing.T) {
	test.Float(t, safeScale(parseWKT(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))")), 1e14)
	test.Float(t, safeScale(parseWKT(t, "POLYGON((0 0,1000 0,1000 1000,0 1000,0 0))")), 1e11)
	test.Float(t, safeScale(&Polygon{}), 1e14)
}
