package geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/tdewolff/test"
)

func TestOrbRoundtrip(t *testing.T) {
	var tts = []string{
		"POINT(1 2)",
		"MULTIPOINT((1 1),(2 2))",
		"LINESTRING(0 0,1 1,2 0)",
		"MULTILINESTRING((0 0,1 1),(2 2,3 3))",
		"POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,3 1,3 3,1 3,1 1))",
		"MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)),((2 2,3 2,3 3,2 3,2 2)))",
		"GEOMETRYCOLLECTION(POINT(1 1),LINESTRING(0 0,1 1))",
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			og, err := wkt.Unmarshal(tt)
			test.Error(t, err)
			rt := ToOrb(FromOrb(og))
			test.String(t, wkt.MarshalString(rt), wkt.MarshalString(og))
		})
	}
}

func TestOrbTypes(t *testing.T) {
	g := FromOrb(orb.Point{1.0, 2.0})
	test.T(t, g.Type(), PointType)
	test.T(t, g.Coordinates()[0], Coord(1.0, 2.0))

	g = FromOrb(orb.Ring{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1.0}, {0.0, 0.0}})
	test.T(t, g.Type(), PolygonType)

	g = FromOrb(orb.Bound{Min: orb.Point{0.0, 0.0}, Max: orb.Point{2.0, 1.0}})
	test.T(t, g.Type(), PolygonType)
	test.Float(t, Area(g), 2.0)
	test.T(t, g.Envelope(), Envelope{0.0, 0.0, 2.0, 1.0})
}

func TestOrbOverlay(t *testing.T) {
	// orb geometries flow through the kernel and back
	a, err := wkt.Unmarshal("POLYGON((0 0,2 0,2 2,0 2,0 0))")
	test.Error(t, err)
	b, err := wkt.Unmarshal("POLYGON((1 1,3 1,3 3,1 3,1 1))")
	test.Error(t, err)

	res, err := Intersection(FromOrb(a), FromOrb(b))
	test.Error(t, err)
	og := ToOrb(Normalized(res))
	test.String(t, wkt.MarshalString(og), "POLYGON((1 1,2 1,2 2,1 2,1 1))")
}
