package geom

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestOrientationIndex(t *testing.T) {
	var tts = []struct {
		p1, p2, q Coordinate
		index     int
	}{
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(1.0, 1.0), CCW},
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(1.0, -1.0), CW},
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(1.0, 0.0), Collinear},
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(3.0, 0.0), Collinear},
		{Coord(0.0, 0.0), Coord(2.0, 2.0), Coord(1.0, 1.0), Collinear},
		{Coord(0.0, 0.0), Coord(2.0, 2.0), Coord(2.0, 2.0), Collinear},
		// far from the origin the double filter still decides exactly
		{Coord(1e8, 1e8), Coord(1e8 + 2.0, 1e8), Coord(1e8 + 1.0, 1e8 + 1.0), CCW},
		{Coord(1e8, 1e8), Coord(1e8 + 2.0, 1e8), Coord(1e8 + 1.0, 1e8), Collinear},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, OrientationIndex(tt.p1, tt.p2, tt.q), tt.index)
		})
	}
}

func TestOrientationIndexExactFallback(t *testing.T) {
	// a point a hair off a diagonal line: the filter cannot decide, the double-double path must
	p1 := Coord(0.0, 0.0)
	p2 := Coord(1e10, 1e10)
	above := Coord(5e9, 5e9+2e-6)
	below := Coord(5e9, 5e9-2e-6)
	test.T(t, OrientationIndex(p1, p2, above), CCW)
	test.T(t, OrientationIndex(p1, p2, below), CW)
	test.T(t, OrientationIndex(p1, p2, Coord(5e9, 5e9)), Collinear)
}

func TestOrientationAntisymmetry(t *testing.T) {
	// swapping the segment endpoints flips the sign for points clearly off the line
	var tts = []struct {
		p1, p2, q Coordinate
	}{
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(1.0, 1.0)},
		{Coord(-3.0, 2.0), Coord(5.0, -1.0), Coord(0.5, 4.0)},
		{Coord(0.1, 0.2), Coord(0.7, 0.9), Coord(0.3, -0.4)},
		{Coord(1e8, 1e8), Coord(1e8 + 2.0, 1e8), Coord(1e8 + 1.0, 1e8 + 1.0)},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, OrientationIndex(tt.p2, tt.p1, tt.q), -OrientationIndex(tt.p1, tt.p2, tt.q))
		})
	}
}

func TestIsCCW(t *testing.T) {
	ccw := CoordinateSequence{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(2.0, 2.0), Coord(0.0, 2.0), Coord(0.0, 0.0)}
	got, err := IsCCW(ccw)
	test.Error(t, err)
	test.T(t, got, true)

	got, err = IsCCW(ccw.Reversed())
	test.Error(t, err)
	test.T(t, got, false)

	// flat-top cap
	flat := CoordinateSequence{Coord(0.0, 0.0), Coord(3.0, 0.0), Coord(3.0, 2.0), Coord(2.0, 2.0), Coord(1.0, 2.0), Coord(0.0, 0.0)}
	got, err = IsCCW(flat)
	test.Error(t, err)
	test.T(t, got, true)

	_, err = IsCCW(CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(0.0, 0.0)})
	test.That(t, err == ErrInvalidRing)
}

func TestSignedArea(t *testing.T) {
	ccw := CoordinateSequence{Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(1.0, 1.0), Coord(0.0, 1.0), Coord(0.0, 0.0)}
	test.Float(t, signedArea(ccw), 1.0)
	test.Float(t, signedArea(ccw.Reversed()), -1.0)
	test.T(t, IsCCWArea(ccw), true)
	test.T(t, IsCCWArea(ccw.Reversed()), false)

	// translated far from the origin the relative sum stays accurate
	far := make(CoordinateSequence, len(ccw))
	for i, c := range ccw {
		far[i] = Coord(c.X+1e9, c.Y+1e9)
	}
	test.Float(t, signedArea(far), 1.0)
}

func TestIsCCWAgreesWithArea(t *testing.T) {
	// on simple rings the cap scan and the signed area give the same orientation
	var tts = []CoordinateSequence{
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(2.0, 2.0), Coord(0.0, 2.0), Coord(0.0, 0.0)},
		{Coord(0.0, 0.0), Coord(3.0, 0.0), Coord(3.0, 2.0), Coord(2.0, 2.0), Coord(1.0, 2.0), Coord(0.0, 0.0)},
		{Coord(0.0, 0.0), Coord(4.0, 0.0), Coord(4.0, 4.0), Coord(2.0, 1.0), Coord(0.0, 4.0), Coord(0.0, 0.0)},
		{Coord(1.0, 0.0), Coord(2.0, 1.0), Coord(1.0, 3.0), Coord(0.0, 1.0), Coord(1.0, 0.0)},
	}
	for i, ring := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			for _, r := range []CoordinateSequence{ring, ring.Reversed()} {
				got, err := IsCCW(r)
				test.Error(t, err)
				test.T(t, got, IsCCWArea(r))
			}
		})
	}
}

func TestIntersectSegments(t *testing.T) {
	var tts = []struct {
		p1, p2, q1, q2 Coordinate
		num            int
		pt             Coordinate
		proper         bool
	}{
		{Coord(0.0, 0.0), Coord(2.0, 2.0), Coord(0.0, 2.0), Coord(2.0, 0.0), 1, Coord(1.0, 1.0), true},
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(2.0, 0.0), Coord(2.0, 2.0), 1, Coord(2.0, 0.0), false},
		{Coord(0.0, 0.0), Coord(2.0, 0.0), Coord(1.0, 0.0), Coord(1.0, 2.0), 1, Coord(1.0, 0.0), false},
		{Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(2.0, 0.0), Coord(3.0, 0.0), 0, Coordinate{}, false},
		{Coord(0.0, 0.0), Coord(1.0, 1.0), Coord(0.0, 1.0), Coord(-1.0, 2.0), 0, Coordinate{}, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			li := intersectSegments(tt.p1, tt.p2, tt.q1, tt.q2)
			test.T(t, li.num, tt.num)
			test.T(t, li.proper, tt.proper)
			if 0 < li.num {
				test.T(t, li.pts[0], tt.pt)
			}
		})
	}
}

func TestIntersectSegmentsCollinear(t *testing.T) {
	li := intersectSegments(Coord(0.0, 0.0), Coord(3.0, 0.0), Coord(1.0, 0.0), Coord(4.0, 0.0))
	test.T(t, li.num, 2)
	test.T(t, EnvelopeOf(li.pts[0], li.pts[1]), Envelope{1.0, 0.0, 3.0, 0.0})

	// containment
	li = intersectSegments(Coord(0.0, 0.0), Coord(4.0, 0.0), Coord(1.0, 0.0), Coord(2.0, 0.0))
	test.T(t, li.num, 2)
	test.T(t, EnvelopeOf(li.pts[0], li.pts[1]), Envelope{1.0, 0.0, 2.0, 0.0})

	// identical
	li = intersectSegments(Coord(0.0, 0.0), Coord(1.0, 1.0), Coord(0.0, 0.0), Coord(1.0, 1.0))
	test.T(t, li.num, 2)
}

func TestDistanceSegments(t *testing.T) {
	test.Float(t, distancePointSegment(Coord(0.0, 2.0), Coord(-1.0, 0.0), Coord(1.0, 0.0)), 2.0)
	test.Float(t, distancePointSegment(Coord(3.0, 4.0), Coord(0.0, 0.0), Coord(0.0, 0.0)), 5.0)
	test.Float(t, distancePointSegment(Coord(5.0, 0.0), Coord(-1.0, 0.0), Coord(1.0, 0.0)), 4.0)

	test.Float(t, distanceSegmentSegment(Coord(0.0, 0.0), Coord(1.0, 0.0), Coord(0.0, 1.0), Coord(1.0, 1.0)), 1.0)
	test.Float(t, distanceSegmentSegment(Coord(0.0, 0.0), Coord(2.0, 2.0), Coord(0.0, 2.0), Coord(2.0, 0.0)), 0.0)
}
