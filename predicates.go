package geom

import (
	"errors"
	"math"
)

// Orientation values returned by OrientationIndex.
const (
	CW        = -1
	Collinear = 0
	CCW       = 1
)

// ErrInvalidRing is returned when a ring has too few points to determine its orientation.
var ErrInvalidRing = errors.New("geom: ring must have at least 4 points")

// dpSafeEpsilon bounds the rounding error of the 2x2 determinant computed in double precision.
const dpSafeEpsilon = 1e-15

// orientationIndexFilter evaluates the orientation determinant in plain doubles and returns its sign when the magnitude exceeds the error bound, or 2 when the result is uncertain.
func orientationIndexFilter(p1, p2, q Coordinate) int {
	var detsum float64
	detleft := (p1.X - q.X) * (p2.Y - q.Y)
	detright := (p1.Y - q.Y) * (p2.X - q.X)
	det := detleft - detright

	if detleft > 0.0 {
		if detright <= 0.0 {
			return sgn(det)
		}
		detsum = detleft + detright
	} else if detleft < 0.0 {
		if detright >= 0.0 {
			return sgn(det)
		}
		detsum = -detleft - detright
	} else {
		return sgn(det)
	}

	errbound := dpSafeEpsilon * detsum
	if det >= errbound || -det >= errbound {
		return sgn(det)
	}
	return 2
}

func sgn(x float64) int {
	if x > 0.0 {
		return 1
	} else if x < 0.0 {
		return -1
	}
	return 0
}

// OrientationIndex returns CCW if q lies to the left of the directed line p1-p2, CW if to the right, and Collinear otherwise. A filtered double-precision determinant decides well-separated inputs; uncertain cases fall back to an exact double-double evaluation. Note that for points extremely close to the line the result may differ when p1 and p2 are swapped, as the fast-path filter translates to a different origin; downstream algorithms rely on the exact filter thresholds, so this is intentional.
func OrientationIndex(p1, p2, q Coordinate) int {
	if index := orientationIndexFilter(p1, p2, q); index != 2 {
		return index
	}

	dx1 := ddFloat(p2.X).Add(ddFloat(-p1.X))
	dy1 := ddFloat(p2.Y).Add(ddFloat(-p1.Y))
	dx2 := ddFloat(q.X).Add(ddFloat(-p2.X))
	dy2 := ddFloat(q.Y).Add(ddFloat(-p2.Y))
	return dx1.Mul(dy2).Sub(dy1.Mul(dx2)).Signum()
}

// IsCCW returns true if the closed ring is oriented counter clockwise. It scans for the vertex at the top of an upward-then-downward cap and uses the cap's orientation, avoiding a full area computation. The ring must have at least 4 points including the closing point.
func IsCCW(ring CoordinateSequence) (bool, error) {
	nPts := len(ring) - 1
	if nPts < 3 {
		return false, ErrInvalidRing
	}

	// find the highest point reached by an upward segment
	upHiPt := ring[0]
	upLowPt := ring[0]
	iUpHi := 0
	prevY := upHiPt.Y
	for i := 1; i <= nPts; i++ {
		py := ring[i].Y
		if py > prevY && py >= upHiPt.Y {
			upHiPt = ring[i]
			iUpHi = i
			upLowPt = ring[i-1]
		}
		prevY = py
	}
	if iUpHi == 0 {
		// ring is flat
		return false, nil
	}

	// find the next distinct-Y point, the bottom of the downward side of the cap
	iDownLow := iUpHi
	for {
		iDownLow = (iDownLow + 1) % nPts
		if iDownLow == iUpHi || ring[iDownLow].Y != upHiPt.Y {
			break
		}
	}
	downLowPt := ring[iDownLow]
	iDownHi := iDownLow - 1
	if iDownLow == 0 {
		iDownHi = nPts - 1
	}
	downHiPt := ring[iDownHi]

	if upHiPt.Equals(downHiPt) {
		// the cap has a single top vertex
		if upLowPt.Equals(upHiPt) || downLowPt.Equals(upHiPt) || upLowPt.Equals(downLowPt) {
			return false, nil
		}
		index := OrientationIndex(upLowPt, upHiPt, downLowPt)
		if index == Collinear {
			return upLowPt.X > downLowPt.X, nil
		}
		return index == CCW, nil
	}
	// the cap has a flat top: orientation follows the direction of the flat segment
	return downHiPt.X-upHiPt.X < 0.0, nil
}

// IsCCWArea returns true if the ring is oriented counter clockwise by the sign of its signed area. Unlike IsCCW it gives a deterministic answer for self-intersecting (bow-tie) rings, reporting the orientation of the dominant lobe.
func IsCCWArea(ring CoordinateSequence) bool {
	return 0.0 < signedArea(ring)
}

// signedArea returns the shoelace area of a ring, positive for counter clockwise orientation. The sum is taken relative to the first point to reduce rounding for rings far from the origin.
func signedArea(ring CoordinateSequence) float64 {
	if len(ring) < 3 {
		return 0.0
	}
	sum := 0.0
	x0 := ring[0].X
	for i := 1; i < len(ring)-1; i++ {
		x := ring[i].X - x0
		yNext := ring[i+1].Y
		yPrev := ring[i-1].Y
		sum += x * (yNext - yPrev)
	}
	return sum / 2.0
}

////////////////////////////////////////////////////////////////

// lineIntersection is the result of intersecting two line segments: no intersection, a single point, or a collinear overlap with two endpoints.
type lineIntersection struct {
	num    int
	pts    [2]Coordinate
	proper bool // intersection point is interior to both segments
}

// intersectSegments computes the robust intersection of segments p1-p2 and q1-q2.
func intersectSegments(p1, p2, q1, q2 Coordinate) lineIntersection {
	if !EnvelopeOf(p1, p2).Intersects(EnvelopeOf(q1, q2)) {
		return lineIntersection{}
	}

	pq1 := OrientationIndex(p1, p2, q1)
	pq2 := OrientationIndex(p1, p2, q2)
	if pq1 > 0 && pq2 > 0 || pq1 < 0 && pq2 < 0 {
		return lineIntersection{}
	}
	qp1 := OrientationIndex(q1, q2, p1)
	qp2 := OrientationIndex(q1, q2, p2)
	if qp1 > 0 && qp2 > 0 || qp1 < 0 && qp2 < 0 {
		return lineIntersection{}
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		return collinearIntersection(p1, p2, q1, q2)
	}

	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		// an endpoint lies on the other segment; check exact coincidences first so no new coordinate is fabricated
		var pt Coordinate
		switch {
		case p1.Equals(q1) || p1.Equals(q2):
			pt = p1
		case p2.Equals(q1) || p2.Equals(q2):
			pt = p2
		case pq1 == 0:
			pt = q1
		case pq2 == 0:
			pt = q2
		case qp1 == 0:
			pt = p1
		default:
			pt = p2
		}
		return lineIntersection{num: 1, pts: [2]Coordinate{pt, pt}}
	}

	pt, ok := intersectionDD(p1, p2, q1, q2)
	if !ok {
		// numerically degenerate, treat as parallel non-intersecting
		return lineIntersection{}
	}
	if !EnvelopeOf(p1, p2).Covers(pt) || !EnvelopeOf(q1, q2).Covers(pt) {
		// rounding pushed the point off the segments, fall back to the nearest endpoint
		pt = nearestEndpoint(p1, p2, q1, q2)
	}
	return lineIntersection{num: 1, pts: [2]Coordinate{pt, pt}, proper: true}
}

func collinearIntersection(p1, p2, q1, q2 Coordinate) lineIntersection {
	pEnv := EnvelopeOf(p1, p2)
	qEnv := EnvelopeOf(q1, q2)

	pts := CoordinateSequence{}
	for _, c := range []Coordinate{q1, q2} {
		if pEnv.Covers(c) {
			pts = append(pts, c)
		}
	}
	for _, c := range []Coordinate{p1, p2} {
		if qEnv.Covers(c) && !containsCoord(pts, c) {
			pts = append(pts, c)
		}
	}
	if len(pts) == 0 {
		return lineIntersection{}
	} else if len(pts) == 1 {
		return lineIntersection{num: 1, pts: [2]Coordinate{pts[0], pts[0]}}
	}
	return lineIntersection{num: 2, pts: [2]Coordinate{pts[0], pts[1]}}
}

func containsCoord(pts CoordinateSequence, c Coordinate) bool {
	for _, p := range pts {
		if p.Equals(c) {
			return true
		}
	}
	return false
}

// intersectionDD computes the intersection point of two lines using double-double arithmetic via homogeneous coordinates. A non-finite division result indicates parallel or degenerate lines and reports no intersection.
func intersectionDD(p1, p2, q1, q2 Coordinate) (Coordinate, bool) {
	px := ddFloat(p1.Y).Sub(ddFloat(p2.Y))
	py := ddFloat(p2.X).Sub(ddFloat(p1.X))
	pw := ddFloat(p1.X).Mul(ddFloat(p2.Y)).Sub(ddFloat(p2.X).Mul(ddFloat(p1.Y)))

	qx := ddFloat(q1.Y).Sub(ddFloat(q2.Y))
	qy := ddFloat(q2.X).Sub(ddFloat(q1.X))
	qw := ddFloat(q1.X).Mul(ddFloat(q2.Y)).Sub(ddFloat(q2.X).Mul(ddFloat(q1.Y)))

	x := py.Mul(qw).Sub(qy.Mul(pw))
	y := qx.Mul(pw).Sub(px.Mul(qw))
	w := px.Mul(qy).Sub(qx.Mul(py))

	xInt := x.Div(w)
	yInt := y.Div(w)
	if !xInt.Finite() || !yInt.Finite() {
		return Coordinate{}, false
	}
	return Coord(xInt.Float(), yInt.Float()), true
}

// nearestEndpoint returns the endpoint of either segment closest to the other segment.
func nearestEndpoint(p1, p2, q1, q2 Coordinate) Coordinate {
	pt := p1
	min := distancePointSegment(p1, q1, q2)
	if d := distancePointSegment(p2, q1, q2); d < min {
		min = d
		pt = p2
	}
	if d := distancePointSegment(q1, p1, p2); d < min {
		min = d
		pt = q1
	}
	if d := distancePointSegment(q2, p1, p2); d < min {
		pt = q2
	}
	return pt
}

// distancePointSegment returns the distance from p to segment a-b.
func distancePointSegment(p, a, b Coordinate) float64 {
	if a.Equals(b) {
		return p.Distance(a)
	}
	len2 := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	r := ((p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)) / len2
	if r <= 0.0 {
		return p.Distance(a)
	} else if r >= 1.0 {
		return p.Distance(b)
	}
	s := ((a.Y-p.Y)*(b.X-a.X) - (a.X-p.X)*(b.Y-a.Y)) / len2
	return math.Abs(s) * math.Sqrt(len2)
}

// distanceSegmentSegment returns the distance between segments a-b and c-d.
func distanceSegmentSegment(a, b, c, d Coordinate) float64 {
	if a.Equals(b) {
		return distancePointSegment(a, c, d)
	} else if c.Equals(d) {
		return distancePointSegment(c, a, b)
	}
	if li := intersectSegments(a, b, c, d); li.num > 0 {
		return 0.0
	}
	min := distancePointSegment(a, c, d)
	if dd := distancePointSegment(b, c, d); dd < min {
		min = dd
	}
	if dd := distancePointSegment(c, a, b); dd < min {
		min = dd
	}
	if dd := distancePointSegment(d, a, b); dd < min {
		min = dd
	}
	return min
}
