package geom

import (
	"errors"
	"math"
)

// ErrEmptyOperand is returned by distance queries on empty geometries.
var ErrEmptyOperand = errors.New("geom: empty operand")

// Distance returns the minimum planar distance between a and b, zero if they intersect.
func Distance(a, b Geometry) (float64, error) {
	_, d, err := nearest(a, b, 0.0)
	return d, err
}

// IsWithinDistance returns true if the distance between a and b is at most d. The search terminates as soon as any facet pair within d is found.
func IsWithinDistance(a, b Geometry, d float64) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilOperand
	}
	if a.Empty() || b.Empty() {
		return false, ErrEmptyOperand
	}
	if d < a.Envelope().Distance(b.Envelope()) {
		return false, nil
	}
	_, min, err := nearest(a, b, d)
	if err != nil {
		return false, err
	}
	return min <= d, nil
}

// NearestPoints returns a closest pair of points, the first on a and the second on b.
func NearestPoints(a, b Geometry) ([2]Coordinate, error) {
	pts, _, err := nearest(a, b, 0.0)
	return pts, err
}

// nearest computes the closest facet pair, terminating early once the running minimum drops to terminate or below.
func nearest(a, b Geometry, terminate float64) ([2]Coordinate, float64, error) {
	var pts [2]Coordinate
	if a == nil || b == nil {
		return pts, 0.0, ErrNilOperand
	}
	if a.Empty() || b.Empty() {
		return pts, 0.0, ErrEmptyOperand
	}

	// a geometry inside an area is at distance zero without any facets being close
	if a.Dimension() == 2 {
		if rep, ok := coordinateWithin(b, a); ok {
			return [2]Coordinate{rep, rep}, 0.0, nil
		}
	}
	if b.Dimension() == 2 {
		if rep, ok := coordinateWithin(a, b); ok {
			return [2]Coordinate{rep, rep}, 0.0, nil
		}
	}

	fa := facetsOf(a)
	fb := facetsOf(b)
	tree := NewSTRTree()
	for i, f := range fb {
		tree.Insert(f.envelope(), i)
	}

	min := math.Inf(1.0)
	for _, f := range fa {
		if min <= terminate {
			break
		}
		env := f.envelope()
		env.ExpandBy(min)
		tree.Query(env, func(item interface{}) {
			g := fb[item.(int)]
			p, q, d := closestFacetPoints(f, g)
			if d < min {
				min = d
				pts = [2]Coordinate{p, q}
			}
		})
	}
	return pts, min, nil
}

// coordinateWithin returns a vertex of g that is not exterior to the areal geometry area. A component of g lying wholly inside area has no facet near the boundary, so every vertex must be checked, not just the first.
func coordinateWithin(g Geometry, area Geometry) (Coordinate, bool) {
	var locator PointLocator
	for _, c := range g.Coordinates() {
		if locator.Locate(c, area) != LocExterior {
			return c, true
		}
	}
	return Coordinate{}, false
}

////////////////////////////////////////////////////////////////

// facet is a single segment or point of a geometry; a point facet has equal endpoints.
type facet struct {
	a, b Coordinate
}

func (f facet) envelope() Envelope {
	env := NewEnvelope()
	env.ExpandToInclude(f.a)
	env.ExpandToInclude(f.b)
	return env
}

func facetsOf(g Geometry) []facet {
	var facets []facet
	var seq func(pts CoordinateSequence)
	seq = func(pts CoordinateSequence) {
		for i := 1; i < len(pts); i++ {
			facets = append(facets, facet{pts[i-1], pts[i]})
		}
	}
	var walk func(g Geometry)
	walk = func(g Geometry) {
		switch v := g.(type) {
		case *Point:
			facets = append(facets, facet{v.Coordinate, v.Coordinate})
		case *LineString:
			seq(v.Points)
		case *Polygon:
			seq(v.Shell)
			for _, hole := range v.Holes {
				seq(hole)
			}
		case *MultiPoint:
			for _, pt := range v.Points {
				walk(pt)
			}
		case *MultiLineString:
			for _, l := range v.Lines {
				walk(l)
			}
		case *MultiPolygon:
			for _, p := range v.Polygons {
				walk(p)
			}
		case *GeometryCollection:
			for _, gi := range v.Geometries {
				walk(gi)
			}
		}
	}
	walk(g)
	return facets
}

// closestPointOnSegment returns the point of segment a-b closest to p.
func closestPointOnSegment(p, a, b Coordinate) Coordinate {
	if a.Equals(b) {
		return a
	}
	len2 := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	r := ((p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)) / len2
	if r <= 0.0 {
		return a
	} else if 1.0 <= r {
		return b
	}
	return Coordinate{X: a.X + r*(b.X-a.X), Y: a.Y + r*(b.Y-a.Y)}
}

// closestFacetPoints returns a closest pair of points between two facets and their distance.
func closestFacetPoints(f, g facet) (Coordinate, Coordinate, float64) {
	fPoint := f.a.Equals(f.b)
	gPoint := g.a.Equals(g.b)
	if fPoint && gPoint {
		return f.a, g.a, f.a.Distance(g.a)
	} else if fPoint {
		q := closestPointOnSegment(f.a, g.a, g.b)
		return f.a, q, f.a.Distance(q)
	} else if gPoint {
		p := closestPointOnSegment(g.a, f.a, f.b)
		return p, g.a, p.Distance(g.a)
	}

	if li := intersectSegments(f.a, f.b, g.a, g.b); 0 < li.num {
		return li.pts[0], li.pts[0], 0.0
	}

	// disjoint segments are closest at an endpoint of one of them
	p, q := f.a, closestPointOnSegment(f.a, g.a, g.b)
	min := p.Distance(q)
	if cq := closestPointOnSegment(f.b, g.a, g.b); f.b.Distance(cq) < min {
		p, q = f.b, cq
		min = p.Distance(q)
	}
	if cp := closestPointOnSegment(g.a, f.a, f.b); cp.Distance(g.a) < min {
		p, q = cp, g.a
		min = p.Distance(q)
	}
	if cp := closestPointOnSegment(g.b, f.a, f.b); cp.Distance(g.b) < min {
		p, q = cp, g.b
		min = p.Distance(q)
	}
	return p, q, min
}
