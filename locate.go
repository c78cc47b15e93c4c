package geom

// Location classifies a point relative to a geometry.
type Location int8

const (
	LocNone     Location = -1 // not yet determined
	LocInterior Location = 0
	LocBoundary Location = 1
	LocExterior Location = 2
)

func (loc Location) String() string {
	switch loc {
	case LocInterior:
		return "interior"
	case LocBoundary:
		return "boundary"
	case LocExterior:
		return "exterior"
	}
	return "none"
}

// LocateInRing classifies point p relative to a closed ring by counting how often a ray from p to the right crosses the ring, using the robust orientation test near the boundary. Repeated ring vertices do not double-count crossings. Ring orientation does not matter.
func LocateInRing(p Coordinate, ring CoordinateSequence) Location {
	crossings := 0
	for i := 1; i < len(ring); i++ {
		p1 := ring[i-1]
		p2 := ring[i]
		if p1.Equals(p2) {
			continue
		}

		if p.Equals(p2) {
			return LocBoundary
		}
		if p1.Y == p.Y && p2.Y == p.Y {
			// horizontal segment on the ray
			minX, maxX := p1.X, p2.X
			if maxX < minX {
				minX, maxX = maxX, minX
			}
			if minX <= p.X && p.X <= maxX {
				return LocBoundary
			}
			continue
		}
		if p1.Y > p.Y && p2.Y <= p.Y || p2.Y > p.Y && p1.Y <= p.Y {
			// segment crosses the horizontal line through p
			orient := OrientationIndex(p1, p2, p)
			if orient == Collinear {
				return LocBoundary
			}
			if p2.Y < p1.Y {
				orient = -orient
			}
			// count the crossing if it lies strictly to the right of p, i.e. p is left of the upward segment
			if orient == CCW {
				crossings++
			}
		}
	}
	if crossings%2 == 1 {
		return LocInterior
	}
	return LocExterior
}

// locateInPolygon classifies p against a polygon's shell and holes.
func locateInPolygon(p Coordinate, poly *Polygon) Location {
	if poly.Empty() {
		return LocExterior
	}
	loc := LocateInRing(p, poly.Shell)
	if loc != LocInterior {
		return loc
	}
	for _, hole := range poly.Holes {
		switch LocateInRing(p, hole) {
		case LocInterior:
			return LocExterior
		case LocBoundary:
			return LocBoundary
		}
	}
	return LocInterior
}

// PointLocator locates a point in a geometry of any kind. A locator value is scoped to one query or one overlay invocation; it carries no global state.
type PointLocator struct {
	isIn          bool
	numBoundaries int
}

// Locate returns whether p lies in the interior, on the boundary, or in the exterior of g. Line endpoints are boundary points following the mod-2 rule: an endpoint shared by an odd number of line ends is on the boundary.
func (l *PointLocator) Locate(p Coordinate, g Geometry) Location {
	if g == nil || g.Empty() {
		return LocExterior
	}
	l.isIn = false
	l.numBoundaries = 0
	l.computeLocation(p, g)
	if l.numBoundaries%2 == 1 {
		return LocBoundary
	}
	if 0 < l.numBoundaries || l.isIn {
		return LocInterior
	}
	return LocExterior
}

func (l *PointLocator) computeLocation(p Coordinate, g Geometry) {
	switch v := g.(type) {
	case *Point:
		l.update(l.locatePoint(p, v))
	case *LineString:
		l.update(l.locateLine(p, v))
	case *Polygon:
		l.update(locateInPolygon(p, v))
	case *MultiPoint:
		for _, pt := range v.Points {
			l.update(l.locatePoint(p, pt))
		}
	case *MultiLineString:
		for _, line := range v.Lines {
			l.update(l.locateLine(p, line))
		}
	case *MultiPolygon:
		for _, poly := range v.Polygons {
			l.update(locateInPolygon(p, poly))
		}
	case *GeometryCollection:
		for _, gi := range v.Geometries {
			l.computeLocation(p, gi)
		}
	}
}

func (l *PointLocator) update(loc Location) {
	if loc == LocInterior {
		l.isIn = true
	} else if loc == LocBoundary {
		l.numBoundaries++
	}
}

func (l *PointLocator) locatePoint(p Coordinate, pt *Point) Location {
	if pt.Empty() {
		return LocExterior
	}
	if p.Equals(pt.Coordinate) {
		return LocInterior
	}
	return LocExterior
}

func (l *PointLocator) locateLine(p Coordinate, line *LineString) Location {
	if line.Empty() || !line.Envelope().Covers(p) {
		return LocExterior
	}
	pts := line.Points
	if !line.Closed() && (p.Equals(pts[0]) || p.Equals(pts[len(pts)-1])) {
		return LocBoundary
	}
	for i := 1; i < len(pts); i++ {
		if pointOnSegment(p, pts[i-1], pts[i]) {
			return LocInterior
		}
	}
	return LocExterior
}

func pointOnSegment(p, a, b Coordinate) bool {
	if !EnvelopeOf(a, b).Covers(p) {
		return false
	}
	return OrientationIndex(a, b, p) == Collinear
}
