package geom

import (
	"errors"
	"math"
	"sort"
)

// The kernel consumes and produces geometries through this minimal model: enumerate coordinates, report an envelope, emptiness and dimension, and construct new values through Factory. Anything richer (formats, reference systems) lives outside.

type GeometryType int

const (
	PointType GeometryType = iota
	LineStringType
	PolygonType
	MultiPointType
	MultiLineStringType
	MultiPolygonType
	GeometryCollectionType
)

func (t GeometryType) String() string {
	switch t {
	case PointType:
		return "Point"
	case LineStringType:
		return "LineString"
	case PolygonType:
		return "Polygon"
	case MultiPointType:
		return "MultiPoint"
	case MultiLineStringType:
		return "MultiLineString"
	case MultiPolygonType:
		return "MultiPolygon"
	case GeometryCollectionType:
		return "GeometryCollection"
	}
	return "Unknown"
}

type Geometry interface {
	Type() GeometryType
	Envelope() Envelope
	Empty() bool
	Dimension() int // 0 for puntal, 1 for lineal, 2 for polygonal
	Coordinates() CoordinateSequence
}

// ErrNilOperand is returned when a nil geometry is passed to a kernel operation.
var ErrNilOperand = errors.New("geom: nil geometry operand")

////////////////////////////////////////////////////////////////

type Point struct {
	Coordinate
}

func (p *Point) Type() GeometryType { return PointType }

func (p *Point) Empty() bool { return p == nil }

func (p *Point) Dimension() int { return 0 }

func (p *Point) Envelope() Envelope { return EnvelopeOf(p.Coordinate) }

func (p *Point) Coordinates() CoordinateSequence { return CoordinateSequence{p.Coordinate} }

type LineString struct {
	Points CoordinateSequence
}

func (l *LineString) Type() GeometryType { return LineStringType }

func (l *LineString) Empty() bool { return l == nil || len(l.Points) == 0 }

func (l *LineString) Dimension() int { return 1 }

func (l *LineString) Envelope() Envelope { return l.Points.Envelope() }

func (l *LineString) Coordinates() CoordinateSequence { return l.Points }

func (l *LineString) Closed() bool { return l.Points.Closed() }

// Polygon is a shell ring with zero or more hole rings. Rings are closed coordinate sequences; the kernel emits shells counter clockwise and holes clockwise.
type Polygon struct {
	Shell CoordinateSequence
	Holes []CoordinateSequence
}

func (p *Polygon) Type() GeometryType { return PolygonType }

func (p *Polygon) Empty() bool { return p == nil || len(p.Shell) == 0 }

func (p *Polygon) Dimension() int { return 2 }

func (p *Polygon) Envelope() Envelope { return p.Shell.Envelope() }

func (p *Polygon) Coordinates() CoordinateSequence {
	pts := p.Shell.Clone()
	for _, hole := range p.Holes {
		pts = append(pts, hole...)
	}
	return pts
}

type MultiPoint struct {
	Points []*Point
}

func (m *MultiPoint) Type() GeometryType { return MultiPointType }

func (m *MultiPoint) Empty() bool { return m == nil || len(m.Points) == 0 }

func (m *MultiPoint) Dimension() int { return 0 }

func (m *MultiPoint) Envelope() Envelope {
	env := NewEnvelope()
	for _, p := range m.Points {
		env.ExpandToInclude(p.Coordinate)
	}
	return env
}

func (m *MultiPoint) Coordinates() CoordinateSequence {
	pts := CoordinateSequence{}
	for _, p := range m.Points {
		pts = append(pts, p.Coordinate)
	}
	return pts
}

type MultiLineString struct {
	Lines []*LineString
}

func (m *MultiLineString) Type() GeometryType { return MultiLineStringType }

func (m *MultiLineString) Empty() bool { return m == nil || len(m.Lines) == 0 }

func (m *MultiLineString) Dimension() int { return 1 }

func (m *MultiLineString) Envelope() Envelope {
	env := NewEnvelope()
	for _, l := range m.Lines {
		env.ExpandToIncludeEnvelope(l.Envelope())
	}
	return env
}

func (m *MultiLineString) Coordinates() CoordinateSequence {
	pts := CoordinateSequence{}
	for _, l := range m.Lines {
		pts = append(pts, l.Points...)
	}
	return pts
}

type MultiPolygon struct {
	Polygons []*Polygon
}

func (m *MultiPolygon) Type() GeometryType { return MultiPolygonType }

func (m *MultiPolygon) Empty() bool { return m == nil || len(m.Polygons) == 0 }

func (m *MultiPolygon) Dimension() int { return 2 }

func (m *MultiPolygon) Envelope() Envelope {
	env := NewEnvelope()
	for _, p := range m.Polygons {
		env.ExpandToIncludeEnvelope(p.Envelope())
	}
	return env
}

func (m *MultiPolygon) Coordinates() CoordinateSequence {
	pts := CoordinateSequence{}
	for _, p := range m.Polygons {
		pts = append(pts, p.Coordinates()...)
	}
	return pts
}

type GeometryCollection struct {
	Geometries []Geometry
}

func (g *GeometryCollection) Type() GeometryType { return GeometryCollectionType }

func (g *GeometryCollection) Empty() bool {
	if g == nil {
		return true
	}
	for _, gi := range g.Geometries {
		if !gi.Empty() {
			return false
		}
	}
	return true
}

func (g *GeometryCollection) Dimension() int {
	dim := 0
	for _, gi := range g.Geometries {
		if dim < gi.Dimension() {
			dim = gi.Dimension()
		}
	}
	return dim
}

func (g *GeometryCollection) Envelope() Envelope {
	env := NewEnvelope()
	for _, gi := range g.Geometries {
		env.ExpandToIncludeEnvelope(gi.Envelope())
	}
	return env
}

func (g *GeometryCollection) Coordinates() CoordinateSequence {
	pts := CoordinateSequence{}
	for _, gi := range g.Geometries {
		pts = append(pts, gi.Coordinates()...)
	}
	return pts
}

////////////////////////////////////////////////////////////////

// Factory constructs geometries. Kernel results flow back through the same constructors that callers use for inputs.
type Factory struct{}

func (Factory) Point(c Coordinate) *Point {
	return &Point{c}
}

func (Factory) LineString(pts CoordinateSequence) *LineString {
	return &LineString{pts}
}

func (Factory) Polygon(shell CoordinateSequence, holes ...CoordinateSequence) *Polygon {
	return &Polygon{shell, holes}
}

func (Factory) MultiPoint(pts ...*Point) *MultiPoint {
	return &MultiPoint{pts}
}

func (Factory) MultiLineString(lines ...*LineString) *MultiLineString {
	return &MultiLineString{lines}
}

func (Factory) MultiPolygon(polys ...*Polygon) *MultiPolygon {
	return &MultiPolygon{polys}
}

func (Factory) Collection(gs ...Geometry) *GeometryCollection {
	return &GeometryCollection{gs}
}

// BuildGeometry returns the most specific geometry holding gs: the element itself for one geometry, a Multi geometry for a homogeneous set, and a collection otherwise. An empty set becomes an empty collection.
func (f Factory) BuildGeometry(gs []Geometry) Geometry {
	if len(gs) == 0 {
		return &GeometryCollection{}
	} else if len(gs) == 1 {
		return gs[0]
	}

	typ := gs[0].Type()
	for _, g := range gs[1:] {
		if g.Type() != typ {
			return f.Collection(gs...)
		}
	}
	switch typ {
	case PointType:
		m := &MultiPoint{}
		for _, g := range gs {
			m.Points = append(m.Points, g.(*Point))
		}
		return m
	case LineStringType:
		m := &MultiLineString{}
		for _, g := range gs {
			m.Lines = append(m.Lines, g.(*LineString))
		}
		return m
	case PolygonType:
		m := &MultiPolygon{}
		for _, g := range gs {
			m.Polygons = append(m.Polygons, g.(*Polygon))
		}
		return m
	}
	return f.Collection(gs...)
}

////////////////////////////////////////////////////////////////

// Area returns the total planar area of the polygonal parts of g, with hole areas subtracted.
func Area(g Geometry) float64 {
	switch v := g.(type) {
	case *Polygon:
		if v.Empty() {
			return 0.0
		}
		area := math.Abs(signedArea(v.Shell))
		for _, hole := range v.Holes {
			area -= math.Abs(signedArea(hole))
		}
		return area
	case *MultiPolygon:
		area := 0.0
		for _, p := range v.Polygons {
			area += Area(p)
		}
		return area
	case *GeometryCollection:
		area := 0.0
		for _, gi := range v.Geometries {
			area += Area(gi)
		}
		return area
	}
	return 0.0
}

// Length returns the total length of the lineal parts of g.
func Length(g Geometry) float64 {
	switch v := g.(type) {
	case *LineString:
		d := 0.0
		for i := 1; i < len(v.Points); i++ {
			d += v.Points[i-1].Distance(v.Points[i])
		}
		return d
	case *MultiLineString:
		d := 0.0
		for _, l := range v.Lines {
			d += Length(l)
		}
		return d
	case *GeometryCollection:
		d := 0.0
		for _, gi := range v.Geometries {
			d += Length(gi)
		}
		return d
	}
	return 0.0
}

////////////////////////////////////////////////////////////////

// Normalized returns g in canonical form: shells counter clockwise and holes clockwise, rings rotated to start at their lowest coordinate, and the members of Multi geometries and collections sorted. Two geometries that are equal as point sets and share vertices normalize to identical values.
func Normalized(g Geometry) Geometry {
	switch v := g.(type) {
	case *Point:
		return &Point{v.Coordinate}
	case *LineString:
		return &LineString{normalizedLine(v.Points)}
	case *Polygon:
		return normalizedPolygon(v)
	case *MultiPoint:
		pts := make([]*Point, len(v.Points))
		for i, p := range v.Points {
			pts[i] = &Point{p.Coordinate}
		}
		sort.SliceStable(pts, func(i, j int) bool {
			return pts[i].Coordinate.Compare(pts[j].Coordinate) < 0
		})
		return &MultiPoint{pts}
	case *MultiLineString:
		lines := make([]*LineString, len(v.Lines))
		for i, l := range v.Lines {
			lines[i] = &LineString{normalizedLine(l.Points)}
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].Points.Compare(lines[j].Points) < 0
		})
		return &MultiLineString{lines}
	case *MultiPolygon:
		polys := make([]*Polygon, len(v.Polygons))
		for i, p := range v.Polygons {
			polys[i] = normalizedPolygon(p)
		}
		sort.SliceStable(polys, func(i, j int) bool {
			return polys[i].Shell.Compare(polys[j].Shell) < 0
		})
		return &MultiPolygon{polys}
	case *GeometryCollection:
		gs := make([]Geometry, len(v.Geometries))
		for i, gi := range v.Geometries {
			gs[i] = Normalized(gi)
		}
		sort.SliceStable(gs, func(i, j int) bool {
			if gs[i].Type() != gs[j].Type() {
				return gs[i].Type() < gs[j].Type()
			}
			return gs[i].Coordinates().Compare(gs[j].Coordinates()) < 0
		})
		return &GeometryCollection{gs}
	}
	return g
}

func normalizedLine(pts CoordinateSequence) CoordinateSequence {
	if pts.Closed() {
		return normalizedRing(pts, true)
	}
	if 0 < len(pts) && pts[len(pts)-1].Compare(pts[0]) < 0 {
		return pts.Reversed()
	}
	return pts.Clone()
}

func normalizedPolygon(p *Polygon) *Polygon {
	if p.Empty() {
		return &Polygon{}
	}
	q := &Polygon{Shell: normalizedRing(p.Shell, true)}
	for _, hole := range p.Holes {
		q.Holes = append(q.Holes, normalizedRing(hole, false))
	}
	sort.SliceStable(q.Holes, func(i, j int) bool {
		return q.Holes[i].Compare(q.Holes[j]) < 0
	})
	return q
}

// normalizedRing rotates a closed ring to start at its lowest coordinate and orients it counter clockwise for ccw=true, clockwise otherwise.
func normalizedRing(ring CoordinateSequence, ccw bool) CoordinateSequence {
	pts := ring.RemoveRepeated()
	if pts.Closed() {
		pts = pts[:len(pts)-1]
	}
	if len(pts) == 0 {
		return CoordinateSequence{}
	}

	lo := 0
	for i, c := range pts {
		if c.Compare(pts[lo]) < 0 {
			lo = i
		}
	}
	rot := make(CoordinateSequence, 0, len(pts)+1)
	rot = append(rot, pts[lo:]...)
	rot = append(rot, pts[:lo]...)
	rot = append(rot, pts[lo])
	if IsCCWArea(rot) != ccw {
		rot = rot.Reversed()
	}
	return rot
}
