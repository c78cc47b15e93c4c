package geom

import (
	"github.com/paulmach/orb"
)

// FromOrb converts a github.com/paulmach/orb geometry.
func FromOrb(g orb.Geometry) Geometry {
	switch v := g.(type) {
	case orb.Point:
		return &Point{Coord(v[0], v[1])}
	case orb.MultiPoint:
		mp := &MultiPoint{}
		for _, p := range v {
			mp.Points = append(mp.Points, &Point{Coord(p[0], p[1])})
		}
		return mp
	case orb.LineString:
		return &LineString{fromOrbSeq(v)}
	case orb.MultiLineString:
		ml := &MultiLineString{}
		for _, l := range v {
			ml.Lines = append(ml.Lines, &LineString{fromOrbSeq(orb.LineString(l))})
		}
		return ml
	case orb.Ring:
		return &Polygon{Shell: fromOrbSeq(orb.LineString(v))}
	case orb.Polygon:
		return fromOrbPolygon(v)
	case orb.MultiPolygon:
		mp := &MultiPolygon{}
		for _, p := range v {
			mp.Polygons = append(mp.Polygons, fromOrbPolygon(p))
		}
		return mp
	case orb.Collection:
		gc := &GeometryCollection{}
		for _, gi := range v {
			gc.Geometries = append(gc.Geometries, FromOrb(gi))
		}
		return gc
	case orb.Bound:
		return FromOrb(v.ToPolygon())
	}
	return nil
}

func fromOrbSeq(l orb.LineString) CoordinateSequence {
	seq := make(CoordinateSequence, len(l))
	for i, p := range l {
		seq[i] = Coord(p[0], p[1])
	}
	return seq
}

func fromOrbPolygon(p orb.Polygon) *Polygon {
	poly := &Polygon{}
	for i, ring := range p {
		seq := fromOrbSeq(orb.LineString(ring))
		if i == 0 {
			poly.Shell = seq
		} else {
			poly.Holes = append(poly.Holes, seq)
		}
	}
	return poly
}

// ToOrb converts a geometry to its github.com/paulmach/orb equivalent.
func ToOrb(g Geometry) orb.Geometry {
	switch v := g.(type) {
	case *Point:
		return orb.Point{v.X, v.Y}
	case *MultiPoint:
		mp := make(orb.MultiPoint, len(v.Points))
		for i, p := range v.Points {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp
	case *LineString:
		return toOrbSeq(v.Points)
	case *MultiLineString:
		ml := make(orb.MultiLineString, len(v.Lines))
		for i, l := range v.Lines {
			ml[i] = toOrbSeq(l.Points)
		}
		return ml
	case *Polygon:
		return toOrbPolygon(v)
	case *MultiPolygon:
		mp := make(orb.MultiPolygon, len(v.Polygons))
		for i, p := range v.Polygons {
			mp[i] = toOrbPolygon(p)
		}
		return mp
	case *GeometryCollection:
		gc := make(orb.Collection, len(v.Geometries))
		for i, gi := range v.Geometries {
			gc[i] = ToOrb(gi)
		}
		return gc
	}
	return nil
}

func toOrbSeq(seq CoordinateSequence) orb.LineString {
	l := make(orb.LineString, len(seq))
	for i, c := range seq {
		l[i] = orb.Point{c.X, c.Y}
	}
	return l
}

func toOrbPolygon(p *Polygon) orb.Polygon {
	poly := orb.Polygon{orb.Ring(toOrbSeq(p.Shell))}
	for _, hole := range p.Holes {
		poly = append(poly, orb.Ring(toOrbSeq(hole)))
	}
	return poly
}
