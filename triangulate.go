package geom

import (
	"fmt"

	"github.com/ByteArena/poly2tri-go"
)

// Triangulate decomposes a polygon into triangles with a constrained Delaunay sweep. The polygon must be valid; rings may not self-intersect or touch.
func Triangulate(p *Polygon) (tris [][3]Coordinate, err error) {
	if p == nil {
		return nil, ErrNilOperand
	} else if p.Empty() {
		return nil, nil
	}
	if len(p.Shell) < 4 {
		return nil, ErrInvalidRing
	}

	// the sweep panics on degenerate input
	defer func() {
		if r := recover(); r != nil {
			tris = nil
			err = fmt.Errorf("triangulate: %v", r)
		}
	}()

	swctx := poly2tri.NewSweepContext(contourOf(p.Shell), false)
	for _, hole := range p.Holes {
		if len(hole) < 4 {
			return nil, ErrInvalidRing
		}
		swctx.AddHole(contourOf(hole))
	}
	swctx.Triangulate()

	for _, tr := range swctx.GetTriangles() {
		tris = append(tris, [3]Coordinate{
			{X: tr.Points[0].X, Y: tr.Points[0].Y},
			{X: tr.Points[1].X, Y: tr.Points[1].Y},
			{X: tr.Points[2].X, Y: tr.Points[2].Y},
		})
	}
	return tris, nil
}

// contourOf converts a closed ring to an open point list, dropping the closing vertex.
func contourOf(ring CoordinateSequence) []*poly2tri.Point {
	pts := ring
	if pts.Closed() {
		pts = pts[:len(pts)-1]
	}
	contour := make([]*poly2tri.Point, len(pts))
	for i, c := range pts {
		contour[i] = poly2tri.NewPoint(c.X, c.Y)
	}
	return contour
}
