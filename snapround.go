package geom

import "math"

// snapIndex maps coordinates to canonical snap points: the first point seen within tolerance of a location becomes the point all later ones snap to. Lookup is a grid of cells of the tolerance size, searching the 3x3 neighborhood.
type snapIndex struct {
	tol   float64
	cells map[[2]int64][]Coordinate
}

func newSnapIndex(tol float64) *snapIndex {
	return &snapIndex{tol: tol, cells: map[[2]int64][]Coordinate{}}
}

func (s *snapIndex) cell(c Coordinate) [2]int64 {
	return [2]int64{int64(math.Floor(c.X / s.tol)), int64(math.Floor(c.Y / s.tol))}
}

func (s *snapIndex) snap(c Coordinate) Coordinate {
	cell := s.cell(c)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, p := range s.cells[[2]int64{cell[0] + dx, cell[1] + dy}] {
				if p.EqualsTol(c, s.tol) {
					return p
				}
			}
		}
	}
	s.cells[cell] = append(s.cells[cell], c)
	return c
}

// SnappingNoder merges all points within the tolerance before noding, correcting floating noise between near-coincident vertices of independently computed inputs. Computed intersection points are snapped through the same index.
type SnappingNoder struct {
	Tolerance float64
}

func (n SnappingNoder) Node(segs []*SegmentString) ([]*SegmentString, error) {
	idx := newSnapIndex(n.Tolerance)
	snapped := make([]*SegmentString, 0, len(segs))
	for _, ss := range segs {
		pts := make(CoordinateSequence, len(ss.Pts))
		for i, c := range ss.Pts {
			pts[i] = idx.snap(c)
		}
		snapped = append(snapped, NewSegmentString(pts, ss.Data))
	}
	return IndexNoder{Snap: idx.snap}.Node(snapped)
}

////////////////////////////////////////////////////////////////

// SnapRoundingNoder reduces all coordinates to a fixed precision grid and nodes on the grid. The output is guaranteed to be fully noded and simple at the cost of precision loss. Scale is the number of grid cells per unit; a scale of 1 rounds to integers.
type SnapRoundingNoder struct {
	Scale float64
}

// Round snaps a coordinate to the noder's grid.
func (n SnapRoundingNoder) Round(c Coordinate) Coordinate {
	c.X = math.Round(c.X*n.Scale) / n.Scale
	c.Y = math.Round(c.Y*n.Scale) / n.Scale
	return c
}

func (n SnapRoundingNoder) Node(segs []*SegmentString) ([]*SegmentString, error) {
	rounded := make([]*SegmentString, 0, len(segs))
	for _, ss := range segs {
		pts := make(CoordinateSequence, len(ss.Pts))
		for i, c := range ss.Pts {
			pts[i] = n.Round(c)
		}
		ss = NewSegmentString(pts, ss.Data)
		if 2 <= len(ss.Pts) {
			rounded = append(rounded, ss)
		}
	}

	// rounding an intersection point can introduce a new crossing with a nearby segment, so renode until the result is stable (in practice one extra pass)
	noded, err := IndexNoder{Snap: n.Round}.Node(rounded)
	for i := 0; i < 2 && err == nil; i++ {
		if checkFullyNoded(noded) == nil {
			break
		}
		noded, err = IndexNoder{Snap: n.Round}.Node(noded)
	}
	return noded, err
}
