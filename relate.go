package geom

// IntersectionMatrix is the dimensionally extended 9-intersection matrix. Entry [i][j] holds the dimension (0, 1 or 2) of the intersection of location i of the first geometry with location j of the second, or -1 for an empty intersection.
type IntersectionMatrix struct {
	dims [3][3]int
}

func newIntersectionMatrix() IntersectionMatrix {
	var m IntersectionMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.dims[i][j] = -1
		}
	}
	return m
}

func (m IntersectionMatrix) Get(locA, locB Location) int {
	return m.dims[locA][locB]
}

// SetAtLeast raises an entry to at least dim. Unknown locations are ignored.
func (m *IntersectionMatrix) SetAtLeast(locA, locB Location, dim int) {
	if locA == LocNone || locB == LocNone {
		return
	}
	if m.dims[locA][locB] < dim {
		m.dims[locA][locB] = dim
	}
}

// String returns the matrix in row-major DE-9IM form, e.g. "212101212".
func (m IntersectionMatrix) String() string {
	b := make([]byte, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b[3*i+j] = "F012"[m.dims[i][j]+1]
		}
	}
	return string(b)
}

// Matches tests the matrix against a 9-character DE-9IM pattern: T requires a non-empty entry, F an empty one, * matches anything, and a digit requires that exact dimension.
func (m IntersectionMatrix) Matches(pattern string) bool {
	if len(pattern) != 9 {
		panic("bug: DE-9IM pattern must have 9 characters")
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dim := m.dims[i][j]
			switch pattern[3*i+j] {
			case '*':
			case 'T':
				if dim < 0 {
					return false
				}
			case 'F':
				if 0 <= dim {
					return false
				}
			case '0', '1', '2':
				if dim != int(pattern[3*i+j]-'0') {
					return false
				}
			default:
				panic("bug: invalid DE-9IM pattern character")
			}
		}
	}
	return true
}

func (m IntersectionMatrix) IsDisjoint() bool {
	return m.Matches("FF*FF****")
}

func (m IntersectionMatrix) IsIntersects() bool {
	return !m.IsDisjoint()
}

func (m IntersectionMatrix) IsWithin() bool {
	return m.Matches("T*F**F***")
}

func (m IntersectionMatrix) IsContains() bool {
	return m.Matches("T*****FF*")
}

func (m IntersectionMatrix) IsCovers() bool {
	return m.Matches("T*****FF*") || m.Matches("*T****FF*") ||
		m.Matches("***T**FF*") || m.Matches("****T*FF*")
}

func (m IntersectionMatrix) IsCoveredBy() bool {
	return m.Matches("T*F**F***") || m.Matches("*TF**F***") ||
		m.Matches("**FT*F***") || m.Matches("**F*TF***")
}

// IsTouches is defined for dimension pairs where at least one geometry is not a point interior to the other; the boundaries meet but the interiors do not.
func (m IntersectionMatrix) IsTouches() bool {
	return m.Matches("FT*******") || m.Matches("F**T*****") || m.Matches("F***T****")
}

// IsCrosses tests interiors intersecting in a lower dimension, with dimA and dimB the operand dimensions.
func (m IntersectionMatrix) IsCrosses(dimA, dimB int) bool {
	if dimA < dimB && (dimA == 0 || dimA == 1) {
		return m.Matches("T*T******")
	}
	if dimB < dimA && (dimB == 0 || dimB == 1) {
		return m.Matches("T*****T**")
	}
	if dimA == 1 && dimB == 1 {
		return m.Matches("0********")
	}
	return false
}

// IsOverlaps tests interiors intersecting in the common dimension with neither geometry containing the other.
func (m IntersectionMatrix) IsOverlaps(dimA, dimB int) bool {
	if dimA != dimB {
		return false
	}
	if dimA == 1 {
		return m.Matches("1*T***T**")
	}
	return m.Matches("T*T***T**")
}

func (m IntersectionMatrix) IsEquals(dimA, dimB int) bool {
	return dimA == dimB && m.Matches("T*F**FFF*")
}

////////////////////////////////////////////////////////////////

// Relate computes the DE-9IM of a and b from a labeled topology graph of the noded inputs.
func Relate(a, b Geometry) (IntersectionMatrix, error) {
	m := newIntersectionMatrix()
	if a == nil || b == nil {
		return m, ErrNilOperand
	}
	m.dims[LocExterior][LocExterior] = 2

	if a.Empty() || b.Empty() {
		if !a.Empty() {
			exteriorDims(&m, a, false)
		} else if !b.Empty() {
			exteriorDims(&m, b, true)
		}
		return m, nil
	}
	if !a.Envelope().Intersects(b.Envelope()) {
		exteriorDims(&m, a, false)
		exteriorDims(&m, b, true)
		return m, nil
	}

	o := newOverlayComputer(a, b, ValidatingNoder{IndexNoder{}}, nil)
	if err := o.buildLabeledGraph(); err != nil {
		return m, err
	}

	for _, e := range o.g.edges {
		// the edge itself is one dimensional; the point sets immediately left and right of it are two dimensional
		m.SetAtLeast(e.label.On(0), e.label.On(1), 1)
		m.SetAtLeast(resolveSide(e.label, 0, posLeft), resolveSide(e.label, 1, posLeft), 2)
		m.SetAtLeast(resolveSide(e.label, 0, posRight), resolveSide(e.label, 1, posRight), 2)
	}
	for _, n := range o.g.nodes {
		m.SetAtLeast(n.label.On(0), n.label.On(1), 0)
	}
	return m, nil
}

// resolveSide returns an edge's side location for an operand; for an operand the edge does not bound an area of, the neighborhood off the edge is exterior.
func resolveSide(l Label, operand, pos int) Location {
	loc := l.loc[operand][pos]
	if loc == LocNone {
		return LocExterior
	}
	return loc
}

// exteriorDims records the dimensions of a non-intersecting operand against the other operand's exterior.
func exteriorDims(m *IntersectionMatrix, g Geometry, second bool) {
	dim := g.Dimension()
	bdim := -1
	if dim == 2 {
		bdim = 1
	} else if dim == 1 && hasLineBoundary(g) {
		bdim = 0
	}
	if second {
		m.SetAtLeast(LocExterior, LocInterior, dim)
		if 0 <= bdim {
			m.SetAtLeast(LocExterior, LocBoundary, bdim)
		}
	} else {
		m.SetAtLeast(LocInterior, LocExterior, dim)
		if 0 <= bdim {
			m.SetAtLeast(LocBoundary, LocExterior, bdim)
		}
	}
}

// hasLineBoundary reports whether a lineal geometry has a non-empty boundary under the mod-2 rule.
func hasLineBoundary(g Geometry) bool {
	ends := map[xy]int{}
	var collect func(g Geometry)
	collect = func(g Geometry) {
		switch v := g.(type) {
		case *LineString:
			if !v.Empty() && !v.Points.Closed() {
				ends[xy{v.Points[0].X, v.Points[0].Y}]++
				last := v.Points[len(v.Points)-1]
				ends[xy{last.X, last.Y}]++
			}
		case *MultiLineString:
			for _, l := range v.Lines {
				collect(l)
			}
		case *GeometryCollection:
			for _, gi := range v.Geometries {
				collect(gi)
			}
		}
	}
	collect(g)
	for _, n := range ends {
		if n%2 == 1 {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////

// Convenience predicates over Relate.

func Intersects(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsIntersects(), nil
}

func Disjoint(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsDisjoint(), nil
}

func Contains(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsContains(), nil
}

func Within(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsWithin(), nil
}

func Covers(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsCovers(), nil
}

func Touches(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsTouches(), nil
}

func Crosses(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsCrosses(a.Dimension(), b.Dimension()), nil
}

func Overlaps(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsOverlaps(a.Dimension(), b.Dimension()), nil
}

func TopoEquals(a, b Geometry) (bool, error) {
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.IsEquals(a.Dimension(), b.Dimension()), nil
}
