package geom

import (
	"fmt"
	"sort"
)

// Noder computes all intersections among a set of segment strings and returns substrings that do not cross except at shared endpoints.
type Noder interface {
	Node(segs []*SegmentString) ([]*SegmentString, error)
}

// TopologyError reports a state that should be impossible under fully noded input.
type TopologyError struct {
	Msg   string
	Coord Coordinate
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("geom: %s at %v", e.Msg, e.Coord)
}

////////////////////////////////////////////////////////////////

// SegmentString is an ordered chain of coordinates with an opaque provenance payload. During noding it accumulates intersection records which are used to split it into substrings.
type SegmentString struct {
	Pts   CoordinateSequence
	Data  interface{}
	nodes []*SegmentNode
}

func NewSegmentString(pts CoordinateSequence, data interface{}) *SegmentString {
	return &SegmentString{Pts: pts.RemoveRepeated(), Data: data}
}

// SegmentNode records an intersection on a segment string. A node on a vertex has SegIndex equal to the vertex index; a node interior to a segment has the index of that segment.
type SegmentNode struct {
	Coord    Coordinate
	SegIndex int
	interior bool
}

// AddNode registers an intersection point on segment segIndex. Points coinciding with a segment endpoint are snapped to the existing vertex so no near-duplicate nodes appear.
func (ss *SegmentString) AddNode(pt Coordinate, segIndex int) {
	if pt.Equals(ss.Pts[segIndex]) || Equal(pt.X, ss.Pts[segIndex].X) && Equal(pt.Y, ss.Pts[segIndex].Y) {
		ss.nodes = append(ss.nodes, &SegmentNode{ss.Pts[segIndex], segIndex, false})
		return
	}
	if next := segIndex + 1; next < len(ss.Pts) && (pt.Equals(ss.Pts[next]) || Equal(pt.X, ss.Pts[next].X) && Equal(pt.Y, ss.Pts[next].Y)) {
		ss.nodes = append(ss.nodes, &SegmentNode{ss.Pts[next], next, false})
		return
	}
	ss.nodes = append(ss.nodes, &SegmentNode{pt, segIndex, true})
}

// addEndpoints ensures the node list contains both endpoints of the chain.
func (ss *SegmentString) addEndpoints() {
	ss.nodes = append(ss.nodes, &SegmentNode{ss.Pts[0], 0, false})
	ss.nodes = append(ss.nodes, &SegmentNode{ss.Pts[len(ss.Pts)-1], len(ss.Pts) - 1, false})
}

// compareNodes orders intersection records by segment index; within a segment the segment's own start vertex always sorts first (octant classification is unreliable at degenerate positions), exactly coincident nodes are equal, and interior nodes follow the octant-direction comparator of the segment.
func (ss *SegmentString) compareNodes(a, b *SegmentNode) int {
	if a.SegIndex != b.SegIndex {
		if a.SegIndex < b.SegIndex {
			return -1
		}
		return 1
	}
	if a.Coord.Equals(b.Coord) {
		return 0
	}
	if !a.interior {
		return -1
	} else if !b.interior {
		return 1
	}
	oct := octantOf(ss.Pts[a.SegIndex], ss.Pts[a.SegIndex+1])
	return compareAlongOctant(oct, a.Coord, b.Coord)
}

// splitSubstrings finalizes the node list and returns the substrings between consecutive nodes.
func (ss *SegmentString) splitSubstrings() []*SegmentString {
	ss.addEndpoints()
	sort.SliceStable(ss.nodes, func(i, j int) bool {
		return ss.compareNodes(ss.nodes[i], ss.nodes[j]) < 0
	})
	nodes := ss.nodes[:1]
	for _, n := range ss.nodes[1:] {
		if ss.compareNodes(nodes[len(nodes)-1], n) != 0 {
			nodes = append(nodes, n)
		}
	}

	var subs []*SegmentString
	for i := 1; i < len(nodes); i++ {
		a, b := nodes[i-1], nodes[i]
		pts := CoordinateSequence{a.Coord}
		for j := a.SegIndex + 1; j <= b.SegIndex; j++ {
			pts = append(pts, ss.Pts[j])
		}
		if !pts[len(pts)-1].Equals(b.Coord) {
			pts = append(pts, b.Coord)
		}
		pts = pts.RemoveRepeated()
		if 2 <= len(pts) {
			subs = append(subs, &SegmentString{Pts: pts, Data: ss.Data})
		}
	}
	return subs
}

////////////////////////////////////////////////////////////////

// octantOf returns the octant (0-7, counter clockwise from the positive x-axis) of the direction from a to b.
func octantOf(a, b Coordinate) int {
	return octant(b.X-a.X, b.Y-a.Y)
}

func octant(dx, dy float64) int {
	adx, ady := dx, dy
	if adx < 0.0 {
		adx = -adx
	}
	if ady < 0.0 {
		ady = -ady
	}
	if dx >= 0.0 {
		if dy >= 0.0 {
			if adx >= ady {
				return 0
			}
			return 1
		}
		if adx >= ady {
			return 7
		}
		return 6
	}
	if dy >= 0.0 {
		if adx >= ady {
			return 3
		}
		return 2
	}
	if adx >= ady {
		return 4
	}
	return 5
}

// compareAlongOctant orders two points along the direction of travel given by the octant, using only coordinate comparisons so it is exact.
func compareAlongOctant(oct int, a, b Coordinate) int {
	switch oct {
	case 0:
		return compareValue(a.X, b.X, a.Y, b.Y)
	case 1:
		return compareValue(a.Y, b.Y, a.X, b.X)
	case 2:
		return compareValue(a.Y, b.Y, b.X, a.X)
	case 3:
		return compareValue(b.X, a.X, a.Y, b.Y)
	case 4:
		return compareValue(b.X, a.X, b.Y, a.Y)
	case 5:
		return compareValue(b.Y, a.Y, b.X, a.X)
	case 6:
		return compareValue(b.Y, a.Y, a.X, b.X)
	}
	return compareValue(a.X, b.X, b.Y, a.Y)
}

func compareValue(a1, b1, a2, b2 float64) int {
	if a1 < b1 {
		return -1
	} else if b1 < a1 {
		return 1
	} else if a2 < b2 {
		return -1
	} else if b2 < a2 {
		return 1
	}
	return 0
}

////////////////////////////////////////////////////////////////

// monotoneChain is a run of segments sharing one octant direction, so the envelope of any subrange is the envelope of its end vertices. Chains from different runs can be pruned against each other by envelope overlap before exact intersection tests.
type monotoneChain struct {
	ss         *SegmentString
	start, end int
	env        Envelope
	id         int
}

func chainsOf(ss *SegmentString, id int) ([]*monotoneChain, int) {
	var chains []*monotoneChain
	pts := ss.Pts
	start := 0
	for start < len(pts)-1 {
		end := start + 1
		oct := octantOf(pts[start], pts[start+1])
		for end < len(pts)-1 && octantOf(pts[end], pts[end+1]) == oct {
			end++
		}
		chains = append(chains, &monotoneChain{ss, start, end, seqEnvelope(pts, start, end), id})
		id++
		start = end
	}
	return chains, id
}

func seqEnvelope(pts CoordinateSequence, start, end int) Envelope {
	env := NewEnvelope()
	for i := start; i <= end; i++ {
		env.ExpandToInclude(pts[i])
	}
	return env
}

type segmentOverlap func(ss1 *SegmentString, i1 int, ss2 *SegmentString, i2 int)

func (c *monotoneChain) overlaps(d *monotoneChain, add segmentOverlap) {
	c.overlapRange(c.start, c.end, d, d.start, d.end, add)
}

func (c *monotoneChain) overlapRange(s0, e0 int, d *monotoneChain, s1, e1 int, add segmentOverlap) {
	if e0-s0 == 1 && e1-s1 == 1 {
		add(c.ss, s0, d.ss, s1)
		return
	}
	if !EnvelopeOf(c.ss.Pts[s0], c.ss.Pts[e0]).Intersects(EnvelopeOf(d.ss.Pts[s1], d.ss.Pts[e1])) {
		return
	}
	m0 := (s0 + e0) / 2
	m1 := (s1 + e1) / 2
	if s0 < m0 {
		if s1 < m1 {
			c.overlapRange(s0, m0, d, s1, m1, add)
		}
		if m1 < e1 {
			c.overlapRange(s0, m0, d, m1, e1, add)
		}
	}
	if m0 < e0 {
		if s1 < m1 {
			c.overlapRange(m0, e0, d, s1, m1, add)
		}
		if m1 < e1 {
			c.overlapRange(m0, e0, d, m1, e1, add)
		}
	}
}

////////////////////////////////////////////////////////////////

// IndexNoder nodes segment strings by indexing their monotone chains in an STR tree and intersecting only overlapping chain pairs with the robust predicate kernel. It assumes input coordinates have stable precision; see SnappingNoder and SnapRoundingNoder for noisier inputs.
type IndexNoder struct {
	// Snap canonicalizes computed intersection points, used by the fixed-precision noders.
	Snap func(Coordinate) Coordinate
}

func (n IndexNoder) Node(segs []*SegmentString) ([]*SegmentString, error) {
	work := make([]*SegmentString, 0, len(segs))
	for _, ss := range segs {
		if len(ss.Pts) < 2 {
			continue
		}
		work = append(work, &SegmentString{Pts: ss.Pts, Data: ss.Data})
	}

	var chains []*monotoneChain
	id := 0
	for _, ss := range work {
		var cs []*monotoneChain
		cs, id = chainsOf(ss, id)
		chains = append(chains, cs...)
	}

	tree := NewSTRTree()
	for _, c := range chains {
		tree.Insert(c.env, c)
	}
	for _, c := range chains {
		tree.Query(c.env, func(item interface{}) {
			d := item.(*monotoneChain)
			if c.id < d.id {
				c.overlaps(d, n.addIntersections)
			}
		})
	}

	var noded []*SegmentString
	for _, ss := range work {
		noded = append(noded, ss.splitSubstrings()...)
	}
	return noded, nil
}

func (n IndexNoder) addIntersections(ss1 *SegmentString, i1 int, ss2 *SegmentString, i2 int) {
	if ss1 == ss2 && i1 == i2 {
		return
	}
	li := intersectSegments(ss1.Pts[i1], ss1.Pts[i1+1], ss2.Pts[i2], ss2.Pts[i2+1])
	if li.num == 0 {
		return
	}
	if ss1 == ss2 && li.num == 1 && !li.proper && adjacentSegments(ss1, i1, i2) {
		// shared vertex of adjacent segments in the same string
		return
	}
	for i := 0; i < li.num; i++ {
		pt := li.pts[i]
		if n.Snap != nil {
			pt = n.Snap(pt)
		}
		ss1.AddNode(pt, i1)
		ss2.AddNode(pt, i2)
	}
}

func adjacentSegments(ss *SegmentString, i1, i2 int) bool {
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	if i2-i1 == 1 {
		return true
	}
	// first and last segment of a closed chain share the start point
	return ss.Pts.Closed() && i1 == 0 && i2 == len(ss.Pts)-2
}

////////////////////////////////////////////////////////////////

// SegmentExtractingNoder decomposes input that is already guaranteed to be fully noded into raw two-point segments. It is the fast path for unioning pre-noded line coverages; it performs no intersection tests.
type SegmentExtractingNoder struct{}

func (SegmentExtractingNoder) Node(segs []*SegmentString) ([]*SegmentString, error) {
	var noded []*SegmentString
	for _, ss := range segs {
		for i := 1; i < len(ss.Pts); i++ {
			noded = append(noded, &SegmentString{
				Pts:  CoordinateSequence{ss.Pts[i-1], ss.Pts[i]},
				Data: ss.Data,
			})
		}
	}
	return noded, nil
}

////////////////////////////////////////////////////////////////

// ValidatingNoder wraps a noder and re-checks its output for residual crossings, failing fast with a topology error instead of letting a silently wrong graph propagate.
type ValidatingNoder struct {
	Wrapped Noder
}

func (v ValidatingNoder) Node(segs []*SegmentString) ([]*SegmentString, error) {
	noded, err := v.Wrapped.Node(segs)
	if err != nil {
		return nil, err
	}
	if err := checkFullyNoded(noded); err != nil {
		return nil, err
	}
	return noded, nil
}

// checkFullyNoded returns a topology error if any two segments cross anywhere but at shared endpoints.
func checkFullyNoded(segs []*SegmentString) error {
	var chains []*monotoneChain
	id := 0
	for _, ss := range segs {
		var cs []*monotoneChain
		cs, id = chainsOf(ss, id)
		chains = append(chains, cs...)
	}
	tree := NewSTRTree()
	for _, c := range chains {
		tree.Insert(c.env, c)
	}

	var verr error
	check := func(ss1 *SegmentString, i1 int, ss2 *SegmentString, i2 int) {
		if verr != nil || ss1 == ss2 && i1 == i2 {
			return
		}
		li := intersectSegments(ss1.Pts[i1], ss1.Pts[i1+1], ss2.Pts[i2], ss2.Pts[i2+1])
		if li.num == 0 || ss1 == ss2 && li.num == 1 && !li.proper && adjacentSegments(ss1, i1, i2) {
			return
		}
		if li.num == 2 && !li.pts[0].Equals(li.pts[1]) {
			// exactly coincident segments are fully noded, a partial collinear overlap is not
			a0, a1 := ss1.Pts[i1], ss1.Pts[i1+1]
			b0, b1 := ss2.Pts[i2], ss2.Pts[i2+1]
			if a0.Equals(b0) && a1.Equals(b1) || a0.Equals(b1) && a1.Equals(b0) {
				return
			}
			verr = &TopologyError{"found non-noded intersection", li.pts[0]}
			return
		}
		if li.proper {
			verr = &TopologyError{"found non-noded intersection", li.pts[0]}
			return
		}
		pt := li.pts[0]
		if !isEndpointOf(ss1, pt) || !isEndpointOf(ss2, pt) {
			verr = &TopologyError{"found interior intersection", pt}
		}
	}
	for _, c := range chains {
		tree.Query(c.env, func(item interface{}) {
			d := item.(*monotoneChain)
			if c.id < d.id {
				c.overlaps(d, check)
			}
		})
	}
	return verr
}

func isEndpointOf(ss *SegmentString, pt Coordinate) bool {
	return pt.Equals(ss.Pts[0]) || pt.Equals(ss.Pts[len(ss.Pts)-1])
}
