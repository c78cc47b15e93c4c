package geom

import (
	"encoding/binary"
	"math"
	"sort"
)

// Positions of the location entries in a Label.
const (
	posOn = iota
	posLeft
	posRight
)

// Label stores, for each of the two input operands, an edge's own location and the location of the areas on its left and right side.
type Label struct {
	loc [2][3]Location
}

func newLabel() Label {
	return Label{[2][3]Location{
		{LocNone, LocNone, LocNone},
		{LocNone, LocNone, LocNone},
	}}
}

func (l Label) On(operand int) Location    { return l.loc[operand][posOn] }
func (l Label) Left(operand int) Location  { return l.loc[operand][posLeft] }
func (l Label) Right(operand int) Location { return l.loc[operand][posRight] }

func (l *Label) SetOn(operand int, loc Location) {
	l.loc[operand][posOn] = loc
}

func (l *Label) SetSides(operand int, left, right Location) {
	l.loc[operand][posLeft] = left
	l.loc[operand][posRight] = right
}

func (l *Label) SetAll(operand int, loc Location) {
	l.loc[operand] = [3]Location{loc, loc, loc}
}

// IsArea returns true if the label carries side locations for the operand, i.e. the edge bounds an area of that operand.
func (l Label) IsArea(operand int) bool {
	return l.loc[operand][posLeft] != LocNone || l.loc[operand][posRight] != LocNone
}

// Flipped returns the label as seen when traversing the edge in the opposite direction.
func (l Label) Flipped() Label {
	for i := 0; i < 2; i++ {
		l.loc[i][posLeft], l.loc[i][posRight] = l.loc[i][posRight], l.loc[i][posLeft]
	}
	return l
}

// Merge combines the label of a coincident edge into l. An explicitly known location always wins over an unknown one; the caller must have flipped o if the merged edges had opposite orientations.
func (l *Label) Merge(o Label) {
	for i := 0; i < 2; i++ {
		for pos := 0; pos < 3; pos++ {
			if l.loc[i][pos] == LocNone {
				l.loc[i][pos] = o.loc[i][pos]
			}
		}
	}
}

////////////////////////////////////////////////////////////////

// The topology graph is naturally cyclic (edge, directed pair, node, star), so it is laid out as flat arenas indexed by integer handles; symmetric edges and incident nodes are indices, never owning references.

type topoEdge struct {
	pts      CoordinateSequence
	label    Label
	inResult bool // collected as a line result
	visited  bool
}

type topoNode struct {
	coord    Coordinate
	star     []int // outgoing directed edge handles, counter clockwise
	label    Label
	inResult bool
}

type dirEdge struct {
	edge     int
	sym      int
	origin   int
	dest     int
	forward  bool
	label    Label // oriented to this direction of traversal
	inResult bool
	visited  bool
}

type xy struct {
	x, y float64
}

type topologyGraph struct {
	edges   []topoEdge
	nodes   []topoNode
	dirs    []dirEdge
	nodeIdx map[xy]int
	edgeIdx map[string]int
}

func newTopologyGraph() *topologyGraph {
	return &topologyGraph{
		nodeIdx: map[xy]int{},
		edgeIdx: map[string]int{},
	}
}

func (g *topologyGraph) nodeAt(c Coordinate) int {
	key := xy{c.X, c.Y}
	if ni, ok := g.nodeIdx[key]; ok {
		return ni
	}
	ni := len(g.nodes)
	g.nodes = append(g.nodes, topoNode{coord: c, label: newLabel()})
	g.nodeIdx[key] = ni
	return ni
}

// chainKey returns a direction-independent key for a coordinate chain and whether the chain is reversed relative to its canonical direction.
func chainKey(pts CoordinateSequence) (string, bool) {
	rev := false
	if pts[len(pts)-1].Compare(pts[0]) < 0 {
		rev = true
	} else if pts[0].Equals(pts[len(pts)-1]) && 2 < len(pts) && pts[len(pts)-2].Compare(pts[1]) < 0 {
		rev = true
	}
	seq := pts
	if rev {
		seq = pts.Reversed()
	}
	buf := make([]byte, 0, 16*len(seq))
	var tmp [8]byte
	for _, c := range seq {
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c.X))
		buf = append(buf, tmp[:]...)
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c.Y))
		buf = append(buf, tmp[:]...)
	}
	return string(buf), rev
}

// addEdge inserts a noded chain with its label, merging coincident chains from the two operands into a single edge. If the chain runs opposite to the stored edge its side locations are swapped first, keeping them geometrically consistent.
func (g *topologyGraph) addEdge(pts CoordinateSequence, label Label) {
	key, rev := chainKey(pts)
	if rev {
		pts = pts.Reversed()
		label = label.Flipped()
	}
	if ei, ok := g.edgeIdx[key]; ok {
		g.edges[ei].label.Merge(label)
		return
	}
	g.edgeIdx[key] = len(g.edges)
	g.edges = append(g.edges, topoEdge{pts: pts, label: label})
}

// buildTopology creates the directed edge pairs and node stars. This realizes the edge stubs around each intersection: the forward stub carries the edge label, the stub pointing back toward the previous point carries the flipped label.
func (g *topologyGraph) buildTopology() {
	for ei := range g.edges {
		e := &g.edges[ei]
		o := g.nodeAt(e.pts[0])
		d := g.nodeAt(e.pts[len(e.pts)-1])
		f := len(g.dirs)
		g.dirs = append(g.dirs,
			dirEdge{edge: ei, sym: f + 1, origin: o, dest: d, forward: true, label: e.label},
			dirEdge{edge: ei, sym: f, origin: d, dest: o, forward: false, label: e.label.Flipped()},
		)
		g.nodes[o].star = append(g.nodes[o].star, f)
		g.nodes[d].star = append(g.nodes[d].star, f+1)
	}
	for ni := range g.nodes {
		star := g.nodes[ni].star
		sort.SliceStable(star, func(i, j int) bool {
			return g.compareDirection(star[i], star[j]) < 0
		})
	}
}

// dirPoint returns the point that determines the outgoing direction of a directed edge at its origin.
func (g *topologyGraph) dirPoint(di int) Coordinate {
	de := g.dirs[di]
	pts := g.edges[de.edge].pts
	if de.forward {
		return pts[1]
	}
	return pts[len(pts)-2]
}

// compareDirection orders two directed edges leaving the same node counter clockwise from the positive x-axis, using the octant comparator first so noding and graph traversal agree on ordering, refined by the robust orientation test within an octant.
func (g *topologyGraph) compareDirection(a, b int) int {
	o := g.nodes[g.dirs[a].origin].coord
	pa := g.dirPoint(a)
	pb := g.dirPoint(b)
	octA := octantOf(o, pa)
	octB := octantOf(o, pb)
	if octA != octB {
		if octA < octB {
			return -1
		}
		return 1
	}
	return -OrientationIndex(o, pa, pb)
}

// nextResultEdge returns the next outgoing in-result directed edge at the destination of arrived, scanning clockwise in angular order from the symmetric of the edge just traversed. Returns -1 if the node has no outgoing in-result edge, which indicates a topology inconsistency.
func (g *topologyGraph) nextResultEdge(arrived int) int {
	sym := g.dirs[arrived].sym
	star := g.nodes[g.dirs[arrived].dest].star
	pos := -1
	for i, di := range star {
		if di == sym {
			pos = i
			break
		}
	}
	if pos == -1 {
		return -1
	}
	for k := 1; k <= len(star); k++ {
		cand := star[((pos-k)%len(star)+len(star))%len(star)]
		if g.dirs[cand].inResult {
			return cand
		}
	}
	return -1
}

// chainCoords returns the coordinates of a directed edge from origin to destination.
func (g *topologyGraph) chainCoords(di int) CoordinateSequence {
	de := g.dirs[di]
	pts := g.edges[de.edge].pts
	if de.forward {
		return pts
	}
	return pts.Reversed()
}
