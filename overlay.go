package geom

import (
	"errors"
	"fmt"
	"math"
)

// Op is a Boolean set operation code.
type Op int

const (
	OpIntersection Op = iota
	OpUnion
	OpDifference
	OpSymDifference
)

func (op Op) String() string {
	switch op {
	case OpIntersection:
		return "intersection"
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpSymDifference:
		return "symmetric difference"
	}
	return "unknown"
}

// Intersection returns the point-set intersection of a and b.
func Intersection(a, b Geometry) (Geometry, error) {
	return Overlay(a, b, OpIntersection)
}

// Union returns the point-set union of a and b.
func Union(a, b Geometry) (Geometry, error) {
	return Overlay(a, b, OpUnion)
}

// Difference returns the point set of a not in b.
func Difference(a, b Geometry) (Geometry, error) {
	return Overlay(a, b, OpDifference)
}

// SymDifference returns the point set of a and b not shared by both.
func SymDifference(a, b Geometry) (Geometry, error) {
	return Overlay(a, b, OpSymDifference)
}

// overlayAttempts is the retry budget of the snap-tolerance recovery loop.
const overlayAttempts = 3

// Overlay computes the Boolean operation op over a and b at floating precision. On a topology inconsistency, which indicates the noding was not fully clean, it retries with a snapping noder at escalating tolerance before surfacing the error; this is the kernel's only internal retry policy.
func Overlay(a, b Geometry, op Op) (Geometry, error) {
	if a == nil || b == nil {
		return nil, ErrNilOperand
	}

	env := a.Envelope()
	env.ExpandToIncludeEnvelope(b.Envelope())
	tol := 1e-9 * env.Diameter()
	if tol <= 0.0 {
		tol = 1e-9
	}

	noders := make([]Noder, overlayAttempts)
	noders[0] = ValidatingNoder{IndexNoder{}}
	for i := 1; i < overlayAttempts; i++ {
		noders[i] = SnappingNoder{Tolerance: tol}
		tol *= 1000.0
	}
	res, err := overlayRetry(a, b, op, noders)
	if err != nil {
		return nil, fmt.Errorf("%v of %v and %v: %w", op, a.Type(), b.Type(), err)
	}
	return res, nil
}

// overlayRetry runs the overlay with each noder in turn, moving to the next only on a topology inconsistency. Other errors surface immediately.
func overlayRetry(a, b Geometry, op Op, noders []Noder) (Geometry, error) {
	var err error
	for _, noder := range noders {
		var res Geometry
		res, err = overlayGraph(a, b, op, noder, nil)
		if err == nil {
			return res, nil
		}
		var terr *TopologyError
		if !errors.As(err, &terr) {
			break
		}
	}
	return nil, err
}

// OverlayFixed computes op over a and b on a fixed precision grid with the given scale (grid cells per unit). All input and computed coordinates are rounded to the grid.
func OverlayFixed(a, b Geometry, op Op, scale float64) (Geometry, error) {
	if a == nil || b == nil {
		return nil, ErrNilOperand
	}
	noder := SnapRoundingNoder{Scale: scale}
	res, err := overlayGraph(a, b, op, noder, noder.Round)
	if err != nil {
		return nil, fmt.Errorf("%v of %v and %v: %w", op, a.Type(), b.Type(), err)
	}
	return res, nil
}

// isResultOfOp is the membership truth table of the overlay operations: a location pair is part of the result iff it satisfies the operation's rule, where the boundary counts as inside and an undetermined location as outside.
func isResultOfOp(loc0, loc1 Location, op Op) bool {
	in0 := loc0 == LocInterior || loc0 == LocBoundary
	in1 := loc1 == LocInterior || loc1 == LocBoundary
	switch op {
	case OpIntersection:
		return in0 && in1
	case OpUnion:
		return in0 || in1
	case OpDifference:
		return in0 && !in1
	case OpSymDifference:
		return in0 != in1
	}
	return false
}

////////////////////////////////////////////////////////////////

// edgeInfo is the provenance payload attached to segment strings during noding.
type edgeInfo struct {
	operand         int
	on, left, right Location
}

type overlayComputer struct {
	ops     [2]Geometry
	op      Op
	noder   Noder
	snap    func(Coordinate) Coordinate
	factory Factory

	segs      []*SegmentString
	lineEnds  [2]map[xy]int
	pointNode [2]map[xy]bool
	points    []Coordinate

	g *topologyGraph
}

func overlayGraph(a, b Geometry, op Op, noder Noder, snap func(Coordinate) Coordinate) (Geometry, error) {
	// empty operands resolve without graph construction
	if a.Empty() && b.Empty() {
		return &GeometryCollection{}, nil
	} else if a.Empty() {
		if op == OpUnion || op == OpSymDifference {
			return b, nil
		}
		return &GeometryCollection{}, nil
	} else if b.Empty() {
		if op == OpIntersection {
			return &GeometryCollection{}, nil
		}
		return a, nil
	}

	o := newOverlayComputer(a, b, noder, snap)
	o.op = op
	return o.compute()
}

func newOverlayComputer(a, b Geometry, noder Noder, snap func(Coordinate) Coordinate) *overlayComputer {
	return &overlayComputer{
		ops:       [2]Geometry{a, b},
		noder:     noder,
		snap:      snap,
		lineEnds:  [2]map[xy]int{{}, {}},
		pointNode: [2]map[xy]bool{{}, {}},
	}
}

// buildLabeledGraph runs the shared pipeline up to the fully labeled topology graph: extraction, noding, edge merging, label completion, and node labeling.
func (o *overlayComputer) buildLabeledGraph() error {
	for i := 0; i < 2; i++ {
		if err := o.extract(o.ops[i], i); err != nil {
			return err
		}
	}

	noded, err := o.noder.Node(o.segs)
	if err != nil {
		return err
	}

	o.g = newTopologyGraph()
	for _, ss := range noded {
		info := ss.Data.(edgeInfo)
		label := newLabel()
		label.SetOn(info.operand, info.on)
		if info.left != LocNone || info.right != LocNone {
			label.SetSides(info.operand, info.left, info.right)
		}
		o.g.addEdge(ss.Pts, label)
	}

	o.completeLabels()
	o.g.buildTopology()
	for _, c := range o.points {
		o.g.nodeAt(c)
	}
	o.labelNodes()
	return nil
}

func (o *overlayComputer) compute() (Geometry, error) {
	if err := o.buildLabeledGraph(); err != nil {
		return nil, err
	}
	o.findResultAreaEdges()

	polys, err := o.buildPolygons()
	if err != nil {
		return nil, err
	}
	lines := o.buildLines(polys)
	points := o.buildPoints(polys, lines)

	var gs []Geometry
	for _, pt := range points {
		gs = append(gs, pt)
	}
	for _, l := range lines {
		gs = append(gs, l)
	}
	for _, p := range polys {
		gs = append(gs, p)
	}
	return o.factory.BuildGeometry(gs), nil
}

// extract decomposes an operand into labeled segment strings and point coordinates. Polygon boundaries carry their interior on the left by orienting shells counter clockwise and holes clockwise.
func (o *overlayComputer) extract(g Geometry, operand int) error {
	switch v := g.(type) {
	case *Point:
		o.points = append(o.points, o.snapped(v.Coordinate))
		o.pointNode[operand][o.key(v.Coordinate)] = true
	case *LineString:
		pts := o.snappedSeq(v.Points)
		if len(pts) < 2 {
			return nil // collapsed by precision reduction
		}
		if !pts.Closed() {
			o.lineEnds[operand][xy{pts[0].X, pts[0].Y}]++
			o.lineEnds[operand][xy{pts[len(pts)-1].X, pts[len(pts)-1].Y}]++
		}
		o.segs = append(o.segs, NewSegmentString(pts, edgeInfo{operand, LocInterior, LocNone, LocNone}))
	case *Polygon:
		if err := o.extractRing(v.Shell, operand, true); err != nil {
			return err
		}
		for _, hole := range v.Holes {
			if err := o.extractRing(hole, operand, false); err != nil {
				return err
			}
		}
	case *MultiPoint:
		for _, pt := range v.Points {
			if err := o.extract(pt, operand); err != nil {
				return err
			}
		}
	case *MultiLineString:
		for _, l := range v.Lines {
			if err := o.extract(l, operand); err != nil {
				return err
			}
		}
	case *MultiPolygon:
		for _, p := range v.Polygons {
			if err := o.extract(p, operand); err != nil {
				return err
			}
		}
	case *GeometryCollection:
		for _, gi := range v.Geometries {
			if err := o.extract(gi, operand); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *overlayComputer) extractRing(ring CoordinateSequence, operand int, shell bool) error {
	pts := o.snappedSeq(ring)
	if !pts.Closed() && 1 < len(pts) {
		pts = append(pts, pts[0])
	}
	if len(pts) < 4 {
		if o.snap != nil {
			return nil // ring collapsed on the precision grid
		}
		return ErrInvalidRing
	}
	// orient so the polygon interior is on the left; the signed-area variant keeps this deterministic for bow-tie rings
	if IsCCWArea(pts) != shell {
		pts = pts.Reversed()
	}
	o.segs = append(o.segs, NewSegmentString(pts, edgeInfo{operand, LocBoundary, LocInterior, LocExterior}))
	return nil
}

func (o *overlayComputer) snapped(c Coordinate) Coordinate {
	if o.snap != nil {
		return o.snap(c)
	}
	return c
}

func (o *overlayComputer) snappedSeq(pts CoordinateSequence) CoordinateSequence {
	if o.snap == nil {
		return pts.RemoveRepeated()
	}
	out := make(CoordinateSequence, len(pts))
	for i, c := range pts {
		out[i] = o.snap(c)
	}
	return out.RemoveRepeated()
}

func (o *overlayComputer) key(c Coordinate) xy {
	c = o.snapped(c)
	return xy{c.X, c.Y}
}

// completeLabels fills in each edge's unknown locations with one point-location query per edge, anchored at the representative midpoint of its first segment.
func (o *overlayComputer) completeLabels() {
	var locator PointLocator
	for ei := range o.g.edges {
		e := &o.g.edges[ei]
		for i := 0; i < 2; i++ {
			if e.label.On(i) != LocNone {
				continue
			}
			rep := e.pts[0].midpoint(e.pts[1])
			loc := locator.Locate(rep, o.ops[i])
			if o.ops[i].Dimension() == 2 {
				e.label.SetAll(i, loc)
			} else {
				e.label.SetOn(i, loc)
			}
		}
	}
}

// labelNodes determines each node's on-location for both operands: boundary by the mod-2 rule for line endpoints, boundary or interior from incident edges, or a point-location query for isolated nodes.
func (o *overlayComputer) labelNodes() {
	var locator PointLocator
	for ni := range o.g.nodes {
		n := &o.g.nodes[ni]
		key := xy{n.coord.X, n.coord.Y}
		for i := 0; i < 2; i++ {
			ends := o.lineEnds[i][key]
			hasBoundary, hasInterior := false, false
			for _, di := range n.star {
				switch o.g.dirs[di].label.On(i) {
				case LocBoundary:
					hasBoundary = true
				case LocInterior:
					hasInterior = true
				}
			}
			switch {
			case ends%2 == 1:
				n.label.SetOn(i, LocBoundary)
			case hasBoundary:
				n.label.SetOn(i, LocBoundary)
			case 0 < ends || hasInterior || o.pointNode[i][key]:
				n.label.SetOn(i, LocInterior)
			default:
				n.label.SetOn(i, locator.Locate(n.coord, o.ops[i]))
			}
		}
	}
}

// findResultAreaEdges marks the directed edges bounding the result area: those whose left side is in the result and whose right side is not, so every result ring has its interior on the left.
func (o *overlayComputer) findResultAreaEdges() {
	for di := range o.g.dirs {
		label := o.g.dirs[di].label
		if !label.IsArea(0) && !label.IsArea(1) {
			continue
		}
		leftIn := isResultOfOp(label.Left(0), label.Left(1), o.op)
		rightIn := isResultOfOp(label.Right(0), label.Right(1), o.op)
		o.g.dirs[di].inResult = leftIn && !rightIn
	}
}

////////////////////////////////////////////////////////////////

type resultRing struct {
	pts  CoordinateSequence
	area float64
}

// buildPolygons walks the in-result directed edges into rings, classifies them as shells or holes by orientation, and nests each hole in its minimal enclosing shell.
func (o *overlayComputer) buildPolygons() ([]*Polygon, error) {
	var shells []*resultRing
	var holes []*resultRing
	for di := range o.g.dirs {
		if !o.g.dirs[di].inResult || o.g.dirs[di].visited {
			continue
		}
		pts, err := o.walkRing(di)
		if err != nil {
			return nil, err
		}
		if len(pts) < 4 {
			continue // collapsed sliver
		}
		r := &resultRing{pts, signedArea(pts)}
		if 0.0 < r.area {
			shells = append(shells, r)
		} else {
			holes = append(holes, r)
		}
	}

	polys := make([]*Polygon, len(shells))
	for i, shell := range shells {
		polys[i] = &Polygon{Shell: shell.pts}
	}
	for _, hole := range holes {
		best := -1
		for i, shell := range shells {
			if !shell.pts.Envelope().CoversEnvelope(hole.pts.Envelope()) {
				continue
			}
			if !ringContainsRing(shell.pts, hole.pts) {
				continue
			}
			if best == -1 || math.Abs(shells[i].area) < math.Abs(shells[best].area) {
				best = i
			}
		}
		if best == -1 {
			return nil, &TopologyError{"hole is not contained in any shell", hole.pts[0]}
		}
		polys[best].Holes = append(polys[best].Holes, hole.pts)
	}
	return polys, nil
}

// walkRing traverses in-result directed edges from start, at each node taking the next outgoing in-result edge clockwise from the symmetric of the edge just traversed, until the ring closes.
func (o *overlayComputer) walkRing(start int) (CoordinateSequence, error) {
	pts := CoordinateSequence{}
	for cur := start; ; {
		o.g.dirs[cur].visited = true
		o.g.edges[o.g.dirs[cur].edge].visited = true
		chain := o.g.chainCoords(cur)
		if 0 < len(pts) {
			chain = chain[1:]
		}
		pts = append(pts, chain...)

		next := o.g.nextResultEdge(cur)
		if next == -1 {
			return nil, &TopologyError{"no outgoing result edge found", o.g.nodes[o.g.dirs[cur].dest].coord}
		}
		if next == start {
			break
		}
		if o.g.dirs[next].visited {
			return nil, &TopologyError{"result edge visited twice", o.g.nodes[o.g.dirs[next].origin].coord}
		}
		cur = next
	}
	if !pts.Closed() {
		pts = append(pts, pts[0])
	}
	return pts, nil
}

// ringContainsRing returns true if the hole ring lies inside the shell ring, allowing boundary contact.
func ringContainsRing(shell, hole CoordinateSequence) bool {
	for _, c := range hole {
		switch LocateInRing(c, shell) {
		case LocInterior:
			return true
		case LocExterior:
			return false
		}
	}
	return true // all vertices on the shell boundary
}

// buildLines collects the in-result edges not already consumed as an area boundary and not covered by a result polygon.
func (o *overlayComputer) buildLines(polys []*Polygon) []*LineString {
	var lines []*LineString
	for ei := range o.g.edges {
		e := &o.g.edges[ei]
		if e.visited || !isResultOfOp(e.label.On(0), e.label.On(1), o.op) {
			continue
		}
		rep := e.pts[0].midpoint(e.pts[1])
		if coveredByPolygons(rep, polys) {
			continue
		}
		e.visited = true
		e.inResult = true
		lines = append(lines, &LineString{e.pts.Clone()})
	}
	return lines
}

// buildPoints collects the in-result nodes that are not on any result edge and not covered by the result's areas or lines.
func (o *overlayComputer) buildPoints(polys []*Polygon, lines []*LineString) []*Point {
	var points []*Point
	for ni := range o.g.nodes {
		n := &o.g.nodes[ni]
		onResultEdge := false
		for _, di := range n.star {
			if o.g.edges[o.g.dirs[di].edge].visited {
				onResultEdge = true
				break
			}
		}
		if onResultEdge || !isResultOfOp(n.label.On(0), n.label.On(1), o.op) {
			continue
		}
		if coveredByPolygons(n.coord, polys) || coveredByLines(n.coord, lines) {
			continue
		}
		points = append(points, &Point{n.coord})
	}
	return points
}

func coveredByPolygons(c Coordinate, polys []*Polygon) bool {
	for _, p := range polys {
		if locateInPolygon(c, p) != LocExterior {
			return true
		}
	}
	return false
}

func coveredByLines(c Coordinate, lines []*LineString) bool {
	for _, l := range lines {
		for i := 1; i < len(l.Points); i++ {
			if pointOnSegment(c, l.Points[i-1], l.Points[i]) {
				return true
			}
		}
	}
	return false
}
