package geom

import (
	"fmt"
	"math"
	"strconv"
)

const epsilon = 1e-10

// Equal returns true if a and b are equal within an absolute tolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func ftos(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

////////////////////////////////////////////////////////////////

// Coordinate is a position on the plane with optional elevation and measure values. Equality between coordinates is 2D; Z and M tag along but never influence the kernel's predicates.
type Coordinate struct {
	X, Y, Z, M float64
}

// Coord returns a 2D coordinate.
func Coord(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Equals returns true if both coordinates have the same X and Y.
func (c Coordinate) Equals(a Coordinate) bool {
	return c.X == a.X && c.Y == a.Y
}

// EqualsTol returns true if both coordinates are within distance tol of each other.
func (c Coordinate) EqualsTol(a Coordinate, tol float64) bool {
	return c.Distance(a) <= tol
}

func (c Coordinate) Distance(a Coordinate) float64 {
	return math.Hypot(c.X-a.X, c.Y-a.Y)
}

// Compare orders coordinates by X and then by Y.
func (c Coordinate) Compare(a Coordinate) int {
	if c.X < a.X {
		return -1
	} else if a.X < c.X {
		return 1
	} else if c.Y < a.Y {
		return -1
	} else if a.Y < c.Y {
		return 1
	}
	return 0
}

func (c Coordinate) String() string {
	return "(" + ftos(c.X) + "," + ftos(c.Y) + ")"
}

// midpoint between c and a, used as the representative point of an edge segment.
func (c Coordinate) midpoint(a Coordinate) Coordinate {
	return Coord(0.5*(c.X+a.X), 0.5*(c.Y+a.Y))
}

////////////////////////////////////////////////////////////////

// CoordinateSequence is an ordered list of coordinates. A sequence is owned by exactly one geometry or segment chain at a time; Clone before sharing.
type CoordinateSequence []Coordinate

func (seq CoordinateSequence) Clone() CoordinateSequence {
	pts := make(CoordinateSequence, len(seq))
	copy(pts, seq)
	return pts
}

func (seq CoordinateSequence) Reversed() CoordinateSequence {
	pts := make(CoordinateSequence, len(seq))
	for i, c := range seq {
		pts[len(seq)-1-i] = c
	}
	return pts
}

// Closed returns true if the first and last coordinates are 2D-equal.
func (seq CoordinateSequence) Closed() bool {
	return 2 < len(seq) && seq[0].Equals(seq[len(seq)-1])
}

// RemoveRepeated drops consecutive 2D-equal coordinates.
func (seq CoordinateSequence) RemoveRepeated() CoordinateSequence {
	if len(seq) == 0 {
		return seq
	}
	pts := CoordinateSequence{seq[0]}
	for _, c := range seq[1:] {
		if !c.Equals(pts[len(pts)-1]) {
			pts = append(pts, c)
		}
	}
	return pts
}

func (seq CoordinateSequence) Envelope() Envelope {
	env := NewEnvelope()
	for _, c := range seq {
		env.ExpandToInclude(c)
	}
	return env
}

// Compare orders sequences coordinate by coordinate, shorter sequences first on ties.
func (seq CoordinateSequence) Compare(a CoordinateSequence) int {
	n := len(seq)
	if len(a) < n {
		n = len(a)
	}
	for i := 0; i < n; i++ {
		if cmp := seq[i].Compare(a[i]); cmp != 0 {
			return cmp
		}
	}
	if len(seq) < len(a) {
		return -1
	} else if len(a) < len(seq) {
		return 1
	}
	return 0
}

func (seq CoordinateSequence) String() string {
	s := ""
	for i, c := range seq {
		if i != 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}

////////////////////////////////////////////////////////////////

// Envelope is an axis-aligned bounding box. The zero box around no points is the null envelope, for which MaxX < MinX.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewEnvelope returns the null envelope.
func NewEnvelope() Envelope {
	return Envelope{0.0, 0.0, -1.0, -1.0}
}

func EnvelopeOf(cs ...Coordinate) Envelope {
	env := NewEnvelope()
	for _, c := range cs {
		env.ExpandToInclude(c)
	}
	return env
}

func (e Envelope) Null() bool {
	return e.MaxX < e.MinX
}

func (e *Envelope) ExpandToInclude(c Coordinate) {
	if e.Null() {
		e.MinX, e.MinY, e.MaxX, e.MaxY = c.X, c.Y, c.X, c.Y
		return
	}
	e.MinX = math.Min(e.MinX, c.X)
	e.MinY = math.Min(e.MinY, c.Y)
	e.MaxX = math.Max(e.MaxX, c.X)
	e.MaxY = math.Max(e.MaxY, c.Y)
}

func (e *Envelope) ExpandToIncludeEnvelope(a Envelope) {
	if a.Null() {
		return
	}
	e.ExpandToInclude(Coord(a.MinX, a.MinY))
	e.ExpandToInclude(Coord(a.MaxX, a.MaxY))
}

func (e *Envelope) ExpandBy(d float64) {
	if e.Null() {
		return
	}
	e.MinX -= d
	e.MinY -= d
	e.MaxX += d
	e.MaxY += d
}

func (e Envelope) Width() float64 {
	if e.Null() {
		return 0.0
	}
	return e.MaxX - e.MinX
}

func (e Envelope) Height() float64 {
	if e.Null() {
		return 0.0
	}
	return e.MaxY - e.MinY
}

// Diameter returns the length of the envelope's diagonal.
func (e Envelope) Diameter() float64 {
	return math.Hypot(e.Width(), e.Height())
}

func (e Envelope) Area() float64 {
	return e.Width() * e.Height()
}

func (e Envelope) Intersects(a Envelope) bool {
	if e.Null() || a.Null() {
		return false
	}
	return a.MinX <= e.MaxX && e.MinX <= a.MaxX && a.MinY <= e.MaxY && e.MinY <= a.MaxY
}

func (e Envelope) Covers(c Coordinate) bool {
	if e.Null() {
		return false
	}
	return e.MinX <= c.X && c.X <= e.MaxX && e.MinY <= c.Y && c.Y <= e.MaxY
}

func (e Envelope) CoversEnvelope(a Envelope) bool {
	if e.Null() || a.Null() {
		return false
	}
	return e.MinX <= a.MinX && a.MaxX <= e.MaxX && e.MinY <= a.MinY && a.MaxY <= e.MaxY
}

// Distance returns the distance between the closest points of two envelopes, or 0 if they intersect.
func (e Envelope) Distance(a Envelope) float64 {
	if e.Intersects(a) {
		return 0.0
	}
	dx := 0.0
	if e.MaxX < a.MinX {
		dx = a.MinX - e.MaxX
	} else if a.MaxX < e.MinX {
		dx = e.MinX - a.MaxX
	}
	dy := 0.0
	if e.MaxY < a.MinY {
		dy = a.MinY - e.MaxY
	} else if a.MaxY < e.MinY {
		dy = e.MinY - a.MaxY
	}
	return math.Hypot(dx, dy)
}

func (e Envelope) Centre() Coordinate {
	return Coord(0.5*(e.MinX+e.MaxX), 0.5*(e.MinY+e.MaxY))
}

func (e Envelope) String() string {
	if e.Null() {
		return "[null]"
	}
	return fmt.Sprintf("[%g; %g]--[%g; %g]", e.MinX, e.MinY, e.MaxX, e.MaxY)
}
