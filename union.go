package geom

import (
	"errors"
	"math"
)

// UnionStrategy computes the union of two geometries. It abstracts the precision model of a cascaded union.
type UnionStrategy interface {
	Union(a, b Geometry) (Geometry, error)
}

// FloatingUnion unions at full floating precision and falls back to a fixed precision grid when the floating overlay cannot produce a consistent result for polygonal inputs.
type FloatingUnion struct{}

func (FloatingUnion) Union(a, b Geometry) (Geometry, error) {
	res, err := Overlay(a, b, OpUnion)
	if err == nil {
		return res, nil
	}
	var terr *TopologyError
	if errors.As(err, &terr) && a.Dimension() == 2 && b.Dimension() == 2 {
		return OverlayFixed(a, b, OpUnion, safeScale(a, b))
	}
	return nil, err
}

// FixedUnion unions on a fixed precision grid. A zero Scale selects the largest scale that is safe for the inputs' magnitude.
type FixedUnion struct {
	Scale float64
}

func (u FixedUnion) Union(a, b Geometry) (Geometry, error) {
	scale := u.Scale
	if scale == 0.0 {
		scale = safeScale(a, b)
	}
	return OverlayFixed(a, b, OpUnion, scale)
}

// maxSafeDigits is the number of decimal digits a float64 overlay can carry robustly.
const maxSafeDigits = 14

// safeScale returns the largest power-of-ten grid scale that keeps the inputs' coordinates within the robustly representable number of digits.
func safeScale(gs ...Geometry) float64 {
	mag := 0.0
	for _, g := range gs {
		if g == nil || g.Empty() {
			continue
		}
		env := g.Envelope()
		for _, v := range []float64{env.MinX, env.MinY, env.MaxX, env.MaxY} {
			if mag < math.Abs(v) {
				mag = math.Abs(v)
			}
		}
	}
	digits := maxSafeDigits
	if 1.0 < mag {
		digits -= int(math.Ceil(math.Log10(mag)))
	}
	if digits < 0 {
		digits = 0
	}
	return math.Pow(10.0, float64(digits))
}

////////////////////////////////////////////////////////////////

// CascadedUnion unions many geometries by combining spatially adjacent ones first, which keeps intermediate results small and is far faster than folding a flat list. Add all inputs, then call Union once.
type CascadedUnion struct {
	tree     *STRTree
	strategy UnionStrategy
	done     bool
}

// NewCascadedUnion returns a cascaded union using the given strategy, or FloatingUnion if strategy is nil.
func NewCascadedUnion(strategy UnionStrategy) *CascadedUnion {
	if strategy == nil {
		strategy = FloatingUnion{}
	}
	return &CascadedUnion{tree: NewSTRTree(), strategy: strategy}
}

func (u *CascadedUnion) Add(g Geometry) {
	if u.done {
		panic("bug: cascaded union already computed")
	}
	if g == nil || g.Empty() {
		return
	}
	u.tree.Insert(g.Envelope(), g)
}

// Union computes the union of all added geometries. It consumes the builder; calling it twice panics.
func (u *CascadedUnion) Union() (Geometry, error) {
	if u.done {
		panic("bug: cascaded union already computed")
	}
	u.done = true
	items := u.tree.ItemsTree()
	if items == nil {
		return &GeometryCollection{}, nil
	}
	return u.unionTree(items)
}

// unionTree reduces the nested item groups bottom-up, so geometries packed together in the tree are combined before distant ones.
func (u *CascadedUnion) unionTree(items []interface{}) (Geometry, error) {
	gs := make([]Geometry, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case []interface{}:
			g, err := u.unionTree(v)
			if err != nil {
				return nil, err
			}
			gs[i] = g
		case Geometry:
			gs[i] = v
		}
	}
	return u.binaryUnion(gs, 0, len(gs))
}

// binaryUnion unions gs[lo:hi] with a balanced split, keeping the operand trees of similar size.
func (u *CascadedUnion) binaryUnion(gs []Geometry, lo, hi int) (Geometry, error) {
	if hi-lo == 1 {
		return gs[lo], nil
	} else if hi-lo == 2 {
		return u.strategy.Union(gs[lo], gs[lo+1])
	}
	mid := (lo + hi) / 2
	left, err := u.binaryUnion(gs, lo, mid)
	if err != nil {
		return nil, err
	}
	right, err := u.binaryUnion(gs, mid, hi)
	if err != nil {
		return nil, err
	}
	return u.strategy.Union(left, right)
}

// UnionAll unions all given geometries with a cascaded union at floating precision.
func UnionAll(gs ...Geometry) (Geometry, error) {
	u := NewCascadedUnion(nil)
	for _, g := range gs {
		u.Add(g)
	}
	return u.Union()
}
