package geom

import (
	"math"
	"sort"
)

// STRTree is a query-only rectangle tree built with the sort-tile-recursive bulk loading algorithm. Items are inserted up front; the first query freezes the tree.
type STRTree struct {
	capacity int
	items    []*strNode
	root     *strNode
	built    bool
}

type strNode struct {
	env  Envelope
	item interface{} // non-nil for leaf entries
	kids []*strNode
}

// NewSTRTree returns a tree with the default node capacity of 4.
func NewSTRTree() *STRTree {
	return &STRTree{capacity: 4}
}

func (t *STRTree) Insert(env Envelope, item interface{}) {
	if t.built {
		panic("bug: cannot insert into built STR tree")
	}
	t.items = append(t.items, &strNode{env: env, item: item})
}

func (t *STRTree) Build() {
	if t.built {
		return
	}
	t.built = true
	if len(t.items) == 0 {
		return
	}
	level := t.items
	for 1 < len(level) {
		level = t.packLevel(level)
	}
	t.root = level[0]
}

// packLevel groups nodes into parents of at most capacity children using vertical slices of horizontally sorted nodes.
func (t *STRTree) packLevel(nodes []*strNode) []*strNode {
	sorted := make([]*strNode, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].env.Centre().X < sorted[j].env.Centre().X
	})

	nodeCount := int(math.Ceil(float64(len(sorted)) / float64(t.capacity)))
	sliceCount := int(math.Ceil(math.Sqrt(float64(nodeCount))))
	sliceSize := int(math.Ceil(float64(len(sorted)) / float64(sliceCount)))

	var parents []*strNode
	for i := 0; i < len(sorted); i += sliceSize {
		j := i + sliceSize
		if len(sorted) < j {
			j = len(sorted)
		}
		slice := sorted[i:j]
		sort.SliceStable(slice, func(a, b int) bool {
			return slice[a].env.Centre().Y < slice[b].env.Centre().Y
		})
		for k := 0; k < len(slice); k += t.capacity {
			m := k + t.capacity
			if len(slice) < m {
				m = len(slice)
			}
			parent := &strNode{env: NewEnvelope()}
			for _, child := range slice[k:m] {
				parent.kids = append(parent.kids, child)
				parent.env.ExpandToIncludeEnvelope(child.env)
			}
			parents = append(parents, parent)
		}
	}
	return parents
}

// Query visits every item whose envelope intersects env.
func (t *STRTree) Query(env Envelope, visit func(item interface{})) {
	t.Build()
	if t.root == nil {
		return
	}
	t.query(t.root, env, visit)
}

func (t *STRTree) query(n *strNode, env Envelope, visit func(item interface{})) {
	if !n.env.Intersects(env) {
		return
	}
	if n.item != nil {
		visit(n.item)
		return
	}
	for _, kid := range n.kids {
		t.query(kid, env, visit)
	}
}

// ItemsTree returns the tree as nested slices: elements are either items or nested []interface{} groups. The grouping mirrors the spatial packing, which cascaded union exploits to combine nearby geometries first.
func (t *STRTree) ItemsTree() []interface{} {
	t.Build()
	if t.root == nil {
		return nil
	}
	if t.root.item != nil {
		return []interface{}{t.root.item}
	}
	return t.itemsTree(t.root)
}

func (t *STRTree) itemsTree(n *strNode) []interface{} {
	var list []interface{}
	for _, kid := range n.kids {
		if kid.item != nil {
			list = append(list, kid.item)
		} else {
			list = append(list, t.itemsTree(kid))
		}
	}
	return list
}
