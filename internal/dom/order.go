package dom

import "github.com/dshills/selengine/internal/engine/boundary"

// PositionCache memoizes each node's index path from its root.
// The cache empties itself when the document generation moves on.
type PositionCache struct {
	doc        *Document
	generation int64
	paths      map[*Node]nodePath
	lookups    int
}

type nodePath struct {
	root    *Node
	indices []uint32
}

// NewPositionCache creates an empty cache for d.
func NewPositionCache(d *Document) *PositionCache {
	return &PositionCache{
		doc:        d,
		generation: d.generation,
		paths:      make(map[*Node]nodePath),
	}
}

// Reset implements boundary.Cache.
func (c *PositionCache) Reset() {
	clear(c.paths)
	c.generation = c.doc.generation
}

// Lookups returns how many paths were computed rather than served from cache.
func (c *PositionCache) Lookups() int {
	return c.lookups
}

func (c *PositionCache) path(n *Node) nodePath {
	if c.generation != c.doc.generation {
		c.Reset()
	}
	if p, ok := c.paths[n]; ok {
		return p
	}
	p := computePath(n)
	c.lookups++
	c.paths[n] = p
	return p
}

func computePath(n *Node) nodePath {
	var rev []uint32
	cur := n
	for cur.parent != nil {
		rev = append(rev, uint32(cur.Index()))
		cur = cur.parent
	}
	indices := make([]uint32, len(rev))
	for i, v := range rev {
		indices[len(rev)-1-i] = v
	}
	return nodePath{root: cur, indices: indices}
}

// ComputeOrder implements boundary.Tree.
//
// A boundary point maps to the index path of its container followed by its
// offset. Paths compare element by element and a path that is a prefix of
// another sorts first, which yields the document order of boundary points.
func (d *Document) ComputeOrder(a, b boundary.Point, cache boundary.Cache) boundary.Order {
	na, okA := a.Container.(*Node)
	nb, okB := b.Container.(*Node)
	if !okA || !okB || na.doc != d || nb.doc != d {
		return boundary.Incomparable
	}
	if na == nb {
		return compareOffsets(a.Offset, b.Offset)
	}

	pc, _ := cache.(*PositionCache)
	var pa, pb nodePath
	if pc != nil && pc.doc == d {
		pa, pb = pc.path(na), pc.path(nb)
	} else {
		pa, pb = computePath(na), computePath(nb)
	}
	if pa.root != pb.root {
		return boundary.Incomparable
	}

	ka := append(pa.indices[:len(pa.indices):len(pa.indices)], a.Offset)
	kb := append(pb.indices[:len(pb.indices):len(pb.indices)], b.Offset)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if o := compareOffsets(ka[i], kb[i]); o != boundary.Equal {
			return o
		}
	}
	return compareOffsets(uint32(len(ka)), uint32(len(kb)))
}

func compareOffsets(a, b uint32) boundary.Order {
	switch {
	case a < b:
		return boundary.Before
	case a > b:
		return boundary.After
	default:
		return boundary.Equal
	}
}
