package boundary

// Tree is the tree-position service that owns the nodes boundary points
// refer to.
type Tree interface {
	// ComputeOrder returns the tree order of a relative to b.
	// The cache may be nil.
	ComputeOrder(a, b Point, cache Cache) Order

	// NewCache returns a position cache for one burst of comparisons.
	NewCache() Cache

	// Generation returns a counter bumped on every structural mutation.
	Generation() int64

	// IsValid returns true if p addresses a live position in this tree.
	IsValid(p Point) bool
}

// Remap maps a live boundary point from before a tree mutation to after it.
type Remap func(Point) Point

// Observable is implemented by trees that keep live boundary points in place
// across mutations. Ranges in trees that are not Observable never move.
type Observable interface {
	// Observe calls fn after every mutation with the remapping for live
	// points. The returned function stops the observation.
	Observe(fn func(Remap)) (cancel func())
}

// Apply returns r with its live endpoints passed through m.
// Pinned ranges are returned unchanged.
func (m Remap) Apply(r Range) Range {
	if r.Pinned {
		return r
	}
	r.Start, r.End = m(r.Start), m(r.End)
	if r.Cross != nil {
		r.Cross = &Span{Start: m(r.Cross.Start), End: m(r.Cross.End)}
	}
	return r
}

// Cache amortizes repeated position lookups within one query burst.
type Cache interface {
	// Reset drops every cached lookup.
	Reset()
}

// Comparator compares boundary points and ranges through a Tree.
type Comparator struct {
	Tree          Tree
	CrossBoundary bool
	Cache         Cache
}

// NewComparator creates a comparator without a cache in ordinary mode.
func NewComparator(tree Tree) *Comparator {
	return &Comparator{Tree: tree}
}

// Compare returns the order of a relative to b.
func (c *Comparator) Compare(a, b Point) Order {
	if a.Equal(b) {
		return Equal
	}
	return c.Tree.ComputeOrder(a, b, c.Cache)
}

// ToRangeStart returns the order of p relative to the start of r.
func (c *Comparator) ToRangeStart(p Point, r Range) Order {
	start, _ := r.Bounds(c.CrossBoundary)
	return c.Compare(p, start)
}

// ToRangeEnd returns the order of p relative to the end of r.
func (c *Comparator) ToRangeEnd(p Point, r Range) Order {
	_, end := r.Bounds(c.CrossBoundary)
	return c.Compare(p, end)
}

// Start returns the start point of r in the comparator's mode.
func (c *Comparator) Start(r Range) Point {
	start, _ := r.Bounds(c.CrossBoundary)
	return start
}

// End returns the end point of r in the comparator's mode.
func (c *Comparator) End(r Range) Point {
	_, end := r.Bounds(c.CrossBoundary)
	return end
}

// Sign maps an order onto -1, 0 or +1 for searching and sorting.
// Incomparable maps to +1: disconnected content is ordered after.
func Sign(o Order) int {
	switch o {
	case Before:
		return -1
	case Equal:
		return 0
	default:
		return 1
	}
}

// SameRoot returns true if a and b can be ordered against each other.
func (c *Comparator) SameRoot(a, b Point) bool {
	return c.Compare(a, b).Comparable()
}

// RangeValid reports whether r can live in an ordered set.
// Ranges that are not pinned follow tree mutations and are always valid.
func (c *Comparator) RangeValid(r Range) bool {
	if !r.Pinned {
		return true
	}
	if !c.Tree.IsValid(r.Start) || !c.Tree.IsValid(r.End) {
		return false
	}
	return c.Compare(r.Start, r.End).NotAfter()
}
