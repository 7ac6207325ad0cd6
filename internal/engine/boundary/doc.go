// Package boundary provides boundary points, ranges and tree-order comparison.
//
// A boundary point addresses a position inside a container node: between two
// children of an element, or between two characters of a text node. Ranges are
// ordered pairs of boundary points.
//
// Comparison Model:
//
// Boundary points are compared through a Tree, the tree-position service that
// owns the nodes. Two points rooted in different trees cannot be ordered; the
// comparison result is then Incomparable, a genuine third outcome that callers
// must handle explicitly:
//
//	cmp := boundary.NewComparator(tree)
//	switch cmp.Compare(a, b) {
//	case boundary.Before, boundary.Equal:
//		// a is not after b
//	case boundary.After:
//		// a is after b
//	case boundary.Incomparable:
//		// a and b live in disconnected trees
//	}
//
// Searches that need a total order use Comparator.Sign, which orders
// disconnected content after everything else.
//
// Cross-Boundary Mode:
//
// A Range may carry an alternate pair of endpoints (Cross) that are used
// instead of Start and End when the Comparator runs in cross-boundary mode.
// The mode belongs to the comparator, not to the range.
package boundary
