package boundary

// Order is the result of comparing two boundary points in tree order.
// The zero value is Incomparable.
type Order uint8

const (
	// Incomparable means the two points are not rooted in the same tree.
	Incomparable Order = iota
	// Before means the first point precedes the second.
	Before
	// Equal means both points address the same position.
	Equal
	// After means the first point follows the second.
	After
)

// String returns a string representation of the order.
func (o Order) String() string {
	switch o {
	case Before:
		return "before"
	case Equal:
		return "equal"
	case After:
		return "after"
	default:
		return "incomparable"
	}
}

// Comparable returns true unless the order is Incomparable.
func (o Order) Comparable() bool {
	return o != Incomparable
}

// Reverse returns the order seen from the other operand.
func (o Order) Reverse() Order {
	switch o {
	case Before:
		return After
	case After:
		return Before
	default:
		return o
	}
}

// NotAfter returns true if the order is Before or Equal.
func (o Order) NotAfter() bool {
	return o == Before || o == Equal
}

// NotBefore returns true if the order is After or Equal.
func (o Order) NotBefore() bool {
	return o == After || o == Equal
}
