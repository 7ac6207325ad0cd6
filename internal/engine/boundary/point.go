package boundary

import "fmt"

// Node is a container a boundary point can address.
type Node interface {
	// Length returns the number of child positions minus one: the child count
	// for element nodes, the character count for text nodes.
	Length() uint32
}

// Point is a position inside a container node.
// Point is an immutable value type.
type Point struct {
	Container Node
	Offset    uint32
}

// At creates a point in the given container.
func At(container Node, offset uint32) Point {
	return Point{Container: container, Offset: offset}
}

// IsSet returns true if the point has a container.
func (p Point) IsSet() bool {
	return p.Container != nil
}

// Equal returns true if both points have the same container and offset.
func (p Point) Equal(other Point) bool {
	return p.Container == other.Container && p.Offset == other.Offset
}

// Validate returns ErrInvalidArgument if the point is unset or its offset is
// past the end of its container.
func (p Point) Validate() error {
	if p.Container == nil {
		return fmt.Errorf("boundary point has no container: %w", ErrInvalidArgument)
	}
	if n := p.Container.Length(); p.Offset > n {
		return fmt.Errorf("offset %d exceeds container length %d: %w", p.Offset, n, ErrInvalidArgument)
	}
	return nil
}

// String returns a string representation of the point.
func (p Point) String() string {
	if p.Container == nil {
		return "<unset>"
	}
	if s, ok := p.Container.(fmt.Stringer); ok {
		return fmt.Sprintf("%s:%d", s.String(), p.Offset)
	}
	return fmt.Sprintf("%p:%d", p.Container, p.Offset)
}
