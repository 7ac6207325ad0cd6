package boundary

import "fmt"

// Span is a bare pair of boundary points.
type Span struct {
	Start Point
	End   Point
}

// Range is an ordered pair of boundary points with Start not after End.
type Range struct {
	Start Point
	End   Point

	// Cross holds the endpoints used when comparing in cross-boundary mode.
	// Nil means the ordinary endpoints are used in both modes.
	Cross *Span

	// Pinned ranges are fixed to node identities and do not follow tree
	// mutations, so they can become structurally invalid.
	Pinned bool
}

// Collapse creates a collapsed range at p.
func Collapse(p Point) Range {
	return Range{Start: p, End: p}
}

// NewRange creates a range from start to end.
//
// Both points are validated. A start after end is rejected. Points in
// disconnected trees yield a range collapsed at end, matching the way a
// range collapses when its end is moved into another tree.
func NewRange(tree Tree, start, end Point) (Range, error) {
	if err := start.Validate(); err != nil {
		return Range{}, fmt.Errorf("range start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return Range{}, fmt.Errorf("range end: %w", err)
	}
	switch tree.ComputeOrder(start, end, nil) {
	case After:
		return Range{}, fmt.Errorf("range start %s is after end %s: %w", start, end, ErrInvalidArgument)
	case Incomparable:
		return Collapse(end), nil
	}
	return Range{Start: start, End: end}, nil
}

// Collapsed returns true if the range starts and ends at the same point.
func (r Range) Collapsed() bool {
	return r.Start.Equal(r.End)
}

// Equal returns true if both ranges have identical endpoints.
func (r Range) Equal(other Range) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// Bounds returns the endpoints to compare against in the given mode.
func (r Range) Bounds(crossBoundary bool) (start, end Point) {
	if crossBoundary && r.Cross != nil {
		return r.Cross.Start, r.Cross.End
	}
	return r.Start, r.End
}

// WithBounds returns a copy of r with new endpoints and no cross-boundary pair.
func (r Range) WithBounds(start, end Point) Range {
	return Range{Start: start, End: end, Pinned: r.Pinned}
}

// String returns a string representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.Start, r.End)
}
