package extend

import "github.com/dshills/selengine/internal/engine/boundary"

// Direction records which end of the primary range is the anchor.
type Direction uint8

const (
	// Forward means the anchor is the start and the focus is the end.
	Forward Direction = iota
	// Backward means the focus is the start and the anchor is the end.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Case is the ordering of anchor (A), old focus (F) and new focus (N).
type Case uint8

const (
	// CaseDisconnected means some pair of points is incomparable.
	CaseDisconnected Case = iota
	// CaseAFN is A <= F <= N: the selection grows past F.
	CaseAFN
	// CaseANF is A <= N < F: the selection shrinks back toward A.
	CaseANF
	// CaseNAF is N < A <= F: the focus jumps over the anchor backwards.
	CaseNAF
	// CaseFAN is F < A < N: the focus jumps over the anchor forwards.
	CaseFAN
	// CaseFNA is F <= N <= A: the selection shrinks back toward A.
	CaseFNA
	// CaseNFA is N < F < A: the selection grows past F.
	CaseNFA
)

var caseNames = [...]string{
	CaseDisconnected: "disconnected",
	CaseAFN:          "A-F-N",
	CaseANF:          "A-N-F",
	CaseNAF:          "N-A-F",
	CaseFAN:          "F-A-N",
	CaseFNA:          "F-N-A",
	CaseNFA:          "N-F-A",
}

// String returns the ordering as a string.
func (c Case) String() string {
	if int(c) < len(caseNames) {
		return caseNames[c]
	}
	return "unknown"
}

// Result describes the outcome of moving the focus.
type Result struct {
	Case Case

	// Range is the new primary range. It always spans A and N.
	Range boundary.Range

	// Delta is the region whose selected state changed. When DeltaSelected
	// is true it became selected, otherwise it was deselected.
	Delta         boundary.Range
	DeltaSelected bool

	// Direction is the direction after the move.
	Direction Direction

	// Fallback is true when the points could not be ordered and the range
	// was collapsed to N instead.
	Fallback bool
}

// Classify computes the effect of moving the focus from focus to next while
// anchor stays fixed. dir is the current direction; it is kept when next
// coincides with anchor.
func Classify(cmp *boundary.Comparator, anchor, focus, next boundary.Point, dir Direction) Result {
	af := cmp.Compare(anchor, focus)
	fn := cmp.Compare(focus, next)
	an := cmp.Compare(anchor, next)

	if !af.Comparable() || !fn.Comparable() || !an.Comparable() {
		return Result{
			Case:      CaseDisconnected,
			Range:     boundary.Collapse(next),
			Direction: dir,
			Fallback:  true,
		}
	}

	res := Result{Direction: dir}
	switch an {
	case boundary.Before:
		res.Direction = Forward
		res.Range = span(anchor, next)
	case boundary.After:
		res.Direction = Backward
		res.Range = span(next, anchor)
	default:
		res.Range = boundary.Collapse(anchor)
	}

	if af.NotAfter() {
		switch {
		case fn.NotAfter():
			res.Case = CaseAFN
			res.Delta, res.DeltaSelected = span(focus, next), true
		case an.NotAfter():
			res.Case = CaseANF
			res.Delta = span(next, focus)
		default:
			res.Case = CaseNAF
			res.Delta = span(anchor, focus)
		}
		return res
	}

	switch {
	case an == boundary.Before:
		res.Case = CaseFAN
		res.Delta = span(focus, anchor)
	case fn.NotAfter():
		res.Case = CaseFNA
		res.Delta = span(focus, next)
	default:
		res.Case = CaseNFA
		res.Delta, res.DeltaSelected = span(next, focus), true
	}
	return res
}

func span(start, end boundary.Point) boundary.Range {
	return boundary.Range{Start: start, End: end}
}
