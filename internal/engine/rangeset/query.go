package rangeset

import (
	"fmt"
	"sort"

	"github.com/dshills/selengine/internal/engine/boundary"
)

// PointOrder orders a point against a record.
type PointOrder func(p boundary.Point, rec *Record) boundary.Order

// FindInsertionPoint returns the smallest index i such that p is not after
// records[i] according to order, or len(records) if there is none.
// Incomparable results count as "after".
func FindInsertionPoint(records []*Record, p boundary.Point, order PointOrder) int {
	return sort.Search(len(records), func(i int) bool {
		return boundary.Sign(order(p, records[i])) <= 0
	})
}

func startOrder(cmp *boundary.Comparator) PointOrder {
	return func(p boundary.Point, rec *Record) boundary.Order {
		return cmp.ToRangeStart(p, rec.Range)
	}
}

func endOrder(cmp *boundary.Comparator) PointOrder {
	return func(p boundary.Point, rec *Record) boundary.Order {
		return cmp.ToRangeEnd(p, rec.Range)
	}
}

// Interval is a half-open span of record indices.
type Interval struct {
	Start int
	End   int

	// Found is false when the queried interval lies strictly before or after
	// every record. Start and End then both hold the index the interval
	// would occupy.
	Found bool
}

// Len returns the number of records in the span.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Empty returns true if the span holds no records.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// IndicesForInterval returns the span of records overlapping [begin, end).
//
// With allowAdjacent, records that only touch the interval at one of its
// endpoints are included. Without it, such records are excluded unless they
// are collapsed exactly at the shared point.
func (s *Set) IndicesForInterval(begin, end boundary.Point, allowAdjacent bool) (Interval, error) {
	s.ReorderIfNecessary()
	return s.indicesForInterval(s.Comparator(), begin, end, allowAdjacent)
}

func (s *Set) indicesForInterval(cmp *boundary.Comparator, begin, end boundary.Point, allowAdjacent bool) (Interval, error) {
	n := len(s.records)
	if n == 0 {
		return Interval{}, nil
	}

	endIdx := FindInsertionPoint(s.records, end, startOrder(cmp))
	if endIdx == 0 && !cmp.Start(s.records[0].Range).Equal(end) {
		return Interval{}, nil
	}

	beginIdx := FindInsertionPoint(s.records, begin, endOrder(cmp))
	if beginIdx == n {
		return Interval{Start: n, End: n}, nil
	}

	if allowAdjacent {
		// Records starting exactly at end: a collapsed one followed by an
		// adjacent one. Take all of them.
		for endIdx < n && cmp.Start(s.records[endIdx].Range).Equal(end) {
			endIdx++
		}

		// An adjacent record followed by a collapsed one both ending at begin:
		// step back from the collapsed one to the adjacent one.
		// Pinned tie-break, see TestIndicesForInterval_AdjacentTieBreak.
		if beginIdx > 0 {
			r := s.records[beginIdx].Range
			if collapsed(cmp, r) && cmp.End(r).Equal(begin) &&
				cmp.End(s.records[beginIdx-1].Range).Equal(begin) {
				beginIdx--
			}
		}
	} else {
		r := s.records[beginIdx].Range
		if cmp.End(r).Equal(begin) && !collapsed(cmp, r) {
			beginIdx++
		}
		if endIdx < n {
			r := s.records[endIdx].Range
			if cmp.Start(r).Equal(end) && collapsed(cmp, r) {
				endIdx++
			}
		}
	}

	if beginIdx > endIdx {
		return Interval{}, &InconsistencyError{
			Op:     "indices for interval",
			Detail: fmt.Sprintf("begin index %d after end index %d for [%s,%s)", beginIdx, endIdx, begin, end),
		}
	}
	return Interval{Start: beginIdx, End: endIdx, Found: true}, nil
}

// Overlapping returns the records overlapping [begin, end).
func (s *Set) Overlapping(begin, end boundary.Point, allowAdjacent bool) ([]*Record, error) {
	iv, err := s.IndicesForInterval(begin, end, allowAdjacent)
	if err != nil {
		return nil, err
	}
	if !iv.Found || iv.Empty() {
		return nil, nil
	}
	out := make([]*Record, iv.Len())
	copy(out, s.records[iv.Start:iv.End])
	return out, nil
}

// ContainsPoint returns true if some record covers or touches p.
func (s *Set) ContainsPoint(p boundary.Point) (bool, error) {
	iv, err := s.IndicesForInterval(p, p, true)
	if err != nil {
		return false, err
	}
	return iv.Found && !iv.Empty(), nil
}

func collapsed(cmp *boundary.Comparator, r boundary.Range) bool {
	start, end := r.Bounds(cmp.CrossBoundary)
	return start.Equal(end)
}
