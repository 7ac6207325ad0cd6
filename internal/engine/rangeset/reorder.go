package rangeset

import (
	"slices"
	"sort"

	"github.com/dshills/selengine/internal/engine/boundary"
)

// ReorderIfNecessary restores document order after tree mutations.
//
// It is O(1) when the tree generation is unchanged and the set is not dirty.
// Otherwise pinned records are revalidated, then one linear pass checks the
// order. The full sort only runs if that pass finds a misordered pair; both
// share one position cache.
func (s *Set) ReorderIfNecessary() {
	gen := s.tree.Generation()
	mutated := gen != s.generation
	if !mutated && !s.dirty {
		return
	}

	cmp := s.Comparator()
	if mutated {
		s.revalidate(cmp)
	}

	if !s.inOrder(cmp) {
		sort.SliceStable(s.records, func(i, j int) bool {
			return compareRecords(cmp, s.records[i], s.records[j]) < 0
		})
		s.log.Debug("reordered %d ranges at generation %d", len(s.records), gen)
	}

	s.generation = gen
	s.dirty = false
}

// revalidate moves pinned records between the valid and invalid lists.
func (s *Set) revalidate(cmp *boundary.Comparator) {
	var broken []*Record
	s.records = slices.DeleteFunc(s.records, func(rec *Record) bool {
		if cmp.RangeValid(rec.Range) {
			return false
		}
		broken = append(broken, rec)
		return true
	})

	s.invalid = slices.DeleteFunc(s.invalid, func(rec *Record) bool {
		if !cmp.RangeValid(rec.Range) {
			return false
		}
		s.records = append(s.records, rec)
		s.dirty = true
		return true
	})

	if len(broken) > 0 {
		s.log.Debug("set aside %d invalid ranges", len(broken))
	}
	s.invalid = append(s.invalid, broken...)
}

// inOrder reports whether no record sorts before its predecessor. Records in
// disconnected trees count as ordered.
func (s *Set) inOrder(cmp *boundary.Comparator) bool {
	for i := 1; i < len(s.records); i++ {
		if compareRecords(cmp, s.records[i], s.records[i-1]) < 0 {
			return false
		}
	}
	return true
}

// compareRecords orders by start point, then by end point so that a
// collapsed record sorts before a non-collapsed one starting at the same
// point.
func compareRecords(cmp *boundary.Comparator, a, b *Record) int {
	if c := boundary.Sign(cmp.Compare(cmp.Start(a.Range), cmp.Start(b.Range))); c != 0 {
		return c
	}
	return boundary.Sign(cmp.Compare(cmp.End(a.Range), cmp.End(b.Range)))
}
