package rangeset

import (
	"fmt"
	"slices"

	"github.com/dshills/selengine/internal/engine/boundary"
)

// Subtract returns what is left of existing once sub is cut out of it:
// zero, one or two fragments, leading fragment first. Fragments inherit the
// style of existing. Collapsed fragments are dropped.
//
// Ranges rooted in disconnected trees cannot be subtracted; existing is
// returned unchanged.
func Subtract(cmp *boundary.Comparator, existing *Record, sub boundary.Range) []*Record {
	exStart, exEnd := existing.Range.Bounds(cmp.CrossBoundary)
	subStart, subEnd := sub.Bounds(cmp.CrossBoundary)

	if !cmp.SameRoot(exStart, subStart) {
		return []*Record{existing}
	}

	var out []*Record
	if cmp.ToRangeStart(exStart, sub) == boundary.Before {
		if lead := existing.Range.WithBounds(exStart, subStart); !lead.Collapsed() {
			out = append(out, &Record{Range: lead, Style: existing.Style})
		}
	}
	if cmp.ToRangeEnd(exEnd, sub) == boundary.After {
		if trail := existing.Range.WithBounds(subEnd, exEnd); !trail.Collapsed() {
			out = append(out, &Record{Range: trail, Style: existing.Style})
		}
	}
	return out
}

// InsertExclusive inserts rec so that no two records overlap, and returns
// its index.
//
// Inserting a range identical to the single record it overlaps is a no-op
// that returns that record's index. Otherwise every overlapping record is
// removed; only the first and last of them can leave fragments behind, which
// are spliced back in around rec.
func (s *Set) InsertExclusive(rec *Record) (int, error) {
	if i, done, err := s.precheck(rec); done {
		return i, err
	}

	cmp := s.Comparator()
	if len(s.records) == 0 {
		s.records = append(s.records, rec)
		s.register(rec)
		return 0, nil
	}

	start, end := rec.Range.Bounds(cmp.CrossBoundary)
	iv, err := s.indicesForInterval(cmp, start, end, false)
	if err != nil {
		return -1, fmt.Errorf("insert %s: %w", rec, err)
	}

	if iv.Found && iv.Len() == 1 && s.records[iv.Start].Range.Equal(rec.Range) {
		return iv.Start, nil
	}

	if iv.Empty() {
		s.records = slices.Insert(s.records, iv.Start, rec)
		s.register(rec)
		return iv.Start, nil
	}

	overlaps := []*Record{s.records[iv.Start]}
	if last := s.records[iv.End-1]; last != overlaps[0] {
		overlaps = append(overlaps, last)
	}

	// Fragments of the last overlap go in first; each batch is prepended so
	// the scratch list stays in document order.
	var scratch []*Record
	for i := len(overlaps) - 1; i >= 0; i-- {
		scratch = append(Subtract(cmp, overlaps[i], rec.Range), scratch...)
	}
	pos := FindInsertionPoint(scratch, start, startOrder(cmp))
	scratch = slices.Insert(scratch, pos, rec)

	removed := slices.Clone(s.records[iv.Start:iv.End])
	s.records = slices.Replace(s.records, iv.Start, iv.End, scratch...)
	for _, old := range removed {
		s.deregister(old)
	}
	for _, r := range scratch {
		s.register(r)
	}
	return iv.Start + pos, nil
}

// InsertNonExclusive inserts rec without touching overlapping records and
// returns its index. Duplicates are kept.
func (s *Set) InsertNonExclusive(rec *Record) (int, error) {
	if i, done, err := s.precheck(rec); done {
		return i, err
	}

	cmp := s.Comparator()
	if len(s.records) == 0 {
		s.records = append(s.records, rec)
		s.register(rec)
		return 0, nil
	}

	start, end := rec.Range.Bounds(cmp.CrossBoundary)
	iv, err := s.indicesForInterval(cmp, start, end, false)
	if err != nil {
		return -1, fmt.Errorf("insert %s: %w", rec, err)
	}

	// The interval query bounds the position; overlapping records may still
	// start on either side of rec, so settle by start order.
	idx := min(iv.Start, iv.End)
	for idx > 0 && compareRecords(cmp, s.records[idx-1], rec) > 0 {
		idx--
	}
	for idx < len(s.records) && compareRecords(cmp, s.records[idx], rec) <= 0 {
		idx++
	}

	s.records = slices.Insert(s.records, idx, rec)
	s.register(rec)
	return idx, nil
}

// precheck validates rec and brings the set in order. done is true when the
// insertion must not proceed.
func (s *Set) precheck(rec *Record) (index int, done bool, err error) {
	if rec == nil {
		return -1, true, fmt.Errorf("insert nil record: %w", boundary.ErrInvalidArgument)
	}
	if rec.set != nil && rec.set != s {
		return -1, true, fmt.Errorf("insert %s: %w", rec, ErrAlreadyOwned)
	}

	s.ReorderIfNecessary()

	if rec.set == s {
		if i := s.IndexOf(rec); i >= 0 {
			return i, true, nil
		}
		return -1, true, fmt.Errorf("insert %s: record is set aside as invalid: %w", rec, boundary.ErrInvalidArgument)
	}
	cmp := s.Comparator()
	if cmp.Compare(rec.Range.Start, rec.Range.End) == boundary.After {
		return -1, true, fmt.Errorf("insert %s: start is after end: %w", rec, boundary.ErrInvalidArgument)
	}
	if !cmp.RangeValid(rec.Range) {
		return -1, true, fmt.Errorf("insert %s: pinned range is not valid: %w", rec, boundary.ErrInvalidArgument)
	}
	return -1, false, nil
}
