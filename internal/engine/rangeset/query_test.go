package rangeset

import (
	"errors"
	"testing"

	"github.com/dshills/selengine/internal/engine/boundary"
)

func TestFindInsertionPoint(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	for _, r := range []*Record{rec(d, "n1", 0, 2), rec(d, "n1", 4, 6), rec(d, "n1", 8, 10)} {
		mustInsert(t, s, r)
	}
	cmp := s.Comparator()

	tests := []struct {
		offset   uint32
		expected int
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
		{20, 3},
	}

	for _, tt := range tests {
		got := FindInsertionPoint(s.records, pt(d, "n1", tt.offset), startOrder(cmp))
		if got != tt.expected {
			t.Errorf("FindInsertionPoint(n1:%d) = %d, expected %d", tt.offset, got, tt.expected)
		}
	}
}

func TestFindInsertionPoint_IncomparableIsAfter(t *testing.T) {
	d := newTextDoc(t, "n1", "loose")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 0, 5))

	loose := d.MustLookup("loose")
	if err := loose.Remove(); err != nil {
		t.Fatal(err)
	}

	got := FindInsertionPoint(s.records, boundary.At(loose, 0), startOrder(s.Comparator()))
	if got != 1 {
		t.Errorf("expected disconnected point to sort after all records, got %d", got)
	}
}

func TestIndicesForInterval_Empty(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)

	iv, err := s.IndicesForInterval(pt(d, "n1", 0), pt(d, "n1", 5), true)
	if err != nil {
		t.Fatal(err)
	}
	if iv.Found {
		t.Errorf("expected no span on an empty set, got %+v", iv)
	}
}

func TestIndicesForInterval_BeforeAndAfterAll(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 5, 8))
	mustInsert(t, s, rec(d, "n1", 10, 12))

	before, err := s.IndicesForInterval(pt(d, "n1", 0), pt(d, "n1", 3), false)
	if err != nil {
		t.Fatal(err)
	}
	if before.Found || before.Start != 0 {
		t.Errorf("expected not found at 0, got %+v", before)
	}

	after, err := s.IndicesForInterval(pt(d, "n1", 14), pt(d, "n1", 16), false)
	if err != nil {
		t.Fatal(err)
	}
	if after.Found || after.Start != 2 || after.End != 2 {
		t.Errorf("expected not found at 2, got %+v", after)
	}
}

func TestIndicesForInterval_SharedBoundary(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 0, 5))
	mustInsert(t, s, rec(d, "n1", 5, 10))
	p := pt(d, "n1", 5)

	adj, err := s.IndicesForInterval(p, p, true)
	if err != nil {
		t.Fatal(err)
	}
	if !adj.Found || adj.Start != 0 || adj.End != 2 {
		t.Errorf("allowAdjacent: expected [0,2), got %+v", adj)
	}

	strict, err := s.IndicesForInterval(p, p, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strict.Empty() {
		t.Errorf("no adjacency: expected an empty span, got %+v", strict)
	}
}

func TestIndicesForInterval_Overlap(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 0, 5))
	mustInsert(t, s, rec(d, "n1", 6, 8))
	mustInsert(t, s, rec(d, "n1", 10, 15))

	tests := []struct {
		name          string
		begin, end    uint32
		allowAdjacent bool
		start, stop   int
	}{
		{"inside first", 1, 2, false, 0, 1},
		{"spanning all", 0, 20, false, 0, 3},
		{"gap", 8, 10, false, 2, 2},
		{"gap touching both", 8, 10, true, 1, 3},
		{"middle and last", 7, 11, false, 1, 3},
		{"ending at start", 5, 6, false, 1, 1},
		{"ending at start adjacent", 5, 6, true, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := s.IndicesForInterval(pt(d, "n1", tt.begin), pt(d, "n1", tt.end), tt.allowAdjacent)
			if err != nil {
				t.Fatal(err)
			}
			if iv.Start != tt.start || iv.End != tt.stop {
				t.Errorf("expected [%d,%d), got [%d,%d)", tt.start, tt.stop, iv.Start, iv.End)
			}
		})
	}
}

func TestIndicesForInterval_CollapsedRecordIncluded(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 0, 5))
	mustInsert(t, s, rec(d, "n1", 5, 5))

	iv, err := s.IndicesForInterval(pt(d, "n1", 5), pt(d, "n1", 8), false)
	if err != nil {
		t.Fatal(err)
	}
	if iv.Start != 1 || iv.End != 2 {
		t.Errorf("expected the collapsed record at index 1, got %+v", iv)
	}
}

// The tie-break between a collapsed record and an adjacent one sharing its
// point is pinned as-is rather than derived.
func TestIndicesForInterval_AdjacentTieBreak(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 0, 5))
	mustInsert(t, s, rec(d, "n1", 5, 10))
	if i := mustInsert(t, s, rec(d, "n1", 5, 5)); i != 1 {
		t.Fatalf("expected collapsed record between the two, got index %d", i)
	}
	p := pt(d, "n1", 5)

	adj, err := s.IndicesForInterval(p, p, true)
	if err != nil {
		t.Fatal(err)
	}
	if adj.Start != 0 || adj.End != 3 {
		t.Errorf("allowAdjacent: expected [0,3), got [%d,%d)", adj.Start, adj.End)
	}

	strict, err := s.IndicesForInterval(p, p, false)
	if err != nil {
		t.Fatal(err)
	}
	if strict.Start != 1 || strict.End != 2 {
		t.Errorf("no adjacency: expected [1,2), got [%d,%d)", strict.Start, strict.End)
	}
}

func TestIndicesForInterval_Inconsistency(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	// Bypass insertion checks to plant an inverted record.
	s.records = []*Record{rec(d, "n1", 5, 2), rec(d, "n1", 5, 9)}

	_, err := s.IndicesForInterval(pt(d, "n1", 3), pt(d, "n1", 5), false)
	if !errors.Is(err, ErrInternalInconsistency) {
		t.Fatalf("expected ErrInternalInconsistency, got %v", err)
	}
	var ie *InconsistencyError
	if !errors.As(err, &ie) || ie.Op != "indices for interval" {
		t.Errorf("expected an InconsistencyError from the interval query, got %v", err)
	}
}

func TestOverlappingAndContainsPoint(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)
	mustInsert(t, s, rec(d, "n1", 0, 5))
	mustInsert(t, s, rec(d, "n1", 8, 10))

	got, err := s.Overlapping(pt(d, "n1", 4), pt(d, "n1", 9), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 overlapping records, got %d", len(got))
	}

	tests := []struct {
		offset   uint32
		expected bool
	}{
		{0, true},
		{3, true},
		{5, true},
		{6, false},
		{10, true},
		{12, false},
	}
	for _, tt := range tests {
		ok, err := s.ContainsPoint(pt(d, "n1", tt.offset))
		if err != nil {
			t.Fatal(err)
		}
		if ok != tt.expected {
			t.Errorf("ContainsPoint(n1:%d) = %v, expected %v", tt.offset, ok, tt.expected)
		}
	}
}
