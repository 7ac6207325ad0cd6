package rangeset

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/selengine/internal/engine/boundary"
)

func TestReorderIfNecessary_AfterMove(t *testing.T) {
	d := newTextDoc(t, "t1", "t2")
	s := New(d)
	for _, id := range []string{"t1", "t2"} {
		r := rec(d, id, 0, 5)
		r.Range.Pinned = true
		mustInsert(t, s, r)
	}

	// Move t1 behind t2. Pinned ranges stay with their nodes.
	if err := d.Root().AppendChild(d.MustLookup("t1")); err != nil {
		t.Fatal(err)
	}
	if s.Generation() == d.Generation() {
		t.Fatal("expected the set to lag behind the tree generation")
	}

	expected := []string{"[t2:0,t2:5)", "[t1:0,t1:5)"}
	if diff := cmp.Diff(expected, spans(s)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if s.Generation() != d.Generation() {
		t.Errorf("expected generation %d, got %d", d.Generation(), s.Generation())
	}
	if s.Dirty() {
		t.Error("expected set to be clean after reordering")
	}
}

func TestReorderIfNecessary_PinnedRevalidation(t *testing.T) {
	d := newTextDoc(t, "t1", "t2")
	s := New(d)
	pinned := rec(d, "t1", 5, 10)
	pinned.Range.Pinned = true
	mustInsert(t, s, pinned)
	mustInsert(t, s, rec(d, "t2", 0, 5))

	t1 := d.MustLookup("t1")
	if err := t1.SetText("abc"); err != nil {
		t.Fatal(err)
	}
	s.ReorderIfNecessary()

	if s.Len() != 1 {
		t.Fatalf("expected 1 valid record, got %d", s.Len())
	}
	if inv := s.Invalid(); len(inv) != 1 || inv[0] != pinned {
		t.Fatalf("expected pinned record set aside, got %v", inv)
	}
	if !pinned.Registered() {
		t.Error("expected invalid record to stay in the set")
	}

	ok, err := s.ContainsPoint(pt(d, "t1", 2))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected invalid record to be ignored by queries")
	}

	if _, err := s.InsertExclusive(pinned); err == nil {
		t.Error("expected re-inserting an invalid member to fail")
	}

	if err := t1.SetText("abcdefghijkl"); err != nil {
		t.Fatal(err)
	}
	expected := []string{"[t1:5,t1:10)", "[t2:0,t2:5)"}
	if diff := cmp.Diff(expected, spans(s)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if len(s.Invalid()) != 0 {
		t.Errorf("expected no invalid records, got %d", len(s.Invalid()))
	}
}

func TestReorderIfNecessary_CrossBoundary(t *testing.T) {
	d := newTextDoc(t, "n1")
	s := New(d)

	shadowed := rec(d, "n1", 0, 2)
	shadowed.Range.Cross = &boundary.Span{Start: pt(d, "n1", 10), End: pt(d, "n1", 12)}
	mustInsert(t, s, shadowed)
	mustInsert(t, s, rec(d, "n1", 5, 6))

	s.SetCrossBoundary(true)
	if !s.Dirty() {
		t.Fatal("expected switching mode to mark the set dirty")
	}

	expected := []string{"[n1:5,n1:6)", "[n1:0,n1:2)"}
	if diff := cmp.Diff(expected, spans(s)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderIfNecessary_DisconnectedCountsAsOrdered(t *testing.T) {
	d := newTextDoc(t, "t1", "t2", "t3")
	s := New(d)
	a := rec(d, "t1", 0, 1)
	b := rec(d, "t2", 0, 1)
	c := rec(d, "t3", 0, 1)
	mustInsert(t, s, a)
	mustInsert(t, s, b)
	mustInsert(t, s, c)

	loose, err := d.CreateText("loose", "xxxx")
	if err != nil {
		t.Fatal(err)
	}
	b.Range = boundary.Range{Start: boundary.At(loose, 0), End: boundary.At(loose, 1)}
	s.MarkDirty()

	got := s.Records()
	if got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("expected order to be kept, got %v", got)
	}
}

func TestRemap_NodeRemoved(t *testing.T) {
	d := newTextDoc(t, "t1", "t2", "t3")
	s := New(d)
	mustInsert(t, s, rec(d, "t1", 0, 5))
	mustInsert(t, s, rec(d, "t2", 0, 5))
	mustInsert(t, s, rec(d, "t3", 0, 5))

	if err := d.MustLookup("t2").Remove(); err != nil {
		t.Fatal(err)
	}
	expected := []string{"[t1:0,t1:5)", "[#root:1,#root:1)", "[t3:0,t3:5)"}
	if diff := cmp.Diff(expected, spans(s)); diff != "" {
		t.Errorf("records mismatch after removal (-want +got):\n%s", diff)
	}

	mustInsert(t, s, rec(d, "t1", 1, 2))
	expected = []string{"[t1:0,t1:1)", "[t1:1,t1:2)", "[t1:2,t1:5)", "[#root:1,#root:1)", "[t3:0,t3:5)"}
	if diff := cmp.Diff(expected, spans(s)); diff != "" {
		t.Errorf("records mismatch after insert (-want +got):\n%s", diff)
	}
}

func TestRemap_TextShortened(t *testing.T) {
	d := newTextDoc(t, "t1", "t2")
	s := New(d)
	mustInsert(t, s, rec(d, "t1", 5, 15))
	mustInsert(t, s, rec(d, "t2", 0, 5))

	t1 := d.MustLookup("t1")
	tests := []struct {
		text     string
		expected []string
	}{
		{"abcdefgh", []string{"[t1:5,t1:8)", "[t2:0,t2:5)"}},
		{"abc", []string{"[t1:3,t1:3)", "[t2:0,t2:5)"}},
		{"abcdefghijkl", []string{"[t1:3,t1:3)", "[t2:0,t2:5)"}},
	}
	for _, tt := range tests {
		if err := t1.SetText(tt.text); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.expected, spans(s)); diff != "" {
			t.Errorf("SetText(%q): records mismatch (-want +got):\n%s", tt.text, diff)
		}
		if len(s.Invalid()) != 0 {
			t.Errorf("SetText(%q): expected live ranges to stay valid, got %v", tt.text, s.Invalid())
		}
	}
}

func TestRemap_Close(t *testing.T) {
	d := newTextDoc(t, "t1", "t2")
	s := New(d)
	r := rec(d, "t2", 0, 5)
	mustInsert(t, s, r)

	s.Close()
	if err := d.MustLookup("t2").SetText("ab"); err != nil {
		t.Fatal(err)
	}
	if r.Range.End.Offset != 5 {
		t.Errorf("expected closed set to stop following the tree, got %s", r)
	}
}

func TestRestore(t *testing.T) {
	d := newTextDoc(t, "t1", "t2")
	spy := newRegistrarSpy()
	s := New(d, WithRegistrar(spy))
	mustInsert(t, s, rec(d, "t2", 0, 5))
	pinned := rec(d, "t1", 10, 15)
	pinned.Range.Pinned = true
	mustInsert(t, s, pinned)

	removed := s.Clear()
	if err := d.MustLookup("t1").SetText("abc"); err != nil {
		t.Fatal(err)
	}
	s.Restore(removed)

	expected := []string{"[t2:0,t2:5)"}
	if diff := cmp.Diff(expected, spans(s)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if inv := s.Invalid(); len(inv) != 1 || inv[0] != pinned {
		t.Errorf("expected the broken pinned record set aside, got %v", inv)
	}
	if len(spy.live) != 2 {
		t.Errorf("expected 2 registered records, got %d", len(spy.live))
	}
}
