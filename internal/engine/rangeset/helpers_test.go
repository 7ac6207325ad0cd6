package rangeset

import (
	"strings"
	"testing"

	"github.com/dshills/selengine/internal/dom"
	"github.com/dshills/selengine/internal/engine/boundary"
)

// newTextDoc creates a document whose root holds one text node per id,
// each twenty characters long.
func newTextDoc(t *testing.T, ids ...string) *dom.Document {
	t.Helper()
	d := dom.NewDocument()
	for _, id := range ids {
		n, err := d.CreateText(id, strings.Repeat("x", 20))
		if err != nil {
			t.Fatalf("CreateText(%q): %v", id, err)
		}
		if err := d.Root().AppendChild(n); err != nil {
			t.Fatalf("AppendChild(%q): %v", id, err)
		}
	}
	return d
}

func pt(d *dom.Document, id string, off uint32) boundary.Point {
	return boundary.At(d.MustLookup(id), off)
}

func rng(d *dom.Document, id string, start, end uint32) boundary.Range {
	return boundary.Range{Start: pt(d, id, start), End: pt(d, id, end)}
}

func rec(d *dom.Document, id string, start, end uint32) *Record {
	return NewRecord(rng(d, id, start, end), nil)
}

func spans(s *Set) []string {
	out := make([]string, 0, s.Len())
	for _, r := range s.Records() {
		out = append(out, r.String())
	}
	return out
}

func mustInsert(t *testing.T, s *Set, r *Record) int {
	t.Helper()
	i, err := s.InsertExclusive(r)
	if err != nil {
		t.Fatalf("InsertExclusive(%s): %v", r, err)
	}
	return i
}

// registrarSpy records register and deregister calls.
type registrarSpy struct {
	live map[*Record]int
}

func newRegistrarSpy() *registrarSpy {
	return &registrarSpy{live: make(map[*Record]int)}
}

func (r *registrarSpy) Register(rec *Record) {
	r.live[rec]++
}

func (r *registrarSpy) Deregister(rec *Record) {
	r.live[rec]--
	if r.live[rec] == 0 {
		delete(r.live, rec)
	}
}
