package extend

import (
	"strings"
	"testing"

	"github.com/dshills/selengine/internal/dom"
	"github.com/dshills/selengine/internal/engine/boundary"
)

func newLine(t *testing.T) (*dom.Document, *dom.Node) {
	t.Helper()
	d := dom.NewDocument()
	n, err := d.CreateText("n1", strings.Repeat("x", 10))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Root().AppendChild(n); err != nil {
		t.Fatal(err)
	}
	return d, n
}

func TestClassify(t *testing.T) {
	d, n := newLine(t)
	c := boundary.NewComparator(d)
	p := func(off uint32) boundary.Point { return boundary.At(n, off) }

	tests := []struct {
		name          string
		a, f, n       uint32
		dir           Direction
		expectedCase  Case
		rng           string
		delta         string
		deltaSelected bool
		expectedDir   Direction
	}{
		{"grow forward", 2, 5, 8, Forward, CaseAFN, "[n1:2,n1:8)", "[n1:5,n1:8)", true, Forward},
		{"shrink forward", 2, 8, 5, Forward, CaseANF, "[n1:2,n1:5)", "[n1:5,n1:8)", false, Forward},
		{"flip backward", 2, 8, 0, Forward, CaseNAF, "[n1:0,n1:2)", "[n1:2,n1:8)", false, Backward},
		{"flip forward", 5, 2, 8, Backward, CaseFAN, "[n1:5,n1:8)", "[n1:2,n1:5)", false, Forward},
		{"shrink backward", 8, 2, 5, Backward, CaseFNA, "[n1:5,n1:8)", "[n1:2,n1:5)", false, Backward},
		{"grow backward", 8, 5, 2, Backward, CaseNFA, "[n1:2,n1:8)", "[n1:2,n1:5)", true, Backward},
		{"collapsed then forward", 3, 3, 7, Backward, CaseAFN, "[n1:3,n1:7)", "[n1:3,n1:7)", true, Forward},
		{"collapsed then backward", 3, 3, 1, Forward, CaseNAF, "[n1:1,n1:3)", "[n1:3,n1:3)", false, Backward},
		{"back to anchor forward", 4, 8, 4, Forward, CaseANF, "[n1:4,n1:4)", "[n1:4,n1:8)", false, Forward},
		{"back to anchor backward", 6, 2, 6, Backward, CaseFNA, "[n1:6,n1:6)", "[n1:2,n1:6)", false, Backward},
		{"focus unchanged", 2, 6, 6, Forward, CaseAFN, "[n1:2,n1:6)", "[n1:6,n1:6)", true, Forward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(c, p(tt.a), p(tt.f), p(tt.n), tt.dir)
			if res.Case != tt.expectedCase {
				t.Errorf("expected case %s, got %s", tt.expectedCase, res.Case)
			}
			if res.Range.String() != tt.rng {
				t.Errorf("expected range %s, got %s", tt.rng, res.Range)
			}
			if res.Delta.String() != tt.delta {
				t.Errorf("expected delta %s, got %s", tt.delta, res.Delta)
			}
			if res.DeltaSelected != tt.deltaSelected {
				t.Errorf("expected delta selected %v, got %v", tt.deltaSelected, res.DeltaSelected)
			}
			if res.Direction != tt.expectedDir {
				t.Errorf("expected direction %s, got %s", tt.expectedDir, res.Direction)
			}
			if res.Fallback {
				t.Error("expected no fallback")
			}
		})
	}
}

func TestClassify_RoundTrip(t *testing.T) {
	d, n := newLine(t)
	c := boundary.NewComparator(d)
	p := func(off uint32) boundary.Point { return boundary.At(n, off) }

	for a := uint32(0); a <= 6; a++ {
		for f := uint32(0); f <= 6; f++ {
			for next := uint32(0); next <= 6; next++ {
				dir := Forward
				if f < a {
					dir = Backward
				}
				original := span(p(min(a, f)), p(max(a, f)))

				there := Classify(c, p(a), p(f), p(next), dir)
				back := Classify(c, p(a), p(next), p(f), there.Direction)
				if !back.Range.Equal(original) {
					t.Errorf("A=%d F=%d N=%d: expected %s after round trip, got %s", a, f, next, original, back.Range)
				}
				if a != f && back.Direction != dir {
					t.Errorf("A=%d F=%d N=%d: expected direction %s after round trip, got %s", a, f, next, dir, back.Direction)
				}

				if a != next {
					forward := there.Direction == Forward
					if forward != there.Range.Start.Equal(p(a)) {
						t.Errorf("A=%d F=%d N=%d: direction %s inconsistent with %s", a, f, next, there.Direction, there.Range)
					}
				} else if there.Direction != dir {
					t.Errorf("A=%d F=%d N=%d: expected direction kept when N equals A", a, f, next)
				}
			}
		}
	}
}

func TestClassify_Disconnected(t *testing.T) {
	d, n := newLine(t)
	loose, err := d.CreateText("loose", "abc")
	if err != nil {
		t.Fatal(err)
	}
	c := boundary.NewComparator(d)

	tests := []struct {
		name    string
		a, f, n boundary.Point
	}{
		{"new focus detached", boundary.At(n, 2), boundary.At(n, 4), boundary.At(loose, 1)},
		{"old focus detached", boundary.At(n, 2), boundary.At(loose, 0), boundary.At(n, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(c, tt.a, tt.f, tt.n, Backward)
			if !res.Fallback || res.Case != CaseDisconnected {
				t.Fatalf("expected disconnected fallback, got %s", res.Case)
			}
			if !res.Range.Equal(boundary.Collapse(tt.n)) {
				t.Errorf("expected range collapsed at %s, got %s", tt.n, res.Range)
			}
			if res.Direction != Backward {
				t.Errorf("expected direction kept, got %s", res.Direction)
			}
		})
	}
}

func TestCaseString(t *testing.T) {
	if CaseNAF.String() != "N-A-F" {
		t.Errorf("expected N-A-F, got %s", CaseNAF)
	}
	if Case(99).String() != "unknown" {
		t.Errorf("expected unknown, got %s", Case(99))
	}
	if Backward.String() != "backward" || Forward.String() != "forward" {
		t.Error("unexpected direction names")
	}
}
