package selection

import (
	"fmt"
	"strings"

	"github.com/dshills/selengine/internal/engine/rangeset"
)

// Kind determines how a selection treats overlapping ranges.
type Kind uint8

const (
	// KindNormal is the user's selection. Its ranges never overlap.
	KindNormal Kind = iota
	// KindHighlight marks found or annotated text. Ranges may overlap.
	KindHighlight
	// KindSpellcheck marks misspelled words. Ranges may overlap.
	KindSpellcheck
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindHighlight:
		return "highlight"
	case KindSpellcheck:
		return "spellcheck"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Exclusive returns true if overlapping ranges are resolved on insertion.
func (k Kind) Exclusive() bool {
	return k == KindNormal
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return KindNormal, nil
	case "highlight":
		return KindHighlight, nil
	case "spellcheck":
		return KindSpellcheck, nil
	default:
		return KindNormal, fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// inserter places a record according to the selection kind.
type inserter interface {
	insert(set *rangeset.Set, rec *rangeset.Record) (int, error)
}

type exclusiveInserter struct{}

func (exclusiveInserter) insert(set *rangeset.Set, rec *rangeset.Record) (int, error) {
	return set.InsertExclusive(rec)
}

type overlappingInserter struct{}

func (overlappingInserter) insert(set *rangeset.Set, rec *rangeset.Record) (int, error) {
	return set.InsertNonExclusive(rec)
}

func newInserter(k Kind) inserter {
	if k.Exclusive() {
		return exclusiveInserter{}
	}
	return overlappingInserter{}
}
