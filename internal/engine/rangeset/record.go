package rangeset

import "github.com/dshills/selengine/internal/engine/boundary"

// Owner is a registry handle identifying the selection a set belongs to.
// The zero Owner means unregistered.
type Owner uint64

// Record is a range held by a Set, plus presentation metadata.
type Record struct {
	Range boundary.Range

	// Style is opaque per-range metadata. It is copied verbatim onto every
	// fragment split out of this record.
	Style any

	set   *Set
	owner Owner
}

// NewRecord creates an unowned record.
func NewRecord(r boundary.Range, style any) *Record {
	return &Record{Range: r, Style: style}
}

// Owner returns the handle of the selection holding the record, or zero.
func (r *Record) Owner() Owner {
	return r.owner
}

// Registered returns true while the record belongs to a set.
func (r *Record) Registered() bool {
	return r.set != nil
}

// String returns a string representation of the record.
func (r *Record) String() string {
	return r.Range.String()
}

// Registrar observes records entering and leaving a set.
type Registrar interface {
	Register(rec *Record)
	Deregister(rec *Record)
}
