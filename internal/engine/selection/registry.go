package selection

import "github.com/dshills/selengine/internal/engine/rangeset"

// Registry is an arena of selections keyed by handle. It tracks which
// selection every live record belongs to, so a record can find its owner
// without holding a pointer to it.
type Registry struct {
	next       rangeset.Owner
	selections map[rangeset.Owner]*Selection
	records    map[*rangeset.Record]rangeset.Owner
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		selections: make(map[rangeset.Owner]*Selection),
		records:    make(map[*rangeset.Record]rangeset.Owner),
	}
}

// Lookup returns the selection registered under h.
func (r *Registry) Lookup(h rangeset.Owner) (*Selection, bool) {
	s, ok := r.selections[h]
	return s, ok
}

// OwnerOf returns the selection holding rec.
func (r *Registry) OwnerOf(rec *rangeset.Record) (*Selection, bool) {
	h, ok := r.records[rec]
	if !ok {
		return nil, false
	}
	return r.Lookup(h)
}

// Len returns the number of registered selections.
func (r *Registry) Len() int {
	return len(r.selections)
}

// RecordCount returns the number of live records across all selections.
func (r *Registry) RecordCount() int {
	return len(r.records)
}

// Register implements rangeset.Registrar.
func (r *Registry) Register(rec *rangeset.Record) {
	r.records[rec] = rec.Owner()
}

// Deregister implements rangeset.Registrar.
func (r *Registry) Deregister(rec *rangeset.Record) {
	delete(r.records, rec)
}

func (r *Registry) add(s *Selection) rangeset.Owner {
	r.next++
	r.selections[r.next] = s
	return r.next
}

func (r *Registry) remove(h rangeset.Owner) {
	delete(r.selections, h)
}
