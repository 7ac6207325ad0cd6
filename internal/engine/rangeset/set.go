package rangeset

import (
	"fmt"
	"slices"

	"github.com/dshills/selengine/internal/engine/boundary"
	"github.com/dshills/selengine/internal/logging"
)

// Set is an ordered collection of records kept sorted by start point.
type Set struct {
	tree boundary.Tree

	records []*Record
	invalid []*Record

	// generation is the tree generation the order was last verified at.
	generation int64
	dirty      bool

	crossBoundary bool
	owner         Owner
	registrar     Registrar
	log           *logging.Logger

	unobserve func()
}

// Option configures a Set during creation.
type Option func(*Set)

// WithCrossBoundary makes every comparison use the ranges' cross-boundary
// endpoints.
func WithCrossBoundary(enabled bool) Option {
	return func(s *Set) {
		s.crossBoundary = enabled
	}
}

// WithOwner sets the handle stamped on every registered record.
func WithOwner(owner Owner) Option {
	return func(s *Set) {
		s.owner = owner
	}
}

// WithRegistrar sets the observer notified when records enter or leave.
func WithRegistrar(r Registrar) Option {
	return func(s *Set) {
		s.registrar = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Set) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty set over the given tree.
func New(tree boundary.Tree, opts ...Option) *Set {
	s := &Set{
		tree:       tree,
		generation: tree.Generation(),
		log:        logging.NullLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if obs, ok := tree.(boundary.Observable); ok {
		s.unobserve = obs.Observe(func(m boundary.Remap) { s.Remap(m) })
	}
	return s
}

// Close stops following tree mutations. The records are kept.
func (s *Set) Close() {
	if s.unobserve != nil {
		s.unobserve()
		s.unobserve = nil
	}
}

// Remap moves the live endpoints of every record through m and returns the
// number of records that changed. Pinned records are left alone.
func (s *Set) Remap(m boundary.Remap) int {
	changed := 0
	for _, list := range [][]*Record{s.records, s.invalid} {
		for _, rec := range list {
			r := m.Apply(rec.Range)
			if r.Equal(rec.Range) && crossEqual(r.Cross, rec.Range.Cross) {
				continue
			}
			rec.Range = r
			changed++
		}
	}
	if changed > 0 {
		s.dirty = true
		s.log.Debug("remapped %d live ranges", changed)
	}
	return changed
}

func crossEqual(a, b *boundary.Span) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}

// Len returns the number of valid records.
func (s *Set) Len() int {
	return len(s.records)
}

// At returns the record at index i, or nil if out of range.
// At does not reorder; call ReorderIfNecessary first for fresh indices.
func (s *Set) At(i int) *Record {
	if i < 0 || i >= len(s.records) {
		return nil
	}
	return s.records[i]
}

// Records returns the valid records in document order.
func (s *Set) Records() []*Record {
	s.ReorderIfNecessary()
	return slices.Clone(s.records)
}

// Invalid returns the records currently set aside as structurally invalid.
func (s *Set) Invalid() []*Record {
	return slices.Clone(s.invalid)
}

// Generation returns the tree generation the order was last verified at.
func (s *Set) Generation() int64 {
	return s.generation
}

// Dirty returns true if the set was marked as possibly out of order.
func (s *Set) Dirty() bool {
	return s.dirty
}

// MarkDirty flags the set for a reorder check before the next query.
func (s *Set) MarkDirty() {
	s.dirty = true
}

// CrossBoundary returns whether comparisons use cross-boundary endpoints.
func (s *Set) CrossBoundary() bool {
	return s.crossBoundary
}

// SetCrossBoundary switches the comparison mode.
func (s *Set) SetCrossBoundary(enabled bool) {
	if s.crossBoundary != enabled {
		s.crossBoundary = enabled
		s.dirty = true
	}
}

// Comparator returns a comparator in the set's mode with a fresh cache.
func (s *Set) Comparator() *boundary.Comparator {
	return &boundary.Comparator{
		Tree:          s.tree,
		CrossBoundary: s.crossBoundary,
		Cache:         s.tree.NewCache(),
	}
}

// IndexOf returns the index of rec among the valid records, or -1.
func (s *Set) IndexOf(rec *Record) int {
	if rec == nil || rec.set != s {
		return -1
	}
	s.ReorderIfNecessary()
	cmp := s.Comparator()
	start := cmp.Start(rec.Range)
	for i := FindInsertionPoint(s.records, start, startOrder(cmp)); i < len(s.records); i++ {
		if s.records[i] == rec {
			return i
		}
		if !cmp.Start(s.records[i].Range).Equal(start) {
			break
		}
	}
	return slices.Index(s.records, rec)
}

// Remove removes rec from the set.
func (s *Set) Remove(rec *Record) error {
	if i := s.IndexOf(rec); i >= 0 {
		s.records = slices.Delete(s.records, i, i+1)
		s.deregister(rec)
		return nil
	}
	if i := slices.Index(s.invalid, rec); i >= 0 && rec != nil {
		s.invalid = slices.Delete(s.invalid, i, i+1)
		s.deregister(rec)
		return nil
	}
	return fmt.Errorf("remove %v: %w", rec, ErrNotFound)
}

// RemoveAt removes and returns the record at index i.
func (s *Set) RemoveAt(i int) (*Record, error) {
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("remove index %d of %d: %w", i, len(s.records), ErrNotFound)
	}
	rec := s.records[i]
	s.records = slices.Delete(s.records, i, i+1)
	s.deregister(rec)
	return rec, nil
}

// Clear removes every record, valid or not, and returns them in order.
func (s *Set) Clear() []*Record {
	removed := make([]*Record, 0, len(s.records)+len(s.invalid))
	removed = append(removed, s.records...)
	removed = append(removed, s.invalid...)
	s.records = nil
	s.invalid = nil
	s.dirty = false
	s.generation = s.tree.Generation()
	for _, rec := range removed {
		s.deregister(rec)
	}
	return removed
}

// Restore puts records returned by Clear back into the set. Records that
// are no longer valid are set aside. Records owned by a set are skipped.
func (s *Set) Restore(records []*Record) {
	cmp := s.Comparator()
	for _, rec := range records {
		if rec == nil || rec.set != nil {
			continue
		}
		s.register(rec)
		if cmp.RangeValid(rec.Range) {
			s.records = append(s.records, rec)
		} else {
			s.invalid = append(s.invalid, rec)
		}
	}
	s.dirty = true
}

func (s *Set) register(rec *Record) {
	rec.set = s
	rec.owner = s.owner
	if s.registrar != nil {
		s.registrar.Register(rec)
	}
}

func (s *Set) deregister(rec *Record) {
	if s.registrar != nil {
		s.registrar.Deregister(rec)
	}
	rec.set = nil
	rec.owner = 0
}
