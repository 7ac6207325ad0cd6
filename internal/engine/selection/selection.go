package selection

import (
	"fmt"
	"slices"

	"github.com/dshills/selengine/internal/engine/boundary"
	"github.com/dshills/selengine/internal/engine/extend"
	"github.com/dshills/selengine/internal/engine/rangeset"
	"github.com/dshills/selengine/internal/logging"
)

// Selection is an ordered set of ranges with one primary range.
//
// The anchor and focus are ends of the primary range; the direction says
// which is which. The primary range is tracked by identity, never by index.
type Selection struct {
	tree boundary.Tree
	set  *rangeset.Set
	kind Kind
	ins  inserter

	primary   *rangeset.Record
	direction extend.Direction

	notifier     Notifier
	listeners    []listenerEntry
	nextListener int

	batchDepth int
	pending    bool
	lastErr    error

	crossBoundary bool
	registry      *Registry
	handle        rangeset.Owner
	closed        bool
	log           *logging.Logger
}

// Option configures a Selection during creation.
type Option func(*Selection)

// WithKind sets the selection kind. The default is KindNormal.
func WithKind(k Kind) Option {
	return func(s *Selection) {
		s.kind = k
	}
}

// WithNotifier sets the notifier told about selected state changes.
func WithNotifier(n Notifier) Option {
	return func(s *Selection) {
		s.notifier = n
	}
}

// WithListener registers a change listener.
func WithListener(l Listener) Option {
	return func(s *Selection) {
		s.AddListener(l)
	}
}

// WithCrossBoundary makes comparisons use cross-boundary endpoints.
func WithCrossBoundary(enabled bool) Option {
	return func(s *Selection) {
		s.crossBoundary = enabled
	}
}

// WithRegistry registers the selection and its ranges in r.
func WithRegistry(r *Registry) Option {
	return func(s *Selection) {
		s.registry = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Selection) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty selection over tree.
func New(tree boundary.Tree, opts ...Option) *Selection {
	s := &Selection{
		tree: tree,
		kind: KindNormal,
		log:  logging.NullLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ins = newInserter(s.kind)

	setOpts := []rangeset.Option{
		rangeset.WithCrossBoundary(s.crossBoundary),
		rangeset.WithLogger(s.log.WithComponent("rangeset")),
	}
	if s.registry != nil {
		s.handle = s.registry.add(s)
		setOpts = append(setOpts, rangeset.WithOwner(s.handle), rangeset.WithRegistrar(s.registry))
	}
	s.set = rangeset.New(tree, setOpts...)
	return s
}

// Kind returns the selection kind.
func (s *Selection) Kind() Kind {
	return s.kind
}

// Handle returns the registry handle, or zero when unregistered.
func (s *Selection) Handle() rangeset.Owner {
	return s.handle
}

// SetCrossBoundary switches the comparison mode.
func (s *Selection) SetCrossBoundary(enabled bool) {
	s.crossBoundary = enabled
	s.set.SetCrossBoundary(enabled)
}

// AddRange adds r and makes it the primary range. It returns the index the
// range holds once callbacks have run, or -1 if a callback removed it.
//
// Adding a range identical to one already held by a normal selection makes
// that range primary without notifying anyone.
func (s *Selection) AddRange(r boundary.Range, style any) (int, error) {
	if s.closed {
		return -1, ErrClosed
	}
	r, err := s.checkRange(r)
	if err != nil {
		return -1, fmt.Errorf("add range: %w", err)
	}

	rec := rangeset.NewRecord(r, style)
	idx, trim, err := s.insert(rec)
	if err != nil {
		return -1, fmt.Errorf("add range %s: %w", r, err)
	}

	added := s.set.At(idx)
	s.primary = added
	if added != rec {
		return idx, nil
	}

	s.notifyTrim(trim)
	s.notify(r, true)
	s.changed(ReasonAdd)
	return s.set.IndexOf(added), nil
}

// RemoveRange removes the range equal to r.
func (s *Selection) RemoveRange(r boundary.Range) error {
	if s.closed {
		return ErrClosed
	}
	rec := s.find(r)
	if rec == nil {
		return fmt.Errorf("remove range %s: %w", r, rangeset.ErrNotFound)
	}
	if err := s.set.Remove(rec); err != nil {
		return fmt.Errorf("remove range %s: %w", r, err)
	}
	if rec == s.primary {
		s.set.ReorderIfNecessary()
		s.primary = s.set.At(s.set.Len() - 1)
	}

	s.notify(rec.Range, false)
	s.changed(ReasonRemove)
	return nil
}

// RemoveAllRanges empties the selection and resets the direction.
func (s *Selection) RemoveAllRanges() {
	if s.closed {
		return
	}
	removed := s.clear()
	s.notifyAll(removed, false)
	s.changed(ReasonRemoveAll)
}

// Collapse replaces every range with a collapsed range at p.
func (s *Selection) Collapse(p boundary.Point) error {
	if s.closed {
		return ErrClosed
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("collapse: %w", err)
	}
	return s.replace(boundary.Collapse(p), extend.Forward, ReasonCollapse)
}

// CollapseToStart collapses the selection to the start of its first range.
func (s *Selection) CollapseToStart() error {
	records := s.set.Records()
	if len(records) == 0 {
		return fmt.Errorf("collapse to start: %w", ErrNoRange)
	}
	return s.Collapse(records[0].Range.Start)
}

// CollapseToEnd collapses the selection to the end of its last range.
func (s *Selection) CollapseToEnd() error {
	records := s.set.Records()
	if len(records) == 0 {
		return fmt.Errorf("collapse to end: %w", ErrNoRange)
	}
	return s.Collapse(records[len(records)-1].Range.End)
}

// SetBaseAndExtent replaces every range with the range between anchor and
// focus. The direction follows their order. Disconnected points collapse the
// selection at focus.
func (s *Selection) SetBaseAndExtent(anchor, focus boundary.Point) error {
	if s.closed {
		return ErrClosed
	}
	if err := anchor.Validate(); err != nil {
		return fmt.Errorf("set base and extent: anchor: %w", err)
	}
	if err := focus.Validate(); err != nil {
		return fmt.Errorf("set base and extent: focus: %w", err)
	}

	r := boundary.Range{Start: anchor, End: focus}
	dir := extend.Forward
	switch s.set.Comparator().Compare(anchor, focus) {
	case boundary.After:
		r = boundary.Range{Start: focus, End: anchor}
		dir = extend.Backward
	case boundary.Incomparable:
		s.log.Debug("set base and extent: %s and %s are disconnected, collapsing", anchor, focus)
		r = boundary.Collapse(focus)
	}
	return s.replace(r, dir, ReasonSetBaseAndExtent)
}

// Extend moves the focus to p, keeping the anchor.
//
// The primary range is replaced by the range between anchor and p. In a
// normal selection the new range absorbs the parts of secondary ranges it
// covers. The notifier hears about the secondary ranges that were cut, then
// the region whose state changed, then the new primary range, then every
// secondary range. When p cannot be ordered against the anchor and focus,
// the primary range collapses at p.
func (s *Selection) Extend(p boundary.Point) error {
	if s.closed {
		return ErrClosed
	}
	if s.primary == nil {
		return fmt.Errorf("extend: %w", ErrNoRange)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("extend: %w", err)
	}

	old := s.primary
	if s.set.IndexOf(old) < 0 {
		if slices.Contains(s.set.Invalid(), old) {
			return fmt.Errorf("extend: primary range %s is no longer valid: %w", old, ErrNoRange)
		}
		return &rangeset.InconsistencyError{Op: "extend", Detail: fmt.Sprintf("primary range %s is missing", old)}
	}

	res := extend.Classify(s.set.Comparator(), s.anchorOf(old), s.focusOf(old), p, s.direction)
	if res.Fallback {
		s.log.Debug("extend to %s: disconnected from %s, collapsing", p, old)
	}

	if err := s.set.Remove(old); err != nil {
		return fmt.Errorf("extend: %w", err)
	}
	rec := rangeset.NewRecord(res.Range, old.Style)
	idx, trim, err := s.insert(rec)
	if err != nil {
		if _, rerr := s.ins.insert(s.set, old); rerr != nil {
			s.log.Error("extend: restoring primary range %s: %v", old, rerr)
		}
		return fmt.Errorf("extend to %s: %w", p, err)
	}
	s.primary = s.set.At(idx)
	s.direction = res.Direction

	s.notifyTrim(trim)
	if res.Fallback {
		s.notify(old.Range, false)
	} else {
		s.notify(res.Delta, res.DeltaSelected)
		s.notify(res.Range, true)
	}
	s.renotifySecondaries()
	s.changed(ReasonExtend)
	return nil
}

// Anchor returns the fixed end of the primary range, or an unset point.
func (s *Selection) Anchor() boundary.Point {
	if s.primary == nil {
		return boundary.Point{}
	}
	return s.anchorOf(s.primary)
}

// Focus returns the moving end of the primary range, or an unset point.
func (s *Selection) Focus() boundary.Point {
	if s.primary == nil {
		return boundary.Point{}
	}
	return s.focusOf(s.primary)
}

// Direction returns the selection direction.
func (s *Selection) Direction() extend.Direction {
	return s.direction
}

// SetDirection sets which end of the primary range is the anchor.
func (s *Selection) SetDirection(d extend.Direction) {
	s.direction = d
}

// PrimaryIndex returns the current index of the primary range.
func (s *Selection) PrimaryIndex() (int, bool) {
	if s.primary == nil {
		return -1, false
	}
	i := s.set.IndexOf(s.primary)
	return i, i >= 0
}

// RangeCount returns the number of ranges.
func (s *Selection) RangeCount() int {
	s.set.ReorderIfNecessary()
	return s.set.Len()
}

// RangeAt returns the range at index i in document order.
func (s *Selection) RangeAt(i int) (boundary.Range, bool) {
	s.set.ReorderIfNecessary()
	rec := s.set.At(i)
	if rec == nil {
		return boundary.Range{}, false
	}
	return rec.Range, true
}

// Ranges returns every range in document order.
func (s *Selection) Ranges() []boundary.Range {
	records := s.set.Records()
	out := make([]boundary.Range, len(records))
	for i, rec := range records {
		out[i] = rec.Range
	}
	return out
}

// Records returns the records held by the selection in document order.
func (s *Selection) Records() []*rangeset.Record {
	return s.set.Records()
}

// IsCollapsed returns true if the selection is empty or holds a single
// collapsed range.
func (s *Selection) IsCollapsed() bool {
	s.set.ReorderIfNecessary()
	switch s.set.Len() {
	case 0:
		return true
	case 1:
		return s.set.At(0).Range.Collapsed()
	default:
		return false
	}
}

// ContainsPoint returns true if some range covers or touches p.
func (s *Selection) ContainsPoint(p boundary.Point) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, fmt.Errorf("contains point: %w", err)
	}
	return s.set.ContainsPoint(p)
}

// Overlapping returns the ranges overlapping [begin, end).
func (s *Selection) Overlapping(begin, end boundary.Point, allowAdjacent bool) ([]boundary.Range, error) {
	if err := begin.Validate(); err != nil {
		return nil, fmt.Errorf("overlapping: %w", err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("overlapping: %w", err)
	}
	records, err := s.set.Overlapping(begin, end, allowAdjacent)
	if err != nil {
		return nil, err
	}
	out := make([]boundary.Range, len(records))
	for i, rec := range records {
		out[i] = rec.Range
	}
	return out, nil
}

// Close releases every range and removes the selection from its registry.
// Listeners are not called.
func (s *Selection) Close() {
	if s.closed {
		return
	}
	removed := s.clear()
	s.set.Close()
	s.notifyAll(removed, false)
	if s.registry != nil {
		s.registry.remove(s.handle)
	}
	s.listeners = nil
	s.closed = true
}

// replace swaps every range for r and makes it primary. On failure the
// previous ranges are put back.
func (s *Selection) replace(r boundary.Range, dir extend.Direction, reason Reason) error {
	primary, direction := s.primary, s.direction
	removed := s.clear()
	rec := rangeset.NewRecord(r, nil)
	if _, err := s.ins.insert(s.set, rec); err != nil {
		s.set.Restore(removed)
		s.primary, s.direction = primary, direction
		return fmt.Errorf("%s: %w", reason, err)
	}
	s.primary = rec
	s.direction = dir

	s.notifyAll(removed, false)
	s.notify(r, true)
	s.changed(reason)
	return nil
}

// trim lists the records an exclusive insert cut away and the fragments
// left in their place.
type trim struct {
	dropped   []*rangeset.Record
	fragments []*rangeset.Record
}

// insert places rec and reports the records the insert cut.
func (s *Selection) insert(rec *rangeset.Record) (int, trim, error) {
	before := s.set.Records()
	idx, err := s.ins.insert(s.set, rec)
	if err != nil {
		return idx, trim{}, err
	}
	var t trim
	for _, r := range before {
		if !r.Registered() {
			t.dropped = append(t.dropped, r)
		}
	}
	if len(t.dropped) > 0 {
		for _, r := range s.set.Records() {
			if r != rec && !slices.Contains(before, r) {
				t.fragments = append(t.fragments, r)
			}
		}
	}
	return idx, t, nil
}

func (s *Selection) notifyTrim(t trim) {
	s.notifyAll(t.dropped, false)
	s.notifyAll(t.fragments, true)
}

func (s *Selection) clear() []*rangeset.Record {
	removed := s.set.Clear()
	s.primary = nil
	s.direction = extend.Forward
	return removed
}

func (s *Selection) notifyAll(records []*rangeset.Record, selected bool) {
	for _, rec := range records {
		s.notify(rec.Range, selected)
	}
}

// renotifySecondaries reports every range but the primary as selected.
// Membership is rechecked before each call.
func (s *Selection) renotifySecondaries() {
	if s.set.Len() < 2 {
		return
	}
	for _, rec := range s.set.Records() {
		if rec == s.primary || s.set.IndexOf(rec) < 0 {
			continue
		}
		s.notify(rec.Range, true)
	}
}

func (s *Selection) find(r boundary.Range) *rangeset.Record {
	for _, rec := range s.set.Records() {
		if rec.Range.Equal(r) {
			return rec
		}
	}
	for _, rec := range s.set.Invalid() {
		if rec.Range.Equal(r) {
			return rec
		}
	}
	return nil
}

// checkRange validates both points. A range whose points are disconnected
// collapses at its end.
func (s *Selection) checkRange(r boundary.Range) (boundary.Range, error) {
	if err := r.Start.Validate(); err != nil {
		return r, fmt.Errorf("start: %w", err)
	}
	if err := r.End.Validate(); err != nil {
		return r, fmt.Errorf("end: %w", err)
	}
	switch s.set.Comparator().Compare(r.Start, r.End) {
	case boundary.After:
		return r, fmt.Errorf("start %s is after end %s: %w", r.Start, r.End, boundary.ErrInvalidArgument)
	case boundary.Incomparable:
		s.log.Debug("range %s is disconnected, collapsing at its end", r)
		return boundary.Range{Start: r.End, End: r.End, Pinned: r.Pinned}, nil
	}
	return r, nil
}

func (s *Selection) anchorOf(rec *rangeset.Record) boundary.Point {
	if s.direction == extend.Forward {
		return rec.Range.Start
	}
	return rec.Range.End
}

func (s *Selection) focusOf(rec *rangeset.Record) boundary.Point {
	if s.direction == extend.Forward {
		return rec.Range.End
	}
	return rec.Range.Start
}
