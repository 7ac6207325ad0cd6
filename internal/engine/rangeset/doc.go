// Package rangeset maintains the ordered set of ranges backing a selection.
//
// A Set holds Records, each a boundary.Range plus opaque style metadata, in
// document order of their start points. Order is maintained lazily: any
// index-based query first calls ReorderIfNecessary, which is a no-op unless
// the tree generation moved on or the set was marked dirty.
//
// Queries:
//
//   - FindInsertionPoint is the single binary search every other query uses.
//   - IndicesForInterval returns the half-open span of records overlapping an
//     interval, optionally widened to records that merely touch it.
//
// Insertion comes in two flavors:
//
//   - InsertExclusive keeps records disjoint. Records overlapping the new
//     range are removed and their leftover fragments (see Subtract) are
//     spliced back around it.
//   - InsertNonExclusive allows overlap and only keeps start order.
//
// Set is not safe for concurrent use. It never calls back into foreign code
// except through its Registrar.
package rangeset
