// Package selection is the facade over an ordered range set: a primary
// range with an anchor and a focus, any number of secondary ranges, and the
// notifications that keep painters and scripts in step.
//
// # Kinds
//
// A normal selection is exclusive: overlapping ranges are merged away on
// insertion. Highlight and spellcheck selections keep overlaps. The kind is
// fixed when the selection is created.
//
// # Callbacks
//
// Two kinds of callbacks run synchronously from mutations:
//
//   - A Notifier hears about every range whose selected state changed, one
//     call per disjoint range. Collapsed ranges are never reported.
//   - Listeners hear one Change per mutation. Inside Batch they hear a
//     single ReasonBatch change when the outermost batch ends.
//
// Callbacks may re-enter the selection. Mutations finish updating the set
// before the first callback runs, and every index is re-derived after a
// callback returns. A panicking callback is recovered at the callback
// boundary and reported through LastCallbackError.
//
// A Selection is not safe for concurrent use.
package selection
