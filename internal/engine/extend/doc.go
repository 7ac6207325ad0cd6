// Package extend classifies a focus move against the current anchor and
// focus of a selection.
//
// Moving the focus from F to N while the anchor A stays put leaves the three
// points in one of six orderings. Each ordering determines the new range, the
// new direction, and the region whose selected state changed. Classification
// is pure; applying the result to a range set is the caller's job.
package extend
