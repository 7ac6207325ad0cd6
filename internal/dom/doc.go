// Package dom provides a small document tree that implements the
// tree-position service used by the selection engine.
//
// Documents hold element and text nodes. Every structural mutation bumps the
// document generation, which invalidates cached order in range sets and the
// position cache used to compare boundary points.
//
// Nodes removed from the document keep their own subtree; boundary points in
// a removed subtree are incomparable with points in the document.
package dom
