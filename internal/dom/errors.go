package dom

import "errors"

// Errors returned by tree mutations and loading.
var (
	// ErrHierarchy indicates a mutation that would break the tree shape, such as
	// appending a node to its own descendant or adding children to a text node.
	ErrHierarchy = errors.New("hierarchy request error")

	// ErrNotChild indicates a reference node that is not a child of the parent.
	ErrNotChild = errors.New("node is not a child")

	// ErrWrongDocument indicates a node that belongs to another document.
	ErrWrongDocument = errors.New("node belongs to another document")

	// ErrDuplicateID indicates two nodes created with the same id.
	ErrDuplicateID = errors.New("duplicate node id")
)
