package dom

import (
	"fmt"
	"slices"
)

// Kind is the type of a node.
type Kind uint8

const (
	// ElementNode holds child nodes.
	ElementNode Kind = iota
	// TextNode holds characters.
	TextNode
)

// String returns the kind name.
func (k Kind) String() string {
	if k == TextNode {
		return "text"
	}
	return "element"
}

// Node is an element or text node owned by a Document.
type Node struct {
	id       string
	kind     Kind
	doc      *Document
	parent   *Node
	children []*Node
	text     []rune
}

// ID returns the node's id.
func (n *Node) ID() string {
	return n.id
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildAt returns the child at index i, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Text returns the text of a text node.
func (n *Node) Text() string {
	return string(n.text)
}

// Length returns the child count for elements and the rune count for text.
func (n *Node) Length() uint32 {
	if n.kind == TextNode {
		return uint32(len(n.text))
	}
	return uint32(len(n.children))
}

// Index returns the node's position in its parent, or -1 without a parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Contains returns true if other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for ; other != nil; other = other.parent {
		if other == n {
			return true
		}
	}
	return false
}

// AppendChild adds child as the last child of n.
// A child that already has a parent is moved.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if err := n.checkInsert(child); err != nil {
		return err
	}
	if ref != nil && ref.parent != n {
		return fmt.Errorf("insert %s before %s: %w", child.id, ref.id, ErrNotChild)
	}
	if old := child.parent; old != nil {
		i := old.detach(child)
		n.doc.childRemoved(old, i, child)
	}
	idx := len(n.children)
	if ref != nil {
		idx = slices.Index(n.children, ref)
	}
	n.children = slices.Insert(n.children, idx, child)
	child.parent = n
	n.doc.bump()
	n.doc.childInserted(n, idx)
	return nil
}

// RemoveChild detaches child from n. The child keeps its own subtree.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return fmt.Errorf("remove child from %s: %w", n.id, ErrNotChild)
	}
	i := n.detach(child)
	n.doc.bump()
	n.doc.childRemoved(n, i, child)
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveChild(n)
}

// SetText replaces the text of a text node.
func (n *Node) SetText(text string) error {
	if n.kind != TextNode {
		return fmt.Errorf("set text on element %s: %w", n.id, ErrHierarchy)
	}
	n.text = []rune(text)
	n.doc.bump()
	n.doc.textChanged(n)
	return nil
}

// String returns the node's id.
func (n *Node) String() string {
	return n.id
}

func (n *Node) checkInsert(child *Node) error {
	if child == nil {
		return fmt.Errorf("insert nil child into %s: %w", n.id, ErrHierarchy)
	}
	if child.doc != n.doc {
		return fmt.Errorf("insert %s into %s: %w", child.id, n.id, ErrWrongDocument)
	}
	if n.kind == TextNode {
		return fmt.Errorf("insert %s into text node %s: %w", child.id, n.id, ErrHierarchy)
	}
	if child.Contains(n) {
		return fmt.Errorf("insert %s into its own subtree: %w", child.id, ErrHierarchy)
	}
	return nil
}

// detach unlinks child and returns the index it had.
func (n *Node) detach(child *Node) int {
	i := slices.Index(n.children, child)
	if i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.parent = nil
	return i
}
