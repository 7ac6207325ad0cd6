package dom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/selengine/internal/engine/boundary"
)

var (
	_ boundary.Tree       = (*Document)(nil)
	_ boundary.Observable = (*Document)(nil)
)

// RootID is the id of a document's root element.
const RootID = "#root"

// Document is a tree of nodes with a structural generation counter.
// Document is not safe for concurrent use.
type Document struct {
	root       *Node
	ids        map[string]*Node
	generation int64
	nextID     int

	observers  map[int]func(boundary.Remap)
	observerID int
}

// NewDocument creates a document with an empty root element.
func NewDocument() *Document {
	d := &Document{ids: make(map[string]*Node)}
	d.root = &Node{id: RootID, kind: ElementNode, doc: d}
	d.ids[RootID] = d.root
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Node {
	return d.root
}

// Generation returns the structural mutation counter.
func (d *Document) Generation() int64 {
	return d.generation
}

// CreateElement creates a detached element. An empty id is generated.
func (d *Document) CreateElement(id string) (*Node, error) {
	return d.create(id, ElementNode, "")
}

// CreateText creates a detached text node. An empty id is generated.
func (d *Document) CreateText(id, text string) (*Node, error) {
	return d.create(id, TextNode, text)
}

// Lookup returns the node with the given id, attached or not.
func (d *Document) Lookup(id string) (*Node, bool) {
	n, ok := d.ids[id]
	return n, ok
}

// MustLookup is like Lookup but panics on unknown ids. Intended for tests.
func (d *Document) MustLookup(id string) *Node {
	n, ok := d.ids[id]
	if !ok {
		panic(fmt.Sprintf("dom: no node %q", id))
	}
	return n
}

// Attached returns true if n is connected to the document root.
func (d *Document) Attached(n *Node) bool {
	return n != nil && n.doc == d && n.Root() == d.root
}

// TextContent returns the concatenated text of all attached text nodes.
func (d *Document) TextContent() string {
	var sb strings.Builder
	d.Walk(func(n *Node) bool {
		if n.kind == TextNode {
			sb.WriteString(string(n.text))
		}
		return true
	})
	return sb.String()
}

// Walk visits attached nodes in tree order. Returning false from fn skips the
// node's subtree.
func (d *Document) Walk(fn func(n *Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(d.root)
}

// IsValid implements boundary.Tree.
func (d *Document) IsValid(p boundary.Point) bool {
	n, ok := p.Container.(*Node)
	if !ok || !d.Attached(n) {
		return false
	}
	return p.Offset <= n.Length()
}

// NewCache implements boundary.Tree.
func (d *Document) NewCache() boundary.Cache {
	return NewPositionCache(d)
}

// Observe implements boundary.Observable. Live points inside a removed
// subtree move to the removed node's old position in its parent, and points
// past the end of shortened text are clamped.
func (d *Document) Observe(fn func(boundary.Remap)) func() {
	if d.observers == nil {
		d.observers = make(map[int]func(boundary.Remap))
	}
	d.observerID++
	id := d.observerID
	d.observers[id] = fn
	return func() { delete(d.observers, id) }
}

func (d *Document) remap(m boundary.Remap) {
	ids := make([]int, 0, len(d.observers))
	for id := range d.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := d.observers[id]; ok {
			fn(m)
		}
	}
}

func (d *Document) childInserted(parent *Node, index int) {
	d.remap(func(p boundary.Point) boundary.Point {
		if p.Container == boundary.Node(parent) && p.Offset > uint32(index) {
			p.Offset++
		}
		return p
	})
}

func (d *Document) childRemoved(parent *Node, index int, child *Node) {
	d.remap(func(p boundary.Point) boundary.Point {
		n, ok := p.Container.(*Node)
		switch {
		case !ok:
		case child.Contains(n):
			return boundary.At(parent, uint32(index))
		case n == parent && p.Offset > uint32(index):
			p.Offset--
		}
		return p
	})
}

func (d *Document) textChanged(n *Node) {
	length := n.Length()
	d.remap(func(p boundary.Point) boundary.Point {
		if p.Container == boundary.Node(n) && p.Offset > length {
			p.Offset = length
		}
		return p
	})
}

func (d *Document) create(id string, kind Kind, text string) (*Node, error) {
	if id == "" {
		id = d.generateID(kind)
	}
	if _, exists := d.ids[id]; exists {
		return nil, fmt.Errorf("create %q: %w", id, ErrDuplicateID)
	}
	n := &Node{id: id, kind: kind, doc: d}
	if kind == TextNode {
		n.text = []rune(text)
	}
	d.ids[id] = n
	return n, nil
}

func (d *Document) generateID(kind Kind) string {
	prefix := "e"
	if kind == TextNode {
		prefix = "t"
	}
	for {
		d.nextID++
		id := fmt.Sprintf("%s%d", prefix, d.nextID)
		if _, exists := d.ids[id]; !exists {
			return id
		}
	}
}

func (d *Document) bump() {
	d.generation++
}
