// Package paint renders a document and its selected text to a terminal.
//
// A Painter draws the ranges of the selections it tracks. It is installed as
// their notifier too: notifications mark the screen dirty and record the
// damaged ranges, while Draw lays the document's text out on a tcell screen
// with the currently selected cells in reverse video.
package paint

import (
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/selengine/internal/dom"
	"github.com/dshills/selengine/internal/engine/boundary"
	"github.com/dshills/selengine/internal/engine/selection"
	"github.com/dshills/selengine/internal/logging"
)

var _ selection.Notifier = (*Painter)(nil)

// Span is a half-open run of rune offsets inside one text node.
type Span struct {
	From uint32
	To   uint32
}

// Source is a set of selected ranges, such as a *selection.Selection.
type Source interface {
	Ranges() []boundary.Range
}

// Painter tracks selected ranges and draws the document.
// A Painter is not safe for concurrent use.
type Painter struct {
	doc     *dom.Document
	cmp     *boundary.Comparator
	sources []Source
	damage  []boundary.Range
	dirty   bool
	drawn   int64

	normal   tcell.Style
	selected tcell.Style
	log      *logging.Logger
}

// Option configures a Painter.
type Option func(*Painter)

// WithStyles sets the styles for plain and selected cells.
func WithStyles(normal, selected tcell.Style) Option {
	return func(p *Painter) {
		p.normal = normal
		p.selected = selected
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Painter) {
		p.log = l
	}
}

// New creates a painter for doc.
func New(doc *dom.Document, opts ...Option) *Painter {
	p := &Painter{
		doc:      doc,
		cmp:      &boundary.Comparator{Tree: doc, Cache: doc.NewCache()},
		normal:   tcell.StyleDefault,
		selected: tcell.StyleDefault.Reverse(true),
		log:      logging.NullLogger,
		drawn:    doc.Generation(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = logging.OrNull(p.log).WithComponent("paint")
	return p
}

// Track adds src to the ranges the painter draws.
func (p *Painter) Track(src Source) {
	p.sources = append(p.sources, src)
}

// RangeSelectedStateChanged implements selection.Notifier. The range is
// recorded as damaged until the next Draw.
func (p *Painter) RangeSelectedStateChanged(r boundary.Range, selected bool) {
	p.dirty = true
	if !slices.ContainsFunc(p.damage, r.Equal) {
		p.damage = append(p.damage, r)
	}
	p.log.Debug("damaged %s selected=%t", r, selected)
}

// Ranges returns the ranges currently selected in every tracked source.
func (p *Painter) Ranges() []boundary.Range {
	var out []boundary.Range
	for _, src := range p.sources {
		out = append(out, src.Ranges()...)
	}
	return out
}

// Damage returns the ranges reported since the last Draw.
func (p *Painter) Damage() []boundary.Range {
	return slices.Clone(p.damage)
}

// Dirty returns true if a selection or the document changed since the last
// Draw.
func (p *Painter) Dirty() bool {
	return p.dirty || p.doc.Generation() != p.drawn
}

// Spans returns the merged selected runs of text node n, in offset order.
func (p *Painter) Spans(n *dom.Node) []Span {
	return p.spans(p.Ranges(), n)
}

func (p *Painter) spans(ranges []boundary.Range, n *dom.Node) []Span {
	if n == nil || n.Kind() != dom.TextNode {
		return nil
	}
	length := n.Length()
	var spans []Span
	for _, r := range ranges {
		if s, ok := p.clip(r, n, length); ok {
			spans = append(spans, s)
		}
	}
	return merge(spans)
}

// clip intersects r with the runes of n.
func (p *Painter) clip(r boundary.Range, n *dom.Node, length uint32) (Span, bool) {
	from, to := uint32(0), length
	if r.Start.Container == n {
		from = r.Start.Offset
	} else if p.cmp.Compare(r.Start, boundary.At(n, 0)) != boundary.Before {
		return Span{}, false
	}
	if r.End.Container == n {
		to = r.End.Offset
	} else if p.cmp.Compare(boundary.At(n, length), r.End) != boundary.Before {
		return Span{}, false
	}
	if from >= to {
		return Span{}, false
	}
	return Span{From: from, To: to}, true
}

func merge(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(a, b Span) int {
		return int(a.From) - int(b.From)
	})
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.From <= last.To {
			last.To = max(last.To, s.To)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Draw clears the screen and lays out the document's text from the top-left
// corner, wrapping at the screen width. A newline in the text starts a new
// row. Zero-width runes are skipped and wide runes take two cells. Draw does
// not call Show.
func (p *Painter) Draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	x, y := 0, 0
	ranges := p.Ranges()

	p.doc.Walk(func(n *dom.Node) bool {
		if y >= height {
			return false
		}
		if n.Kind() != dom.TextNode {
			return true
		}
		spans := p.spans(ranges, n)
		for i, r := range []rune(n.Text()) {
			if r == '\n' {
				x, y = 0, y+1
				continue
			}
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if x+w > width {
				x, y = 0, y+1
			}
			if y >= height {
				return false
			}
			style := p.normal
			if inSpans(spans, uint32(i)) {
				style = p.selected
			}
			screen.SetContent(x, y, r, nil, style)
			x += w
		}
		return true
	})
	p.dirty = false
	p.damage = nil
	p.drawn = p.doc.Generation()
}

func inSpans(spans []Span, off uint32) bool {
	for _, s := range spans {
		if off >= s.From && off < s.To {
			return true
		}
	}
	return false
}
