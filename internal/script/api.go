package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selengine/internal/dom"
	"github.com/dshills/selengine/internal/engine/boundary"
)

func (r *Runtime) selFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"add":                 r.selAdd,
		"extend":              r.selExtend,
		"collapse":            r.selCollapse,
		"set_base_and_extent": r.selSetBaseAndExtent,
		"remove_all":          r.selRemoveAll,
		"count":               r.selCount,
		"direction":           r.selDirection,
		"anchor":              r.selAnchor,
		"focus":               r.selFocus,
		"ranges":              r.selRanges,
		"on_change":           r.selOnChange,
	}
}

func (r *Runtime) docFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"append_text": r.docAppendText,
		"set_text":    r.docSetText,
		"remove":      r.docRemove,
		"text":        r.docText,
	}
}

// checkNode resolves the node id at stack index i.
func (r *Runtime) checkNode(L *lua.LState, i int) *dom.Node {
	id := L.CheckString(i)
	n, ok := r.doc.Lookup(id)
	if !ok {
		L.ArgError(i, "no node "+id)
	}
	return n
}

// checkPoint reads a node id and offset starting at stack index i.
func (r *Runtime) checkPoint(L *lua.LState, i int) boundary.Point {
	n := r.checkNode(L, i)
	off := L.CheckInt(i + 1)
	if off < 0 {
		L.ArgError(i+1, "negative offset")
	}
	return boundary.At(n, uint32(off))
}

func pushPoint(L *lua.LState, p boundary.Point) int {
	n, ok := p.Container.(*dom.Node)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LNil)
		return 2
	}
	L.Push(lua.LString(n.ID()))
	L.Push(lua.LNumber(p.Offset))
	return 2
}

func (r *Runtime) selAdd(L *lua.LState) int {
	rng := boundary.Range{Start: r.checkPoint(L, 1), End: r.checkPoint(L, 3)}
	var style any
	if L.GetTop() >= 5 {
		style = L.CheckString(5)
	}
	idx, err := r.sel.AddRange(rng, style)
	if err != nil {
		L.RaiseError("sel.add: %v", err)
		return 0
	}
	L.Push(lua.LNumber(idx + 1))
	return 1
}

func (r *Runtime) selExtend(L *lua.LState) int {
	if err := r.sel.Extend(r.checkPoint(L, 1)); err != nil {
		L.RaiseError("sel.extend: %v", err)
	}
	return 0
}

func (r *Runtime) selCollapse(L *lua.LState) int {
	if err := r.sel.Collapse(r.checkPoint(L, 1)); err != nil {
		L.RaiseError("sel.collapse: %v", err)
	}
	return 0
}

func (r *Runtime) selSetBaseAndExtent(L *lua.LState) int {
	if err := r.sel.SetBaseAndExtent(r.checkPoint(L, 1), r.checkPoint(L, 3)); err != nil {
		L.RaiseError("sel.set_base_and_extent: %v", err)
	}
	return 0
}

func (r *Runtime) selRemoveAll(L *lua.LState) int {
	r.sel.RemoveAllRanges()
	return 0
}

func (r *Runtime) selCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.sel.RangeCount()))
	return 1
}

func (r *Runtime) selDirection(L *lua.LState) int {
	L.Push(lua.LString(r.sel.Direction().String()))
	return 1
}

func (r *Runtime) selAnchor(L *lua.LState) int {
	return pushPoint(L, r.sel.Anchor())
}

func (r *Runtime) selFocus(L *lua.LState) int {
	return pushPoint(L, r.sel.Focus())
}

func (r *Runtime) selRanges(L *lua.LState) int {
	list := L.NewTable()
	for _, rec := range r.sel.Records() {
		t := L.NewTable()
		setPoint(L, t, "start", rec.Range.Start)
		setPoint(L, t, "end", rec.Range.End)
		if s, ok := rec.Style.(string); ok {
			t.RawSetString("style", lua.LString(s))
		}
		list.Append(t)
	}
	L.Push(list)
	return 1
}

func setPoint(L *lua.LState, t *lua.LTable, prefix string, p boundary.Point) {
	if n, ok := p.Container.(*dom.Node); ok {
		t.RawSetString(prefix+"_node", lua.LString(n.ID()))
	}
	t.RawSetString(prefix+"_offset", lua.LNumber(p.Offset))
}

func (r *Runtime) selOnChange(L *lua.LState) int {
	r.handlers = append(r.handlers, L.CheckFunction(1))
	return 0
}

func (r *Runtime) docAppendText(L *lua.LState) int {
	parent := r.checkNode(L, 1)
	id := L.CheckString(2)
	text := L.CheckString(3)
	n, err := r.doc.CreateText(id, text)
	if err != nil {
		L.RaiseError("doc.append_text: %v", err)
		return 0
	}
	if err := parent.AppendChild(n); err != nil {
		L.RaiseError("doc.append_text: %v", err)
	}
	return 0
}

func (r *Runtime) docSetText(L *lua.LState) int {
	n := r.checkNode(L, 1)
	if err := n.SetText(L.CheckString(2)); err != nil {
		L.RaiseError("doc.set_text: %v", err)
	}
	return 0
}

func (r *Runtime) docRemove(L *lua.LState) int {
	if err := r.checkNode(L, 1).Remove(); err != nil {
		L.RaiseError("doc.remove: %v", err)
	}
	return 0
}

func (r *Runtime) docText(L *lua.LState) int {
	L.Push(lua.LString(r.doc.TextContent()))
	return 1
}
