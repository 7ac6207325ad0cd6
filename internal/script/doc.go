// Package script drives a selection from Lua.
//
// A Runtime owns a sandboxed gopher-lua state with two global modules.
// Points are written as a node id followed by an offset.
//
//	sel.add(start_id, start_off, end_id, end_off [, style]) -> index (1-based)
//	sel.extend(id, off)
//	sel.collapse(id, off)
//	sel.set_base_and_extent(anchor_id, anchor_off, focus_id, focus_off)
//	sel.remove_all()
//	sel.count() -> n
//	sel.direction() -> "forward" | "backward"
//	sel.anchor() -> id, off
//	sel.focus() -> id, off
//	sel.ranges() -> { {start_node=, start_offset=, end_node=, end_offset=, style=}, ... }
//	sel.on_change(function(reason, count) ... end)
//
//	doc.append_text(parent_id, id, text)
//	doc.set_text(id, text)
//	doc.remove(id)
//	doc.text() -> string
//
// on_change handlers run synchronously after each selection change and may
// mutate the selection again. Nesting is capped; a handler that keeps
// changing the selection stops at the cap and the failure is recorded.
//
// Only the base, table, string and math libraries are opened, and dofile,
// loadfile, load and loadstring are removed.
package script
