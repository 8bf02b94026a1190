// Package luahost exposes an editor to Lua scripts. The registered
// "markbuf" module operates on the editor's current buffer; rows and
// columns use the core's 0-indexed coordinates.
package luahost

import (
	"context"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/cursor"
	"github.com/markbuf/markbuf/editor"
	"github.com/markbuf/markbuf/mark"
	"github.com/markbuf/markbuf/region"
)

// Host binds an editor to a Lua state.
type Host struct {
	ed     editor.Editor
	ctx    context.Context
	log    *slog.Logger
	reaper *mark.Reaper
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host's logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Host) {
		if log != nil {
			h.log = log
		}
	}
}

// WithContext sets the context used for lock acquisition. Cancelling it
// makes every subsequent script operation fail.
func WithContext(ctx context.Context) Option {
	return func(h *Host) {
		if ctx != nil {
			h.ctx = ctx
		}
	}
}

// WithReaper sets the reaper used for marks the host creates, notably
// the region endpoints of region_content and region_set_content.
func WithReaper(r *mark.Reaper) Option {
	return func(h *Host) {
		if r != nil {
			h.reaper = r
		}
	}
}

// New creates a host around ed.
func New(ed editor.Editor, opts ...Option) *Host {
	h := &Host{
		ed:  ed,
		ctx: context.Background(),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register installs the "markbuf" module as a global table in L.
func (h *Host) Register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "new_buffer", L.NewFunction(h.newBuffer))
	L.SetField(mod, "line_count", L.NewFunction(h.lineCount))
	L.SetField(mod, "get_line", L.NewFunction(h.getLine))
	L.SetField(mod, "get_content", L.NewFunction(h.getContent))
	L.SetField(mod, "set_content", L.NewFunction(h.setContent))
	L.SetField(mod, "set_text", L.NewFunction(h.setText))
	L.SetField(mod, "append", L.NewFunction(h.append))
	L.SetField(mod, "prepend", L.NewFunction(h.prepend))
	L.SetField(mod, "get_cursor", L.NewFunction(h.getCursor))
	L.SetField(mod, "set_cursor", L.NewFunction(h.setCursor))
	L.SetField(mod, "type_text", L.NewFunction(h.typeText))
	L.SetField(mod, "create_mark", L.NewFunction(h.createMark))
	L.SetField(mod, "mark_position", L.NewFunction(h.markPosition))
	L.SetField(mod, "destroy_mark", L.NewFunction(h.destroyMark))
	L.SetField(mod, "set_mark_gravity", L.NewFunction(h.setMarkGravity))
	L.SetField(mod, "region_content", L.NewFunction(h.regionContent))
	L.SetField(mod, "region_set_content", L.NewFunction(h.regionSetContent))

	L.SetGlobal("markbuf", mod)
}

func (h *Host) withRead(L *lua.LState, op string, f func(l buffer.ReadLock) error) {
	bh, err := h.ed.CurrentBuffer(h.ctx)
	if err != nil {
		L.RaiseError("%s: %v", op, err)
		return
	}

	l, err := bh.Read(h.ctx)
	if err != nil {
		L.RaiseError("%s: %v", op, err)
		return
	}
	defer l.Release()

	if err := f(l); err != nil {
		L.RaiseError("%s: %v", op, err)
	}
}

func (h *Host) withWrite(L *lua.LState, op string, f func(l buffer.WriteLock) error) {
	bh, err := h.ed.CurrentBuffer(h.ctx)
	if err != nil {
		L.RaiseError("%s: %v", op, err)
		return
	}

	l, err := bh.Write(h.ctx)
	if err != nil {
		L.RaiseError("%s: %v", op, err)
		return
	}
	defer l.Release()

	if err := f(l); err != nil {
		L.RaiseError("%s: %v", op, err)
	}
}

// new_buffer()
// Creates an empty buffer and makes it current.
func (h *Host) newBuffer(L *lua.LState) int {
	bh, err := h.ed.NewBuffer(h.ctx)
	if err != nil {
		L.RaiseError("new_buffer: %v", err)
		return 0
	}

	l, err := bh.Write(h.ctx)
	if err != nil {
		L.RaiseError("new_buffer: %v", err)
		return 0
	}
	defer l.Release()

	if err := h.ed.SetCurrentBuffer(l); err != nil {
		L.RaiseError("new_buffer: %v", err)
	}
	return 0
}

// line_count() -> number
func (h *Host) lineCount(L *lua.LState) int {
	h.withRead(L, "line_count", func(l buffer.ReadLock) error {
		n, err := l.LineCount()
		if err != nil {
			return err
		}
		L.Push(lua.LNumber(n))
		return nil
	})
	return 1
}

// get_line(row) -> string
func (h *Host) getLine(L *lua.LState) int {
	row := L.CheckInt(1)

	h.withRead(L, "get_line", func(l buffer.ReadLock) error {
		line, err := buffer.Line(l, row)
		if err != nil {
			return err
		}
		L.Push(lua.LString(line))
		return nil
	})
	return 1
}

// get_content() -> string
func (h *Host) getContent(L *lua.LState) int {
	h.withRead(L, "get_content", func(l buffer.ReadLock) error {
		content, err := buffer.Content(l)
		if err != nil {
			return err
		}
		L.Push(lua.LString(content))
		return nil
	})
	return 1
}

// set_content(text)
func (h *Host) setContent(L *lua.LState) int {
	text := L.CheckString(1)

	h.withWrite(L, "set_content", func(l buffer.WriteLock) error {
		return buffer.SetContent(l, text)
	})
	return 0
}

// set_text(start_row, start_col, end_row, end_col, text)
func (h *Host) setText(L *lua.LState) int {
	start := buffer.Position{Row: L.CheckInt(1), Col: L.CheckInt(2)}
	end := buffer.Position{Row: L.CheckInt(3), Col: L.CheckInt(4)}
	text := L.CheckString(5)

	h.withWrite(L, "set_text", func(l buffer.WriteLock) error {
		return l.SetText(start, end, text)
	})
	return 0
}

// append(text)
func (h *Host) append(L *lua.LState) int {
	text := L.CheckString(1)

	h.withWrite(L, "append", func(l buffer.WriteLock) error {
		return buffer.Append(l, text)
	})
	return 0
}

// prepend(text)
func (h *Host) prepend(L *lua.LState) int {
	text := L.CheckString(1)

	h.withWrite(L, "prepend", func(l buffer.WriteLock) error {
		return buffer.Prepend(l, text)
	})
	return 0
}

// get_cursor() -> row, col
func (h *Host) getCursor(L *lua.LState) int {
	h.withRead(L, "get_cursor", func(l buffer.ReadLock) error {
		cr, err := cursor.AsReader(l)
		if err != nil {
			return err
		}
		p, err := cr.Cursor()
		if err != nil {
			return err
		}
		L.Push(lua.LNumber(p.Row))
		L.Push(lua.LNumber(p.Col))
		return nil
	})
	return 2
}

// set_cursor(row, col)
func (h *Host) setCursor(L *lua.LState) int {
	p := buffer.Position{Row: L.CheckInt(1), Col: L.CheckInt(2)}

	h.withWrite(L, "set_cursor", func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cw.SetCursor(p)
	})
	return 0
}

// type_text(text)
func (h *Host) typeText(L *lua.LState) int {
	text := L.CheckString(1)

	h.withWrite(L, "type_text", func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cursor.TypeText(cw, text)
	})
	return 0
}

// create_mark(row, col) -> id
func (h *Host) createMark(L *lua.LState) int {
	p := buffer.Position{Row: L.CheckInt(1), Col: L.CheckInt(2)}

	h.withWrite(L, "create_mark", func(l buffer.WriteLock) error {
		w, err := mark.AsWriter(l)
		if err != nil {
			return err
		}
		id, err := w.CreateMark(p)
		if err != nil {
			return err
		}
		L.Push(lua.LString(id))
		return nil
	})
	return 1
}

// mark_position(id) -> row, col
func (h *Host) markPosition(L *lua.LState) int {
	id := mark.ID(L.CheckString(1))

	h.withRead(L, "mark_position", func(l buffer.ReadLock) error {
		r, err := mark.AsReader(l)
		if err != nil {
			return err
		}
		p, err := r.MarkPosition(id)
		if err != nil {
			return err
		}
		L.Push(lua.LNumber(p.Row))
		L.Push(lua.LNumber(p.Col))
		return nil
	})
	return 2
}

// destroy_mark(id)
func (h *Host) destroyMark(L *lua.LState) int {
	id := mark.ID(L.CheckString(1))

	h.withWrite(L, "destroy_mark", func(l buffer.WriteLock) error {
		w, err := mark.AsWriter(l)
		if err != nil {
			return err
		}
		return w.DestroyMark(id)
	})
	return 0
}

// set_mark_gravity(id, "left"|"right")
func (h *Host) setMarkGravity(L *lua.LState) int {
	id := mark.ID(L.CheckString(1))
	name := L.CheckString(2)

	var g mark.Gravity
	switch name {
	case "left":
		g = mark.GravityLeft
	case "right":
		g = mark.GravityRight
	default:
		L.RaiseError("set_mark_gravity: unknown gravity %q", name)
		return 0
	}

	h.withWrite(L, "set_mark_gravity", func(l buffer.WriteLock) error {
		w, err := mark.AsWriter(l)
		if err != nil {
			return err
		}
		return w.SetMarkGravity(id, g)
	})
	return 0
}

func (h *Host) openRegion(L *lua.LState, op string) *region.Region {
	start := buffer.Position{Row: L.CheckInt(1), Col: L.CheckInt(2)}
	end := buffer.Position{Row: L.CheckInt(3), Col: L.CheckInt(4)}

	parent, err := h.ed.CurrentBuffer(h.ctx)
	if err != nil {
		L.RaiseError("%s: %v", op, err)
		return nil
	}

	var opts []mark.Option
	if h.reaper != nil {
		opts = append(opts, mark.WithReaper(h.reaper))
	}

	r, err := region.New(h.ctx, parent, start, end, opts...)
	if err != nil {
		L.RaiseError("%s: %v", op, err)
		return nil
	}
	return r
}

// region_content(start_row, start_col, end_row, end_col) -> string
func (h *Host) regionContent(L *lua.LState) int {
	r := h.openRegion(L, "region_content")
	defer r.Close()

	l, err := r.Read(h.ctx)
	if err != nil {
		L.RaiseError("region_content: %v", err)
		return 0
	}
	defer l.Release()

	content, err := buffer.Content(l)
	if err != nil {
		L.RaiseError("region_content: %v", err)
		return 0
	}
	L.Push(lua.LString(content))
	return 1
}

// region_set_content(start_row, start_col, end_row, end_col, text)
// Replaces the span between the two positions of the current buffer.
func (h *Host) regionSetContent(L *lua.LState) int {
	text := L.CheckString(5)

	r := h.openRegion(L, "region_set_content")
	defer r.Close()

	l, err := r.Write(h.ctx)
	if err != nil {
		L.RaiseError("region_set_content: %v", err)
		return 0
	}
	defer l.Release()

	if err := buffer.SetContent(l, text); err != nil {
		L.RaiseError("region_set_content: %v", err)
	}
	return 0
}
