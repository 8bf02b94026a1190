package region

import (
	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/cursor"
	"github.com/markbuf/markbuf/mark"
)

// Access presents a locked region as a read-locked buffer. It wraps the
// parent's lock for the duration of the region lock and translates every
// coordinate between the two spaces.
type Access struct {
	start *mark.Mark
	end   *mark.Mark
	marks mark.Reader
	lock  buffer.ReadLock
}

// Release releases the wrapped parent lock.
func (a *Access) Release() {
	a.lock.Release()
}

func (a *Access) bounds() (s, e buffer.Position, err error) {
	s, err = a.start.PositionLocked(a.marks)
	if err != nil {
		return s, e, err
	}
	e, err = a.end.PositionLocked(a.marks)
	if err != nil {
		return s, e, err
	}
	if e.Before(s) {
		return s, e, buffer.ErrInvalidRange
	}
	return s, e, nil
}

// RealPosition translates a region-relative position into parent
// coordinates.
func (a *Access) RealPosition(p buffer.Position) (buffer.Position, error) {
	s, err := a.start.PositionLocked(a.marks)
	if err != nil {
		return buffer.Position{}, err
	}

	col := p.Col
	if p.Row == 0 {
		col = s.Col + p.Col
	}
	return buffer.Position{Row: s.Row + p.Row, Col: col}, nil
}

// RegionPosition translates a parent position into region coordinates.
// Positions before the region start report negative rows or columns in
// the returned bounds error; positions past the region end fail region
// validation.
func (a *Access) RegionPosition(q buffer.Position) (buffer.Position, error) {
	s, err := a.start.PositionLocked(a.marks)
	if err != nil {
		return buffer.Position{}, err
	}

	row := q.Row - s.Row
	col := q.Col
	if q.Row == s.Row {
		col = q.Col - s.Col
	}

	if row < 0 {
		return buffer.Position{}, &buffer.RowError{Row: row, Limit: 0}
	}
	if col < 0 {
		return buffer.Position{}, &buffer.ColError{Col: col, Limit: 0}
	}

	p := buffer.Position{Row: row, Col: col}
	if err := buffer.ValidatePos(a, p); err != nil {
		return buffer.Position{}, err
	}
	return p, nil
}

// LineCount returns the number of lines the region spans.
func (a *Access) LineCount() (int, error) {
	s, e, err := a.bounds()
	if err != nil {
		return 0, err
	}
	return e.Row - s.Row + 1, nil
}

// Lines returns the region's lines in [start, end), trimming the first
// and last region lines to the region bounds. When the region spans a
// single line both trims apply to the same string, end first.
func (a *Access) Lines(start, end int) ([]string, error) {
	lineCount, err := a.LineCount()
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, buffer.ErrInvalidRange
	}
	if start < 0 {
		return nil, &buffer.RowError{Row: start, Limit: lineCount - 1}
	}
	if end > lineCount {
		return nil, &buffer.RowError{Row: end - 1, Limit: lineCount - 1}
	}

	s, e, err := a.bounds()
	if err != nil {
		return nil, err
	}

	partialFirst := start == 0
	partialLast := end == lineCount

	lines, err := a.marks.Lines(start+s.Row, end+s.Row)
	if err != nil {
		return nil, err
	}

	if partialLast && len(lines) > 0 {
		l := lines[len(lines)-1]
		if e.Col < len(l) {
			lines[len(lines)-1] = l[:e.Col]
		}
	}
	if partialFirst && len(lines) > 0 {
		l := lines[0]
		if s.Col < len(l) {
			lines[0] = l[s.Col:]
		} else {
			lines[0] = ""
		}
	}

	return lines, nil
}

// MarkPosition returns a parent mark's position in region coordinates.
func (a *Access) MarkPosition(id mark.ID) (buffer.Position, error) {
	q, err := a.marks.MarkPosition(id)
	if err != nil {
		return buffer.Position{}, err
	}
	return a.RegionPosition(q)
}

// Cursor returns the parent cursor in region coordinates. It fails with
// the usual bounds errors when the cursor lies outside the region.
func (a *Access) Cursor() (buffer.Position, error) {
	cr, ok := a.lock.(cursor.Reader)
	if !ok {
		return buffer.Position{}, cursor.ErrNotSupported
	}

	q, err := cr.Cursor()
	if err != nil {
		return buffer.Position{}, err
	}
	return a.RegionPosition(q)
}

// WriteAccess presents a locked region as a write-locked buffer.
type WriteAccess struct {
	Access
	marksW mark.Writer
}

// SetText validates both endpoints against the region's current bounds,
// translates them, and delegates the splice to the parent. The delimiting
// marks' gravity keeps the region tracking the edit.
func (w *WriteAccess) SetText(start, end buffer.Position, text string) error {
	if err := buffer.ValidatePos(w, start); err != nil {
		return err
	}
	if err := buffer.ValidatePos(w, end); err != nil {
		return err
	}

	absStart, err := w.RealPosition(start)
	if err != nil {
		return err
	}
	absEnd, err := w.RealPosition(end)
	if err != nil {
		return err
	}

	return w.marksW.SetText(absStart, absEnd, text)
}

// CreateMark creates a mark in the parent at the translated position.
func (w *WriteAccess) CreateMark(pos buffer.Position) (mark.ID, error) {
	abs, err := w.RealPosition(pos)
	if err != nil {
		return "", err
	}
	return w.marksW.CreateMark(abs)
}

// DestroyMark destroys a parent mark.
func (w *WriteAccess) DestroyMark(id mark.ID) error {
	return w.marksW.DestroyMark(id)
}

// SetMarkPosition moves a parent mark to the translated position.
func (w *WriteAccess) SetMarkPosition(id mark.ID, pos buffer.Position) error {
	abs, err := w.RealPosition(pos)
	if err != nil {
		return err
	}
	return w.marksW.SetMarkPosition(id, abs)
}

// SetMarkGravity changes a parent mark's gravity.
func (w *WriteAccess) SetMarkGravity(id mark.ID, g mark.Gravity) error {
	return w.marksW.SetMarkGravity(id, g)
}

// SetCursor validates the position against the region and moves the
// parent cursor to its translation.
func (w *WriteAccess) SetCursor(p buffer.Position) error {
	cw, ok := w.lock.(cursor.Writer)
	if !ok {
		return cursor.ErrNotSupported
	}

	if err := buffer.ValidatePos(w, p); err != nil {
		return err
	}

	abs, err := w.RealPosition(p)
	if err != nil {
		return err
	}
	return cw.SetCursor(abs)
}
