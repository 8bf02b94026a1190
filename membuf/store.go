package membuf

import (
	"strings"

	"github.com/google/uuid"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/mark"
)

// store is the unsynchronized line storage behind a Handle. All access
// goes through a held lock; methods here assume exclusive or shared
// access has already been arranged.
type store struct {
	id     string
	lines  []string
	marks  map[mark.ID]*markState
	cursor buffer.Position
}

type markState struct {
	pos     buffer.Position
	gravity mark.Gravity
}

func newStore() *store {
	return &store{
		id:    uuid.NewString(),
		lines: []string{""},
		marks: make(map[mark.ID]*markState),
	}
}

func (s *store) lineCount() int {
	return len(s.lines)
}

func (s *store) maxRow() int {
	return len(s.lines) - 1
}

func (s *store) linesRange(start, end int) ([]string, error) {
	if start > end {
		return nil, buffer.ErrInvalidRange
	}
	if start < 0 {
		return nil, &buffer.RowError{Row: start, Limit: s.maxRow()}
	}
	if end > len(s.lines) {
		return nil, &buffer.RowError{Row: end - 1, Limit: s.maxRow()}
	}

	out := make([]string, end-start)
	copy(out, s.lines[start:end])
	return out, nil
}

func (s *store) validatePos(p buffer.Position) error {
	if p.Row < 0 || p.Row > s.maxRow() {
		return &buffer.RowError{Row: p.Row, Limit: s.maxRow()}
	}
	if limit := len(s.lines[p.Row]); p.Col < 0 || p.Col > limit {
		return &buffer.ColError{Col: p.Col, Limit: limit}
	}
	return nil
}

// setText replaces [a, b) with text, then drifts marks and clamps the
// cursor. Validation happens up front so a failed call mutates nothing.
func (s *store) setText(a, b buffer.Position, text string) error {
	if err := s.validatePos(a); err != nil {
		return err
	}
	if err := s.validatePos(b); err != nil {
		return err
	}
	if a.After(b) {
		return buffer.ErrInvalidRange
	}

	s.splice(a, b, text)
	s.driftMarks(a, b, buffer.MaxTextPos(text))
	s.clampCursor()
	return nil
}

func (s *store) splice(a, b buffer.Position, text string) {
	prefix := s.lines[a.Row][:a.Col]
	suffix := s.lines[b.Row][b.Col:]

	ins := strings.Split(text, "\n")
	ins[0] = prefix + ins[0]
	ins[len(ins)-1] += suffix

	out := make([]string, 0, a.Row+len(ins)+len(s.lines)-b.Row-1)
	out = append(out, s.lines[:a.Row]...)
	out = append(out, ins...)
	out = append(out, s.lines[b.Row+1:]...)
	s.lines = out
}

// driftMarks applies the sticky left/right policy after a splice of
// [a, b) whose inserted text has extent d.
func (s *store) driftMarks(a, b, d buffer.Position) {
	for _, m := range s.marks {
		m.pos = driftPosition(m.pos, a, b, d, m.gravity)
	}
}

func driftPosition(p, a, b, d buffer.Position, g mark.Gravity) buffer.Position {
	switch {
	case p.Before(a):
		return p

	case p.After(b):
		row := p.Row + d.Row - (b.Row - a.Row)
		col := p.Col
		if p.Row == b.Row {
			// p rides the insertion tail: its distance past b is kept,
			// measured from the column where the inserted text ends.
			tail := d.Col
			if d.Row == 0 {
				tail = a.Col + d.Col
			}
			col = p.Col - b.Col + tail
		}
		return buffer.Position{Row: row, Col: col}

	default:
		// Inside the replaced range, endpoints included: collapse
		// according to gravity.
		if g == mark.GravityLeft {
			return a
		}
		return a.Offset(d)
	}
}

func (s *store) clampCursor() {
	if s.cursor.Row > s.maxRow() {
		s.cursor.Row = s.maxRow()
	}
	if limit := len(s.lines[s.cursor.Row]); s.cursor.Col > limit {
		s.cursor.Col = limit
	}
}

func (s *store) createMark(pos buffer.Position) (mark.ID, error) {
	if err := s.validatePos(pos); err != nil {
		return "", err
	}

	id := mark.ID(uuid.NewString())
	s.marks[id] = &markState{pos: pos, gravity: mark.GravityRight}
	return id, nil
}

func (s *store) destroyMark(id mark.ID) error {
	if _, ok := s.marks[id]; !ok {
		return buffer.ErrMarkDestroyed
	}
	delete(s.marks, id)
	return nil
}

func (s *store) markPosition(id mark.ID) (buffer.Position, error) {
	m, ok := s.marks[id]
	if !ok {
		return buffer.Position{}, buffer.ErrMarkDestroyed
	}
	return m.pos, nil
}

func (s *store) setMarkPosition(id mark.ID, pos buffer.Position) error {
	m, ok := s.marks[id]
	if !ok {
		return buffer.ErrMarkDestroyed
	}
	if err := s.validatePos(pos); err != nil {
		return err
	}
	m.pos = pos
	return nil
}

func (s *store) setMarkGravity(id mark.ID, g mark.Gravity) error {
	m, ok := s.marks[id]
	if !ok {
		return buffer.ErrMarkDestroyed
	}
	m.gravity = g
	return nil
}

func (s *store) getCursor() buffer.Position {
	p := s.cursor
	if len(s.lines[p.Row]) == 0 {
		p.Col = 0
	}
	return p
}

func (s *store) setCursor(p buffer.Position) error {
	if err := s.validatePos(p); err != nil {
		return err
	}
	s.cursor = p
	return nil
}
