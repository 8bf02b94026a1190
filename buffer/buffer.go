package buffer

import "strings"

// Reader is the primitive read surface of a buffer. A buffer is a
// non-empty ordered sequence of lines: LineCount is always at least 1,
// and an empty buffer has exactly one line of length 0.
//
// Implementations back this with whatever storage they like (a line
// slice, a rope, a host editor's native buffer); everything else in this
// package is derived from these two operations.
type Reader interface {
	// LineCount returns the number of lines, always >= 1.
	LineCount() (int, error)

	// Lines returns the lines in the half-open index range [start, end).
	// An end index past the line count is an error.
	Lines(start, end int) ([]string, error)
}

// Writer is the primitive write surface of a buffer.
type Writer interface {
	Reader

	// SetText replaces the text between start (inclusive) and end
	// (exclusive) with text, which may contain newlines. Both endpoints
	// must validate and start must not come after end. The splice either
	// fully applies or returns before committing.
	SetText(start, end Position, text string) error
}

// MaxRow returns the index of the last line.
func MaxRow(r Reader) (int, error) {
	n, err := r.LineCount()
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// Line returns the line at row.
func Line(r Reader, row int) (string, error) {
	maxRow, err := MaxRow(r)
	if err != nil {
		return "", err
	}
	if row > maxRow || row < 0 {
		return "", &RowError{Row: row, Limit: maxRow}
	}

	lines, err := r.Lines(row, row+1)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", &RowError{Row: row, Limit: maxRow}
	}
	return lines[0], nil
}

// MaxRowPos returns the position after the last character of row.
func MaxRowPos(r Reader, row int) (Position, error) {
	line, err := Line(r, row)
	if err != nil {
		return Position{}, err
	}
	return Position{Row: row, Col: len(line)}, nil
}

// MaxPos returns the position after the last character of the buffer.
func MaxPos(r Reader) (Position, error) {
	maxRow, err := MaxRow(r)
	if err != nil {
		return Position{}, err
	}
	return MaxRowPos(r, maxRow)
}

// ValidatePos checks that p addresses a character of r or the insertion
// point directly after a line.
func ValidatePos(r Reader, p Position) error {
	maxRow, err := MaxRow(r)
	if err != nil {
		return err
	}
	if p.Row > maxRow || p.Row < 0 {
		return &RowError{Row: p.Row, Limit: maxRow}
	}

	rowEnd, err := MaxRowPos(r, p.Row)
	if err != nil {
		return err
	}
	if p.Col > rowEnd.Col || p.Col < 0 {
		return &ColError{Col: p.Col, Limit: rowEnd.Col}
	}
	return nil
}

// AllLines returns every line of the buffer.
func AllLines(r Reader) ([]string, error) {
	n, err := r.LineCount()
	if err != nil {
		return nil, err
	}
	return r.Lines(0, n)
}

// Content returns the buffer serialized with "\n" between lines. A
// trailing newline in the content corresponds to a final empty line.
func Content(r Reader) (string, error) {
	lines, err := AllLines(r)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// SetContent replaces the whole buffer with text.
func SetContent(w Writer, text string) error {
	end, err := MaxPos(w)
	if err != nil {
		return err
	}
	return w.SetText(Origin(), end, text)
}

// SetLine replaces the whole line at row.
func SetLine(w Writer, row int, line string) error {
	rowEnd, err := MaxRowPos(w, row)
	if err != nil {
		return err
	}
	return w.SetText(Position{Row: row}, rowEnd, line)
}

// AppendAt inserts text after the character at p. When p has no following
// column (end of line, end of buffer) the insertion happens at p itself.
func AppendAt(w Writer, p Position, text string) error {
	next := p.NextCol()
	if ValidatePos(w, next) == nil {
		p = next
	}
	return w.SetText(p, p, text)
}

// PrependAt inserts text at p.
func PrependAt(w Writer, p Position, text string) error {
	return w.SetText(p, p, text)
}

// Append inserts text after the last character of the buffer. On an empty
// last line there is no character to append after, so the insertion
// happens at the start of that line.
func Append(w Writer, text string) error {
	p, err := MaxPos(w)
	if err != nil {
		return err
	}
	if p.Col > 0 {
		p = p.PrevCol()
	}
	return AppendAt(w, p, text)
}

// Prepend inserts text at the start of the buffer.
func Prepend(w Writer, text string) error {
	return PrependAt(w, Origin(), text)
}
