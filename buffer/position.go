package buffer

import (
	"fmt"
	"strings"
)

// Position is a coordinate within a buffer.
//
// Both Row and Col are 0-indexed. Col counts code units within the line
// and may equal the line length, denoting the insertion point after the
// last character. Col on an empty line is always 0.
//
// Positions are totally ordered: first by Row, then by Col.
type Position struct {
	Row int
	Col int
}

// Origin is the top-left corner of a buffer.
func Origin() Position {
	return Position{}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// NextCol returns the position one column to the right.
func (p Position) NextCol() Position {
	return Position{Row: p.Row, Col: p.Col + 1}
}

// PrevCol returns the position one column to the left, saturating at 0.
func (p Position) PrevCol() Position {
	if p.Col > 0 {
		p.Col--
	}
	return p
}

// NextRow returns the position one row down.
func (p Position) NextRow() Position {
	return Position{Row: p.Row + 1, Col: p.Col}
}

// PrevRow returns the position one row up, saturating at 0.
func (p Position) PrevRow() Position {
	if p.Row > 0 {
		p.Row--
	}
	return p
}

// Offset translates p by the extent of some text whose shape is described
// by the relative position by. A zero-row offset extends the current line;
// a multi-row offset lands on the offset's own column.
func (p Position) Offset(by Position) Position {
	if by.Row == 0 {
		return Position{Row: p.Row, Col: p.Col + by.Col}
	}
	return Position{Row: p.Row + by.Row, Col: by.Col}
}

// MaxTextPos returns the position of the last code unit of text when the
// text is split on newlines. The empty string yields the origin; text with
// n lines yields row n-1 and the length of the final segment as the column.
func MaxTextPos(text string) Position {
	if text == "" {
		return Position{}
	}

	rows := strings.Count(text, "\n")
	last := text
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		last = text[i+1:]
	}

	return Position{Row: rows, Col: len(last)}
}
