package mark

import (
	"errors"

	"github.com/markbuf/markbuf/buffer"
)

// ErrNotSupported reports that a buffer's locks do not implement the mark
// capability.
var ErrNotSupported = errors.New("buffer does not support marks")

// Gravity is the bias applied to a mark when an edit straddles it.
type Gravity uint8

const (
	// GravityRight marks stick to the text after them: an insert at the
	// mark pushes the mark to the end of the inserted text. This is the
	// default.
	GravityRight Gravity = iota

	// GravityLeft marks stick to the text before them: an edit covering
	// the mark collapses it to the edit's start.
	GravityLeft
)

// String returns the gravity name.
func (g Gravity) String() string {
	switch g {
	case GravityLeft:
		return "left"
	case GravityRight:
		return "right"
	default:
		return "right"
	}
}

// ID identifies a mark within its buffer. IDs are opaque and comparable;
// CreateMark is their only source, and a destroyed ID is never reused.
type ID string

// Reader is the read surface of a mark-capable buffer lock.
type Reader interface {
	buffer.Reader

	// MarkPosition returns the current position of the mark. Operating on
	// a destroyed ID returns buffer.ErrMarkDestroyed.
	MarkPosition(id ID) (buffer.Position, error)
}

// Writer is the write surface of a mark-capable buffer lock. Marks drift
// automatically under SetText; see the package documentation for the
// drift policy.
type Writer interface {
	buffer.Writer

	// CreateMark registers a new mark at pos with GravityRight.
	CreateMark(pos buffer.Position) (ID, error)

	// DestroyMark invalidates id. Destroying an already-destroyed ID
	// returns buffer.ErrMarkDestroyed.
	DestroyMark(id ID) error

	// SetMarkPosition moves the mark to pos.
	SetMarkPosition(id ID, pos buffer.Position) error

	// SetMarkGravity changes the mark's drift bias.
	SetMarkGravity(id ID, g Gravity) error
}

// AsReader extracts the mark capability from a buffer lock.
func AsReader(l buffer.ReadLock) (Reader, error) {
	r, ok := l.(Reader)
	if !ok {
		return nil, ErrNotSupported
	}
	return r, nil
}

// AsWriter extracts the mark write capability from a buffer lock.
func AsWriter(l buffer.WriteLock) (Writer, error) {
	w, ok := l.(Writer)
	if !ok {
		return nil, ErrNotSupported
	}
	return w, nil
}
