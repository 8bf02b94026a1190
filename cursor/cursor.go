package cursor

import (
	"errors"

	"github.com/markbuf/markbuf/buffer"
)

// ErrNotSupported reports that a buffer's locks do not implement the
// cursor capability.
var ErrNotSupported = errors.New("buffer does not support a cursor")

// Reader is the read surface of a cursor-capable buffer lock.
type Reader interface {
	buffer.Reader

	// Cursor returns the current cursor position. On an empty line the
	// column is always 0, regardless of what the underlying store
	// reports.
	Cursor() (buffer.Position, error)
}

// Writer is the write surface of a cursor-capable buffer lock.
type Writer interface {
	buffer.Writer

	// SetCursor moves the cursor to p. The position is validated against
	// the buffer bounds; there are no further side effects.
	SetCursor(p buffer.Position) error

	// Cursor mirrors Reader.Cursor. Declared here as well because
	// buffer.Writer does not embed the cursor read surface.
	Cursor() (buffer.Position, error)
}

// AsReader extracts the cursor capability from a buffer lock.
func AsReader(l buffer.ReadLock) (Reader, error) {
	r, ok := l.(Reader)
	if !ok {
		return nil, ErrNotSupported
	}
	return r, nil
}

// AsWriter extracts the cursor write capability from a buffer lock.
func AsWriter(l buffer.WriteLock) (Writer, error) {
	w, ok := l.(Writer)
	if !ok {
		return nil, ErrNotSupported
	}
	return w, nil
}

// AppendAt inserts text after the character under the cursor.
func AppendAt(w Writer, text string) error {
	p, err := w.Cursor()
	if err != nil {
		return err
	}
	return buffer.AppendAt(w, p, text)
}

// PrependAt inserts text at the cursor.
func PrependAt(w Writer, text string) error {
	p, err := w.Cursor()
	if err != nil {
		return err
	}
	return buffer.PrependAt(w, p, text)
}

// TypeText inserts text after the character under the cursor and leaves
// the cursor on the last inserted character. Empty text is a no-op.
func TypeText(w Writer, text string) error {
	if text == "" {
		return nil
	}

	p, err := w.Cursor()
	if err != nil {
		return err
	}

	extent := buffer.MaxTextPos(text)

	if next := p.NextCol(); buffer.ValidatePos(w, next) == nil {
		p = next
	}

	if err := buffer.PrependAt(w, p, text); err != nil {
		return err
	}

	return w.SetCursor(p.Offset(extent).PrevCol())
}
