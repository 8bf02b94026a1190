package buftest

import (
	"context"
	"errors"
	"testing"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/cursor"
	"github.com/markbuf/markbuf/editor"
)

// Factory produces a fresh editor for one test. Implementations may use
// t.Cleanup to tear down whatever the editor allocates.
type Factory func(t *testing.T) editor.Editor

// NewBuffer creates an empty buffer through the editor.
func NewBuffer(t *testing.T, ed editor.Editor) buffer.Handle {
	t.Helper()

	h, err := ed.NewBuffer(context.Background())
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	return h
}

// NewBufferWithContent creates a buffer and fills it with content,
// verifying the content round-trips.
func NewBufferWithContent(t *testing.T, ed editor.Editor, content string) buffer.Handle {
	t.Helper()

	h := NewBuffer(t, ed)
	AssertContent(t, h, "")

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	err = buffer.SetContent(l, content)
	l.Release()
	if err != nil {
		t.Fatalf("SetContent: %v", err)
	}

	AssertContent(t, h, content)
	return h
}

// NewBufferWithState creates a cursor-capable buffer seeded from a state
// string.
func NewBufferWithState(t *testing.T, ed editor.Editor, state string) buffer.Handle {
	t.Helper()

	h := NewBuffer(t, ed)
	AssertState(t, h, "|")
	SetState(t, h, state)
	AssertState(t, h, state)
	return h
}

// SetState sets a buffer's content and cursor from a state string.
func SetState(t *testing.T, h buffer.Handle, state string) {
	t.Helper()

	content, pos, err := ParseState(state)
	if err != nil {
		t.Fatalf("ParseState(%q): %v", state, err)
	}

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()

	if err := buffer.SetContent(l, content); err != nil {
		t.Fatalf("SetContent: %v", err)
	}

	cw, err := cursor.AsWriter(l)
	if err != nil {
		t.Fatalf("cursor capability: %v", err)
	}
	if err := cw.SetCursor(pos); err != nil {
		t.Fatalf("SetCursor(%v): %v", pos, err)
	}
}

// AssertContent checks the buffer content.
func AssertContent(t *testing.T, h buffer.Handle, want string) {
	t.Helper()

	l, err := h.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer l.Release()

	got, err := buffer.Content(l)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

// AssertCursor checks the cursor position.
func AssertCursor(t *testing.T, h buffer.Handle, want buffer.Position) {
	t.Helper()

	l, err := h.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer l.Release()

	cr, err := cursor.AsReader(l)
	if err != nil {
		t.Fatalf("cursor capability: %v", err)
	}
	got, err := cr.Cursor()
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	if got != want {
		t.Errorf("cursor = %v, want %v", got, want)
	}
}

// AssertState checks content and cursor against a state string.
func AssertState(t *testing.T, h buffer.Handle, state string) {
	t.Helper()

	content, pos, err := ParseState(state)
	if err != nil {
		t.Fatalf("ParseState(%q): %v", state, err)
	}
	AssertContent(t, h, content)
	AssertCursor(t, h, pos)
}

// AssertRowError checks for a row bounds error with the given values.
func AssertRowError(t *testing.T, err error, row, limit int) {
	t.Helper()

	var re *buffer.RowError
	if !errors.As(err, &re) {
		t.Fatalf("expected row error, got %v", err)
	}
	if re.Row != row || re.Limit != limit {
		t.Fatalf("got %v, want row %d limit %d", re, row, limit)
	}
}

// AssertColError checks for a column bounds error with the given values.
func AssertColError(t *testing.T, err error, col, limit int) {
	t.Helper()

	var ce *buffer.ColError
	if !errors.As(err, &ce) {
		t.Fatalf("expected col error, got %v", err)
	}
	if ce.Col != col || ce.Limit != limit {
		t.Fatalf("got %v, want col %d limit %d", ce, col, limit)
	}
}

func withWrite(t *testing.T, h buffer.Handle, f func(l buffer.WriteLock) error) {
	t.Helper()

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	err = f(l)
	l.Release()
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
}

func writeErr(t *testing.T, h buffer.Handle, f func(l buffer.WriteLock) error) error {
	t.Helper()

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()
	return f(l)
}
