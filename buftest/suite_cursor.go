package buftest

import (
	"testing"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/cursor"
)

// RunCursorSuite runs the cursor conformance tests against editors
// produced by f. The factory's buffers must expose the cursor
// capability.
func RunCursorSuite(t *testing.T, f Factory) {
	t.Run("bounds", func(t *testing.T) { testCursorBounds(t, f) })
	t.Run("append", func(t *testing.T) { testCursorAppend(t, f) })
	t.Run("type_text", func(t *testing.T) { testCursorTypeText(t, f) })
	t.Run("type_text_empty", func(t *testing.T) { testCursorTypeTextEmpty(t, f) })
}

func setCursor(t *testing.T, h buffer.Handle, pos buffer.Position) error {
	t.Helper()

	return writeErr(t, h, func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cw.SetCursor(pos)
	})
}

func testCursorBounds(t *testing.T, f Factory) {
	ed := f(t)

	h := NewBufferWithState(t, ed, "|")
	AssertCursor(t, h, buffer.Position{})

	h = NewBufferWithState(t, ed, "|First line\nSecond line")
	AssertCursor(t, h, buffer.Position{})

	if err := setCursor(t, h, buffer.Position{Row: 1, Col: 4}); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	AssertCursor(t, h, buffer.Position{Row: 1, Col: 4})

	if err := setCursor(t, h, buffer.Position{}); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	AssertCursor(t, h, buffer.Position{})

	if err := setCursor(t, h, buffer.Position{Row: 1, Col: 11}); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	AssertCursor(t, h, buffer.Position{Row: 1, Col: 11})

	AssertRowError(t, setCursor(t, h, buffer.Position{Row: 2}), 2, 1)
	AssertColError(t, setCursor(t, h, buffer.Position{Row: 1, Col: 12}), 12, 11)
	AssertColError(t, setCursor(t, h, buffer.Position{Row: 0, Col: 12}), 12, 10)
}

func testCursorAppend(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithState(t, ed, "First line\nSecond line\nThird| line\n")

	withWrite(t, h, func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cursor.AppendAt(cw, "test ")
	})
	AssertContent(t, h, "First line\nSecond line\nThird test line\n")

	if err := setCursor(t, h, buffer.Position{Row: 2, Col: 6}); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}

	withWrite(t, h, func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cursor.PrependAt(cw, "(3rd) ")
	})
	AssertContent(t, h, "First line\nSecond line\nThird (3rd) test line\n")
}

func testCursorTypeText(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithState(t, ed, "First line\nSecond| line\nThird line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cursor.TypeText(cw, "test ")
	})
	AssertState(t, h, "First line\nSecond test| line\nThird line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cursor.TypeText(cw, "test\n")
	})
	AssertState(t, h, "First line\nSecond test test\n|line\nThird line!")
}

func testCursorTypeTextEmpty(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithState(t, ed, "|")

	withWrite(t, h, func(l buffer.WriteLock) error {
		cw, err := cursor.AsWriter(l)
		if err != nil {
			return err
		}
		return cursor.TypeText(cw, "test")
	})
	AssertState(t, h, "tes|t")
}
