package buftest

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/markbuf/markbuf/buffer"
)

// RunBufferSuite runs the buffer conformance tests against editors
// produced by f.
func RunBufferSuite(t *testing.T, f Factory) {
	t.Run("pos", func(t *testing.T) { testBufferPos(t, f) })
	t.Run("set_text", func(t *testing.T) { testBufferSetText(t, f) })
	t.Run("append", func(t *testing.T) { testBufferAppend(t, f) })
	t.Run("prepend", func(t *testing.T) { testBufferPrepend(t, f) })
	t.Run("pos_append", func(t *testing.T) { testBufferPosAppend(t, f) })
	t.Run("append_many", func(t *testing.T) { testBufferAppendMany(t, f) })
	t.Run("append_parallel", func(t *testing.T) { testBufferAppendParallel(t, f) })
}

func assertReadPos(t *testing.T, h buffer.Handle, f func(r buffer.Reader) (buffer.Position, error), want buffer.Position) {
	t.Helper()

	l, err := h.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer l.Release()

	got, err := f(l)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if got != want {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func testBufferPos(t *testing.T, f Factory) {
	ed := f(t)

	h := NewBufferWithContent(t, ed, "First line\nSecond line\nThird line!")
	assertReadPos(t, h, func(r buffer.Reader) (buffer.Position, error) {
		row, err := buffer.MaxRow(r)
		return buffer.Position{Row: row}, err
	}, buffer.Position{Row: 2})
	assertReadPos(t, h, func(r buffer.Reader) (buffer.Position, error) {
		return buffer.MaxRowPos(r, 0)
	}, buffer.Position{Row: 0, Col: 10})
	assertReadPos(t, h, func(r buffer.Reader) (buffer.Position, error) {
		return buffer.MaxRowPos(r, 2)
	}, buffer.Position{Row: 2, Col: 11})
	assertReadPos(t, h, buffer.MaxPos, buffer.Position{Row: 2, Col: 11})

	h = NewBufferWithContent(t, ed, "")
	assertReadPos(t, h, buffer.MaxPos, buffer.Position{})

	h = NewBufferWithContent(t, ed, "First line\nSecond line\nThird line!\n")
	assertReadPos(t, h, func(r buffer.Reader) (buffer.Position, error) {
		row, err := buffer.MaxRow(r)
		return buffer.Position{Row: row}, err
	}, buffer.Position{Row: 3})
	assertReadPos(t, h, buffer.MaxPos, buffer.Position{Row: 3})
}

func testBufferSetText(t *testing.T, f Factory) {
	ed := f(t)

	h := NewBufferWithContent(t, ed, "First line\nSecond line\nThird line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{Row: 0, Col: 6}, buffer.Position{Row: 2, Col: 5}, ":)")
	})
	AssertContent(t, h, "First :) line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{Row: 0, Col: 6}, buffer.Position{Row: 0, Col: 9}, "")
	})
	AssertContent(t, h, "First line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{Row: 0, Col: 11}, buffer.Position{Row: 0, Col: 11}, " (wow)")
	})
	AssertContent(t, h, "First line! (wow)")

	h = NewBufferWithContent(t, ed, "\n\nSome line\n")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{Row: 2}, buffer.Position{Row: 2, Col: 9}, "")
	})
	AssertContent(t, h, "\n\n\n")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{Row: 2}, buffer.Position{Row: 2}, "This was empty")
	})
	AssertContent(t, h, "\n\nThis was empty\n")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{}, buffer.Position{Row: 2}, "New line\n")
	})
	AssertContent(t, h, "New line\nThis was empty\n")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return l.SetText(buffer.Position{Row: 1}, buffer.Position{Row: 1}, "Hey, ")
	})
	AssertContent(t, h, "New line\nHey, This was empty\n")
}

func testBufferAppend(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.Append(l, "First line")
	})
	AssertContent(t, h, "First line")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.Append(l, "\nSecond line")
	})
	AssertContent(t, h, "First line\nSecond line")
}

func testBufferPrepend(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.Prepend(l, "Second line")
	})
	AssertContent(t, h, "Second line")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.Prepend(l, "First line\n")
	})
	AssertContent(t, h, "First line\nSecond line")
}

func testBufferPosAppend(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "First line\nSecond line\nThird line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.AppendAt(l, buffer.Position{Row: 1, Col: 6}, "test ")
	})
	AssertContent(t, h, "First line\nSecond test line\nThird line!")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.AppendAt(l, buffer.Position{Row: 2, Col: 10}, " :)")
	})
	AssertContent(t, h, "First line\nSecond test line\nThird line! :)")

	err := writeErr(t, h, func(l buffer.WriteLock) error {
		return buffer.AppendAt(l, buffer.Position{Row: 3}, ":(")
	})
	AssertRowError(t, err, 3, 2)

	err = writeErr(t, h, func(l buffer.WriteLock) error {
		return buffer.AppendAt(l, buffer.Position{Row: 1, Col: 17}, ":(")
	})
	AssertColError(t, err, 17, 16)

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.PrependAt(l, buffer.Position{Row: 1, Col: 16}, " ;)")
	})
	AssertContent(t, h, "First line\nSecond test line ;)\nThird line! :)")

	withWrite(t, h, func(l buffer.WriteLock) error {
		return buffer.PrependAt(l, buffer.Position{}, "Actual first line\n")
	})
	AssertContent(t, h, "Actual first line\nFirst line\nSecond test line ;)\nThird line! :)")

	err = writeErr(t, h, func(l buffer.WriteLock) error {
		return buffer.PrependAt(l, buffer.Position{Row: 4}, ":(")
	})
	AssertRowError(t, err, 4, 3)
}

func testBufferAppendMany(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "")

	var want strings.Builder
	for i := 0; i < 1000; i++ {
		line := fmt.Sprintf("%d\n", i)
		withWrite(t, h, func(l buffer.WriteLock) error {
			return buffer.Append(l, line)
		})
		want.WriteString(line)
	}

	AssertContent(t, h, want.String())
}

func testBufferAppendParallel(t *testing.T, f Factory) {
	const n = 500

	ed := f(t)
	h := NewBufferWithContent(t, ed, "")

	var g errgroup.Group
	for i := 0; i < n; i++ {
		line := strconv.Itoa(i) + "\n"
		g.Go(func() error {
			l, err := h.Write(context.Background())
			if err != nil {
				return err
			}
			defer l.Release()
			return buffer.Append(l, line)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("parallel append: %v", err)
	}

	l, err := h.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := buffer.AllLines(l)
	l.Release()
	if err != nil {
		t.Fatalf("AllLines: %v", err)
	}

	want := make([]string, 0, n+1)
	want = append(want, "")
	for i := 0; i < n; i++ {
		want = append(want, strconv.Itoa(i))
	}
	sort.Strings(got)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("line set mismatch at %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
