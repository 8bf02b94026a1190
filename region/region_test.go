package region_test

import (
	"context"
	"errors"
	"testing"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/cursor"
	"github.com/markbuf/markbuf/mark"
	"github.com/markbuf/markbuf/membuf"
	"github.com/markbuf/markbuf/region"
)

const parentContent = "First line\nSecond line\nThird line\nFourth line"

func newParent(t *testing.T, content string) buffer.Handle {
	t.Helper()

	ed := membuf.NewEditor()
	h, err := ed.NewBuffer(context.Background())
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()

	if err := buffer.SetContent(l, content); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	return h
}

func newTestRegion(t *testing.T) (buffer.Handle, *region.Region) {
	t.Helper()

	reaper := mark.NewReaper()
	t.Cleanup(reaper.Close)

	parent := newParent(t, parentContent)
	r, err := region.New(context.Background(), parent,
		buffer.Position{Row: 1, Col: 2}, buffer.Position{Row: 2, Col: 5},
		mark.WithReaper(reaper))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Close)

	return parent, r
}

func regionContent(t *testing.T, r *region.Region) string {
	t.Helper()

	l, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("region read: %v", err)
	}
	defer l.Release()

	content, err := buffer.Content(l)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	return content
}

func handleContent(t *testing.T, h buffer.Handle) string {
	t.Helper()

	l, err := h.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer l.Release()

	content, err := buffer.Content(l)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	return content
}

func TestRegionPosition(t *testing.T) {
	_, r := newTestRegion(t)

	l, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer l.Release()
	acc := l.(*region.Access)

	tests := []struct {
		name    string
		in      buffer.Position
		want    buffer.Position
		wantErr error
	}{
		{"inner line", buffer.Position{Row: 2, Col: 1}, buffer.Position{Row: 1, Col: 1}, nil},
		{"first line offset", buffer.Position{Row: 1, Col: 3}, buffer.Position{Row: 0, Col: 1}, nil},
		{"col before start", buffer.Position{Row: 1, Col: 1}, buffer.Position{}, &buffer.ColError{Col: -1, Limit: 0}},
		{"col past end", buffer.Position{Row: 2, Col: 6}, buffer.Position{}, &buffer.ColError{Col: 6, Limit: 5}},
		{"row before start", buffer.Position{Row: 0, Col: 0}, buffer.Position{}, &buffer.RowError{Row: -1, Limit: 0}},
		{"row past end", buffer.Position{Row: 3, Col: 0}, buffer.Position{}, &buffer.RowError{Row: 2, Limit: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := acc.RegionPosition(tt.in)
			if tt.wantErr != nil {
				requireEqualError(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("RegionPosition(%v): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("RegionPosition(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func requireEqualError(t *testing.T, got, want error) {
	t.Helper()

	if got == nil {
		t.Fatalf("expected error %v, got nil", want)
	}
	switch w := want.(type) {
	case *buffer.RowError:
		var re *buffer.RowError
		if !errors.As(got, &re) {
			t.Fatalf("expected row error, got %v", got)
		}
		if *re != *w {
			t.Fatalf("got %v, want %v", re, w)
		}
	case *buffer.ColError:
		var ce *buffer.ColError
		if !errors.As(got, &ce) {
			t.Fatalf("expected col error, got %v", got)
		}
		if *ce != *w {
			t.Fatalf("got %v, want %v", ce, w)
		}
	default:
		if !errors.Is(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRealPosition(t *testing.T) {
	_, r := newTestRegion(t)

	l, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer l.Release()
	acc := l.(*region.Access)

	tests := []struct {
		in, want buffer.Position
	}{
		{buffer.Position{Row: 0, Col: 3}, buffer.Position{Row: 1, Col: 5}},
		{buffer.Position{Row: 1, Col: 4}, buffer.Position{Row: 2, Col: 4}},
	}
	for _, tt := range tests {
		got, err := acc.RealPosition(tt.in)
		if err != nil {
			t.Fatalf("RealPosition(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("RealPosition(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	_, r := newTestRegion(t)

	l, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer l.Release()
	acc := l.(*region.Access)

	for _, p := range []buffer.Position{
		{Row: 0, Col: 0}, {Row: 0, Col: 5}, {Row: 1, Col: 0}, {Row: 1, Col: 5},
	} {
		abs, err := acc.RealPosition(p)
		if err != nil {
			t.Fatalf("RealPosition(%v): %v", p, err)
		}
		back, err := acc.RegionPosition(abs)
		if err != nil {
			t.Fatalf("RegionPosition(%v): %v", abs, err)
		}
		if back != p {
			t.Errorf("round trip of %v via %v = %v", p, abs, back)
		}
	}
}

func TestLineCount(t *testing.T) {
	_, r := newTestRegion(t)

	l, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer l.Release()

	n, err := l.LineCount()
	if err != nil {
		t.Fatalf("LineCount: %v", err)
	}
	if n != 2 {
		t.Errorf("LineCount = %d, want 2", n)
	}
}

func TestLines(t *testing.T) {
	_, r := newTestRegion(t)

	l, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer l.Release()

	lines, err := l.Lines(0, 2)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "cond line" || lines[1] != "Third" {
		t.Errorf("Lines(0, 2) = %q", lines)
	}

	for row, want := range []string{"cond line", "Third"} {
		got, err := buffer.Line(l, row)
		if err != nil {
			t.Fatalf("Line(%d): %v", row, err)
		}
		if got != want {
			t.Errorf("Line(%d) = %q, want %q", row, got, want)
		}
	}

	content, err := buffer.Content(l)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if content != "cond line\nThird" {
		t.Errorf("Content = %q", content)
	}
}

func TestSetText(t *testing.T) {
	parent, r := newTestRegion(t)
	ctx := context.Background()

	withWrite := func(f func(l buffer.WriteLock) error) {
		t.Helper()
		l, err := r.Write(ctx)
		if err != nil {
			t.Fatalf("write: %v", err)
		}
		defer l.Release()
		if err := f(l); err != nil {
			t.Fatalf("edit: %v", err)
		}
	}

	withWrite(func(l buffer.WriteLock) error {
		return buffer.Append(l, " line\nFourth line\nFifth")
	})
	if got := regionContent(t, r); got != "cond line\nThird line\nFourth line\nFifth" {
		t.Errorf("region after append = %q", got)
	}
	wantParent := "First line\nSecond line\nThird line\nFourth line\nFifth line\nFourth line"
	if got := handleContent(t, parent); got != wantParent {
		t.Errorf("parent after append = %q, want %q", got, wantParent)
	}

	withWrite(func(l buffer.WriteLock) error {
		return buffer.Prepend(l, "ll me on it\n")
	})
	if got := regionContent(t, r); got != "ll me on it\ncond line\nThird line\nFourth line\nFifth" {
		t.Errorf("region after prepend = %q", got)
	}
	wantParent = "First line\nSell me on it\ncond line\nThird line\nFourth line\nFifth line\nFourth line"
	if got := handleContent(t, parent); got != wantParent {
		t.Errorf("parent after prepend = %q, want %q", got, wantParent)
	}

	withWrite(func(l buffer.WriteLock) error {
		return buffer.SetLine(l, 1, "Second line")
	})
	if got := regionContent(t, r); got != "ll me on it\nSecond line\nThird line\nFourth line\nFifth" {
		t.Errorf("region after set line = %q", got)
	}
	wantParent = "First line\nSell me on it\nSecond line\nThird line\nFourth line\nFifth line\nFourth line"
	if got := handleContent(t, parent); got != wantParent {
		t.Errorf("parent after set line = %q, want %q", got, wantParent)
	}
}

func TestEmptyRegion(t *testing.T) {
	ctx := context.Background()
	reaper := mark.NewReaper()
	t.Cleanup(reaper.Close)

	parent := newParent(t, parentContent)
	r, err := region.New(ctx, parent,
		buffer.Position{Row: 1, Col: 11}, buffer.Position{Row: 1, Col: 11},
		mark.WithReaper(reaper))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	l, err := r.Write(ctx)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	if n, err := l.LineCount(); err != nil || n != 1 {
		t.Fatalf("LineCount = %d, %v, want 1", n, err)
	}
	if content, err := buffer.Content(l); err != nil || content != "" {
		t.Fatalf("Content = %q, %v, want empty", content, err)
	}

	if err := buffer.SetContent(l, "\nActual third line"); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if content, err := buffer.Content(l); err != nil || content != "\nActual third line" {
		t.Fatalf("Content = %q, %v", content, err)
	}
	if n, err := l.LineCount(); err != nil || n != 2 {
		t.Fatalf("LineCount = %d, %v, want 2", n, err)
	}
	l.Release()

	want := "First line\nSecond line\nActual third line\nThird line\nFourth line"
	if got := handleContent(t, parent); got != want {
		t.Errorf("parent = %q, want %q", got, want)
	}
}

func TestRegionMarks(t *testing.T) {
	_, r := newTestRegion(t)
	ctx := context.Background()

	l, err := r.Write(ctx)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	defer l.Release()

	w, err := mark.AsWriter(l)
	if err != nil {
		t.Fatalf("AsWriter: %v", err)
	}
	id, err := w.CreateMark(buffer.Position{Row: 1, Col: 2})
	if err != nil {
		t.Fatalf("CreateMark: %v", err)
	}

	mr, err := mark.AsReader(l)
	if err != nil {
		t.Fatalf("AsReader: %v", err)
	}
	pos, err := mr.MarkPosition(id)
	if err != nil {
		t.Fatalf("MarkPosition: %v", err)
	}
	if (pos != buffer.Position{Row: 1, Col: 2}) {
		t.Errorf("MarkPosition = %v, want (1,2)", pos)
	}

	if err := w.SetMarkPosition(id, buffer.Position{Row: 0, Col: 4}); err != nil {
		t.Fatalf("SetMarkPosition: %v", err)
	}
	pos, err = mr.MarkPosition(id)
	if err != nil {
		t.Fatalf("MarkPosition: %v", err)
	}
	if (pos != buffer.Position{Row: 0, Col: 4}) {
		t.Errorf("MarkPosition = %v, want (0,4)", pos)
	}

	if err := w.DestroyMark(id); err != nil {
		t.Fatalf("DestroyMark: %v", err)
	}
	if _, err := mr.MarkPosition(id); !errors.Is(err, buffer.ErrMarkDestroyed) {
		t.Errorf("MarkPosition after destroy = %v, want ErrMarkDestroyed", err)
	}
}

func TestRegionCursor(t *testing.T) {
	_, r := newTestRegion(t)
	ctx := context.Background()

	l, err := r.Write(ctx)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	defer l.Release()

	cw, err := cursor.AsWriter(l)
	if err != nil {
		t.Fatalf("AsWriter: %v", err)
	}
	if err := cw.SetCursor(buffer.Position{Row: 1, Col: 3}); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}

	pos, err := cw.Cursor()
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	if (pos != buffer.Position{Row: 1, Col: 3}) {
		t.Errorf("Cursor = %v, want (1,3)", pos)
	}

	var ce *buffer.ColError
	if err := cw.SetCursor(buffer.Position{Row: 1, Col: 6}); !errors.As(err, &ce) {
		t.Errorf("SetCursor past region end = %v, want col error", err)
	}
}

func TestRegionOverRegion(t *testing.T) {
	ctx := context.Background()
	reaper := mark.NewReaper()
	t.Cleanup(reaper.Close)

	_, outer := newTestRegion(t)

	// Outer content is "cond line\nThird"; take "nd li" out of its first
	// line through a nested region.
	inner, err := region.New(ctx, outer,
		buffer.Position{Row: 0, Col: 2}, buffer.Position{Row: 0, Col: 7},
		mark.WithReaper(reaper))
	if err != nil {
		t.Fatalf("nested New: %v", err)
	}
	defer inner.Close()

	if got := regionContent(t, inner); got != "nd li" {
		t.Errorf("nested region content = %q, want %q", got, "nd li")
	}

	l, err := inner.Write(ctx)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	err = buffer.SetContent(l, "nd best li")
	l.Release()
	if err != nil {
		t.Fatalf("SetContent: %v", err)
	}

	if got := regionContent(t, outer); got != "cond best line\nThird" {
		t.Errorf("outer region content = %q", got)
	}
}
