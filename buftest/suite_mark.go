package buftest

import (
	"context"
	"errors"
	"testing"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/mark"
)

// RunMarkSuite runs the mark conformance tests against editors produced
// by f. The factory's buffers must expose the mark capability.
func RunMarkSuite(t *testing.T, f Factory) {
	t.Run("basic", func(t *testing.T) { testMarkBasic(t, f) })
	t.Run("set_text", func(t *testing.T) { testMarkSetText(t, f) })
	t.Run("gravity_right", func(t *testing.T) { testMarkGravityRight(t, f) })
	t.Run("gravity_left", func(t *testing.T) { testMarkGravityLeft(t, f) })
}

func newMark(t *testing.T, h buffer.Handle, pos buffer.Position) *mark.Mark {
	t.Helper()

	reaper := mark.NewReaper()
	t.Cleanup(reaper.Close)

	m, err := mark.New(context.Background(), h, pos, mark.WithReaper(reaper))
	if err != nil {
		t.Fatalf("mark.New(%v): %v", pos, err)
	}
	t.Cleanup(m.Release)
	return m
}

func assertMarkPos(t *testing.T, m *mark.Mark, want buffer.Position) {
	t.Helper()

	got, err := m.Position(context.Background())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if got != want {
		t.Errorf("mark at %v, want %v", got, want)
	}
}

func testMarkBasic(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "test\ntest2")

	m := newMark(t, h, buffer.Position{Row: 0, Col: 1})
	assertMarkPos(t, m, buffer.Position{Row: 0, Col: 1})

	if err := m.SetPosition(context.Background(), buffer.Position{Row: 1}); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	assertMarkPos(t, m, buffer.Position{Row: 1})
}

func testMarkSetText(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "First line")

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()

	w, err := mark.AsWriter(l)
	if err != nil {
		t.Fatalf("mark capability: %v", err)
	}
	m, err := mark.NewLocked(h, w, buffer.Position{Row: 0, Col: 6})
	if err != nil {
		t.Fatalf("NewLocked: %v", err)
	}

	pos6 := buffer.Position{Row: 0, Col: 6}
	if err := l.SetText(pos6, pos6, "(actually) line\nSecond "); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	r, err := mark.AsReader(l)
	if err != nil {
		t.Fatalf("mark capability: %v", err)
	}
	got, err := m.PositionLocked(r)
	if err != nil {
		t.Fatalf("PositionLocked: %v", err)
	}
	if (got != buffer.Position{Row: 1, Col: 7}) {
		t.Errorf("mark at %v, want (1,7)", got)
	}

	if err := m.Destroy(w); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := m.PositionLocked(r); !errors.Is(err, buffer.ErrMarkDestroyed) {
		t.Errorf("position of destroyed mark = %v, want ErrMarkDestroyed", err)
	}
	if err := m.Destroy(w); !errors.Is(err, buffer.ErrMarkDestroyed) {
		t.Errorf("second destroy = %v, want ErrMarkDestroyed", err)
	}
}

func testMarkGravityRight(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "First line")

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()

	w, err := mark.AsWriter(l)
	if err != nil {
		t.Fatalf("mark capability: %v", err)
	}
	r, err := mark.AsReader(l)
	if err != nil {
		t.Fatalf("mark capability: %v", err)
	}

	m, err := mark.NewLocked(h, w, buffer.Position{Row: 0, Col: 5})
	if err != nil {
		t.Fatalf("NewLocked: %v", err)
	}

	assertMarkPosLocked(t, m, r, buffer.Position{Row: 0, Col: 5})

	if err := l.SetText(buffer.Position{Row: 0, Col: 1}, buffer.Position{Row: 0, Col: 9}, "ir"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	assertMarkPosLocked(t, m, r, buffer.Position{Row: 0, Col: 3})

	pos3 := buffer.Position{Row: 0, Col: 3}
	if err := l.SetText(pos3, pos3, "..."); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	assertMarkPosLocked(t, m, r, buffer.Position{Row: 0, Col: 6})
}

func testMarkGravityLeft(t *testing.T, f Factory) {
	ed := f(t)
	h := NewBufferWithContent(t, ed, "First line")

	l, err := h.Write(context.Background())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()

	w, err := mark.AsWriter(l)
	if err != nil {
		t.Fatalf("mark capability: %v", err)
	}
	r, err := mark.AsReader(l)
	if err != nil {
		t.Fatalf("mark capability: %v", err)
	}

	m, err := mark.NewLocked(h, w, buffer.Position{Row: 0, Col: 5})
	if err != nil {
		t.Fatalf("NewLocked: %v", err)
	}
	if err := m.SetGravityLocked(w, mark.GravityLeft); err != nil {
		t.Fatalf("SetGravityLocked: %v", err)
	}

	assertMarkPosLocked(t, m, r, buffer.Position{Row: 0, Col: 5})

	if err := l.SetText(buffer.Position{Row: 0, Col: 1}, buffer.Position{Row: 0, Col: 9}, "ir"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	assertMarkPosLocked(t, m, r, buffer.Position{Row: 0, Col: 1})

	if err := l.SetText(buffer.Position{Row: 0, Col: 1}, buffer.Position{Row: 0, Col: 3}, "..."); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	assertMarkPosLocked(t, m, r, buffer.Position{Row: 0, Col: 1})
}

func assertMarkPosLocked(t *testing.T, m *mark.Mark, r mark.Reader, want buffer.Position) {
	t.Helper()

	got, err := m.PositionLocked(r)
	if err != nil {
		t.Fatalf("PositionLocked: %v", err)
	}
	if got != want {
		t.Errorf("mark at %v, want %v", got, want)
	}
}
