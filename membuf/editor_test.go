package membuf_test

import (
	"context"
	"errors"
	"testing"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/membuf"
)

func TestCurrentBufferLazy(t *testing.T) {
	ed := membuf.NewEditor()
	ctx := context.Background()

	h, err := ed.CurrentBuffer(ctx)
	if err != nil {
		t.Fatalf("CurrentBuffer: %v", err)
	}

	again, err := ed.CurrentBuffer(ctx)
	if err != nil {
		t.Fatalf("CurrentBuffer: %v", err)
	}
	if !h.Equal(again) {
		t.Error("current buffer changed between calls")
	}
}

func TestFirstBufferBecomesCurrent(t *testing.T) {
	ed := membuf.NewEditor()
	ctx := context.Background()

	h, err := ed.NewBuffer(ctx)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if _, err := ed.NewBuffer(ctx); err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	cur, err := ed.CurrentBuffer(ctx)
	if err != nil {
		t.Fatalf("CurrentBuffer: %v", err)
	}
	if !h.Equal(cur) {
		t.Error("current buffer is not the first created")
	}
}

func TestSetCurrentBuffer(t *testing.T) {
	ed := membuf.NewEditor()
	ctx := context.Background()

	if _, err := ed.NewBuffer(ctx); err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	h2, err := ed.NewBuffer(ctx)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	l, err := h2.Write(ctx)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	err = ed.SetCurrentBuffer(l)
	l.Release()
	if err != nil {
		t.Fatalf("SetCurrentBuffer: %v", err)
	}

	cur, err := ed.CurrentBuffer(ctx)
	if err != nil {
		t.Fatalf("CurrentBuffer: %v", err)
	}
	if !h2.Equal(cur) {
		t.Error("current buffer not updated")
	}
}

func TestSetCurrentBufferForeign(t *testing.T) {
	ed := membuf.NewEditor()
	other := membuf.NewEditor()
	ctx := context.Background()

	h, err := other.NewBuffer(ctx)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	l, err := h.Write(ctx)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer l.Release()

	if err := ed.SetCurrentBuffer(l); !errors.Is(err, membuf.ErrForeignBuffer) {
		t.Errorf("SetCurrentBuffer = %v, want ErrForeignBuffer", err)
	}
}

func TestNewBufferIsEmpty(t *testing.T) {
	ed := membuf.NewEditor()
	ctx := context.Background()

	h, err := ed.NewBuffer(ctx)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	l, err := h.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer l.Release()

	n, err := l.LineCount()
	if err != nil || n != 1 {
		t.Fatalf("LineCount = %d, %v, want 1", n, err)
	}
	content, err := buffer.Content(l)
	if err != nil || content != "" {
		t.Fatalf("Content = %q, %v, want empty", content, err)
	}
}
