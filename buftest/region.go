package buftest

import (
	"context"
	"errors"
	"testing"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/cursor"
	"github.com/markbuf/markbuf/editor"
	"github.com/markbuf/markbuf/mark"
	"github.com/markbuf/markbuf/region"
)

var errRegionEditor = errors.New("region test editor only supports NewBuffer")

// RegionFactory wraps a mark-capable factory so every buffer the suites
// see is a region over one of the inner factory's buffers. With empty
// set the region starts zero-width at the origin of an empty parent;
// otherwise it spans (1,2)-(2,5) of a four-line parent. Either way the
// region content is cleared afterwards, so the suites start from an
// empty buffer whose edits project into the middle of the parent.
func RegionFactory(inner Factory, empty bool) Factory {
	return func(t *testing.T) editor.Editor {
		reaper := mark.NewReaper()
		t.Cleanup(reaper.Close)

		return &regionEditor{t: t, inner: inner(t), empty: empty, reaper: reaper}
	}
}

type regionEditor struct {
	t      *testing.T
	inner  editor.Editor
	empty  bool
	reaper *mark.Reaper
}

func (e *regionEditor) NewBuffer(ctx context.Context) (buffer.Handle, error) {
	content := "First line\nSecond line\nThird line\nFourth line"
	start := buffer.Position{Row: 1, Col: 2}
	end := buffer.Position{Row: 2, Col: 5}
	if e.empty {
		content = ""
		start, end = buffer.Position{}, buffer.Position{}
	}

	parent := NewBufferWithContent(e.t, e.inner, content)

	r, err := region.New(ctx, parent, start, end, mark.WithReaper(e.reaper))
	if err != nil {
		return nil, err
	}
	e.t.Cleanup(r.Close)

	l, err := r.Write(ctx)
	if err != nil {
		return nil, err
	}
	defer l.Release()

	if err := buffer.SetContent(l, ""); err != nil {
		return nil, err
	}

	// The parent's cursor starts at its own origin, which lies outside a
	// region that does not begin there. Move it inside so the region
	// starts in a consistent state.
	if cw, err := cursor.AsWriter(l); err == nil {
		if err := cw.SetCursor(buffer.Position{}); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (e *regionEditor) CurrentBuffer(context.Context) (buffer.Handle, error) {
	return nil, errRegionEditor
}

func (e *regionEditor) SetCurrentBuffer(buffer.WriteLock) error {
	return errRegionEditor
}
