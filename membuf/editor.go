package membuf

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/markbuf/markbuf/buffer"
)

// ErrForeignBuffer reports a write lock that did not come from this
// editor's buffers.
var ErrForeignBuffer = errors.New("write lock does not belong to this editor")

// Editor is an in-memory implementation of editor.Editor. It keeps a
// deduplicating registry of handles: looking up the same buffer identity
// twice returns equal handles.
type Editor struct {
	mu      sync.Mutex
	handles map[string]*Handle
	current string
	log     *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEditor creates an editor with no buffers.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		handles: make(map[string]*Handle),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewBuffer creates an empty buffer (one empty line) and registers its
// handle. The first buffer created becomes the current one.
func (e *Editor) NewBuffer(_ context.Context) (buffer.Handle, error) {
	h := newHandle(newStore())

	e.mu.Lock()
	defer e.mu.Unlock()

	e.handles[h.ID()] = h
	if e.current == "" {
		e.current = h.ID()
	}

	e.log.Debug("created buffer", "buffer", h.ID())
	return h, nil
}

// CurrentBuffer returns the handle of the current buffer, creating one if
// the editor has none yet.
func (e *Editor) CurrentBuffer(ctx context.Context) (buffer.Handle, error) {
	e.mu.Lock()
	if e.current != "" {
		h := e.handles[e.current]
		e.mu.Unlock()
		return h, nil
	}
	e.mu.Unlock()

	return e.NewBuffer(ctx)
}

// SetCurrentBuffer makes the buffer behind the held write lock current.
func (e *Editor) SetCurrentBuffer(l buffer.WriteLock) error {
	wl, ok := l.(*writeLock)
	if !ok {
		return ErrForeignBuffer
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := wl.h.ID()
	if _, ok := e.handles[id]; !ok {
		return ErrForeignBuffer
	}
	e.current = id
	return nil
}

// Buffer looks up a handle by buffer identity. Repeated lookups return
// the same handle.
func (e *Editor) Buffer(id string) (buffer.Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.handles[id]
	if !ok {
		return nil, false
	}
	return h, true
}
