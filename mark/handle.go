package mark

import (
	"context"
	"sync/atomic"

	"github.com/markbuf/markbuf/buffer"
)

// Mark is a shared reference to a mark inside a buffer. The buffer owns
// the mark's position and gravity; Mark only pairs the ID with a handle
// so the mark can outlive any single lock scope.
//
// References are counted explicitly: Retain adds one, Release drops one.
// When the last reference is released the underlying mark is destroyed
// asynchronously through a Reaper, never under the releasing caller's
// lock, so releasing inside a locked scope cannot deadlock.
type Mark struct {
	id     ID
	h      buffer.Handle
	refs   atomic.Int32
	reaper *Reaper
}

// Option configures a Mark at creation.
type Option func(*Mark)

// WithReaper routes the mark's deferred destruction to r instead of the
// package default reaper.
func WithReaper(r *Reaper) Option {
	return func(m *Mark) {
		m.reaper = r
	}
}

// NewLocked creates a mark at pos using an already-held write lock on the
// buffer h refers to. The caller keeps ownership of the lock.
func NewLocked(h buffer.Handle, w Writer, pos buffer.Position, opts ...Option) (*Mark, error) {
	id, err := w.CreateMark(pos)
	if err != nil {
		return nil, err
	}

	m := &Mark{id: id, h: h}
	m.refs.Store(1)
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// New acquires a write lock on h and creates a mark at pos.
func New(ctx context.Context, h buffer.Handle, pos buffer.Position, opts ...Option) (*Mark, error) {
	l, err := h.Write(ctx)
	if err != nil {
		return nil, err
	}
	defer l.Release()

	w, err := AsWriter(l)
	if err != nil {
		return nil, err
	}
	return NewLocked(h, w, pos, opts...)
}

// ID returns the mark's identifier within its buffer.
func (m *Mark) ID() ID {
	return m.id
}

// Buffer returns the handle of the buffer owning the mark.
func (m *Mark) Buffer() buffer.Handle {
	return m.h
}

// Equal reports whether other refers to the same mark in the same buffer.
func (m *Mark) Equal(other *Mark) bool {
	return other != nil && m.id == other.id && m.h.Equal(other.h)
}

// Retain adds a reference and returns m for convenience.
func (m *Mark) Retain() *Mark {
	m.refs.Add(1)
	return m
}

// Release drops a reference. When the last reference goes, destruction of
// the underlying mark is scheduled on the reaper; failures there are
// logged, not propagated.
func (m *Mark) Release() {
	if m.refs.Add(-1) != 0 {
		return
	}

	r := m.reaper
	if r == nil {
		r = DefaultReaper()
	}
	r.Enqueue(m.h, m.id)
}

// Position reads the mark's current position under a fresh read lock.
func (m *Mark) Position(ctx context.Context) (buffer.Position, error) {
	l, err := m.h.Read(ctx)
	if err != nil {
		return buffer.Position{}, err
	}
	defer l.Release()

	r, err := AsReader(l)
	if err != nil {
		return buffer.Position{}, err
	}
	return m.PositionLocked(r)
}

// PositionLocked reads the mark's position through an already-held lock.
func (m *Mark) PositionLocked(r Reader) (buffer.Position, error) {
	return r.MarkPosition(m.id)
}

// SetPosition moves the mark under a fresh write lock.
func (m *Mark) SetPosition(ctx context.Context, pos buffer.Position) error {
	l, err := m.h.Write(ctx)
	if err != nil {
		return err
	}
	defer l.Release()

	w, err := AsWriter(l)
	if err != nil {
		return err
	}
	return m.SetPositionLocked(w, pos)
}

// SetPositionLocked moves the mark through an already-held write lock.
func (m *Mark) SetPositionLocked(w Writer, pos buffer.Position) error {
	return w.SetMarkPosition(m.id, pos)
}

// SetGravity changes the mark's drift bias under a fresh write lock.
func (m *Mark) SetGravity(ctx context.Context, g Gravity) error {
	l, err := m.h.Write(ctx)
	if err != nil {
		return err
	}
	defer l.Release()

	w, err := AsWriter(l)
	if err != nil {
		return err
	}
	return m.SetGravityLocked(w, g)
}

// SetGravityLocked changes the drift bias through an already-held lock.
func (m *Mark) SetGravityLocked(w Writer, g Gravity) error {
	return w.SetMarkGravity(m.id, g)
}

// Destroy synchronously destroys the underlying mark through an
// already-held write lock, bypassing the reaper. Remaining references
// will observe buffer.ErrMarkDestroyed.
func (m *Mark) Destroy(w Writer) error {
	return w.DestroyMark(m.id)
}
