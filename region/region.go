package region

import (
	"context"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/mark"
)

// Region is a virtual sub-buffer delimited by two marks on a parent
// buffer. It is a view, not a copy: reads and writes project into the
// parent through coordinate translation, and because the start mark has
// left gravity and the end mark right gravity, edits inside the region
// grow and shrink it naturally.
//
// Region implements buffer.Handle, so everything that operates on
// buffers — the derived operations, marks, cursors, and further regions —
// works on regions unchanged.
type Region struct {
	parent buffer.Handle
	start  *mark.Mark
	end    *mark.Mark
}

// NewLocked creates a region over [start, end] using an already-held
// write lock on the parent. The two delimiting marks are created under
// that same lock.
func NewLocked(parent buffer.Handle, w mark.Writer, start, end buffer.Position, opts ...mark.Option) (*Region, error) {
	sm, err := mark.NewLocked(parent, w, start, opts...)
	if err != nil {
		return nil, err
	}

	em, err := mark.NewLocked(parent, w, end, opts...)
	if err != nil {
		sm.Release()
		return nil, err
	}

	if err := sm.SetGravityLocked(w, mark.GravityLeft); err != nil {
		sm.Release()
		em.Release()
		return nil, err
	}
	if err := em.SetGravityLocked(w, mark.GravityRight); err != nil {
		sm.Release()
		em.Release()
		return nil, err
	}

	return &Region{parent: parent, start: sm, end: em}, nil
}

// New acquires a write lock on parent and creates a region over
// [start, end].
func New(ctx context.Context, parent buffer.Handle, start, end buffer.Position, opts ...mark.Option) (*Region, error) {
	l, err := parent.Write(ctx)
	if err != nil {
		return nil, err
	}
	defer l.Release()

	w, err := mark.AsWriter(l)
	if err != nil {
		return nil, err
	}
	return NewLocked(parent, w, start, end, opts...)
}

// Parent returns the handle the region projects into.
func (r *Region) Parent() buffer.Handle {
	return r.parent
}

// Marks returns the delimiting start and end marks.
func (r *Region) Marks() (start, end *mark.Mark) {
	return r.start, r.end
}

// Close releases the region's references to its delimiting marks. The
// marks are destroyed asynchronously once no other reference holds them.
func (r *Region) Close() {
	r.start.Release()
	r.end.Release()
}

// Equal reports whether other is the same region.
func (r *Region) Equal(other buffer.Handle) bool {
	o, ok := other.(*Region)
	return ok && o == r
}

// Read acquires a shared lock on the parent and returns an access object
// presenting the region as a buffer. Exactly one parent lock is held per
// region lock; it is released with the access object.
func (r *Region) Read(ctx context.Context) (buffer.ReadLock, error) {
	l, err := r.parent.Read(ctx)
	if err != nil {
		return nil, err
	}

	mr, err := mark.AsReader(l)
	if err != nil {
		l.Release()
		return nil, err
	}

	return &Access{start: r.start, end: r.end, marks: mr, lock: l}, nil
}

// Write acquires the parent's exclusive lock and returns a writable
// access object.
func (r *Region) Write(ctx context.Context) (buffer.WriteLock, error) {
	l, err := r.parent.Write(ctx)
	if err != nil {
		return nil, err
	}

	mw, err := mark.AsWriter(l)
	if err != nil {
		l.Release()
		return nil, err
	}
	mr, err := mark.AsReader(l)
	if err != nil {
		l.Release()
		return nil, err
	}

	return &WriteAccess{
		Access: Access{start: r.start, end: r.end, marks: mr, lock: l},
		marksW: mw,
	}, nil
}
