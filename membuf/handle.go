package membuf

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/mark"
)

// maxReaders is the semaphore weight a writer acquires. Any number of
// readers up to this bound may hold the lock together.
const maxReaders = 1 << 30

// Handle is a shareable reference to an in-memory buffer. It implements
// buffer.Handle; its locks additionally implement the mark and cursor
// capabilities.
//
// Locking is a single-writer/many-readers semaphore: readers take weight
// 1, writers take the full weight. Acquisition honors context
// cancellation; operations under a held lock are synchronous.
type Handle struct {
	st  *store
	sem *semaphore.Weighted
}

func newHandle(st *store) *Handle {
	return &Handle{
		st:  st,
		sem: semaphore.NewWeighted(maxReaders),
	}
}

// ID returns the buffer's stable identity.
func (h *Handle) ID() string {
	return h.st.id
}

// Equal reports whether other refers to the same in-memory buffer.
func (h *Handle) Equal(other buffer.Handle) bool {
	o, ok := other.(*Handle)
	return ok && o.st == h.st
}

// Read acquires a shared lock.
func (h *Handle) Read(ctx context.Context) (buffer.ReadLock, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, &buffer.HostError{Op: "acquire read lock", Err: err}
	}
	return &readLock{h: h, weight: 1}, nil
}

// Write acquires the exclusive lock.
func (h *Handle) Write(ctx context.Context) (buffer.WriteLock, error) {
	if err := h.sem.Acquire(ctx, maxReaders); err != nil {
		return nil, &buffer.HostError{Op: "acquire write lock", Err: err}
	}
	return &writeLock{readLock{h: h, weight: maxReaders}}, nil
}

// readLock implements buffer.ReadLock plus the mark and cursor read
// capabilities.
type readLock struct {
	h        *Handle
	weight   int64
	released bool
}

// Release returns the lock. Releasing twice is a no-op.
func (l *readLock) Release() {
	if l.released {
		return
	}
	l.released = true
	l.h.sem.Release(l.weight)
}

func (l *readLock) LineCount() (int, error) {
	return l.h.st.lineCount(), nil
}

func (l *readLock) Lines(start, end int) ([]string, error) {
	return l.h.st.linesRange(start, end)
}

func (l *readLock) MarkPosition(id mark.ID) (buffer.Position, error) {
	return l.h.st.markPosition(id)
}

func (l *readLock) Cursor() (buffer.Position, error) {
	return l.h.st.getCursor(), nil
}

// writeLock implements buffer.WriteLock plus the mark and cursor write
// capabilities.
type writeLock struct {
	readLock
}

func (l *writeLock) SetText(start, end buffer.Position, text string) error {
	return l.h.st.setText(start, end, text)
}

func (l *writeLock) CreateMark(pos buffer.Position) (mark.ID, error) {
	return l.h.st.createMark(pos)
}

func (l *writeLock) DestroyMark(id mark.ID) error {
	return l.h.st.destroyMark(id)
}

func (l *writeLock) SetMarkPosition(id mark.ID, pos buffer.Position) error {
	return l.h.st.setMarkPosition(id, pos)
}

func (l *writeLock) SetMarkGravity(id mark.ID, g mark.Gravity) error {
	return l.h.st.setMarkGravity(id, g)
}

func (l *writeLock) SetCursor(p buffer.Position) error {
	return l.h.st.setCursor(p)
}
