package buffer

import "context"

// ReadLock is a held shared lock on a buffer. While it is alive the
// buffer's storage does not change. Release must be called on all exit
// paths; releasing twice is a no-op.
type ReadLock interface {
	Reader
	Release()
}

// WriteLock is a held exclusive lock on a buffer. It is also a ReadLock.
type WriteLock interface {
	Writer
	Release()
}

// Handle is a shareable identity for a buffer. Handles are freely
// copyable; two handles are equal exactly when they refer to the same
// underlying buffer, and equal handles read and write the same state.
//
// Lock acquisition is the only suspension point: it honors ctx
// cancellation, and operations on the returned lock run synchronously.
// Capability extensions (marks, cursor) are discovered by type-asserting
// the returned locks against mark.Reader, mark.Writer, cursor.Reader and
// cursor.Writer.
type Handle interface {
	Read(ctx context.Context) (ReadLock, error)
	Write(ctx context.Context) (WriteLock, error)

	// Equal reports whether other refers to the same buffer.
	Equal(other Handle) bool
}
