// Package editor defines the contract a host editor exposes to the core:
// obtaining buffer handles and selecting the current buffer. What
// "current" means is host-defined; the core only requires that NewBuffer
// return a handle to an empty buffer (one empty line).
package editor

import (
	"context"

	"github.com/markbuf/markbuf/buffer"
)

// Editor hands out buffer handles.
type Editor interface {
	// CurrentBuffer returns a handle to the host's current buffer.
	CurrentBuffer(ctx context.Context) (buffer.Handle, error)

	// NewBuffer creates an empty buffer and returns its handle.
	NewBuffer(ctx context.Context) (buffer.Handle, error)

	// SetCurrentBuffer makes the buffer behind the held write lock the
	// current one.
	SetCurrentBuffer(l buffer.WriteLock) error
}
