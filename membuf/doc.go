// Package membuf is the in-memory reference implementation of the buffer
// contracts: a slice-of-lines text store with splice edits, drifting
// marks, a cursor, and cancellable single-writer/many-readers locking.
//
// A Handle's locks implement every capability — buffer.ReadLock and
// buffer.WriteLock always, mark.Reader/Writer and cursor.Reader/Writer by
// type assertion — so membuf buffers compose with marks, cursors, and
// regions without host support.
//
// Locking is built on a weighted semaphore rather than sync.RWMutex so
// acquisition can observe context cancellation. Readers acquire weight 1,
// writers the full weight; no operation suspends while the lock is held.
//
// Editor implements editor.Editor over a deduplicating registry of
// handles keyed by buffer identity.
package membuf
