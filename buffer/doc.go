// Package buffer defines the core abstractions for line-addressed text
// buffers: the position coordinate model, the primitive read/write
// contracts, the derived editing operations, the shared-handle locking
// discipline, and the error taxonomy.
//
// The package deliberately contains no storage. Implementations provide
// the three primitives (LineCount, Lines, SetText); every other operation
// is a package function derived from them, so virtual buffers such as
// regions get the whole editing surface by implementing the primitives.
//
// Coordinates:
//
//   - Position is a 0-indexed (row, col) pair ordered lexicographically.
//   - col may equal the line length, denoting the insertion point after
//     the last character. An empty line admits only col 0.
//   - Columns count code units as produced by the underlying store;
//     grapheme clusters and display width are out of scope.
//
// Content convention: a buffer always has at least one line, and a
// trailing newline in serialized content corresponds to one additional
// empty terminal line ("a\n" is the two lines ["a", ""]).
//
// Access goes through a Handle: acquire a ReadLock or WriteLock (the
// only suspension point, cancellable via context), operate, Release.
package buffer
