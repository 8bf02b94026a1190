// Package cursor is the optional cursor capability over buffers: a single
// current position with empty-line column normalization, plus typing
// helpers built on the buffer splice operations.
//
// TypeText follows the "insert after the character" rule: for a cursor
// sitting on a character the text goes after it, while at an end-of-line
// or end-of-buffer position the text goes at the cursor itself. The
// cursor then rests on the last inserted character, not after it.
package cursor
