// Package mark provides persistent named positions inside buffers.
//
// A mark is created against a write-locked buffer and is identified by an
// opaque ID. Marks track edits automatically: whenever text is spliced,
// every mark in the buffer drifts deterministically.
//
// Drift policy for SetText(a, b, text) with inserted extent
// d = MaxTextPos(text), for a mark at position p:
//
//   - p before a: unchanged.
//   - p after b: translated by the edit delta. The row moves by
//     d.Row - (b.Row - a.Row); the column is adjusted only when p was on
//     b's line, landing at (p.Col - b.Col) plus the column of the
//     insertion's tail.
//   - a <= p <= b: the mark collapses toward an endpoint according to its
//     gravity. Left gravity snaps to a; right gravity moves to the end of
//     the inserted text, a.Offset(d). A zero-width insert exactly at the
//     mark follows the same rule: right gravity rides the insert, left
//     gravity stays put.
//
// The Mark type is a shared, reference-counted view over (ID, Handle).
// Dropping the last reference must not destroy the mark synchronously —
// the releasing caller may be holding the buffer's lock — so destruction
// is deferred to a Reaper worker that takes the write lock itself and
// logs failures instead of propagating them.
package mark
