// Package region implements virtual sub-buffers: a Region is a view over
// a parent buffer delimited by two marks, exposed as a buffer.Handle of
// its own.
//
// The start mark carries left gravity and the end mark right gravity, so
// text inserted inside the region extends it while edits outside shift
// it. Coordinates translate between the two spaces row-wise; only
// positions on the region's first line carry a column offset:
//
//	parent = (S.Row + p.Row, S.Col + p.Col)  when p.Row == 0
//	parent = (S.Row + p.Row, p.Col)          otherwise
//
// A locked region wraps one lock on the parent, held for the lifetime of
// the region lock, so every region operation sees a consistent snapshot.
// Regions delegate the mark and cursor capabilities to the parent after
// translation, which makes regions over regions work without any special
// casing.
package region
