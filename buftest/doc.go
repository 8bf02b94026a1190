// Package buftest provides conformance suites for buffer
// implementations. A backend passes a Factory producing a fresh editor
// and runs RunBufferSuite, RunMarkSuite, and RunCursorSuite against it;
// RegionFactory wraps any mark-capable factory so the same suites
// exercise regions over that backend.
//
// Test buffers are seeded from state strings where a single '|' marks
// the cursor, e.g. "First line\nSec|ond line".
package buftest
