package buftest

import (
	"errors"
	"strings"

	"github.com/markbuf/markbuf/buffer"
)

// ErrBadState reports a state string without exactly one '|' marker.
var ErrBadState = errors.New("state string must contain exactly one '|' cursor marker")

// ParseState splits a state string into buffer content and cursor
// position. The '|' marker is removed from the content; its line index
// and character index become the cursor row and column. A trailing
// newline is preserved as a final empty line.
func ParseState(state string) (string, buffer.Position, error) {
	lines := strings.Split(state, "\n")

	found := false
	var pos buffer.Position
	for i, line := range lines {
		idx := strings.IndexByte(line, '|')
		if idx < 0 {
			continue
		}
		if found || strings.IndexByte(line[idx+1:], '|') >= 0 {
			return "", buffer.Position{}, ErrBadState
		}

		found = true
		pos = buffer.Position{Row: i, Col: idx}
		lines[i] = line[:idx] + line[idx+1:]
	}
	if !found {
		return "", buffer.Position{}, ErrBadState
	}

	return strings.Join(lines, "\n"), pos, nil
}
