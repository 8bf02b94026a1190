package buftest

import (
	"errors"
	"testing"

	"github.com/markbuf/markbuf/buffer"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		content string
		pos     buffer.Position
	}{
		{"empty", "|", "", buffer.Position{}},
		{"start of line", "|First line", "First line", buffer.Position{}},
		{"mid line", "Fir|st line", "First line", buffer.Position{Col: 3}},
		{"end of line", "First line|", "First line", buffer.Position{Col: 10}},
		{"second line", "First line\nSec|ond line", "First line\nSecond line", buffer.Position{Row: 1, Col: 3}},
		{"trailing newline", "Fir|st line\n", "First line\n", buffer.Position{Col: 3}},
		{"cursor on empty last line", "First line\n|", "First line\n", buffer.Position{Row: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, pos, err := ParseState(tt.state)
			if err != nil {
				t.Fatalf("ParseState(%q): %v", tt.state, err)
			}
			if content != tt.content {
				t.Errorf("content = %q, want %q", content, tt.content)
			}
			if pos != tt.pos {
				t.Errorf("pos = %v, want %v", pos, tt.pos)
			}
		})
	}
}

func TestParseStateErrors(t *testing.T) {
	for _, state := range []string{"", "no marker", "a|b|c", "a|b\nc|d"} {
		if _, _, err := ParseState(state); !errors.Is(err, ErrBadState) {
			t.Errorf("ParseState(%q) = %v, want ErrBadState", state, err)
		}
	}
}
