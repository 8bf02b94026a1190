package buffer

import "testing"

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 1}, Position{0, 2}, -1},
		{Position{0, 5}, Position{0, 2}, 1},
		{Position{1, 0}, Position{0, 99}, 1},
		{Position{1, 3}, Position{2, 0}, -1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}

	if !(Position{0, 1}).Before(Position{1, 0}) {
		t.Error("(0,1) should be before (1,0)")
	}
	if !(Position{2, 0}).After(Position{1, 9}) {
		t.Error("(2,0) should be after (1,9)")
	}
}

func TestPositionSteps(t *testing.T) {
	p := Position{Row: 1, Col: 1}

	if got := p.NextCol(); got != (Position{1, 2}) {
		t.Errorf("NextCol = %v", got)
	}
	if got := p.PrevCol(); got != (Position{1, 0}) {
		t.Errorf("PrevCol = %v", got)
	}
	if got := p.NextRow(); got != (Position{2, 1}) {
		t.Errorf("NextRow = %v", got)
	}
	if got := p.PrevRow(); got != (Position{0, 1}) {
		t.Errorf("PrevRow = %v", got)
	}

	// Saturation at zero.
	if got := Origin().PrevCol(); got != Origin() {
		t.Errorf("PrevCol at origin = %v", got)
	}
	if got := Origin().PrevRow(); got != Origin() {
		t.Errorf("PrevRow at origin = %v", got)
	}
}

func TestPositionOffset(t *testing.T) {
	tests := []struct {
		base, by, want Position
	}{
		{Position{1, 5}, Position{0, 3}, Position{1, 8}},
		{Position{1, 5}, Position{2, 3}, Position{3, 3}},
		{Position{0, 0}, Position{0, 0}, Position{0, 0}},
		{Position{0, 6}, Position{1, 7}, Position{1, 7}},
	}

	for _, tt := range tests {
		if got := tt.base.Offset(tt.by); got != tt.want {
			t.Errorf("%v.Offset(%v) = %v, want %v", tt.base, tt.by, got, tt.want)
		}
	}
}

func TestMaxTextPos(t *testing.T) {
	tests := []struct {
		text string
		want Position
	}{
		{"", Position{0, 0}},
		{"abc", Position{0, 3}},
		{"abc\n", Position{1, 0}},
		{"abc\ndefgh", Position{1, 5}},
		{"\n\n", Position{2, 0}},
		{"(actually) line\nSecond ", Position{1, 7}},
	}

	for _, tt := range tests {
		if got := MaxTextPos(tt.text); got != tt.want {
			t.Errorf("MaxTextPos(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
