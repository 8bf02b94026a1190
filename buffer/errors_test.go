package buffer

import (
	"errors"
	"testing"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	var rowErr error = &RowError{Row: 5, Limit: 2}
	if !errors.Is(rowErr, ErrRowOutOfBounds) {
		t.Error("RowError should match ErrRowOutOfBounds")
	}
	if errors.Is(rowErr, ErrColOutOfBounds) {
		t.Error("RowError should not match ErrColOutOfBounds")
	}

	var colErr error = &ColError{Col: -1, Limit: 0}
	if !errors.Is(colErr, ErrColOutOfBounds) {
		t.Error("ColError should match ErrColOutOfBounds")
	}

	var re *RowError
	if !errors.As(rowErr, &re) || re.Row != 5 || re.Limit != 2 {
		t.Errorf("errors.As lost fields: %+v", re)
	}
}

func TestHostErrorUnwrap(t *testing.T) {
	inner := errors.New("dispatch failed")
	err := &HostError{Op: "set_text", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("HostError should unwrap to inner error")
	}
	if err.Error() == "" {
		t.Error("HostError should render a message")
	}
}
