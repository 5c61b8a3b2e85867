package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New(ErrCodeNodeNotFound, "no node %q", "tabs"),
			want: `NODE_NOT_FOUND: no node "tabs"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidSnapshot, errors.New("unexpected EOF"), "decode"),
			want: "INVALID_SNAPSHOT: decode: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open %s", "dump.json")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), fs.ErrNotExist)
	}
	if err.Message != "open dump.json" {
		t.Errorf("Message = %q, want %q", err.Message, "open dump.json")
	}
}

func TestCodeLookup(t *testing.T) {
	coded := New(ErrCodeInvalidCoordinate, "x is NaN")

	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
	}{
		{"direct", coded, ErrCodeInvalidCoordinate, true, ErrCodeInvalidCoordinate},
		{"other code", coded, ErrCodeInvalidInput, false, ErrCodeInvalidCoordinate},
		{"fmt wrapped", fmt.Errorf("hit: %w", coded), ErrCodeInvalidCoordinate, true, ErrCodeInvalidCoordinate},
		{"outermost wins", Wrap(ErrCodeInvalidSnapshot, New(ErrCodeInvalidNodeID, "empty"), "node 3"), ErrCodeInvalidNodeID, false, ErrCodeInvalidSnapshot},
		{"plain", errors.New("boom"), ErrCodeInternal, false, ""},
		{"nil", nil, ErrCodeInternal, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeUnsupported, "nothing loaded"), "nothing loaded"},
		{"coded with cause", Wrap(ErrCodeInvalidConfig, errors.New("bad toml"), "parse config"), "parse config"},
		{"wrapped coded", fmt.Errorf("serve: %w", New(ErrCodeNodeNotFound, "no node %q", "x")), `no node "x"`},
		{"plain", errors.New("disk full"), "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
