package errors

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func TestDecodeErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		err  *DecodeError
	}{
		{
			name: "code and attribute",
			err:  &DecodeError{Code: ErrUnknownType, Attribute: "Level"},
			want: `[UnknownType] attribute "Level"`,
		},
		{
			name: "with type and value",
			err:  &DecodeError{Code: ErrDecodeFormat, Attribute: "Level", Type: "int32", Value: "abc"},
			want: `[DecodeFormat] attribute "Level" type int32 value "abc"`,
		},
		{
			name: "with cause",
			err: &DecodeError{
				Code:      ErrDecodeOverflow,
				Attribute: "Level",
				Type:      "uint8",
				Value:     "300",
				Err:       strconv.ErrRange,
			},
			want: `[DecodeOverflow] attribute "Level" type uint8 value "300": value out of range`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMalformedNodeFormatting(t *testing.T) {
	if got, want := NewMalformedNode("", "node has no id").Error(), "[MalformedNode] node has no id"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if got, want := NewMalformedNode("/node[0]/children/node[2]", "node has no id").Error(),
		"[MalformedNode] node has no id at /node[0]/children/node[2]"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestCodeOfWrapped(t *testing.T) {
	tests := []struct {
		err    error
		name   string
		want   ErrorCode
		wantOK bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: errors.New("boom")},
		{
			name:   "decode",
			err:    fmt.Errorf("build: %w", NewDecodeError(ErrDecodeFormat, "a", "int8", "x", nil)),
			want:   ErrDecodeFormat,
			wantOK: true,
		},
		{
			name:   "malformed",
			err:    fmt.Errorf("find: %w", NewMalformedNode("", "missing id")),
			want:   ErrMalformedNode,
			wantOK: true,
		},
		{
			name:   "syntax",
			err:    &SyntaxError{Line: 3, Err: errors.New("unexpected EOF")},
			want:   ErrXMLParse,
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodeOf(tt.err)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("CodeOf() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewDecodeError(ErrDecodeOverflow, "n", "int8", "999", strconv.ErrRange))
	if !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("errors.Is(err, strconv.ErrRange) = false, want true")
	}
	decodeErr, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("AsDecodeError() ok = false")
	}
	if decodeErr.Attribute != "n" {
		t.Fatalf("Attribute = %q, want n", decodeErr.Attribute)
	}
	if !IsMalformedNode(fmt.Errorf("x: %w", NewMalformedNode("", "m"))) {
		t.Fatalf("IsMalformedNode() = false, want true")
	}
}
