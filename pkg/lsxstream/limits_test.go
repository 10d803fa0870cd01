package lsxstream

import (
	"errors"
	"strings"
	"testing"

	lsxerrors "github.com/jacoelho/lsx/errors"
)

func drain(r *Reader) error {
	for {
		ok, err := r.Next()
		if err != nil || !ok {
			return err
		}
	}
}

func TestLimits(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults", doc: `<a><b><c/></b></a>`},
		{name: "depth at limit", doc: `<a><b><c/></b></a>`, opts: []Option{WithMaxDepth(3)}},
		{name: "depth over limit", doc: `<a><b><c/></b></a>`, opts: []Option{WithMaxDepth(2)}, wantErr: true},
		{name: "attrs at limit", doc: `<a x="1" y="2"/>`, opts: []Option{WithMaxAttrs(2)}},
		{name: "attrs over limit", doc: `<a x="1" y="2" z="3"/>`, opts: []Option{WithMaxAttrs(2)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(strings.NewReader(tt.doc), tt.opts...)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			err = drain(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("drain() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrLimitExceeded) {
				t.Fatalf("error = %v, want ErrLimitExceeded", err)
			}
			var syntaxErr *lsxerrors.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("error = %T, want *SyntaxError", err)
			}
		})
	}
}

func TestMaterializeEnforcesDepth(t *testing.T) {
	r, err := NewReader(strings.NewReader(`<a><b><c><d/></c></b></a>`), WithMaxDepth(3))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if ok, err := r.Next(); !ok || err != nil {
		t.Fatalf("Next() = %v, %v", ok, err)
	}
	if _, err := r.Materialize(); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Materialize() error = %v, want ErrLimitExceeded", err)
	}
}

func TestNegativeLimitsRejected(t *testing.T) {
	for _, opt := range []Option{WithMaxDepth(-1), WithMaxAttrs(-1)} {
		if _, err := NewReader(strings.NewReader(`<a/>`), opt); err == nil {
			t.Fatalf("NewReader() error = nil, want error")
		}
	}
}
