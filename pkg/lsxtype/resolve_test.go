package lsxtype

import (
	"strconv"
	"sync"
	"testing"
)

func TestResolveMappedOrdinals(t *testing.T) {
	for i, want := range defaultOrdinals {
		token := strconv.Itoa(i)
		if got := Resolve(token); got != string(want) {
			t.Fatalf("Resolve(%q) = %q, want %q", token, got, want)
		}
	}
}

func TestResolveKnownTokens(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "22", want: "FixedString"},
		{token: "28", want: "TranslatedString"},
		{token: "19", want: "bool"},
		{token: "31", want: "guid"},
		{token: "0022", want: "FixedString"},
		{token: "FixedString", want: "FixedString"},
		{token: "fvec3", want: "fvec3"},
		{token: "", want: ""},
		{token: "-1", want: "-1"},
		{token: "2a", want: "2a"},
		{token: " 22", want: " 22"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.token); got != tt.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestResolveUnmappedOrdinalReturnsToken(t *testing.T) {
	tokens := []string{
		strconv.Itoa(MaxDefaultOrdinal + 1),
		"999",
		"99999999999999999999999999",
	}
	for _, token := range tokens {
		if got := Resolve(token); got != token {
			t.Fatalf("Resolve(%q) = %q, want token unchanged", token, got)
		}
	}
}

func TestNewResolverExtraOrdinals(t *testing.T) {
	r, err := NewResolver(map[int]Name{40: FixedString, 41: "vec5"})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if got := r.Resolve("40"); got != "FixedString" {
		t.Fatalf("Resolve(40) = %q, want FixedString", got)
	}
	if got := r.Resolve("41"); got != "vec5" {
		t.Fatalf("Resolve(41) = %q, want vec5", got)
	}
	if got := r.Resolve("22"); got != "FixedString" {
		t.Fatalf("Resolve(22) = %q, want built-in FixedString", got)
	}
	if got := Resolve("40"); got != "40" {
		t.Fatalf("default Resolve(40) = %q, extra ordinals leaked into default table", got)
	}
	ords := r.Ordinals()
	if len(ords) != len(defaultOrdinals)+2 {
		t.Fatalf("Ordinals() len = %d, want %d", len(ords), len(defaultOrdinals)+2)
	}
	for i := 1; i < len(ords); i++ {
		if ords[i-1].Index >= ords[i].Index {
			t.Fatalf("Ordinals() not sorted at %d", i)
		}
	}
}

func TestNewResolverRejectsInvalid(t *testing.T) {
	tests := []struct {
		extra map[int]Name
		name  string
	}{
		{name: "redefine built-in", extra: map[int]Name{22: String}},
		{name: "negative", extra: map[int]Name{-3: String}},
		{name: "empty name", extra: map[int]Name{50: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewResolver(tt.extra); err == nil {
				t.Fatalf("NewResolver() error = nil, want error")
			}
		})
	}
}

func TestResolverNilUsesDefault(t *testing.T) {
	var r *Resolver
	if got := r.Resolve("22"); got != "FixedString" {
		t.Fatalf("nil Resolve(22) = %q, want FixedString", got)
	}
	if name, ok := r.Lookup(31); !ok || name != GUID {
		t.Fatalf("nil Lookup(31) = (%q, %v), want (guid, true)", name, ok)
	}
}

func TestResolveConcurrent(t *testing.T) {
	const workers = 16
	var wg sync.WaitGroup
	errCh := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j <= MaxDefaultOrdinal; j++ {
				if got := Resolve(strconv.Itoa(j)); got != string(defaultOrdinals[j]) {
					errCh <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for got := range errCh {
		t.Fatalf("concurrent Resolve returned %q", got)
	}
}
