package remote

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeParams(t *testing.T, raw string) Params {
	t.Helper()
	var p Params
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	return p
}

func TestRequireKinds(t *testing.T) {
	p := decodeParams(t, `{"id":42,"name":"abc","index":[1,2],"meta":{}}`)

	if err := p.Require("id", KindInteger); err != nil {
		t.Fatalf("integer: %v", err)
	}
	if err := p.Require("name", KindString); err != nil {
		t.Fatalf("string: %v", err)
	}
	if err := p.Require("index", KindArray); err != nil {
		t.Fatalf("array: %v", err)
	}
	if err := p.Require("meta", KindObject); err != nil {
		t.Fatalf("object: %v", err)
	}
}

func TestRequireMissingKey(t *testing.T) {
	p := decodeParams(t, `{}`)
	err := p.Require("id", KindInteger)
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestRequireWrongKind(t *testing.T) {
	p := decodeParams(t, `{"id":"7"}`)
	if err := p.Require("id", KindInteger); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestRequireFractionalNumberIsNotInteger(t *testing.T) {
	p := decodeParams(t, `{"id":1.5}`)
	if err := p.Require("id", KindInteger); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestIntSlice(t *testing.T) {
	p := decodeParams(t, `{"index":[0,2,5]}`)
	got, err := p.IntSlice("index")
	if err != nil {
		t.Fatalf("int slice: %v", err)
	}
	want := []int{0, 2, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestIntSliceRejectsNonIntegerElement(t *testing.T) {
	p := decodeParams(t, `{"index":["a"]}`)
	if _, err := p.IntSlice("index"); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestOptionalAccessors(t *testing.T) {
	p := decodeParams(t, `{"year":1999,"title":"x"}`)
	if got := p.IntOr("year", 0); got != 1999 {
		t.Fatalf("expected 1999, got %d", got)
	}
	if got := p.IntOr("track_index", 3); got != 3 {
		t.Fatalf("expected fallback 3, got %d", got)
	}
	if got := p.StringOr("title", ""); got != "x" {
		t.Fatalf("expected x, got %q", got)
	}
	if got := p.StringOr("artist", "unknown"); got != "unknown" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
