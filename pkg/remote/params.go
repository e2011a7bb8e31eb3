package remote

import (
	"errors"
	"fmt"
	"math"
)

// Kind identifies the JSON shape a parameter must have.
type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// ErrInvalidParams reports a missing or mistyped parameter. Handlers fail
// with it so the processor can collapse the call into a generic wire fault.
var ErrInvalidParams = errors.New("invalid params")

// Params is a decoded params document.
type Params map[string]any

// Require fails unless key is present and its value has the given kind.
// Integer means a JSON number with no fractional part.
func (p Params) Require(key string, kind Kind) error {
	value, ok := p[key]
	if !ok {
		return fmt.Errorf("%w: %s missing", ErrInvalidParams, key)
	}
	if !isKind(value, kind) {
		return fmt.Errorf("%w: %s must be %s", ErrInvalidParams, key, kind)
	}
	return nil
}

// Int returns a required integer parameter.
func (p Params) Int(key string) (int, error) {
	if err := p.Require(key, KindInteger); err != nil {
		return 0, err
	}
	return int(p[key].(float64)), nil
}

// String returns a required string parameter.
func (p Params) String(key string) (string, error) {
	if err := p.Require(key, KindString); err != nil {
		return "", err
	}
	return p[key].(string), nil
}

// IntSlice returns a required array parameter whose elements must all be
// integers.
func (p Params) IntSlice(key string) ([]int, error) {
	if err := p.Require(key, KindArray); err != nil {
		return nil, err
	}
	raw := p[key].([]any)
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		if !isKind(item, KindInteger) {
			return nil, fmt.Errorf("%w: %s must contain only integers", ErrInvalidParams, key)
		}
		out = append(out, int(item.(float64)))
	}
	return out, nil
}

// IntOr returns an optional integer parameter or the fallback.
func (p Params) IntOr(key string, fallback int) int {
	if isKind(p[key], KindInteger) {
		return int(p[key].(float64))
	}
	return fallback
}

// StringOr returns an optional string parameter or the fallback.
func (p Params) StringOr(key string, fallback string) string {
	if value, ok := p[key].(string); ok {
		return value
	}
	return fallback
}

func isKind(value any, kind Kind) bool {
	switch kind {
	case KindInteger:
		number, ok := value.(float64)
		return ok && number == math.Trunc(number)
	case KindString:
		_, ok := value.(string)
		return ok
	case KindArray:
		_, ok := value.([]any)
		return ok
	case KindObject:
		_, ok := value.(map[string]any)
		return ok
	}
	return false
}
