package registry

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned when the requested key is absent from the source.
	ErrKeyNotFound = errors.New("registry key not found")
	// ErrUnsupportedPlatform is returned by the live source outside Windows.
	ErrUnsupportedPlatform = errors.New("live registry access is only supported on Windows")
)

// Source enumerates the subkeys of one registry key.
// Subkeys and their values come back in enumeration order.
type Source interface {
	Subkeys(ctx context.Context) ([]Subkey, error)
}

// StaticSource serves a fixed, in-memory list of subkeys.
type StaticSource []Subkey

func (s StaticSource) Subkeys(ctx context.Context) ([]Subkey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Subkey, len(s))
	copy(out, s)
	return out, nil
}
