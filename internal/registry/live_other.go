//go:build !windows

package registry

import "context"

// LiveSource is unavailable outside Windows; use a .reg export instead.
type LiveSource struct{}

func NewLiveSource(fullPath string) (*LiveSource, error) {
	return nil, ErrUnsupportedPlatform
}

func (s *LiveSource) Subkeys(ctx context.Context) ([]Subkey, error) {
	return nil, ErrUnsupportedPlatform
}
