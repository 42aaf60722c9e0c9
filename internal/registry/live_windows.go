//go:build windows

package registry

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

var rootKeys = map[string]registry.Key{
	HKeyLocalMachine:  registry.LOCAL_MACHINE,
	HKeyCurrentUser:   registry.CURRENT_USER,
	HKeyUsers:         registry.USERS,
	HKeyClassesRoot:   registry.CLASSES_ROOT,
	HKeyCurrentConfig: registry.CURRENT_CONFIG,
}

const liveAccess = registry.READ | registry.QUERY_VALUE | registry.ENUMERATE_SUB_KEYS | registry.WOW64_64KEY

// LiveSource reads the subkeys of a key in the running system's registry.
type LiveSource struct {
	root registry.Key
	path string
	full string
}

func NewLiveSource(fullPath string) (*LiveSource, error) {
	rootName, sub, err := SplitKeyPath(fullPath)
	if err != nil {
		return nil, err
	}
	root, ok := rootKeys[rootName]
	if !ok {
		return nil, fmt.Errorf("unsupported root key %s", rootName)
	}
	return &LiveSource{root: root, path: sub, full: fullPath}, nil
}

func (s *LiveSource) Subkeys(ctx context.Context) ([]Subkey, error) {
	key, err := registry.OpenKey(s.root, s.path, liveAccess)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.full, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.full, err)
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", s.full, err)
	}

	subkeys := make([]Subkey, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values, err := readValues(key, name)
		if err != nil {
			// 单个子键不可读时跳过，不影响其他 SID
			continue
		}
		subkeys = append(subkeys, Subkey{Name: name, Values: values})
	}
	return subkeys, nil
}

func readValues(parent registry.Key, name string) ([]Value, error) {
	k, err := registry.OpenKey(parent, name, liveAccess)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}

	values := make([]Value, 0, len(names))
	for _, vn := range names {
		data, kind, err := readSized(func(buf []byte) (int, uint32, error) {
			return k.GetValue(vn, buf)
		})
		if err != nil {
			continue
		}
		values = append(values, Value{Name: vn, Data: data, Kind: kind})
	}
	return values, nil
}
