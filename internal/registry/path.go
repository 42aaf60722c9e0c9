package registry

import (
	"fmt"
	"strings"
)

// Root hive names in their long form.
const (
	HKeyLocalMachine  = "HKEY_LOCAL_MACHINE"
	HKeyCurrentUser   = "HKEY_CURRENT_USER"
	HKeyUsers         = "HKEY_USERS"
	HKeyClassesRoot   = "HKEY_CLASSES_ROOT"
	HKeyCurrentConfig = "HKEY_CURRENT_CONFIG"
)

var rootAliases = map[string]string{
	"HKLM":            HKeyLocalMachine,
	HKeyLocalMachine:  HKeyLocalMachine,
	"HKCU":            HKeyCurrentUser,
	HKeyCurrentUser:   HKeyCurrentUser,
	"HKU":             HKeyUsers,
	HKeyUsers:         HKeyUsers,
	"HKCR":            HKeyClassesRoot,
	HKeyClassesRoot:   HKeyClassesRoot,
	"HKCC":            HKeyCurrentConfig,
	HKeyCurrentConfig: HKeyCurrentConfig,
}

// SplitKeyPath splits a full key path such as
// `HKLM\SYSTEM\CurrentControlSet\Services\bam` into its long root name and
// the path below it.
func SplitKeyPath(fullPath string) (root, sub string, err error) {
	p := strings.Trim(strings.ReplaceAll(fullPath, "/", `\`), `\`)
	head, rest, _ := strings.Cut(p, `\`)
	root, ok := rootAliases[strings.ToUpper(head)]
	if !ok {
		return "", "", fmt.Errorf("unknown root key in %q", fullPath)
	}
	return root, rest, nil
}

// CanonicalKey folds a key path into a form that compares equal across
// hive prefixes, case and control set numbering. A live path under
// CurrentControlSet and an exported path under ControlSet001 both fold to
// `SYSTEM\CONTROLSET\...`.
func CanonicalKey(path string) string {
	p := strings.Trim(strings.ReplaceAll(path, "/", `\`), `\`)
	if _, sub, err := SplitKeyPath(p); err == nil {
		p = sub
	}
	parts := strings.Split(strings.ToUpper(p), `\`)
	out := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		if part == "CURRENTCONTROLSET" || isNumberedControlSet(part) {
			part = "CONTROLSET"
		}
		out = append(out, part)
	}
	return strings.Join(out, `\`)
}

func isNumberedControlSet(part string) bool {
	digits, ok := strings.CutPrefix(part, "CONTROLSET")
	if !ok || digits == "" {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parentKey returns the path without its last component.
func parentKey(path string) string {
	i := strings.LastIndex(path, `\`)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// baseName returns the last component of a key path.
func baseName(path string) string {
	return path[strings.LastIndex(path, `\`)+1:]
}
