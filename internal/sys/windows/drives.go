package winsys

import (
	"strings"
	"unicode/utf16"
)

// splitDriveStrings splits the buffer filled by GetLogicalDriveStrings
// ("C:\␀D:\␀␀") into drive names without the trailing backslash.
func splitDriveStrings(buf []uint16) []string {
	var drives []string
	for _, root := range strings.Split(string(utf16.Decode(buf)), "\x00") {
		if len(root) < 2 || root[1] != ':' {
			continue
		}
		drives = append(drives, strings.ToUpper(root[:2]))
	}
	return drives
}
