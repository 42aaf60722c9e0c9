package winsys

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

func TestSplitDriveStrings(t *testing.T) {
	tests := []struct {
		name string
		buf  string
		want []string
	}{
		{"several drives", "C:\\\x00D:\\\x00e:\\\x00\x00", []string{"C:", "D:", "E:"}},
		{"without final terminator", "C:\\\x00Z:\\", []string{"C:", "Z:"}},
		{"single drive", "C:\\\x00", []string{"C:"}},
		{"empty", "", nil},
		{"junk entries", "\\\x00AB\x00C:\\\x00", []string{"C:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitDriveStrings(utf16.Encode([]rune(tt.buf))))
		})
	}
}

func TestOSVersion(t *testing.T) {
	tests := []struct {
		v      OSVersion
		str    string
		name   string
		hasBAM bool
	}{
		{OSVersion{10, 0, 22631}, "10.0.22631", "Windows 11 (Build 22631)", true},
		{OSVersion{10, 0, 19045}, "10.0.19045", "Windows 10 (Build 19045)", true},
		{OSVersion{10, 0, 16299}, "10.0.16299", "Windows 10 (Build 16299)", true},
		{OSVersion{10, 0, 15063}, "10.0.15063", "Windows 10 (Build 15063)", false},
		{OSVersion{6, 3, 9600}, "6.3.9600", "Windows 8.1 (Build 9600)", false},
		{OSVersion{6, 1, 7601}, "6.1.7601", "Windows 6.1 (Build 7601)", false},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.v.String())
			assert.Equal(t, tt.name, tt.v.Name())
			assert.Equal(t, tt.hasBAM, tt.v.HasBAM())
		})
	}
}
