package forensics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteDevicePaths(t *testing.T) {
	devices := map[string]string{
		`\Device\HarddiskVolume1`:  "D:",
		`\Device\HarddiskVolume10`: "E:",
		`\Device\HarddiskVolume3`:  "C:",
	}
	in := BamResult{{SID: "S-1-5-18", Executable: []ExecutableRecord{
		{Path: `\Device\HarddiskVolume3\Windows\System32\cmd.exe`, Date: "d1"},
		{Path: `\Device\HarddiskVolume10\tools\x.exe`, Date: "d2"},
		{Path: `\device\harddiskvolume1\y.exe`, Date: "d3"},
		{Path: `\Device\HarddiskVolume7\z.exe`, Date: "d4"},
		{Path: `\Device\HarddiskVolume3`, Date: "d5"},
		{Path: `Microsoft.Windows.Explorer`, Date: "d6"},
	}}}

	out := RewriteDevicePaths(in, devices)

	assert.Equal(t, []ExecutableRecord{
		{Path: `C:\Windows\System32\cmd.exe`, Date: "d1"},
		{Path: `E:\tools\x.exe`, Date: "d2"},
		{Path: `D:\y.exe`, Date: "d3"},
		{Path: `\Device\HarddiskVolume7\z.exe`, Date: "d4"},
		{Path: `\Device\HarddiskVolume3`, Date: "d5"},
		{Path: `Microsoft.Windows.Explorer`, Date: "d6"},
	}, out[0].Executable)
	assert.Equal(t, `\Device\HarddiskVolume3\Windows\System32\cmd.exe`, in[0].Executable[0].Path)
}

func TestRewriteDevicePathsNoDevices(t *testing.T) {
	in := BamResult{{SID: "S-1-5-18", Executable: []ExecutableRecord{}}}
	assert.Equal(t, in, RewriteDevicePaths(in, nil))
}
