package forensics

import "strings"

// RewriteDevicePaths replaces NT device prefixes in record paths with the
// drive letters from devices, e.g. \Device\HarddiskVolume3\x.exe -> C:\x.exe.
// A prefix only matches a whole path component; unmatched paths are kept.
// The input is not modified.
func RewriteDevicePaths(result BamResult, devices map[string]string) BamResult {
	if len(devices) == 0 {
		return result
	}

	out := make(BamResult, len(result))
	for i, e := range result {
		recs := make([]ExecutableRecord, len(e.Executable))
		for j, rec := range e.Executable {
			rec.Path = rewriteDevicePath(rec.Path, devices)
			recs[j] = rec
		}
		out[i] = BamEntry{SID: e.SID, Executable: recs}
	}
	return out
}

func rewriteDevicePath(path string, devices map[string]string) string {
	best := ""
	for device := range devices {
		if len(device) <= len(best) || len(path) <= len(device) {
			continue
		}
		if strings.EqualFold(path[:len(device)], device) && path[len(device)] == '\\' {
			best = device
		}
	}
	if best == "" {
		return path
	}
	return devices[best] + path[len(best):]
}
