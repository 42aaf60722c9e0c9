package winsys

import "fmt"

// OSVersion is the kernel version reported by RtlGetVersion.
type OSVersion struct {
	Major uint32
	Minor uint32
	Build uint32
}

// String returns "major.minor.build", the form matched against configured builds.
func (v OSVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// Name 返回产品名称，例如 "Windows 11 (Build 22631)"
func (v OSVersion) Name() string {
	var name string
	switch {
	case v.Major == 10 && v.Minor == 0 && v.Build >= 22000:
		name = "11"
	case v.Major == 10 && v.Minor == 0:
		name = "10"
	case v.Major == 6 && v.Minor == 3:
		name = "8.1"
	default:
		name = fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("Windows %s (Build %d)", name, v.Build)
}

// HasBAM reports whether the build is new enough to run the BAM service.
// BAM first shipped with 10.0.16299.
func (v OSVersion) HasBAM() bool {
	return v.Major > 10 || (v.Major == 10 && v.Build >= 16299)
}
