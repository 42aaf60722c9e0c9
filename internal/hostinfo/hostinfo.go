// Package hostinfo describes the machine the tool runs on.
package hostinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// Info is the subset of host facts used to pick the BAM key and to label runs.
type Info struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Uptime          time.Duration
}

// Detect 获取主机信息
func Detect() (*Info, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to query host info: %w", err)
	}
	return &Info{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Uptime:          time.Duration(info.Uptime) * time.Second,
	}, nil
}

// Build returns the version string matched against the configured builds.
// On Windows gopsutil reports versions like "10.0.19045 Build 19045.3693";
// the leading major.minor.build triple is kept.
func (i *Info) Build() string {
	v := i.PlatformVersion
	if i.OS != "windows" && i.KernelVersion != "" {
		v = i.KernelVersion
	}
	if fields := strings.Fields(v); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func (i *Info) String() string {
	return fmt.Sprintf("%s %s (%s)", i.Platform, i.PlatformVersion, i.Hostname)
}
