//go:build windows
// +build windows

package winsys

import (
	"golang.org/x/sys/windows"
)

// IsAdmin 检查当前进程令牌是否属于 BUILTIN\Administrators
// BAM 键只允许 SYSTEM 和管理员读取
func IsAdmin() bool {
	admins, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false
	}
	member, err := windows.Token(0).IsMember(admins)
	return err == nil && member
}

// CurrentVersion 通过 RtlGetVersion 获取版本，不受兼容性清单影响
func CurrentVersion() OSVersion {
	v := windows.RtlGetVersion()
	return OSVersion{Major: v.MajorVersion, Minor: v.MinorVersion, Build: v.BuildNumber}
}
