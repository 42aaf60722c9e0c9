//go:build windows
// +build windows

package winsys

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// DosDevices maps NT device names such as \Device\HarddiskVolume3 to the
// drive letter they are mounted on ("C:").
func DosDevices() (map[string]string, error) {
	var buf [512]uint16
	n, err := windows.GetLogicalDriveStrings(uint32(len(buf)), &buf[0])
	if err != nil {
		return nil, fmt.Errorf("GetLogicalDriveStrings: %w", err)
	}
	if int(n) > len(buf) {
		return nil, fmt.Errorf("GetLogicalDriveStrings: %d code units needed", n)
	}

	devices := make(map[string]string)
	for _, drive := range splitDriveStrings(buf[:n]) {
		name, err := windows.UTF16PtrFromString(drive)
		if err != nil {
			continue
		}
		var target [windows.MAX_PATH]uint16
		if _, err := windows.QueryDosDevice(name, &target[0], uint32(len(target))); err != nil {
			continue
		}
		// QueryDosDevice 也返回多字符串列表，第一个即当前映射
		devices[windows.UTF16ToString(target[:])] = drive
	}
	return devices, nil
}

// LookupAccount resolves a SID string to DOMAIN\account.
func LookupAccount(sid string) (string, error) {
	s, err := windows.StringToSid(sid)
	if err != nil {
		return "", err
	}
	account, domain, _, err := s.LookupAccount("")
	if err != nil {
		return "", err
	}
	if domain == "" {
		return account, nil
	}
	return domain + `\` + account, nil
}
