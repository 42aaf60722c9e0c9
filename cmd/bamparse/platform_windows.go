//go:build windows

package main

import (
	"fmt"

	"github.com/25smoking/bamparse/internal/forensics"
	"github.com/25smoking/bamparse/internal/report"
	winsys "github.com/25smoking/bamparse/internal/sys/windows"
)

func checkPrivileges() {
	v := winsys.CurrentVersion()
	log.Debugf("系统: %s", v.Name())
	if !v.HasBAM() {
		fmt.Printf("%s  警告: %s 早于 BAM 服务引入的版本%s\n", report.ColorYellow, v.Name(), report.ColorReset)
	}
	if !winsys.IsAdmin() {
		fmt.Printf("%s  警告: 未以管理员身份运行 (%s)，BAM 键可能无法读取%s\n", report.ColorYellow, v.Name(), report.ColorReset)
	}
}

func platformBuild() string {
	return winsys.CurrentVersion().String()
}

func rewriteDevicePaths(result forensics.BamResult) forensics.BamResult {
	devices, err := winsys.DosDevices()
	if err != nil {
		log.Warnf("无法获取盘符映射: %v", err)
		return result
	}
	return forensics.RewriteDevicePaths(result, devices)
}

func lookupUsers(result forensics.BamResult) map[string]string {
	users := make(map[string]string, len(result))
	for _, e := range result {
		if account, err := winsys.LookupAccount(e.SID); err == nil {
			users[e.SID] = account
		}
	}
	return users
}
