//go:build !windows

package main

import (
	"github.com/25smoking/bamparse/internal/forensics"
)

func checkPrivileges() {
}

func platformBuild() string {
	return ""
}

func rewriteDevicePaths(result forensics.BamResult) forensics.BamResult {
	return result
}

func lookupUsers(result forensics.BamResult) map[string]string {
	return nil
}
