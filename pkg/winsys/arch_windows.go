package winsys

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// IsX64 reports whether the target runs with the native 64-bit word
// size. A WoW64 process is a 32-bit process hosted on a 64-bit system.
func IsX64(pid uint32) (bool, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return false, fmt.Errorf("open pid %d for query: %w", pid, err)
	}
	defer windows.CloseHandle(handle)

	var wow64 bool
	if err := windows.IsWow64Process(handle, &wow64); err != nil {
		return false, fmt.Errorf("IsWow64Process on pid %d: %w", pid, err)
	}

	return !wow64, nil
}
