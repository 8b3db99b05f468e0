package winsys

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	e "github.com/PromiseAll/memory-tool/error"
)

// Processes walks a toolhelp snapshot and returns every process on the
// host.
func Processes() ([]ProcessInfo, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snapshot, &entry); err != nil {
		return nil, fmt.Errorf("walk process snapshot: %w", err)
	}

	var processes []ProcessInfo
	for {
		processes = append(processes, ProcessInfo{
			PID:  entry.ProcessID,
			Name: windows.UTF16ToString(entry.ExeFile[:]),
		})

		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return processes, nil
}

// FindPID resolves a process name (case-insensitive) to a unique pid.
// Zero matches fail with ProcessNotFound, more than one with
// AmbiguousName.
func FindPID(name string) (uint32, error) {
	processes, err := Processes()
	if err != nil {
		return 0, err
	}

	var matches []uint32
	for _, p := range processes {
		if strings.EqualFold(p.Name, name) {
			matches = append(matches, p.PID)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%q: %w", name, e.ProcessNotFound)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%q matches %d processes: %w", name, len(matches), e.AmbiguousName)
	}
}

// PidExists is a cheap liveness probe used for argument validation.
func PidExists(pid uint32) bool {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return false
	}
	windows.CloseHandle(handle)
	return true
}
