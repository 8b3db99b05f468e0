package winsys

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	e "github.com/PromiseAll/memory-tool/error"
)

// Modules walks a toolhelp module snapshot of the given process. The
// TH32CS_SNAPMODULE32 flag is included so WoW64 targets report their
// 32-bit modules as well.
func Modules(pid uint32) ([]Module, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, pid)
	if err != nil {
		return nil, fmt.Errorf("module snapshot of pid %d: %w", pid, err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ModuleEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Module32First(snapshot, &entry); err != nil {
		return nil, fmt.Errorf("walk module snapshot of pid %d: %w", pid, err)
	}

	var modules []Module
	for {
		modules = append(modules, newModule(
			windows.UTF16ToString(entry.Module[:]),
			uint64(entry.ModBaseAddr),
			entry.ModBaseSize,
		))

		if err := windows.Module32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return modules, nil
}

// FindModule returns the first module whose name matches
// case-insensitively. If the same name is mapped more than once the
// first snapshot entry wins.
func FindModule(pid uint32, name string) (Module, error) {
	modules, err := Modules(pid)
	if err != nil {
		return Module{}, err
	}

	for _, m := range modules {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}

	return Module{}, fmt.Errorf("%q in pid %d: %w", name, pid, e.ModuleNotFound)
}
