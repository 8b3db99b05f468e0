package winsys

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	privilegeMu      sync.Mutex
	privilegeEnabled bool
)

// EnableDebugPrivilege turns on SeDebugPrivilege in the calling process
// token so protected targets can be opened. The adjustment is
// process-wide and idempotent: once it succeeds, later calls are no-ops,
// and a failed attempt may safely be retried.
func EnableDebugPrivilege() error {
	privilegeMu.Lock()
	defer privilegeMu.Unlock()

	if privilegeEnabled {
		return nil
	}

	var token windows.Token
	err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token)
	if err != nil {
		return fmt.Errorf("open own process token: %w", err)
	}
	defer token.Close()

	name, err := windows.UTF16PtrFromString("SeDebugPrivilege")
	if err != nil {
		return err
	}

	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, name, &luid); err != nil {
		return fmt.Errorf("lookup SeDebugPrivilege: %w", err)
	}

	privileges := windows.Tokenprivileges{PrivilegeCount: 1}
	privileges.Privileges[0] = windows.LUIDAndAttributes{
		Luid:       luid,
		Attributes: windows.SE_PRIVILEGE_ENABLED,
	}

	if err := windows.AdjustTokenPrivileges(token, false, &privileges, 0, nil, nil); err != nil {
		return fmt.Errorf("adjust token privileges: %w", err)
	}

	// AdjustTokenPrivileges succeeds even when nothing was assigned.
	if lastErr := windows.GetLastError(); lastErr == windows.ERROR_NOT_ALL_ASSIGNED {
		return fmt.Errorf("SeDebugPrivilege not assigned: %w", lastErr)
	}

	privilegeEnabled = true
	return nil
}
