package probe

import (
	"fmt"

	"golang.org/x/sys/windows"

	e "github.com/PromiseAll/memory-tool/error"
)

// processMemory is the handle-backed MemoryReadWriter. Each call is a
// single kernel memory copy; a transfer the OS reports as shorter than
// requested is an error, never silently accepted.
type processMemory struct {
	handle windows.Handle
}

func (m processMemory) ReadMemory(buf []byte, addr uint64) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	var done uintptr
	err := windows.ReadProcessMemory(m.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &done)
	if err != nil {
		return int(done), fmt.Errorf("read %d bytes at %#x: %v: %w", len(buf), addr, err, e.MemoryAccessFailure)
	}
	if int(done) != len(buf) {
		return int(done), fmt.Errorf("read %d of %d bytes at %#x: %w", done, len(buf), addr, e.PartialTransfer)
	}

	return int(done), nil
}

func (m processMemory) WriteMemory(addr uint64, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	var done uintptr
	err := windows.WriteProcessMemory(m.handle, uintptr(addr), &data[0], uintptr(len(data)), &done)
	if err != nil {
		return int(done), fmt.Errorf("write %d bytes at %#x: %v: %w", len(data), addr, err, e.MemoryAccessFailure)
	}
	if int(done) != len(data) {
		return int(done), fmt.Errorf("wrote %d of %d bytes at %#x: %w", done, len(data), addr, e.PartialTransfer)
	}

	return int(done), nil
}

// processProtector brackets patch writes with VirtualProtectEx over the
// exact byte range being written, not the whole page.
type processProtector struct {
	handle windows.Handle
}

func (p processProtector) MakeWritable(addr uint64, size int) (ProtectionToken, error) {
	var old uint32
	err := windows.VirtualProtectEx(p.handle, uintptr(addr), uintptr(size), windows.PAGE_EXECUTE_READWRITE, &old)
	if err != nil {
		return ProtectionToken{}, fmt.Errorf("unprotect %d bytes at %#x: %v: %w", size, addr, err, e.MemoryAccessFailure)
	}

	return ProtectionToken{addr: addr, size: size, prot: old}, nil
}

func (p processProtector) Restore(token ProtectionToken) error {
	var old uint32
	err := windows.VirtualProtectEx(p.handle, uintptr(token.addr), uintptr(token.size), token.prot, &old)
	if err != nil {
		return fmt.Errorf("restore protection of %d bytes at %#x: %v", token.size, token.addr, err)
	}
	return nil
}
