// Package probe attaches to a running process and reads, writes and
// patches its memory through an owned process handle. The target's
// memory is shared mutable state this process does not own: nothing
// observed in one call is assumed to still hold in the next.
package probe

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/windows"

	e "github.com/PromiseAll/memory-tool/error"
	"github.com/PromiseAll/memory-tool/pkg/logflags"
	"github.com/PromiseAll/memory-tool/pkg/winsys"
)

// Probe owns one privileged handle to the target for its whole
// lifetime. Operations are serialized with a mutex so a single Probe can
// be shared by the service handler pool; two Probes on the same pid hold
// independent handles and are not coordinated.
type Probe struct {
	pid    uint32
	arch   Arch
	handle windows.Handle
	mem    MemoryReadWriter
	prot   regionProtector
	log    logflags.Logger

	mu     sync.Mutex
	closed bool
}

// Attach opens the target with read/write/query rights. ArchAuto asks
// the OS for the target's word size first. Debug privilege elevation is
// attempted before the open; only the open itself is fatal.
func Attach(pid uint32, arch Arch, debug bool) (*Probe, error) {
	log := logflags.EngineLogger(debug)

	if err := winsys.EnableDebugPrivilege(); err != nil {
		log.Warnf("enable debug privilege: %v", err)
	}

	if arch == ArchAuto {
		x64, err := winsys.IsX64(pid)
		if err != nil {
			return nil, fmt.Errorf("pid %d: %v: %w", pid, err, e.ArchitectureUndetermined)
		}
		if x64 {
			arch = ArchX64
		} else {
			arch = ArchX86
		}
	}

	const rights = windows.PROCESS_VM_READ | windows.PROCESS_VM_WRITE |
		windows.PROCESS_VM_OPERATION | windows.PROCESS_QUERY_INFORMATION

	handle, err := windows.OpenProcess(rights, false, pid)
	if err != nil {
		switch err {
		case windows.ERROR_ACCESS_DENIED:
			return nil, fmt.Errorf("open pid %d: %w", pid, e.AccessDenied)
		case windows.ERROR_INVALID_PARAMETER:
			// OpenProcess reports a vanished pid as a bad parameter.
			return nil, fmt.Errorf("open pid %d: %w", pid, e.ProcessNotFound)
		default:
			return nil, fmt.Errorf("open pid %d: %w", pid, err)
		}
	}

	log.Debugf("attached to pid %d (%s), handle %#x", pid, arch, handle)

	return &Probe{
		pid:    pid,
		arch:   arch,
		handle: handle,
		mem:    processMemory{handle: handle},
		prot:   processProtector{handle: handle},
		log:    log,
	}, nil
}

// AttachName resolves a process name to a unique pid and attaches to it.
func AttachName(name string, arch Arch, debug bool) (*Probe, error) {
	pid, err := winsys.FindPID(name)
	if err != nil {
		return nil, err
	}
	return Attach(pid, arch, debug)
}

func (p *Probe) PID() uint32 {
	return p.pid
}

func (p *Probe) Arch() Arch {
	return p.arch
}

// Close releases the process handle. The consumed flag makes release
// happen exactly once no matter how many times Close is called.
func (p *Probe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	p.log.Debugf("detached from pid %d", p.pid)
	return windows.CloseHandle(p.handle)
}

// Modules lists the target's loaded modules.
func (p *Probe) Modules() ([]winsys.Module, error) {
	return winsys.Modules(p.pid)
}

// Module looks up a loaded module by name, the usual anchor for a
// pointer chain base.
func (p *Probe) Module(name string) (winsys.Module, error) {
	return winsys.FindModule(p.pid, name)
}

// ParseAddress turns an address expression into an absolute address.
// Accepted forms are a plain integer ("0x1400a2c60", "1234") or a
// module-relative offset ("game.exe+0x2c60").
func (p *Probe) ParseAddress(expr string) (uint64, error) {
	modName, offset, relative := strings.Cut(expr, "+")
	if !relative {
		addr, err := strconv.ParseUint(expr, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("address %q: %w", expr, e.InvalidAddress)
		}
		return addr, nil
	}

	module, err := p.Module(strings.TrimSpace(modName))
	if err != nil {
		return 0, err
	}

	off, err := strconv.ParseInt(strings.TrimSpace(offset), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("offset %q: %w", offset, e.InvalidAddress)
	}

	return offsetAddr(module.Base, off)
}

// ParseOffsets parses the textual form of a pointer chain. Offsets are
// signed so backward layouts are expressible.
func ParseOffsets(args []string) ([]int64, error) {
	offsets := make([]int64, 0, len(args))
	for _, arg := range args {
		off, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("offset %q: %w", arg, e.InvalidAddress)
		}
		offsets = append(offsets, off)
	}
	return offsets, nil
}
