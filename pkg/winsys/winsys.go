// Package winsys wraps the Windows enumeration and privilege calls the
// engine depends on: toolhelp snapshots for processes and modules,
// SeDebugPrivilege elevation and target bitness detection.
package winsys

type ProcessInfo struct {
	PID  uint32 `json:"pid"`
	Name string `json:"name"`
}

// Module is a snapshot of one loaded module. End is always Base+Size;
// nothing is cached, so a module that unloads after the snapshot simply
// turns into read failures for the caller.
type Module struct {
	Name string `json:"name"`
	Base uint64 `json:"baseAddress"`
	Size uint32 `json:"size"`
	End  uint64 `json:"endAddress"`
}

// newModule widens the reported base through uint64 before computing the
// end address. Bases above 2^31 must not wrap on 32-bit targets.
func newModule(name string, base uint64, size uint32) Module {
	return Module{
		Name: name,
		Base: base,
		Size: size,
		End:  base + uint64(size),
	}
}
