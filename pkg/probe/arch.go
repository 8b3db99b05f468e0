package probe

import "fmt"

// Arch is the bitness of the target process. It is fixed at attach time
// and decides the pointer width used when walking pointer chains.
type Arch int

const (
	// ArchAuto asks Attach to query the OS for the target's bitness.
	ArchAuto Arch = iota
	ArchX86
	ArchX64
)

func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX64:
		return "x64"
	default:
		return "auto"
	}
}

// PointerSize is the stride used to decode addresses read from the
// target during chain resolution.
func (a Arch) PointerSize() int {
	if a == ArchX86 {
		return 4
	}
	return 8
}

func ParseArch(s string) (Arch, error) {
	switch s {
	case "", "auto":
		return ArchAuto, nil
	case "x86", "386", "32":
		return ArchX86, nil
	case "x64", "amd64", "64":
		return ArchX64, nil
	}
	return ArchAuto, fmt.Errorf("unknown architecture %q (want auto, x86 or x64)", s)
}
