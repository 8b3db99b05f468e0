package probe

import (
	"fmt"

	e "github.com/PromiseAll/memory-tool/error"
)

// ResolveChain walks a pointer chain from base: each offset but the last
// is added to the current address and the pointer stored there is
// followed; the last offset is added without dereferencing, giving the
// address the caller then reads or writes. An empty chain is the
// identity. Nothing is cached, every call re-walks the live target.
func (p *Probe) ResolveChain(base uint64, offsets []int64) (uint64, error) {
	current := base

	for i, offset := range offsets {
		addr, err := offsetAddr(current, offset)
		if err != nil {
			return 0, fmt.Errorf("chain offset %d: %w", i, err)
		}

		if i == len(offsets)-1 {
			return addr, nil
		}

		next, err := p.readPointer(addr)
		if err != nil {
			return 0, fmt.Errorf("chain offset %d: %w", i, err)
		}
		if next == 0 {
			return 0, fmt.Errorf("chain offset %d: pointer at %#x is null: %w", i, addr, e.NullPointerInChain)
		}

		current = next
	}

	return current, nil
}

// readPointer decodes a pointer-width value at addr using the bound
// architecture's stride.
func (p *Probe) readPointer(addr uint64) (uint64, error) {
	if p.arch.PointerSize() == 4 {
		v, err := p.ReadUint32(addr)
		return uint64(v), err
	}
	return p.ReadUint64(addr)
}

// offsetAddr applies a signed offset to an address. Overflow in either
// direction is an error, never a silent wrap.
func offsetAddr(addr uint64, offset int64) (uint64, error) {
	if offset >= 0 {
		sum := addr + uint64(offset)
		if sum < addr {
			return 0, fmt.Errorf("%#x + %#x overflows: %w", addr, offset, e.InvalidAddress)
		}
		return sum, nil
	}

	magnitude := uint64(-(offset + 1)) + 1
	if magnitude > addr {
		return 0, fmt.Errorf("%#x %d underflows: %w", addr, offset, e.InvalidAddress)
	}
	return addr - magnitude, nil
}
