package probe

import (
	"encoding/binary"
	"fmt"

	e "github.com/PromiseAll/memory-tool/error"
	"github.com/PromiseAll/memory-tool/pkg/logflags"
)

// opJournal records the order of protect/write/restore operations so
// tests can assert the patch bracket.
type opJournal struct {
	ops []string
}

func (j *opJournal) record(op string) {
	if j != nil {
		j.ops = append(j.ops, op)
	}
}

// fakeMemory is a sparse byte-addressed stand-in for a target process.
type fakeMemory struct {
	data      map[uint64]byte
	failAddrs map[uint64]bool
	shortRead bool
	writes    int
	journal   *opJournal
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{
		data:      make(map[uint64]byte),
		failAddrs: make(map[uint64]bool),
	}
}

func (f *fakeMemory) poke(addr uint64, data []byte) {
	for i, b := range data {
		f.data[addr+uint64(i)] = b
	}
}

func (f *fakeMemory) pokeUint32(addr uint64, v uint32) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	f.poke(addr, buf)
}

func (f *fakeMemory) pokeUint64(addr uint64, v uint64) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	f.poke(addr, buf)
}

func (f *fakeMemory) peek(addr uint64, length int) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = f.data[addr+uint64(i)]
	}
	return out
}

func (f *fakeMemory) ReadMemory(buf []byte, addr uint64) (int, error) {
	for i := range buf {
		if f.failAddrs[addr+uint64(i)] {
			return i, fmt.Errorf("read %d bytes at %#x: %w", len(buf), addr, e.MemoryAccessFailure)
		}
	}

	n := len(buf)
	if f.shortRead && n > 0 {
		n--
	}
	for i := 0; i < n; i++ {
		buf[i] = f.data[addr+uint64(i)]
	}
	if n != len(buf) {
		return n, fmt.Errorf("read %d of %d bytes at %#x: %w", n, len(buf), addr, e.PartialTransfer)
	}

	return n, nil
}

func (f *fakeMemory) WriteMemory(addr uint64, data []byte) (int, error) {
	for i := range data {
		if f.failAddrs[addr+uint64(i)] {
			return i, fmt.Errorf("write %d bytes at %#x: %w", len(data), addr, e.MemoryAccessFailure)
		}
	}

	f.journal.record("write")
	f.writes++
	f.poke(addr, data)
	return len(data), nil
}

type fakeProtector struct {
	failProtect bool
	failRestore bool
	restored    []ProtectionToken
	journal     *opJournal
}

func (p *fakeProtector) MakeWritable(addr uint64, size int) (ProtectionToken, error) {
	if p.failProtect {
		return ProtectionToken{}, fmt.Errorf("unprotect %d bytes at %#x: %w", size, addr, e.MemoryAccessFailure)
	}

	p.journal.record("protect")
	return ProtectionToken{addr: addr, size: size, prot: 0x20}, nil
}

func (p *fakeProtector) Restore(token ProtectionToken) error {
	p.journal.record("restore")
	p.restored = append(p.restored, token)
	if p.failRestore {
		return fmt.Errorf("restore protection of %d bytes at %#x: handle stale", token.size, token.addr)
	}
	return nil
}

func newTestProbe(arch Arch, mem MemoryReadWriter, prot regionProtector) *Probe {
	return &Probe{
		pid:  1,
		arch: arch,
		mem:  mem,
		prot: prot,
		log:  logflags.EngineLogger(false),
	}
}
