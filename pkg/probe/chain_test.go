package probe

import (
	"errors"
	"strings"
	"testing"

	e "github.com/PromiseAll/memory-tool/error"
)

func TestResolveChainEmpty(t *testing.T) {
	p := newTestProbe(ArchX64, newFakeMemory(), &fakeProtector{})

	addr, err := p.ResolveChain(0x400000, nil)
	if err != nil {
		t.Fatalf("resolve empty chain: %v", err)
	}
	if addr != 0x400000 {
		t.Errorf("empty chain should be the identity, got %#x", addr)
	}
}

func TestResolveChainSingleOffset(t *testing.T) {
	// One offset means no dereference at all.
	mem := newFakeMemory()
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	addr, err := p.ResolveChain(0x400000, []int64{0x10})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != 0x400010 {
		t.Errorf("want 0x400010, got %#x", addr)
	}
}

func TestResolveChainMultiHop(t *testing.T) {
	mem := newFakeMemory()
	mem.pokeUint64(0x400010, 0x500000)
	mem.pokeUint64(0x500020, 0x600000)
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	addr, err := p.ResolveChain(0x400000, []int64{0x10, 0x20, 0x30})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != 0x600030 {
		t.Errorf("want 0x600030, got %#x", addr)
	}
}

func TestResolveChainNegativeOffset(t *testing.T) {
	mem := newFakeMemory()
	mem.pokeUint64(0x3ffff0, 0x500000)
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	addr, err := p.ResolveChain(0x400000, []int64{-0x10, 0x8})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != 0x500008 {
		t.Errorf("want 0x500008, got %#x", addr)
	}
}

func TestResolveChainX86PointerWidth(t *testing.T) {
	// A 32-bit target follows 4-byte pointers; the surrounding garbage
	// must not leak into the decoded value.
	mem := newFakeMemory()
	mem.pokeUint32(0x400010, 0x500000)
	mem.pokeUint32(0x400014, 0xdeadbeef)
	p := newTestProbe(ArchX86, mem, &fakeProtector{})

	addr, err := p.ResolveChain(0x400000, []int64{0x10, 0x4})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != 0x500004 {
		t.Errorf("want 0x500004, got %#x", addr)
	}
}

func TestResolveChainNullPointer(t *testing.T) {
	mem := newFakeMemory()
	mem.pokeUint64(0x400010, 0x500000)
	// 0x500020 is left unset, so the second hop reads a null pointer.
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	_, err := p.ResolveChain(0x400000, []int64{0x10, 0x20, 0x30})
	if !errors.Is(err, e.NullPointerInChain) {
		t.Fatalf("want NullPointerInChain, got %v", err)
	}
	if !strings.Contains(err.Error(), "offset 1") {
		t.Errorf("error should name the failing link: %v", err)
	}
}

func TestResolveChainReadFailure(t *testing.T) {
	// An unreadable link is a MemoryAccessFailure, never mistaken for a
	// null pointer.
	mem := newFakeMemory()
	mem.failAddrs[0x400010] = true
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	_, err := p.ResolveChain(0x400000, []int64{0x10, 0x20})
	if !errors.Is(err, e.MemoryAccessFailure) {
		t.Fatalf("want MemoryAccessFailure, got %v", err)
	}
	if errors.Is(err, e.NullPointerInChain) {
		t.Error("read failure must not report NullPointerInChain")
	}
}

func TestOffsetAddrOverflow(t *testing.T) {
	if _, err := offsetAddr(^uint64(0)-1, 0x10); !errors.Is(err, e.InvalidAddress) {
		t.Errorf("overflow: want InvalidAddress, got %v", err)
	}
	if _, err := offsetAddr(0x8, -0x10); !errors.Is(err, e.InvalidAddress) {
		t.Errorf("underflow: want InvalidAddress, got %v", err)
	}

	// The most negative offset has no positive counterpart; applying it
	// must not panic.
	addr, err := offsetAddr(^uint64(0), -1<<63)
	if err != nil {
		t.Fatalf("min offset: %v", err)
	}
	if addr != (1<<63)-1 {
		t.Errorf("min offset: got %#x", addr)
	}
}
