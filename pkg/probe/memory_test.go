package probe

import (
	"bytes"
	"errors"
	"math"
	"testing"

	e "github.com/PromiseAll/memory-tool/error"
)

func TestReadWriteBufferRoundTrip(t *testing.T) {
	mem := newFakeMemory()
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	data := []byte{0xde, 0xad, 0xbe, 0xef}
	if err := p.WriteBuffer(0x1000, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := p.ReadBuffer(0x1000, len(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip: want % x, got % x", data, got)
	}
}

func TestZeroLengthBuffer(t *testing.T) {
	mem := newFakeMemory()
	mem.failAddrs[0x1000] = true // would fail if touched
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	got, err := p.ReadBuffer(0x1000, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("zero-length read must be a no-op, got %v %v", got, err)
	}
	if err := p.WriteBuffer(0x1000, nil); err != nil {
		t.Errorf("zero-length write must be a no-op, got %v", err)
	}
	if mem.writes != 0 {
		t.Errorf("zero-length write reached the target %d times", mem.writes)
	}
}

func TestNullAddressRejected(t *testing.T) {
	p := newTestProbe(ArchX64, newFakeMemory(), &fakeProtector{})

	if _, err := p.ReadBuffer(0, 4); !errors.Is(err, e.InvalidAddress) {
		t.Errorf("read at null: want InvalidAddress, got %v", err)
	}
	if err := p.WriteBuffer(0, []byte{1}); !errors.Is(err, e.InvalidAddress) {
		t.Errorf("write at null: want InvalidAddress, got %v", err)
	}
}

func TestX86AddressRange(t *testing.T) {
	p := newTestProbe(ArchX86, newFakeMemory(), &fakeProtector{})

	if _, err := p.ReadBuffer(0x1_0000_0000, 4); !errors.Is(err, e.InvalidAddress) {
		t.Errorf("64-bit address on x86 target: want InvalidAddress, got %v", err)
	}
	if _, err := p.ReadBuffer(math.MaxUint32, 4); errors.Is(err, e.InvalidAddress) {
		t.Error("top of the 32-bit space must stay addressable")
	}
}

func TestPartialTransfer(t *testing.T) {
	mem := newFakeMemory()
	mem.shortRead = true
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	if _, err := p.ReadBuffer(0x1000, 8); !errors.Is(err, e.PartialTransfer) {
		t.Errorf("short read: want PartialTransfer, got %v", err)
	}
}

func TestTypedRoundTrips(t *testing.T) {
	mem := newFakeMemory()
	p := newTestProbe(ArchX64, mem, &fakeProtector{})
	addr := uint64(0x2000)

	if err := p.WriteUint8(addr, 0xff); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadUint8(addr); v != 0xff {
		t.Errorf("u8: got %d", v)
	}
	if v, _ := p.ReadInt8(addr); v != -1 {
		t.Errorf("i8 reinterpretation: got %d", v)
	}

	if err := p.WriteInt16(addr, math.MinInt16); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadInt16(addr); v != math.MinInt16 {
		t.Errorf("i16: got %d", v)
	}

	if err := p.WriteUint32(addr, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadUint32(addr); v != 0xdeadbeef {
		t.Errorf("u32: got %#x", v)
	}

	if err := p.WriteInt64(addr, math.MinInt64); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadInt64(addr); v != math.MinInt64 {
		t.Errorf("i64: got %d", v)
	}

	if err := p.WriteUint64(addr, math.MaxUint64); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadUint64(addr); v != math.MaxUint64 {
		t.Errorf("u64: got %#x", v)
	}

	if err := p.WriteFloat32(addr, 3.25); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadFloat32(addr); v != 3.25 {
		t.Errorf("f32: got %v", v)
	}

	if err := p.WriteFloat64(addr, -2.5e300); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadFloat64(addr); v != -2.5e300 {
		t.Errorf("f64: got %v", v)
	}
}

func TestLittleEndianLayout(t *testing.T) {
	mem := newFakeMemory()
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	if err := p.WriteUint32(0x3000, 0x11223344); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x44, 0x33, 0x22, 0x11}
	if got := mem.peek(0x3000, 4); !bytes.Equal(got, want) {
		t.Errorf("want % x in target memory, got % x", want, got)
	}
}

func TestReadString(t *testing.T) {
	mem := newFakeMemory()
	mem.poke(0x4000, append([]byte("hello"), 0, 'x', 'y'))
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	s, err := p.ReadString(0x4000, 256)
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if s != "hello" {
		t.Errorf("want %q, got %q", "hello", s)
	}
}

func TestReadStringTruncated(t *testing.T) {
	// No terminator within the bound: the truncated text comes back
	// without an error.
	mem := newFakeMemory()
	mem.poke(0x4000, []byte("abcdefgh"))
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	s, err := p.ReadString(0x4000, 4)
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if s != "abcd" {
		t.Errorf("want %q, got %q", "abcd", s)
	}
}

func TestReadStringSpansChunks(t *testing.T) {
	long := bytes.Repeat([]byte{'a'}, stringChunkSize+10)
	mem := newFakeMemory()
	mem.poke(0x4000, append(long, 0))
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	s, err := p.ReadString(0x4000, 256)
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if s != string(long) {
		t.Errorf("want %d bytes, got %d", len(long), len(s))
	}
}
