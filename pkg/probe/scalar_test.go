package probe

import (
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, s := range []string{"u8", "i8", "u16", "i16", "u32", "i32", "u64", "i64", "f32", "f64"} {
		k, err := ParseKind(s)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", s, err)
		}
		if k.Size() == 0 {
			t.Errorf("Kind %q has no size", s)
		}
	}
	for _, s := range []string{"", "u128", "int", "str"} {
		if _, err := ParseKind(s); err == nil {
			t.Errorf("ParseKind(%q) should fail", s)
		}
	}
}

func TestReadWriteKind(t *testing.T) {
	mem := newFakeMemory()
	p := newTestProbe(ArchX64, mem, &fakeProtector{})
	addr := uint64(0x1000)

	for _, tc := range []struct {
		kind  Kind
		value string
	}{
		{Uint8, "255"},
		{Int8, "-128"},
		{Uint16, "65535"},
		{Int16, "-32768"},
		{Uint32, "4294967295"},
		{Int32, "-2147483648"},
		{Uint64, "18446744073709551615"},
		{Int64, "-9223372036854775808"},
		{Float32, "3.25"},
		{Float64, "-2.5e300"},
	} {
		if err := p.WriteKind(tc.kind, addr, tc.value); err != nil {
			t.Errorf("WriteKind(%s, %s): %v", tc.kind, tc.value, err)
			continue
		}
		got, err := p.ReadKind(tc.kind, addr)
		if err != nil {
			t.Errorf("ReadKind(%s): %v", tc.kind, err)
			continue
		}
		if got != tc.value {
			t.Errorf("%s round trip: wrote %q, read %q", tc.kind, tc.value, got)
		}
	}
}

func TestWriteKindHexValue(t *testing.T) {
	mem := newFakeMemory()
	p := newTestProbe(ArchX64, mem, &fakeProtector{})

	if err := p.WriteKind(Uint32, 0x1000, "0xdead"); err != nil {
		t.Fatalf("hex value: %v", err)
	}
	if got, _ := p.ReadUint32(0x1000); got != 0xdead {
		t.Errorf("want 0xdead, got %#x", got)
	}
}

func TestWriteKindOutOfRange(t *testing.T) {
	p := newTestProbe(ArchX64, newFakeMemory(), &fakeProtector{})

	err := p.WriteKind(Uint8, 0x1000, "256")
	if err == nil || !strings.Contains(err.Error(), "does not fit") {
		t.Errorf("want range error, got %v", err)
	}
	if err := p.WriteKind(Int8, 0x1000, "-129"); err == nil {
		t.Error("want range error for -129 in i8")
	}
}
