package probe

import (
	"fmt"
	"strconv"
)

// Kind names a fixed-width scalar type at the tool surface (CLI,
// expression service). Addresses and 64-bit values travel as text so
// they round-trip exactly, without floating-point mediation.
type Kind string

const (
	Uint8   Kind = "u8"
	Int8    Kind = "i8"
	Uint16  Kind = "u16"
	Int16   Kind = "i16"
	Uint32  Kind = "u32"
	Int32   Kind = "i32"
	Uint64  Kind = "u64"
	Int64   Kind = "i64"
	Float32 Kind = "f32"
	Float64 Kind = "f64"
)

var kindSizes = map[Kind]int{
	Uint8: 1, Int8: 1,
	Uint16: 2, Int16: 2,
	Uint32: 4, Int32: 4,
	Uint64: 8, Int64: 8,
	Float32: 4, Float64: 8,
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kindSizes[k]; !ok {
		return "", fmt.Errorf("unknown type %q (want u8/u16/u32/u64, i8/i16/i32/i64, f32 or f64)", s)
	}
	return k, nil
}

func (k Kind) Size() int {
	return kindSizes[k]
}

// ReadKind performs the typed read named by k and formats the value in
// decimal.
func (p *Probe) ReadKind(k Kind, addr uint64) (string, error) {
	switch k {
	case Uint8:
		v, err := p.ReadUint8(addr)
		return strconv.FormatUint(uint64(v), 10), err
	case Int8:
		v, err := p.ReadInt8(addr)
		return strconv.FormatInt(int64(v), 10), err
	case Uint16:
		v, err := p.ReadUint16(addr)
		return strconv.FormatUint(uint64(v), 10), err
	case Int16:
		v, err := p.ReadInt16(addr)
		return strconv.FormatInt(int64(v), 10), err
	case Uint32:
		v, err := p.ReadUint32(addr)
		return strconv.FormatUint(uint64(v), 10), err
	case Int32:
		v, err := p.ReadInt32(addr)
		return strconv.FormatInt(int64(v), 10), err
	case Uint64:
		v, err := p.ReadUint64(addr)
		return strconv.FormatUint(v, 10), err
	case Int64:
		v, err := p.ReadInt64(addr)
		return strconv.FormatInt(v, 10), err
	case Float32:
		v, err := p.ReadFloat32(addr)
		return strconv.FormatFloat(float64(v), 'g', -1, 32), err
	case Float64:
		v, err := p.ReadFloat64(addr)
		return strconv.FormatFloat(v, 'g', -1, 64), err
	}
	return "", fmt.Errorf("unknown type %q", k)
}

// WriteKind parses value per k and performs the typed write.
func (p *Probe) WriteKind(k Kind, addr uint64, value string) error {
	switch k {
	case Uint8, Uint16, Uint32, Uint64:
		v, err := strconv.ParseUint(value, 0, k.Size()*8)
		if err != nil {
			return fmt.Errorf("value %q does not fit %s: %v", value, k, err)
		}
		switch k {
		case Uint8:
			return p.WriteUint8(addr, uint8(v))
		case Uint16:
			return p.WriteUint16(addr, uint16(v))
		case Uint32:
			return p.WriteUint32(addr, uint32(v))
		default:
			return p.WriteUint64(addr, v)
		}
	case Int8, Int16, Int32, Int64:
		v, err := strconv.ParseInt(value, 0, k.Size()*8)
		if err != nil {
			return fmt.Errorf("value %q does not fit %s: %v", value, k, err)
		}
		switch k {
		case Int8:
			return p.WriteInt8(addr, int8(v))
		case Int16:
			return p.WriteInt16(addr, int16(v))
		case Int32:
			return p.WriteInt32(addr, int32(v))
		default:
			return p.WriteInt64(addr, v)
		}
	case Float32, Float64:
		v, err := strconv.ParseFloat(value, k.Size()*8)
		if err != nil {
			return fmt.Errorf("value %q does not fit %s: %v", value, k, err)
		}
		if k == Float32 {
			return p.WriteFloat32(addr, float32(v))
		}
		return p.WriteFloat64(addr, v)
	}
	return fmt.Errorf("unknown type %q", k)
}
