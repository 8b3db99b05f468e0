package probe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	e "github.com/PromiseAll/memory-tool/error"
)

// readString scans forward in chunks of this size looking for the NUL
// terminator.
const stringChunkSize = 64

// checkAddr rejects addresses that can only come from caller arithmetic
// errors before any OS call is made: the null page sentinel, and on a
// 32-bit target anything that does not fit the target's word.
func (p *Probe) checkAddr(addr uint64) error {
	if addr == 0 {
		return fmt.Errorf("null address: %w", e.InvalidAddress)
	}
	if p.arch == ArchX86 && addr > math.MaxUint32 {
		return fmt.Errorf("address %#x exceeds 32-bit target: %w", addr, e.InvalidAddress)
	}
	return nil
}

// ReadBuffer copies length bytes out of the target. A zero length is
// legal and returns an empty slice without touching the target.
func (p *Probe) ReadBuffer(addr uint64, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("negative length %d: %w", length, e.InvalidAddress)
	}
	if length == 0 {
		return []byte{}, nil
	}
	if err := p.checkAddr(addr); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	buf := make([]byte, length)
	if _, err := p.mem.ReadMemory(buf, addr); err != nil {
		return nil, err
	}

	p.log.Debugf("read %d bytes at %#x", length, addr)
	return buf, nil
}

// WriteBuffer copies data into the target. There is no rollback: a
// write that fails part-way leaves the target in whatever state the OS
// produced.
func (p *Probe) WriteBuffer(addr uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := p.checkAddr(addr); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.mem.WriteMemory(addr, data); err != nil {
		return err
	}

	p.log.Debugf("wrote %d bytes at %#x", len(data), addr)
	return nil
}

// ReadString reads a NUL-terminated string of at most maxLength bytes,
// scanning forward in bounded chunks rather than byte by byte. If no
// terminator appears within the bound the truncated text is returned,
// not an error.
func (p *Probe) ReadString(addr uint64, maxLength int) (string, error) {
	if maxLength <= 0 {
		return "", nil
	}

	var out []byte
	for read := 0; read < maxLength; {
		n := stringChunkSize
		if remaining := maxLength - read; n > remaining {
			n = remaining
		}

		at, err := offsetAddr(addr, int64(read))
		if err != nil {
			return "", err
		}

		chunk, err := p.ReadBuffer(at, n)
		if err != nil {
			return "", err
		}

		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			return string(append(out, chunk[:i]...)), nil
		}
		out = append(out, chunk...)
		read += n
	}

	return string(out), nil
}

func (p *Probe) ReadUint8(addr uint64) (uint8, error) {
	buf, err := p.ReadBuffer(addr, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (p *Probe) ReadInt8(addr uint64) (int8, error) {
	v, err := p.ReadUint8(addr)
	return int8(v), err
}

func (p *Probe) ReadUint16(addr uint64) (uint16, error) {
	buf, err := p.ReadBuffer(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (p *Probe) ReadInt16(addr uint64) (int16, error) {
	v, err := p.ReadUint16(addr)
	return int16(v), err
}

func (p *Probe) ReadUint32(addr uint64) (uint32, error) {
	buf, err := p.ReadBuffer(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (p *Probe) ReadInt32(addr uint64) (int32, error) {
	v, err := p.ReadUint32(addr)
	return int32(v), err
}

func (p *Probe) ReadUint64(addr uint64) (uint64, error) {
	buf, err := p.ReadBuffer(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func (p *Probe) ReadInt64(addr uint64) (int64, error) {
	v, err := p.ReadUint64(addr)
	return int64(v), err
}

func (p *Probe) ReadFloat32(addr uint64) (float32, error) {
	v, err := p.ReadUint32(addr)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (p *Probe) ReadFloat64(addr uint64) (float64, error) {
	v, err := p.ReadUint64(addr)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (p *Probe) WriteUint8(addr uint64, value uint8) error {
	return p.WriteBuffer(addr, []byte{value})
}

func (p *Probe) WriteInt8(addr uint64, value int8) error {
	return p.WriteUint8(addr, uint8(value))
}

func (p *Probe) WriteUint16(addr uint64, value uint16) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, value)
	return p.WriteBuffer(addr, buf)
}

func (p *Probe) WriteInt16(addr uint64, value int16) error {
	return p.WriteUint16(addr, uint16(value))
}

func (p *Probe) WriteUint32(addr uint64, value uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, value)
	return p.WriteBuffer(addr, buf)
}

func (p *Probe) WriteInt32(addr uint64, value int32) error {
	return p.WriteUint32(addr, uint32(value))
}

func (p *Probe) WriteUint64(addr uint64, value uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)
	return p.WriteBuffer(addr, buf)
}

func (p *Probe) WriteInt64(addr uint64, value int64) error {
	return p.WriteUint64(addr, uint64(value))
}

func (p *Probe) WriteFloat32(addr uint64, value float32) error {
	return p.WriteUint32(addr, math.Float32bits(value))
}

func (p *Probe) WriteFloat64(addr uint64, value float64) error {
	return p.WriteUint64(addr, math.Float64bits(value))
}
