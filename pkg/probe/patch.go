package probe

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	e "github.com/PromiseAll/memory-tool/error"
)

// nopOpcode is the single-byte x86 no-operation instruction.
const nopOpcode = 0x90

// ReadInstruction reads length raw bytes and renders them as
// space-separated uppercase hex. No decoding is attempted; the caller
// supplies the length.
func (p *Probe) ReadInstruction(addr uint64, length int) (string, error) {
	buf, err := p.ReadBuffer(addr, length)
	if err != nil {
		return "", err
	}
	return FormatHex(buf), nil
}

// WriteInstruction parses hexBytes and writes them under a protection
// bracket: the exact byte range is made writable, written, and restored
// on every exit path. A restore failure after a landed write is
// reported as ProtectionRestoreFailed; the data mutation stands.
func (p *Probe) WriteInstruction(addr uint64, hexBytes string) error {
	data, err := ParseHex(hexBytes)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := p.checkAddr(addr); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.protectedWrite(addr, data)
}

// NopInstruction overwrites length bytes with the NOP opcode. It is
// WriteInstruction with a generated payload, nothing more.
func (p *Probe) NopInstruction(addr uint64, length int) error {
	if length <= 0 {
		return nil
	}
	if err := p.checkAddr(addr); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.protectedWrite(addr, bytes.Repeat([]byte{nopOpcode}, length))
}

// protectedWrite must be called with the probe mutex held.
func (p *Probe) protectedWrite(addr uint64, data []byte) (err error) {
	token, err := p.prot.MakeWritable(addr, len(data))
	if err != nil {
		return err
	}

	defer func() {
		restoreErr := p.prot.Restore(token)
		if restoreErr == nil {
			return
		}
		p.log.Warnf("patch at %#x: %v", addr, restoreErr)
		if err == nil {
			err = fmt.Errorf("%v: %w", restoreErr, e.ProtectionRestoreFailed)
		}
	}()

	if _, err = p.mem.WriteMemory(addr, data); err != nil {
		return err
	}

	p.log.Debugf("patched %d bytes at %#x", len(data), addr)
	return nil
}

// ParseHex decodes a byte string in either spaced ("90 90") or
// contiguous ("9090") form, case-insensitively.
func ParseHex(s string) ([]byte, error) {
	compact := strings.ReplaceAll(s, " ", "")
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex %q: %w", s, e.MalformedHexInput)
	}

	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("hex %q: %w", s, e.MalformedHexInput)
	}
	return data, nil
}

// FormatHex renders bytes as space-separated uppercase hex pairs.
func FormatHex(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
