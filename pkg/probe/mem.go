package probe

// MemoryReader is like io.ReaderAt, but the offset is a uint64 so that it
// can address all of 64-bit memory.
type MemoryReader interface {
	// ReadMemory is just like io.ReaderAt.ReadAt.
	ReadMemory(buf []byte, addr uint64) (n int, err error)
}

// MemoryReadWriter is an interface for reading or writing the target
// process memory. The live implementation is backed by the process
// handle; tests substitute an in-memory fake.
type MemoryReadWriter interface {
	MemoryReader
	WriteMemory(addr uint64, data []byte) (written int, err error)
}

// ProtectionToken captures the protection flags a byte range held before
// a patch made it writable. It is produced by MakeWritable and consumed
// exactly once by Restore.
type ProtectionToken struct {
	addr uint64
	size int
	prot uint32
}

// regionProtector flips the protection of an address range in the target
// and hands back the previous flags so the range can be restored.
type regionProtector interface {
	MakeWritable(addr uint64, size int) (ProtectionToken, error)
	Restore(token ProtectionToken) error
}
