package proc

// MemoryReader is like io.ReaderAt, but the offset is a uint64 so that it
// can address all of 64-bit memory.
type MemoryReader interface {
	// ReadMemory is just like io.ReaderAt.ReadAt, except that a short read
	// may be returned with a nil error.
	ReadMemory(buf []byte, addr uint64) (n int, err error)
}
