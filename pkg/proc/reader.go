package proc

import (
	"encoding/binary"
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrIncompleteRead = errors.New("incomplete remote read")
	ErrInvalidSize    = errors.New("invalid read size")
)

// RemoteReader reads whole ranges and single values out of another address
// space. Reads either return everything that was asked for or fail.
type RemoteReader struct {
	mem   MemoryReader
	order binary.ByteOrder
}

func NewRemoteReader(mem MemoryReader, order binary.ByteOrder) *RemoteReader {
	if order == nil {
		order = binary.LittleEndian
	}
	return &RemoteReader{mem: mem, order: order}
}

func (r *RemoteReader) ByteOrder() binary.ByteOrder {
	return r.order
}

func (r *RemoteReader) ReadExact(addr uint64, n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, pkgerrors.Wrapf(ErrInvalidSize, "%d bytes at %#x", n, addr)
	case n == 0:
		return []byte{}, nil
	}

	buf := make([]byte, n)
	read, err := r.mem.ReadMemory(buf, addr)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrIncompleteRead, "%d bytes at %#x: %v", n, addr, err)
	}
	if read != n {
		return nil, pkgerrors.Wrapf(ErrIncompleteRead, "%d of %d bytes at %#x", read, n, addr)
	}
	return buf, nil
}

func (r *RemoteReader) ReadValue(addr uint64, size int) (uint32, error) {
	switch size {
	case 1, 2, 4:
	default:
		return 0, pkgerrors.Wrapf(ErrInvalidSize, "value of %d bytes", size)
	}

	b, err := r.ReadExact(addr, size)
	if err != nil {
		return 0, err
	}

	switch size {
	case 1:
		return uint32(b[0]), nil
	case 2:
		return uint32(r.order.Uint16(b)), nil
	}
	return r.order.Uint32(b), nil
}
