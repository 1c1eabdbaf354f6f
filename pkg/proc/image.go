package proc

import (
	"os"

	"github.com/pkg/errors"
)

// Image is a flat memory image mapped at Base, such as a raw RAM dump.
type Image struct {
	Base uint64
	data []byte
}

func NewImage(base uint64, data []byte) *Image {
	return &Image{Base: base, data: data}
}

// LoadImage reads a raw dump from path and maps it at base.
func LoadImage(path string, base uint64) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load image %s", path)
	}
	return NewImage(base, data), nil
}

func (m *Image) End() uint64 {
	return m.Base + uint64(len(m.data))
}

// ReadMemory copies as much of the requested range as the image covers.
// Reads that start outside the image fail.
func (m *Image) ReadMemory(buf []byte, addr uint64) (int, error) {
	if addr < m.Base || addr >= m.End() {
		return 0, errors.Errorf("address %#x not mapped", addr)
	}
	return copy(buf, m.data[addr-m.Base:]), nil
}

// Poke overwrites the image at addr, standing in for the target process
// changing its own memory.
func (m *Image) Poke(addr uint64, data []byte) error {
	if addr < m.Base || addr+uint64(len(data)) > m.End() {
		return errors.Errorf("range %#x+%d not mapped", addr, len(data))
	}
	copy(m.data[addr-m.Base:], data)
	return nil
}
