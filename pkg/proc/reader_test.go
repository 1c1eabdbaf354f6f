package proc

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shortReader struct{}

func (shortReader) ReadMemory(buf []byte, addr uint64) (int, error) {
	return len(buf) / 2, nil
}

type brokenReader struct{}

func (brokenReader) ReadMemory(buf []byte, addr uint64) (int, error) {
	return 0, errors.New("no such process")
}

func TestReadExact(t *testing.T) {
	img := NewImage(0x100, []byte{1, 2, 3, 4})
	r := NewRemoteReader(img, nil)
	assert.Equal(t, binary.LittleEndian, r.ByteOrder())

	b, err := r.ReadExact(0x101, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, b)

	_, err = r.ReadExact(0x102, 4)
	assert.ErrorIs(t, err, ErrIncompleteRead)

	_, err = r.ReadExact(0x50, 1)
	assert.ErrorIs(t, err, ErrIncompleteRead)

	b, err = r.ReadExact(0x100, 0)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestReadExactShortAndFailed(t *testing.T) {
	_, err := NewRemoteReader(shortReader{}, nil).ReadExact(0, 8)
	assert.ErrorIs(t, err, ErrIncompleteRead)

	_, err = NewRemoteReader(brokenReader{}, nil).ReadExact(0, 8)
	assert.ErrorIs(t, err, ErrIncompleteRead)
	assert.Contains(t, err.Error(), "no such process")
}

func TestReadExactLengths(t *testing.T) {
	r := NewRemoteReader(NewImage(0x100, []byte{1, 2, 3, 4}), nil)

	tests := []struct {
		name string
		n    int
		want []byte
		err  error
	}{
		{"zero", 0, []byte{}, nil},
		{"negative", -1, nil, ErrInvalidSize},
		{"wrapped length", -1 << 30, nil, ErrInvalidSize},
		{"whole image", 4, []byte{1, 2, 3, 4}, nil},
		{"past the end", 5, nil, ErrIncompleteRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := r.ReadExact(0x100, tt.n)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestReadValue(t *testing.T) {
	data := []byte{0x78, 0x56, 0x34, 0x12}
	le := NewRemoteReader(NewImage(0, data), binary.LittleEndian)
	be := NewRemoteReader(NewImage(0, data), binary.BigEndian)

	tests := []struct {
		size int
		le   uint32
		be   uint32
	}{
		{1, 0x78, 0x78},
		{2, 0x5678, 0x7856},
		{4, 0x12345678, 0x78563412},
	}
	for _, tt := range tests {
		v, err := le.ReadValue(0, tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.le, v)

		v, err = be.ReadValue(0, tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.be, v)
	}

	_, err := le.ReadValue(0, 3)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = le.ReadValue(2, 4)
	assert.ErrorIs(t, err, ErrIncompleteRead)
}

func TestImagePoke(t *testing.T) {
	img := NewImage(0x10, make([]byte, 4))
	require.NoError(t, img.Poke(0x12, []byte{9, 9}))
	assert.Error(t, img.Poke(0x13, []byte{1, 1}))
	assert.Error(t, img.Poke(0x0, []byte{1}))

	buf := make([]byte, 4)
	n, err := img.ReadMemory(buf, 0x10)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0, 0, 9, 9}, buf)
	assert.Equal(t, uint64(0x14), img.End())
}
