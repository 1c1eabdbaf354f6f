package scanslot

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDefaults(t *testing.T) {
	p := NewPool(0, 0)
	assert.Equal(t, DefaultSlots, p.Len())
	assert.Equal(t, DefaultCapacity, p.Capacity())

	for i := 0; i < p.Len(); i++ {
		w, err := p.GetWidth(i)
		require.NoError(t, err)
		assert.Equal(t, Unset, w)
	}
}

func TestPoolIndexOutOfRange(t *testing.T) {
	p := NewPool(2, 8)

	_, err := p.Slot(2)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	_, err = p.Slot(-1)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	assert.ErrorIs(t, p.Clear(5), ErrSlotOutOfRange)
	_, err = p.GetHits(3)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	_, err = p.GetHitCount(3)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	_, err = p.Scan(9, nil, Byte, 0, nil)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
}

func TestPoolSlotsAreIndependent(t *testing.T) {
	data := []byte{1, 0, 1, 0}
	_, r := imageReader(data, binary.LittleEndian)
	p := NewPool(4, 8)

	_, err := p.Scan(0, r, Byte, 1, fullRange(data))
	require.NoError(t, err)
	_, err = p.Scan(1, r, HalfWord, 1, fullRange(data))
	require.NoError(t, err)

	hits, err := p.GetHits(0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{base, base + 2}, hits)

	hits, err = p.GetHits(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{base, base + 2}, hits)

	w, _ := p.GetWidth(1)
	assert.Equal(t, HalfWord, w)

	require.NoError(t, p.Clear(0))
	n, _ := p.GetHitCount(0)
	assert.Zero(t, n)
	n, _ = p.GetHitCount(1)
	assert.Equal(t, 2, n)
	w, _ = p.GetWidth(2)
	assert.Equal(t, Unset, w)
}
