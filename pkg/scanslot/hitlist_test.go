package scanslot

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func listOf(capacity int, addrs ...uint64) *HitList {
	l := NewHitList(capacity)
	for _, a := range addrs {
		l.Append(a)
	}
	return l
}

func TestHitListAppendStopsAtCapacity(t *testing.T) {
	l := NewHitList(2)
	assert.True(t, l.Append(0x10))
	assert.True(t, l.Append(0x20))
	assert.True(t, l.Full())
	assert.False(t, l.Append(0x30))
	assert.Equal(t, []uint64{0x10, 0x20}, l.Addresses())
}

func TestHitListAddressesIsCopy(t *testing.T) {
	l := listOf(4, 1, 2)
	addrs := l.Addresses()
	addrs[0] = 99
	assert.Equal(t, uint64(1), l.At(0))
}

func TestHitListRetain(t *testing.T) {
	l := listOf(8, 0x00, 0x02, 0x04, 0x06, 0x08)
	n := l.Retain([]bool{true, false, true, false, true})

	assert.Equal(t, 3, n)
	assert.Equal(t, 3, l.Len())
	assert.ElementsMatch(t, []uint64{0x00, 0x04, 0x08}, l.Addresses())
}

func TestHitListRetainNone(t *testing.T) {
	l := listOf(8, 1, 2, 3)
	assert.Equal(t, 0, l.Retain([]bool{false, false, false}))
	assert.Equal(t, 0, l.Len())
}

func TestHitListRetainAll(t *testing.T) {
	l := listOf(8, 3, 1, 2)
	assert.Equal(t, 3, l.Retain([]bool{true, true, true}))
	assert.Equal(t, []uint64{3, 1, 2}, l.Addresses())
}

func TestHitListRetainDoesNotTouchFlags(t *testing.T) {
	keep := []bool{false, true, false, true}
	l := listOf(8, 1, 2, 3, 4)
	l.Retain(keep)
	assert.Equal(t, []bool{false, true, false, true}, keep)
}

func TestHitListSort(t *testing.T) {
	l := listOf(8, 0x40, 0x10, 0x30, 0x20, 0x10)
	l.Sort()
	assert.Equal(t, []uint64{0x10, 0x10, 0x20, 0x30, 0x40}, l.Addresses())
}

// Retain followed by Sort keeps exactly the flagged entries in ascending
// order, whatever their order going in.
func TestHitListRetainSortRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := rnd.Intn(64)
		l := NewHitList(64)
		keep := make([]bool, n)
		var want []uint64
		for i := 0; i < n; i++ {
			addr := uint64(rnd.Intn(1 << 16))
			l.Append(addr)
			keep[i] = rnd.Intn(2) == 0
			if keep[i] {
				want = append(want, addr)
			}
		}
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

		assert.Equal(t, len(want), l.Retain(keep))
		l.Sort()

		got := l.Addresses()
		if len(want) == 0 {
			assert.Empty(t, got)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round %d: hits mismatch (-want +got):\n%s", round, diff)
		}
	}
}
