package scanslot

// HitList is a fixed capacity list of remote addresses.
type HitList struct {
	entries  []uint64
	capacity int
}

func NewHitList(capacity int) *HitList {
	return &HitList{
		entries:  make([]uint64, 0, capacity),
		capacity: capacity,
	}
}

func (l *HitList) Len() int {
	return len(l.entries)
}

func (l *HitList) Cap() int {
	return l.capacity
}

func (l *HitList) Full() bool {
	return len(l.entries) >= l.capacity
}

// Append adds addr to the tail. It reports false once the list is full.
func (l *HitList) Append(addr uint64) bool {
	if l.Full() {
		return false
	}
	l.entries = append(l.entries, addr)
	return true
}

func (l *HitList) At(i int) uint64 {
	return l.entries[i]
}

// Addresses returns a copy of the stored addresses.
func (l *HitList) Addresses() []uint64 {
	out := make([]uint64, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *HitList) Reset() {
	l.entries = l.entries[:0]
}

// Retain compacts the list in place so that only entries whose keep flag is
// set remain, and returns how many were kept. keep is indexed like the list.
//
// Entries are walked from the tail; rejected ones are swapped behind the
// last kept slot. The relative order of kept entries is not preserved, call
// Sort afterwards.
func (l *HitList) Retain(keep []bool) int {
	flags := make([]bool, len(l.entries))
	copy(flags, keep)

	last := len(l.entries) - 1
	for i := len(l.entries) - 1; i >= 0; i-- {
		if flags[i] {
			continue
		}
		l.entries[i], l.entries[last] = l.entries[last], l.entries[i]
		flags[i], flags[last] = flags[last], flags[i]
		last--
	}

	l.entries = l.entries[:last+1]
	return len(l.entries)
}

// Sort orders the list by ascending address.
func (l *HitList) Sort() {
	for i := 1; i < len(l.entries); i++ {
		addr := l.entries[i]
		j := i - 1
		for ; j >= 0 && l.entries[j] > addr; j-- {
			l.entries[j+1] = l.entries[j]
		}
		l.entries[j+1] = addr
	}
}
