package scanslot

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Reader reads the memory of the process being scanned. A slot borrows it for
// the duration of a single Scan and never keeps it.
type Reader interface {
	// ReadExact reads n bytes at addr, failing if fewer bytes are available.
	ReadExact(addr uint64, n int) ([]byte, error)
	// ReadValue reads one unsigned value of size bytes at addr.
	ReadValue(addr uint64, size int) (uint32, error)
	ByteOrder() binary.ByteOrder
}

// MaxRangeLen bounds the bytes a fresh scan reads in one go.
const MaxRangeLen = 1 << 30

// Range is the half-open byte range [Start, End) searched by a fresh scan.
type Range struct {
	Start uint64
	End   uint64
}

func (r Range) Len() uint64 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%#x-%#x", r.Start, r.End)
}

// Outcome describes what a successful Scan did.
type Outcome struct {
	Refined bool
	Hits    int
	// Truncated is set when a fresh scan stopped at the slot capacity, in
	// which case matches past the last recorded hit were not searched.
	Truncated bool
}

// Slot is one search in progress: the width being searched and the
// addresses that matched every target seen since the last Clear.
type Slot struct {
	width Width
	hits  *HitList
}

func NewSlot(capacity int) *Slot {
	return &Slot{hits: NewHitList(capacity)}
}

func (s *Slot) Clear() {
	s.width = Unset
	s.hits.Reset()
}

func (s *Slot) Width() Width {
	return s.width
}

func (s *Slot) HitCount() int {
	return s.hits.Len()
}

// Hits returns the current hit addresses in ascending order.
func (s *Slot) Hits() []uint64 {
	return s.hits.Addresses()
}

func (s *Slot) Capacity() int {
	return s.hits.Cap()
}

// Scan searches for target. With no hits recorded, rng is read in full and
// every width-sized element equal to target becomes a hit, up to the slot
// capacity. Otherwise the existing hits are re-read and those no longer equal
// to target are dropped; rng is ignored.
//
// A failed Scan leaves the slot as it was.
func (s *Slot) Scan(r Reader, width Width, target uint32, rng *Range) (Outcome, error) {
	if !width.Valid() {
		return Outcome{}, ErrInvalidWidth
	}
	if target&^width.Mask() != 0 {
		return Outcome{}, errors.Wrapf(ErrValueOutOfRange, "%#x in %d byte(s)", target, width)
	}
	if s.width != Unset && s.width != width {
		return Outcome{}, errors.Wrapf(ErrWidthMismatch, "slot width %d, requested %d", s.width, width)
	}

	if s.hits.Len() > 0 {
		return s.refine(r, target)
	}
	return s.fresh(r, width, target, rng)
}

func (s *Slot) fresh(r Reader, width Width, target uint32, rng *Range) (Outcome, error) {
	if rng == nil {
		return Outcome{}, ErrRangeRequired
	}
	if rng.End <= rng.Start || rng.Start%uint64(width) != 0 {
		return Outcome{}, errors.Wrapf(ErrInvalidRange, "%s for width %d", rng, width)
	}
	if rng.Len() > MaxRangeLen {
		return Outcome{}, errors.Wrapf(ErrInvalidRange, "%s exceeds %#x bytes", rng, uint64(MaxRangeLen))
	}

	buf, err := r.ReadExact(rng.Start, int(rng.Len()))
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "read %s", rng)
	}

	hits := NewHitList(s.hits.Cap())
	truncated := false
	order := r.ByteOrder()
	step := int(width)
	for off := 0; off+step <= len(buf); off += step {
		if decode(order, buf[off:off+step]) != target {
			continue
		}
		hits.Append(rng.Start + uint64(off))
		if hits.Full() {
			truncated = off+2*step <= len(buf)
			break
		}
	}

	s.width = width
	s.hits = hits
	return Outcome{Hits: hits.Len(), Truncated: truncated}, nil
}

func (s *Slot) refine(r Reader, target uint32) (Outcome, error) {
	if s.hits.Len() > s.hits.Cap() {
		return Outcome{}, errors.Wrapf(ErrCorruptSlotState, "%d hits, capacity %d", s.hits.Len(), s.hits.Cap())
	}

	keep := make([]bool, s.hits.Len())
	for i := range keep {
		addr := s.hits.At(i)
		v, err := r.ReadValue(addr, int(s.width))
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "read hit %#x", addr)
		}
		keep[i] = v == target
	}

	n := s.hits.Retain(keep)
	s.hits.Sort()
	return Outcome{Refined: true, Hits: n}, nil
}

func decode(order binary.ByteOrder, b []byte) uint32 {
	switch len(b) {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(order.Uint16(b))
	}
	return order.Uint32(b)
}
