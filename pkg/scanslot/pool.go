package scanslot

import "github.com/pkg/errors"

const (
	DefaultSlots    = 4
	DefaultCapacity = 0x1000
)

// Pool is a fixed set of independent slots, created once per session.
type Pool struct {
	slots    []*Slot
	capacity int
}

func NewPool(n, capacity int) *Pool {
	if n <= 0 {
		n = DefaultSlots
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	p := &Pool{
		slots:    make([]*Slot, n),
		capacity: capacity,
	}
	for i := range p.slots {
		p.slots[i] = NewSlot(capacity)
	}
	return p
}

func (p *Pool) Len() int {
	return len(p.slots)
}

// Capacity is the maximum number of hits each slot holds.
func (p *Pool) Capacity() int {
	return p.capacity
}

func (p *Pool) Slot(i int) (*Slot, error) {
	if i < 0 || i >= len(p.slots) {
		return nil, errors.Wrapf(ErrSlotOutOfRange, "slot %d, only %d slots available", i, len(p.slots))
	}
	return p.slots[i], nil
}

func (p *Pool) Clear(i int) error {
	s, err := p.Slot(i)
	if err != nil {
		return err
	}
	s.Clear()
	return nil
}

func (p *Pool) Scan(i int, r Reader, width Width, target uint32, rng *Range) (Outcome, error) {
	s, err := p.Slot(i)
	if err != nil {
		return Outcome{}, err
	}
	return s.Scan(r, width, target, rng)
}

func (p *Pool) GetWidth(i int) (Width, error) {
	s, err := p.Slot(i)
	if err != nil {
		return Unset, err
	}
	return s.Width(), nil
}

func (p *Pool) GetHitCount(i int) (int, error) {
	s, err := p.Slot(i)
	if err != nil {
		return 0, err
	}
	return s.HitCount(), nil
}

func (p *Pool) GetHits(i int) ([]uint64, error) {
	s, err := p.Slot(i)
	if err != nil {
		return nil, err
	}
	return s.Hits(), nil
}
