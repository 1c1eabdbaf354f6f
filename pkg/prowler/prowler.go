package prowler

import (
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Prowler reads the memory of a live process.
type Prowler struct {
	pid int
	mu  sync.Mutex

	regions []MemoryRegion
}

func NewProwler(pid int) (*Prowler, error) {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return nil, errors.Wrapf(err, "process %d", pid)
	}

	return &Prowler{pid: pid}, nil
}

func (p *Prowler) Pid() int {
	return p.pid
}

func (p *Prowler) ReadMemory(bs []byte, addr uint64) (int, error) {
	return readMemory(p.pid, bs, uintptr(addr))
}

// Regions re-reads the process memory map.
func (p *Prowler) Regions() ([]MemoryRegion, error) {
	regions, err := parseProcMaps(p.pid)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.regions = regions
	p.mu.Unlock()
	return regions, nil
}

// Region resolves a region by index or name. Indexes refer to the last
// listing returned by Regions, which is refreshed if there is none yet.
func (p *Prowler) Region(name string) (MemoryRegion, error) {
	p.mu.Lock()
	regions := p.regions
	p.mu.Unlock()

	if regions == nil {
		var err error
		if regions, err = p.Regions(); err != nil {
			return MemoryRegion{}, err
		}
	}
	return findRegion(regions, name)
}
