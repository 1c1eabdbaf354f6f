package service

import (
	"encoding/binary"
	"fmt"
	"memscan/pkg/logflags"
	"memscan/pkg/proc"
	"memscan/pkg/prowler"
	"memscan/pkg/scanslot"
	"strconv"
	"strings"
	"sync"

	e "memscan/error"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// DefaultRangeSize is the size of the window scanned when only a start
// address is configured.
const DefaultRangeSize = 0x10000

// RegionSource lists and resolves the memory regions of the scan target.
type RegionSource interface {
	Regions() ([]prowler.MemoryRegion, error)
	Region(name string) (prowler.MemoryRegion, error)
}

type SessionOptions struct {
	Slots    int
	Capacity int
	Order    binary.ByteOrder
	// Range is scanned by a fresh memscan given no range of its own.
	Range  *scanslot.Range
	Logger logflags.Logger
}

// Session is the scan state of one debugging session: a slot pool and the
// memory it reads from. Commands run one at a time.
type Session struct {
	mu      sync.Mutex
	pool    *scanslot.Pool
	reader  *proc.RemoteReader
	regions RegionSource
	rng     *scanslot.Range
	logger  logflags.Logger
}

func NewSession(mem proc.MemoryReader, regions RegionSource, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logflags.SessionLogger()
	}

	return &Session{
		pool:    scanslot.NewPool(opts.Slots, opts.Capacity),
		reader:  proc.NewRemoteReader(mem, opts.Order),
		regions: regions,
		rng:     opts.Range,
		logger:  logger,
	}
}

// NewProcessSession scans a live process.
func NewProcessSession(p *prowler.Prowler, opts SessionOptions) *Session {
	return NewSession(p, p, opts)
}

// NewImageSession scans a memory image; its whole extent is the default range.
func NewImageSession(img *proc.Image, opts SessionOptions) *Session {
	if opts.Range == nil {
		opts.Range = &scanslot.Range{Start: img.Base, End: img.End()}
	}
	return NewSession(img, imageRegions{img}, opts)
}

func (s *Session) Pool() *scanslot.Pool {
	return s.pool
}

// Call tokenizes and runs one command line, such as "memscan 0 4 100".
func (s *Session) Call(expr string) (string, error) {
	tokens, err := shlex.Split(expr)
	if err != nil {
		return "", errors.Wrap(e.InvalidArguments, err.Error())
	}
	if len(tokens) == 0 {
		return "", e.InvalidArguments
	}

	cmd, ok := ParseCmdType(strings.ToLower(tokens[0]))
	if !ok {
		return "", errors.Wrapf(e.CommandNotFound, "%s", tokens[0])
	}
	return s.Exec(cmd, tokens[1:])
}

func (s *Session) Exec(cmd CmdType, args []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debugf("exec %s %v", cmd, args)

	var (
		out string
		err error
	)
	switch cmd {
	case Memscan:
		out, err = s.memscan(args)
	case SlotClear:
		out, err = s.slotclear(args)
	case SlotInfo:
		out, err = s.slotinfo(args)
	case SlotList:
		out, err = s.slotls(args)
	case Regions:
		out, err = s.listRegions(args)
	case Read:
		out, err = s.read(args)
	default:
		err = errors.Wrapf(e.CommandNotFound, "%d", cmd)
	}

	if err != nil {
		s.logger.Warnf("%s %v failed: %v", cmd, args, err)
	}
	return out, err
}

func checkArgs(cmd CmdType, args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return errors.Wrapf(e.InvalidArguments, "%s requires exactly %d argument(s), got %d", cmd, min, len(args))
		}
		return errors.Wrapf(e.InvalidArguments, "%s requires %d to %d arguments, got %d", cmd, min, max, len(args))
	}
	return nil
}

// memscan <slot> <size> <value> [<start> <end> | <region>]
func (s *Session) memscan(args []string) (string, error) {
	if err := checkArgs(Memscan, args, 3, 5); err != nil {
		return "", err
	}

	idx, err := s.slotIndex(args[0])
	if err != nil {
		return "", err
	}
	size, err := parseNumber(args[1])
	if err != nil {
		return "", err
	}
	value, err := parseNumber(args[2])
	if err != nil {
		return "", err
	}
	if value > 0xffffffff {
		return "", errors.Wrapf(scanslot.ErrValueOutOfRange, "%#x", value)
	}

	rng, err := s.scanRange(args[3:])
	if err != nil {
		return "", err
	}

	out, err := s.pool.Scan(idx, s.reader, scanslot.Width(size), uint32(value), rng)
	if err != nil {
		return "", err
	}
	s.logger.Infof("slot %d: %d hits, refined %t", idx, out.Hits, out.Refined)

	var b strings.Builder
	if out.Truncated {
		fmt.Fprintf(&b, "Warning: slot %d reached its capacity of %d hits, results may be incomplete\n",
			idx, s.pool.Capacity())
	}
	s.printSlot(&b, idx)
	return b.String(), nil
}

func (s *Session) scanRange(args []string) (*scanslot.Range, error) {
	switch len(args) {
	case 0:
		return s.rng, nil
	case 1:
		if s.regions == nil {
			return nil, errors.Wrapf(e.RegionNotFound, "%s", args[0])
		}
		r, err := s.regions.Region(args[0])
		if err != nil {
			return nil, errors.Wrap(e.RegionNotFound, err.Error())
		}
		return &scanslot.Range{Start: r.Start, End: r.End}, nil
	}

	start, err := parseNumber(args[0])
	if err != nil {
		return nil, err
	}
	end, err := parseNumber(args[1])
	if err != nil {
		return nil, err
	}
	return &scanslot.Range{Start: start, End: end}, nil
}

func (s *Session) slotclear(args []string) (string, error) {
	if err := checkArgs(SlotClear, args, 1, 1); err != nil {
		return "", err
	}

	idx, err := s.slotIndex(args[0])
	if err != nil {
		return "", err
	}
	if err := s.pool.Clear(idx); err != nil {
		return "", err
	}

	var b strings.Builder
	s.printSlot(&b, idx)
	return b.String(), nil
}

func (s *Session) slotinfo(args []string) (string, error) {
	if err := checkArgs(SlotInfo, args, 1, 1); err != nil {
		return "", err
	}

	idx, err := s.slotIndex(args[0])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	s.printSlot(&b, idx)
	return b.String(), nil
}

func (s *Session) slotls(args []string) (string, error) {
	if err := checkArgs(SlotList, args, 0, 0); err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < s.pool.Len(); i++ {
		width, err := s.pool.GetWidth(i)
		if err != nil {
			return "", err
		}
		count, err := s.pool.GetHitCount(i)
		if err != nil {
			return "", err
		}
		if count == 0 {
			fmt.Fprintf(&b, "Slot %d: Clear\n", i)
			continue
		}
		fmt.Fprintf(&b, "Slot %d: Size %d, %d hits\n", i, width, count)
	}
	return b.String(), nil
}

func (s *Session) listRegions(args []string) (string, error) {
	if err := checkArgs(Regions, args, 0, 0); err != nil {
		return "", err
	}
	if s.regions == nil {
		return "", e.RegionNotFound
	}

	regions, err := s.regions.Regions()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, r := range regions {
		fmt.Fprintf(&b, "%3d: %s\n", i, r)
	}
	return b.String(), nil
}

// read <addr> [size]
func (s *Session) read(args []string) (string, error) {
	if err := checkArgs(Read, args, 1, 2); err != nil {
		return "", err
	}

	addr, err := parseNumber(args[0])
	if err != nil {
		return "", err
	}
	size := uint64(scanslot.Byte)
	if len(args) == 2 {
		if size, err = parseNumber(args[1]); err != nil {
			return "", err
		}
	}
	if size > uint64(scanslot.Word) || !scanslot.Width(size).Valid() {
		return "", errors.Wrapf(scanslot.ErrInvalidWidth, "%d", size)
	}

	v, err := s.reader.ReadValue(addr, int(size))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%#x = %s (%d)\n", addr, formatValue(scanslot.Width(size), v), v), nil
}

func (s *Session) slotIndex(arg string) (int, error) {
	n, err := parseNumber(arg)
	if err != nil {
		return 0, err
	}
	if n >= uint64(s.pool.Len()) {
		return 0, errors.Wrapf(scanslot.ErrSlotOutOfRange,
			"target slot %d is out of bounds, only %d slots available", n, s.pool.Len())
	}
	return int(n), nil
}

// printSlot lists the hits of a slot along with the value each currently
// holds in the target.
func (s *Session) printSlot(b *strings.Builder, idx int) {
	slot, err := s.pool.Slot(idx)
	if err != nil {
		return
	}

	if slot.HitCount() == 0 {
		fmt.Fprintf(b, "Slot %d is clear\n", idx)
		return
	}

	fmt.Fprintf(b, "Slot %d:\n", idx)
	width := slot.Width()
	for i, addr := range slot.Hits() {
		v, err := s.reader.ReadValue(addr, int(width))
		if err != nil {
			fmt.Fprintf(b, "%d:\t0x%016x\t??\n", i, addr)
			continue
		}
		fmt.Fprintf(b, "%d:\t0x%016x\t%s\n", i, addr, formatValue(width, v))
	}
	fmt.Fprintf(b, "Listed %d entries\n", slot.HitCount())
}

func formatValue(w scanslot.Width, v uint32) string {
	return fmt.Sprintf("0x%0*X", int(w)*2, v)
}

func parseNumber(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(e.InvalidArguments, "invalid number %q", s)
	}
	return n, nil
}

type imageRegions struct {
	img *proc.Image
}

func (r imageRegions) region() prowler.MemoryRegion {
	return prowler.MemoryRegion{
		Start: r.img.Base,
		End:   r.img.End(),
		Perms: "r--p",
		Path:  "[image]",
	}
}

func (r imageRegions) Regions() ([]prowler.MemoryRegion, error) {
	return []prowler.MemoryRegion{r.region()}, nil
}

func (r imageRegions) Region(name string) (prowler.MemoryRegion, error) {
	if region := r.region(); name == "0" || name == region.Path {
		return region, nil
	}
	return prowler.MemoryRegion{}, errors.Errorf("region %s not found", name)
}
