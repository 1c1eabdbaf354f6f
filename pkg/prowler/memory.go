package prowler

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type MemoryRegion struct {
	Start  uint64
	End    uint64
	Perms  string
	Offset uint64
	Device string
	Inode  uint64
	Path   string
}

func (r MemoryRegion) Size() uint64 {
	return r.End - r.Start
}

func (r MemoryRegion) Readable() bool {
	return len(r.Perms) > 0 && r.Perms[0] == 'r'
}

// Anonymous reports whether the mapping is private writable memory with no
// file behind it, where heap and globals allocated at runtime live.
func (r MemoryRegion) Anonymous() bool {
	return r.Perms == "rw-p" && r.Offset == 0 && r.Inode == 0
}

// Name is the mapped path, or the pseudo name like [heap], if any.
func (r MemoryRegion) Name() string {
	if r.Path == "" {
		return "[anon]"
	}
	return r.Path
}

func (r MemoryRegion) String() string {
	return fmt.Sprintf("%#016x-%#016x %s %8d %s", r.Start, r.End, r.Perms, r.Size(), r.Name())
}

// parseProcMaps reads /proc/[pid]/maps.
func parseProcMaps(pid int) ([]MemoryRegion, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, errors.Wrapf(err, "read maps of %d", pid)
	}

	return parseMaps(string(data))
}

func parseMaps(data string) ([]MemoryRegion, error) {
	var regions []MemoryRegion
	for _, line := range strings.Split(data, "\n") {
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		addrs := strings.Split(fields[0], "-")
		if len(addrs) != 2 {
			return nil, errors.Errorf("malformed maps line %q", line)
		}
		start, err := strconv.ParseUint(addrs[0], 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed maps line %q", line)
		}
		end, err := strconv.ParseUint(addrs[1], 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed maps line %q", line)
		}

		offset, err := strconv.ParseUint(fields[2], 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed maps offset in %q", line)
		}
		inode, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed maps inode in %q", line)
		}

		region := MemoryRegion{
			Start:  start,
			End:    end,
			Perms:  fields[1],
			Offset: offset,
			Device: fields[3],
			Inode:  inode,
		}
		if len(fields) > 5 {
			region.Path = strings.Join(fields[5:], " ")
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// findRegion resolves name against regions. name is either an index into
// regions or a mapped path / pseudo name; the first readable match wins.
func findRegion(regions []MemoryRegion, name string) (MemoryRegion, error) {
	if idx, err := strconv.Atoi(name); err == nil {
		if idx < 0 || idx >= len(regions) {
			return MemoryRegion{}, errors.Errorf("region index %d out of range, %d regions", idx, len(regions))
		}
		return regions[idx], nil
	}

	for _, r := range regions {
		if !r.Readable() {
			continue
		}
		if r.Name() == name || strings.HasSuffix(r.Path, "/"+name) {
			return r, nil
		}
	}
	return MemoryRegion{}, errors.Errorf("region %s not found", name)
}
