package prowler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMaps = `55d0c8a00000-55d0c8a02000 r--p 00000000 fd:01 1048594                    /usr/bin/game
55d0c8a02000-55d0c8a06000 r-xp 00002000 fd:01 1048594                    /usr/bin/game
55d0c8c08000-55d0c8c09000 rw-p 00007000 fd:01 1048594                    /usr/bin/game
55d0c9e1e000-55d0c9e3f000 rw-p 00000000 00:00 0                          [heap]
7f2d1c000000-7f2d1c021000 rw-p 00000000 00:00 0 
7ffd5b4a1000-7ffd5b4c2000 rw-p 00000000 00:00 0                          [stack]
`

func TestParseMaps(t *testing.T) {
	regions, err := parseMaps(sampleMaps)
	require.NoError(t, err)
	require.Len(t, regions, 6)

	heap := regions[3]
	assert.Equal(t, uint64(0x55d0c9e1e000), heap.Start)
	assert.Equal(t, uint64(0x55d0c9e3f000), heap.End)
	assert.Equal(t, "[heap]", heap.Name())
	assert.True(t, heap.Anonymous())
	assert.True(t, heap.Readable())

	assert.Equal(t, "[anon]", regions[4].Name())
	assert.Equal(t, uint64(0x7000), regions[2].Offset)
	assert.Equal(t, uint64(1048594), regions[2].Inode)
	assert.False(t, regions[2].Anonymous())
}

func TestParseMapsMalformed(t *testing.T) {
	lines := map[string]string{
		"start":  "zzzz-1000 rw-p 00000000 00:00 0\n",
		"range":  "1000 rw-p 00000000 00:00 0\n",
		"offset": "1000-2000 rw-p 0000zz00 00:00 0\n",
		"inode":  "1000-2000 rw-p 00000000 00:00 -1\n",
	}
	for name, line := range lines {
		t.Run(name, func(t *testing.T) {
			regions, err := parseMaps(line)
			assert.Error(t, err)
			assert.Nil(t, regions)
		})
	}
}

func TestFindRegion(t *testing.T) {
	regions, err := parseMaps(sampleMaps)
	require.NoError(t, err)

	r, err := findRegion(regions, "[stack]")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x7ffd5b4a1000), r.Start)

	r, err = findRegion(regions, "game")
	require.NoError(t, err)
	assert.Equal(t, "r--p", r.Perms)

	r, err = findRegion(regions, "4")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x7f2d1c000000), r.Start)

	_, err = findRegion(regions, "9")
	assert.Error(t, err)
	_, err = findRegion(regions, "[vdso]")
	assert.Error(t, err)
}
